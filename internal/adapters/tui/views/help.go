package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"refield/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "ctrl+h"),
		key.WithHelp("esc/q", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToSearchMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Refield Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Batch field cleanup for bibliographic records"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Search form"))
	b.WriteString("\n")
	b.WriteString(helpLine("tab", "Next field"))
	b.WriteString(helpLine("ctrl+t", "Cycle pattern type"))
	b.WriteString(helpLine("ctrl+s", "Toggle case sensitivity"))
	b.WriteString(helpLine("enter", "Run search"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Results"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("y", "Copy record key"))
	b.WriteString(helpLine("p / Enter", "Preview changes"))
	b.WriteString(helpLine("r", "Replace in all results"))
	b.WriteString(helpLine("esc", "Back to search"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("ctrl+h", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Fields"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Scalar   : title, url, DOI, extra, ..."))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Creator  : creator.firstName, creator.lastName"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Set      : tag"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Computed : itemType, collection"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
