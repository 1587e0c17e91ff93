package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"refield/internal/adapters/tui/styles"
	"refield/internal/application/commands"
	"refield/internal/domain"
)

// PreviewKeyMap defines key bindings for the preview view
type PreviewKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Apply key.Binding
	Back  key.Binding
	Quit  key.Binding
}

var PreviewKeys = PreviewKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Apply: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "replace all"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// previewEntry is one record's proposed changes
type previewEntry struct {
	record  *domain.Record
	changes []domain.FieldChange
}

// PreviewModel shows the before/after values a replacement would produce
type PreviewModel struct {
	ViewState
	request SearchRequest
	results []domain.SearchResult
	entries []previewEntry
	total   int
	pager   *Paginator
}

// NewPreviewModel creates a new preview model
func NewPreviewModel() *PreviewModel {
	return &PreviewModel{
		pager: NewPaginator(8),
	}
}

// SetResults computes previews for a result set. Records whose values
// would not change are omitted.
func (m *PreviewModel) SetResults(req SearchRequest, results []domain.SearchResult) error {
	m.request = req
	m.results = results
	m.entries = nil
	m.total = 0
	m.ClearMessage()

	for _, r := range results {
		changes, err := commands.PreviewFields(r.Record, req.Find, req.Opts)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			continue
		}
		m.entries = append(m.entries, previewEntry{record: r.Record, changes: changes})
		m.total += len(changes)
	}

	m.pager.Reset()
	m.pager.SetTotal(len(m.entries))
	return nil
}

// Init initializes the preview view
func (m *PreviewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the preview view
func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PreviewKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, PreviewKeys.Back):
			req, results := m.request, m.results
			return m, func() tea.Msg {
				return SwitchToResultsMsg{Request: req, Results: results}
			}

		case key.Matches(msg, PreviewKeys.Up):
			m.pager.CursorUp()
			return m, nil

		case key.Matches(msg, PreviewKeys.Down):
			m.pager.CursorDown()
			return m, nil

		case key.Matches(msg, PreviewKeys.Apply):
			if len(m.entries) > 0 {
				req, results := m.request, m.results
				return m, func() tea.Msg {
					return SwitchToBatchMsg{Request: req, Results: results}
				}
			}
			return m, nil
		}
	}

	return m, nil
}

// View renders the preview view
func (m *PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(fmt.Sprintf("Preview — %d change(s) across %d record(s)", m.total, len(m.entries))))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(styles.MutedText.Render("No changes"))
		b.WriteString("\n\n")
		b.WriteString(RenderHelpLine(PreviewKeys.Back, PreviewKeys.Quit))
		return styles.App.Render(b.String())
	}

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		e := m.entries[i]
		header := fmt.Sprintf("%s %s", e.record.Key, e.record.Field("title"))
		if i == m.pager.Cursor() {
			b.WriteString(styles.RowSelected.Render(header))
		} else {
			b.WriteString(styles.RowKey.Render(e.record.Key) + " " + e.record.Field("title"))
		}
		b.WriteString("\n")
		for _, c := range e.changes {
			b.WriteString(fmt.Sprintf("  %s (%d):\n", styles.InputLabel.Render(c.Field), c.Replacements))
			b.WriteString("    " + styles.DiffOld.Render("- "+c.Original) + "\n")
			b.WriteString("    " + styles.DiffNew.Render("+ "+c.Replaced) + "\n")
		}
	}

	if m.pager.TotalPages() > 1 {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages())))
	}

	b.WriteString("\n\n")
	b.WriteString(RenderHelpLine(PreviewKeys.Up, PreviewKeys.Down, PreviewKeys.Apply, PreviewKeys.Back, PreviewKeys.Quit))

	return styles.App.Render(b.String())
}
