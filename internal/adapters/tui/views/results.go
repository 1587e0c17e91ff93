package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"refield/internal/adapters/tui/styles"
	"refield/internal/domain"
)

// ResultsKeyMap defines key bindings for the result browser
type ResultsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Yank     key.Binding
	Preview  key.Binding
	Apply    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

var ResultsKeys = ResultsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+b"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+f"),
		key.WithHelp("pgdn", "page down"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy key"),
	),
	Preview: key.NewBinding(
		key.WithKeys("p", "enter"),
		key.WithHelp("p", "preview"),
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

// ResultsModel is the model for the search result browser
type ResultsModel struct {
	ViewState
	request SearchRequest
	results []domain.SearchResult
	pager   *Paginator
}

// NewResultsModel creates a new result browser model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{
		pager: NewPaginator(15),
	}
}

// SetResults loads a fresh result set into the browser
func (m *ResultsModel) SetResults(req SearchRequest, results []domain.SearchResult) {
	m.request = req
	m.results = results
	m.pager.Reset()
	m.pager.SetTotal(len(results))
	m.ClearMessage()
}

// Init initializes the result browser
func (m *ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the result browser
func (m *ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ResultsKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, ResultsKeys.Back):
			return m, func() tea.Msg { return SwitchToSearchMsg{} }

		case key.Matches(msg, ResultsKeys.Up):
			m.pager.CursorUp()
			return m, nil

		case key.Matches(msg, ResultsKeys.Down):
			m.pager.CursorDown()
			return m, nil

		case key.Matches(msg, ResultsKeys.PageUp):
			m.pager.PrevPage()
			return m, nil

		case key.Matches(msg, ResultsKeys.PageDown):
			m.pager.NextPage()
			return m, nil

		case key.Matches(msg, ResultsKeys.Yank):
			if r := m.selected(); r != nil {
				clipboard.WriteAll(r.Record.Key)
				m.SetMessage(fmt.Sprintf("Copied %s", r.Record.Key), false)
			}
			return m, nil

		case key.Matches(msg, ResultsKeys.Preview):
			if len(m.results) > 0 {
				req, results := m.request, m.results
				return m, func() tea.Msg {
					return SwitchToPreviewMsg{Request: req, Results: results}
				}
			}
			return m, nil

		case key.Matches(msg, ResultsKeys.Apply):
			if len(m.results) > 0 {
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

func (m *ResultsModel) selected() *domain.SearchResult {
	if len(m.results) == 0 {
		return nil
	}
	return &m.results[m.pager.Cursor()]
}

// View renders the result browser
func (m *ResultsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(fmt.Sprintf("Results — %d record(s)", len(m.results))))
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		b.WriteString(styles.MutedText.Render("No results found"))
		b.WriteString("\n\n")
		b.WriteString(RenderHelpLine(ResultsKeys.Back, ResultsKeys.Quit))
		return styles.App.Render(b.String())
	}

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(m.results[i], i == m.pager.Cursor()))
		b.WriteString("\n")
	}

	if m.pager.TotalPages() > 1 {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages())))
	}

	b.WriteString("\n")
	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(RenderHelpLine(ResultsKeys.Up, ResultsKeys.Down, ResultsKeys.Yank, ResultsKeys.Preview, ResultsKeys.Apply, ResultsKeys.Back))

	return styles.App.Render(b.String())
}

func (m *ResultsModel) renderRow(r domain.SearchResult, selected bool) string {
	title := r.Record.Field("title")
	if title == "" {
		title = "(untitled)"
	}
	header := fmt.Sprintf("%s [%s] %s", r.Record.Key, domain.ItemTypeName(r.Record.ItemType), title)
	if selected {
		header = styles.RowSelected.Render(header)
	} else {
		header = styles.RowKey.Render(r.Record.Key) + " " +
			styles.RowType.Render("["+domain.ItemTypeName(r.Record.ItemType)+"]") + " " + title
	}

	if len(r.MatchDetails) > 0 {
		header += "\n    " + renderMatch(r.MatchDetails[0])
	}
	return header
}

// renderMatch highlights the matched span within the field value when
// the position is known; tag matches carry no position.
func renderMatch(d domain.MatchDetail) string {
	if d.MatchIndex < 0 || d.MatchIndex+d.MatchLength > len(d.Value) {
		return styles.MutedText.Render(d.Field+": ") + d.Value
	}
	return styles.MutedText.Render(d.Field+": ") +
		d.Value[:d.MatchIndex] +
		styles.MatchText.Render(d.Value[d.MatchIndex:d.MatchIndex+d.MatchLength]) +
		d.Value[d.MatchIndex+d.MatchLength:]
}
