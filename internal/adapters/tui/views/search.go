package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"refield/internal/adapters/tui/styles"
	"refield/internal/application"
	"refield/internal/application/commands"
	"refield/internal/domain"
	"refield/internal/ports"
)

// SearchKeyMap defines key bindings for the search form
type SearchKeyMap struct {
	Submit key.Binding
	Tab    key.Binding
	Type   key.Binding
	Case   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var SearchKeys = SearchKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Type: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "pattern type"),
	),
	Case: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "case"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+h"),
		key.WithHelp("ctrl+h", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// form field indices
const (
	fieldField = iota
	fieldPattern
	fieldReplace
)

var patternTypes = []domain.PatternType{
	domain.PatternContains,
	domain.PatternRegex,
	domain.PatternExact,
	domain.PatternLike,
	domain.PatternGlob,
}

// SearchModel is the model for the search form
type SearchModel struct {
	ViewState
	store ports.RecordStore

	form          *InputForm
	typeIndex     int
	caseSensitive bool
	searching     bool
}

// NewSearchModel creates a new search form model
func NewSearchModel(store ports.RecordStore) *SearchModel {
	field := NewInputField("Field", "title", 64)
	pattern := NewInputField("Find", "pattern", 256)
	replace := NewInputField("Replace with", "leave empty to delete matches", 256)

	m := &SearchModel{
		store: store,
		form:  NewInputForm(field, pattern, replace),
	}
	m.form.SetFocus(fieldPattern)
	return m
}

// Init initializes the search form
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the search form
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case SearchErrMsg:
		m.searching = false
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		switch {
		case key.Matches(msg, SearchKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, SearchKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }

		case key.Matches(msg, SearchKeys.Type):
			m.typeIndex = (m.typeIndex + 1) % len(patternTypes)
			return m, nil

		case key.Matches(msg, SearchKeys.Case):
			m.caseSensitive = !m.caseSensitive
			return m, nil

		case key.Matches(msg, SearchKeys.Submit):
			return m, m.submit()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *SearchModel) submit() tea.Cmd {
	pattern := m.form.Value(fieldPattern)
	if pattern == "" {
		m.SetMessage("Find pattern is required", true)
		return nil
	}
	field := m.form.Value(fieldField)
	if field == "" {
		field = "title"
	}

	req := SearchRequest{
		Query: domain.Query{{
			Field:         field,
			Pattern:       pattern,
			Type:          patternTypes[m.typeIndex],
			CaseSensitive: m.caseSensitive,
		}},
		Find: pattern,
		Opts: commands.ReplaceOptions{
			Fields:        []string{field},
			Type:          patternTypes[m.typeIndex],
			CaseSensitive: m.caseSensitive,
			ReplaceWith:   m.form.Value(fieldReplace),
		},
	}

	if err := application.ValidateQuery(req.Query); err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}

	m.searching = true
	store := m.store
	return func() tea.Msg {
		results, err := commands.NewSearchCommand(store, req.Query, commands.SearchOptions{}).Execute(context.Background())
		if err != nil {
			return SearchErrMsg{Err: err}
		}
		return SwitchToResultsMsg{Request: req, Results: results}
	}
}

// View renders the search form
func (m *SearchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Find & Replace"))
	b.WriteString("\n\n")

	for i := range m.form.Fields {
		b.WriteString(m.form.RenderField(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	caseStr := "insensitive"
	if m.caseSensitive {
		caseStr = "sensitive"
	}
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("type: %s  case: %s", patternTypes[m.typeIndex], caseStr)))
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(styles.MutedText.Render("Searching..."))
		b.WriteString("\n\n")
	}
	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderHelpLine(SearchKeys.Submit, SearchKeys.Tab, SearchKeys.Type, SearchKeys.Case, SearchKeys.Help, SearchKeys.Quit))

	return styles.App.Render(b.String())
}
