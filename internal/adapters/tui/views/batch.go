package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"refield/internal/adapters/tui/styles"
	"refield/internal/application/commands"
	"refield/internal/domain"
	"refield/internal/ports"
)

// BatchKeyMap defines key bindings for the batch view
type BatchKeyMap struct {
	Done key.Binding
	Quit key.Binding
}

var BatchKeys = BatchKeyMap{
	Done: key.NewBinding(
		key.WithKeys("enter", "esc"),
		key.WithHelp("enter", "new search"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type batchProgressMsg ports.Progress

type batchDoneMsg struct {
	result domain.BatchResult
}

// BatchModel runs a replacement across a result set and reports progress
type BatchModel struct {
	ViewState
	store ports.RecordStore

	bar     progress.Model
	events  chan tea.Msg
	current int
	total   int
	running bool
	result  *domain.BatchResult
}

// NewBatchModel creates a new batch view model
func NewBatchModel(store ports.RecordStore) *BatchModel {
	return &BatchModel{
		store: store,
		bar:   progress.New(progress.WithDefaultGradient()),
	}
}

// Start launches the batch replacement in the background and returns
// the command that listens for its progress events.
func (m *BatchModel) Start(req SearchRequest, results []domain.SearchResult) tea.Cmd {
	records := make([]*domain.Record, 0, len(results))
	for _, r := range results {
		records = append(records, r.Record)
	}

	m.events = make(chan tea.Msg, 16)
	m.current = 0
	m.total = len(records)
	m.running = true
	m.result = nil

	events := m.events
	opts := req.Opts
	opts.Progress = func(p ports.Progress) {
		events <- batchProgressMsg(p)
	}

	store, find := m.store, req.Find
	go func() {
		res := commands.NewBatchReplaceCommand(store, records, find, opts).Execute(context.Background())
		events <- batchDoneMsg{result: res}
		close(events)
	}()

	return m.listen()
}

func (m *BatchModel) listen() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

// Init initializes the batch view
func (m *BatchModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the batch view
func (m *BatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.bar.Width = min(msg.Width-8, 60)
		return m, nil

	case batchProgressMsg:
		m.current = msg.Current
		m.total = msg.Total
		return m, m.listen()

	case batchDoneMsg:
		m.running = false
		m.result = &msg.result
		return m, nil

	case tea.KeyMsg:
		if m.running {
			if key.Matches(msg, BatchKeys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, BatchKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, BatchKeys.Done):
			return m, func() tea.Msg { return SwitchToSearchMsg{} }
		}
	}

	return m, nil
}

// View renders the batch view
func (m *BatchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Replace"))
	b.WriteString("\n\n")

	if m.running {
		percent := 0.0
		if m.total > 0 {
			percent = float64(m.current) / float64(m.total)
		}
		b.WriteString(m.bar.ViewAs(percent))
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d/%d records", m.current, m.total)))
		b.WriteString("\n\n")
		b.WriteString(RenderHelpLine(BatchKeys.Quit))
		return styles.App.Render(b.String())
	}

	if m.result != nil {
		b.WriteString(styles.Success.Render(fmt.Sprintf("Modified: %d", m.result.Modified)))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("Skipped: %d", m.result.Skipped)))
		b.WriteString("\n")
		if len(m.result.Errors) > 0 {
			b.WriteString(styles.ErrorMsg.Render(fmt.Sprintf("Errors: %d", len(m.result.Errors))))
			b.WriteString("\n")
			for _, e := range m.result.Errors {
				b.WriteString(styles.MutedText.Render(fmt.Sprintf("  record %d: %s", e.RecordID, e.Message)))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(RenderHelpLine(BatchKeys.Done, BatchKeys.Quit))
	return styles.App.Render(b.String())
}
