package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"refield/internal/adapters/tui/views"
	"refield/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewSearch ViewState = iota
	ViewResults
	ViewPreview
	ViewBatch
	ViewHelp
)

// App is the main TUI application model
type App struct {
	store ports.RecordStore

	state   ViewState
	search  *views.SearchModel
	results *views.ResultsModel
	preview *views.PreviewModel
	batch   *views.BatchModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(store ports.RecordStore) *App {
	return &App{
		store:   store,
		state:   ViewSearch,
		search:  views.NewSearchModel(store),
		results: views.NewResultsModel(),
		preview: views.NewPreviewModel(),
		batch:   views.NewBatchModel(store),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.search.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.search.SetSize(msg.Width, msg.Height)
		a.results.SetSize(msg.Width, msg.Height)
		a.preview.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		// batch sizes its progress bar itself
		_, cmd := a.batch.Update(msg)
		return a, cmd

	// View switching messages
	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		return a, a.search.Init()

	case views.SwitchToResultsMsg:
		a.state = ViewResults
		a.results.SetResults(msg.Request, msg.Results)
		return a, nil

	case views.SwitchToPreviewMsg:
		if err := a.preview.SetResults(msg.Request, msg.Results); err != nil {
			a.state = ViewSearch
			return a, func() tea.Msg { return views.SearchErrMsg{Err: err} }
		}
		a.state = ViewPreview
		return a, nil

	case views.SwitchToBatchMsg:
		a.state = ViewBatch
		return a, a.batch.Start(msg.Request, msg.Results)

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewResults:
		_, cmd = a.results.Update(msg)
	case ViewPreview:
		_, cmd = a.preview.Update(msg)
	case ViewBatch:
		_, cmd = a.batch.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewResults:
		return a.results.View()
	case ViewPreview:
		return a.preview.View()
	case ViewBatch:
		return a.batch.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.search.View()
	}
}
