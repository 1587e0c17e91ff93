package views

import (
	"refield/internal/application/commands"
	"refield/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// SearchRequest carries everything a search form submission produces:
// the query to run plus the replacement options to reuse in preview
// and batch application.
type SearchRequest struct {
	Query domain.Query
	Find  string
	Opts  commands.ReplaceOptions
}

// SwitchToSearchMsg returns to the search form
type SwitchToSearchMsg struct{}

// SwitchToResultsMsg shows the result browser for a completed search
type SwitchToResultsMsg struct {
	Request SearchRequest
	Results []domain.SearchResult
}

// SwitchToPreviewMsg shows replacement previews for the search results
type SwitchToPreviewMsg struct {
	Request SearchRequest
	Results []domain.SearchResult
}

// SwitchToBatchMsg starts applying the replacement across the results
type SwitchToBatchMsg struct {
	Request SearchRequest
	Results []domain.SearchResult
}

// SwitchToHelpMsg shows the help view
type SwitchToHelpMsg struct{}

// SearchErrMsg reports a failed search back to the form
type SearchErrMsg struct {
	Err error
}
