package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"refield/internal/adapters/tui/styles"
)

var tabKey = key.NewBinding(
	key.WithKeys("tab"),
	key.WithHelp("tab", "next field"),
)

// InputField pairs a label with its text input.
type InputField struct {
	Label string
	Input textinput.Model
}

func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{Label: label, Input: input}
}

// InputForm holds the query fields and routes key input to whichever
// one has focus. Tab cycles focus; everything else goes to the
// focused input.
type InputForm struct {
	Fields  []InputField
	focused int
}

func NewInputForm(fields ...InputField) *InputForm {
	form := &InputForm{Fields: fields}
	if len(fields) > 0 {
		form.Fields[0].Input.Focus()
	}
	return form
}

// Update feeds msg to the form. The bool reports whether the form
// consumed the key itself.
func (f *InputForm) Update(msg tea.Msg) (bool, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, tabKey) {
		if len(f.Fields) > 1 {
			f.SetFocus((f.focused + 1) % len(f.Fields))
		}
		return true, nil
	}

	var cmd tea.Cmd
	if f.focused >= 0 && f.focused < len(f.Fields) {
		f.Fields[f.focused].Input, cmd = f.Fields[f.focused].Input.Update(msg)
	}
	return false, cmd
}

// SetFocus moves focus to the field at index.
func (f *InputForm) SetFocus(index int) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	if f.focused >= 0 && f.focused < len(f.Fields) {
		f.Fields[f.focused].Input.Blur()
	}
	f.focused = index
	f.Fields[f.focused].Input.Focus()
}

// Value returns the trimmed value of the field at index.
func (f *InputForm) Value(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[index].Input.Value())
}

// RenderField renders one labelled input, highlighting the focused one.
func (f *InputForm) RenderField(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}

	field := f.Fields[index]
	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(field.Label))
	b.WriteString("\n")
	if index == f.focused {
		b.WriteString(styles.InputFocused.Render(field.Input.View()))
	} else {
		b.WriteString(styles.InputField.Render(field.Input.View()))
	}
	return b.String()
}
