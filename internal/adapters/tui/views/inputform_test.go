package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testForm() *InputForm {
	return NewInputForm(
		NewInputField("Field", "title", 64),
		NewInputField("Find", "pattern", 256),
	)
}

func TestInputFormTabCyclesFocus(t *testing.T) {
	form := testForm()
	if form.focused != 0 {
		t.Fatalf("initial focus = %d, want 0", form.focused)
	}

	tab := tea.KeyMsg{Type: tea.KeyTab}
	if handled, _ := form.Update(tab); !handled {
		t.Fatal("tab should be consumed by the form")
	}
	if form.focused != 1 {
		t.Errorf("focus after tab = %d, want 1", form.focused)
	}

	form.Update(tab)
	if form.focused != 0 {
		t.Errorf("focus should wrap to 0, got %d", form.focused)
	}
}

func TestInputFormValueTrimsWhitespace(t *testing.T) {
	form := testForm()
	form.Fields[1].Input.SetValue("  Proceedings  ")
	if got := form.Value(1); got != "Proceedings" {
		t.Errorf("Value = %q, want %q", got, "Proceedings")
	}
	if got := form.Value(9); got != "" {
		t.Errorf("out-of-range Value = %q, want empty", got)
	}
}

func TestPaginatorPageJumps(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(12)

	p.NextPage()
	if start, end := p.VisibleRange(); start != 5 || end != 10 {
		t.Errorf("second page range = [%d,%d), want [5,10)", start, end)
	}
	if p.Cursor() != 5 {
		t.Errorf("cursor after NextPage = %d, want 5", p.Cursor())
	}

	p.NextPage()
	p.NextPage() // already on the last page, no-op
	if p.CurrentPage() != 3 || p.TotalPages() != 3 {
		t.Errorf("page = %d/%d, want 3/3", p.CurrentPage(), p.TotalPages())
	}

	p.PrevPage()
	if p.Cursor() != 5 {
		t.Errorf("cursor after PrevPage = %d, want 5", p.Cursor())
	}
}
