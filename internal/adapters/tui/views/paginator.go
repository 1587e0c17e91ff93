package views

// Paginator tracks a cursor over a windowed list of result rows. The
// window slides a full page at a time so the cursor row is always
// visible.
type Paginator struct {
	perPage int
	offset  int
	cursor  int
	total   int
}

func NewPaginator(perPage int) *Paginator {
	if perPage <= 0 {
		perPage = 10
	}
	return &Paginator{perPage: perPage}
}

// SetTotal records the list length and clamps the cursor to it.
func (p *Paginator) SetTotal(total int) {
	p.total = total
	if p.cursor >= total {
		p.cursor = total - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	p.follow()
}

// Cursor returns the selected row as an absolute list index.
func (p *Paginator) Cursor() int {
	return p.cursor
}

func (p *Paginator) CursorUp() {
	if p.cursor > 0 {
		p.cursor--
		p.follow()
	}
}

func (p *Paginator) CursorDown() {
	if p.cursor < p.total-1 {
		p.cursor++
		p.follow()
	}
}

// VisibleRange returns the half-open index range of the current page.
func (p *Paginator) VisibleRange() (start, end int) {
	return p.offset, min(p.offset+p.perPage, p.total)
}

func (p *Paginator) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.perPage - 1) / p.perPage
}

// CurrentPage is 1-based for display.
func (p *Paginator) CurrentPage() int {
	return p.offset/p.perPage + 1
}

// NextPage jumps forward one page, leaving the cursor on its first row.
func (p *Paginator) NextPage() {
	if p.offset+p.perPage < p.total {
		p.offset += p.perPage
		p.cursor = p.offset
	}
}

// PrevPage jumps back one page, leaving the cursor on its first row.
func (p *Paginator) PrevPage() {
	if p.offset > 0 {
		p.offset -= p.perPage
		p.cursor = p.offset
	}
}

// Reset clears the cursor and window for a fresh result set.
func (p *Paginator) Reset() {
	p.cursor = 0
	p.offset = 0
	p.total = 0
}

// follow slides the window to the page holding the cursor.
func (p *Paginator) follow() {
	if p.cursor < p.offset || p.cursor >= p.offset+p.perPage {
		p.offset = (p.cursor / p.perPage) * p.perPage
	}
}
