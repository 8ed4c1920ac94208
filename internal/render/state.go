package render

// RenderState is the mutable cursor of one rendering run.
type RenderState struct {
	Page       int // 1-based number of the page being filled; 0 before the first page
	RowsOnPage int // row slots used on the current page
	Emitted    int // records placed so far, across all pages
}

// Parity selects the band color of the next record. It depends only on how
// many records were emitted, never on pages or wrapped lines.
func (s RenderState) Parity() int {
	return s.Emitted % 2
}

// Fits reports whether a record occupying lines row slots fits on the current page.
func (s RenderState) Fits(lines, rowsPerPage int) bool {
	return s.RowsOnPage+lines <= rowsPerPage
}
