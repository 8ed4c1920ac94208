package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/estado/internal/layout"
	"github.com/cleared-dev/estado/internal/model"
	"github.com/cleared-dev/estado/internal/normalize"
)

// Header is the client metadata repeated on every page.
type Header struct {
	Client  string
	Account string
	Period  string
}

// Options configures a Renderer.
type Options struct {
	Geometry *layout.Geometry
	Header   Header
	Footer   string
	Style    Style
	Logger   zerolog.Logger
}

// Summary describes a finished rendering run.
type Summary struct {
	Pages   int
	Records int
	Rows    int // row slots used, counting wrapped lines
}

// Renderer places records onto pages. It owns its RenderState; use one
// Renderer per document.
type Renderer struct {
	surface Surface
	geo     *layout.Geometry
	header  Header
	footer  string
	style   Style
	log     zerolog.Logger

	state RenderState
	rows  int
}

// New creates a Renderer drawing on surface.
func New(surface Surface, opts Options) (*Renderer, error) {
	if surface == nil {
		return nil, errors.New("render: nil surface")
	}
	if opts.Geometry == nil {
		return nil, fmt.Errorf("render: %w: geometry is required", layout.ErrInvalidGeometry)
	}
	return &Renderer{
		surface: surface,
		geo:     opts.Geometry,
		header:  opts.Header,
		footer:  opts.Footer,
		style:   opts.Style,
		log:     opts.Logger,
	}, nil
}

// Render draws the complete document for records.
func (r *Renderer) Render(records []model.TransactionRecord) Summary {
	r.Begin()
	for _, rec := range records {
		r.Place(rec)
	}
	return r.Finish()
}

// State returns a copy of the current render state.
func (r *Renderer) State() RenderState {
	return r.state
}

// Begin resets the state and opens the first page.
func (r *Renderer) Begin() {
	r.state = RenderState{}
	r.rows = 0
	r.startPage()
}

// Place draws one record, breaking the page first when it does not fit.
func (r *Renderer) Place(rec model.TransactionRecord) {
	g := r.geo
	descWidth := g.ColumnWidth[model.ColDescription] - r.style.TextInset

	r.surface.SetFont(Regular, r.style.BodySize)
	lines := wrapText(r.guard(rec.Description), descWidth, r.surface.TextWidth)
	if len(lines) > g.RowsPerPage {
		r.log.Warn().
			Str("date", rec.Date).
			Int("lines", len(lines)).
			Int("rows_per_page", g.RowsPerPage).
			Msg("description truncated to one page")
		lines = lines[:g.RowsPerPage]
	}

	if !r.state.Fits(len(lines), g.RowsPerPage) {
		r.finishPage()
		r.startPage()
	}

	y := g.RowY(r.state.RowsOnPage)
	h := float64(len(lines)) * g.RowHeight

	r.surface.SetFillColor(r.style.Bands[r.state.Parity()])
	r.surface.FillRect(g.ColumnX[0], y, g.BandWidth(), h)
	for i := 1; i < layout.NumColumns; i++ {
		r.surface.Line(g.ColumnX[i], y, g.ColumnX[i], y+h)
	}

	r.cell(model.ColDate, y, h, rec.Date, AlignCenter)
	for i, line := range lines {
		r.surface.Text(g.ColumnX[model.ColDescription], y+float64(i)*g.RowHeight,
			g.ColumnWidth[model.ColDescription], g.RowHeight, line, AlignLeft)
	}
	r.cell(model.ColWithdrawal, y, h, normalize.FormatAmount(rec.Withdrawal), AlignRight)
	r.cell(model.ColDeposit, y, h, normalize.FormatAmount(rec.Deposit), AlignRight)
	r.cell(model.ColBalance, y, h, normalize.FormatAmount(rec.Balance), AlignRight)

	r.state.RowsOnPage += len(lines)
	r.state.Emitted++
	r.rows += len(lines)
}

// Finish closes the last page and reports what was drawn.
func (r *Renderer) Finish() Summary {
	r.finishPage()
	return Summary{Pages: r.state.Page, Records: r.state.Emitted, Rows: r.rows}
}

func (r *Renderer) cell(col int, y, h float64, s string, align Align) {
	g := r.geo
	r.surface.Text(g.ColumnX[col], y, g.ColumnWidth[col], h, r.guard(s), align)
}

// guard blanks missing-value markers. Reaching here means normalization let one through.
func (r *Renderer) guard(s string) string {
	if s != "" && normalize.IsSentinel(s) {
		r.log.Error().Str("text", s).Int("page", r.state.Page).Msg("missing-value marker reached renderer")
		return ""
	}
	return s
}

func (r *Renderer) startPage() {
	g := r.geo
	s := r.style
	sf := r.surface

	r.state.Page++
	r.state.RowsOnPage = 0
	sf.AddPage()

	sf.SetFont(Bold, s.TitleSize)
	sf.Text(0, g.TitleY, g.PageWidth, s.TitleLine,
		fmt.Sprintf(s.Labels.Title, strings.ToUpper(r.header.Period)), AlignCenter)

	y := g.TitleY + s.TitleLine
	sf.SetFont(Bold, s.InfoSize)
	sf.Text(g.BandLeft, y, g.BandWidth()/2, s.InfoLine, s.Labels.Client, AlignLeft)
	sf.Text(g.PageWidth-120, y, 100, s.InfoLine, fmt.Sprintf(s.Labels.Page, r.state.Page), AlignRight)

	y += s.InfoLine
	sf.SetFont(Regular, s.InfoSize)
	sf.Text(g.BandLeft, y, g.BandWidth(), s.InfoLine, r.header.Account, AlignLeft)

	y += s.InfoLine
	sf.SetFont(Bold, s.InfoSize)
	sf.Text(g.BandLeft, y, g.BandWidth(), s.InfoLine, r.header.Client, AlignLeft)

	sf.SetFont(Bold, s.HeaderSize)
	sf.SetFillColor(s.HeaderFill)
	for i := 0; i < layout.NumColumns; i++ {
		sf.FillRect(g.ColumnX[i], g.HeaderY, g.ColumnWidth[i], g.RowHeight)
		sf.Text(g.ColumnX[i], g.HeaderY, g.ColumnWidth[i], g.RowHeight, s.Labels.Columns[i], AlignCenter)
		if i < layout.NumColumns-1 {
			sf.Line(g.ColumnX[i+1], g.HeaderY, g.ColumnX[i+1], g.HeaderY+g.RowHeight)
		}
	}
	sf.Line(g.BandLeft, g.HeaderY+g.RowHeight, g.BandRight, g.HeaderY+g.RowHeight)

	r.log.Debug().Int("page", r.state.Page).Int("emitted", r.state.Emitted).Msg("page started")
}

func (r *Renderer) finishPage() {
	if r.state.Page == 0 || r.footer == "" {
		return
	}
	g := r.geo
	r.surface.SetFont(Regular, r.style.FooterSize)
	r.surface.Text(g.BandLeft, g.FooterY, g.BandWidth(), 10, r.footer, AlignLeft)
}
