package pdfdoc

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/cleared-dev/estado/internal/render"
)

// DefaultFamily is the core font used for every string.
const DefaultFamily = "Helvetica"

// Document is a fixed-size PDF drawn in points from the top-left corner.
type Document struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
}

// Options holds document metadata.
type Options struct {
	Family  string
	Title   string
	Author  string
	Created time.Time // zero leaves the creation date to fpdf
}

// New creates an empty document with pages of width x height points.
func New(width, height float64, opts Options) *Document {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetTextColor(0, 0, 0)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, true)
	}
	if !opts.Created.IsZero() {
		pdf.SetCreationDate(opts.Created)
	}

	family := opts.Family
	if family == "" {
		family = DefaultFamily
	}
	d := &Document{
		pdf:    pdf,
		family: family,
		// Core fonts are cp1252; accented labels need translating.
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}
	d.pdf.SetFont(family, "", 9)
	return d
}

// AddPage starts a new page.
func (d *Document) AddPage() { d.pdf.AddPage() }

// SetFont selects the document family in the given style and size.
func (d *Document) SetFont(style string, size float64) {
	d.pdf.SetFont(d.family, style, size)
}

// SetFillColor sets the color used by FillRect.
func (d *Document) SetFillColor(c render.Color) {
	d.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

// FillRect paints a filled rectangle without border.
func (d *Document) FillRect(x, y, w, h float64) {
	d.pdf.Rect(x, y, w, h, "F")
}

// Line draws a rule.
func (d *Document) Line(x1, y1, x2, y2 float64) {
	d.pdf.Line(x1, y1, x2, y2)
}

// Text places s in a cell, vertically centered.
func (d *Document) Text(x, y, w, h float64, s string, align render.Align) {
	d.pdf.SetXY(x, y)
	d.pdf.CellFormat(w, h, d.tr(s), "", 0, alignStr(align), false, 0, "")
}

// TextWidth measures s in the current font.
func (d *Document) TextWidth(s string) float64 {
	return d.pdf.GetStringWidth(d.tr(s))
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int { return d.pdf.PageCount() }

// Output finalizes the document and writes it to w.
func (d *Document) Output(w io.Writer) error {
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("building pdf: %w", err)
	}
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func alignStr(a render.Align) string {
	switch a {
	case render.AlignCenter:
		return "CM"
	case render.AlignRight:
		return "RM"
	default:
		return "LM"
	}
}
