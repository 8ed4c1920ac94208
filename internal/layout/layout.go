package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidGeometry is returned when a Config cannot produce a printable page.
var ErrInvalidGeometry = errors.New("invalid page geometry")

// NumColumns is the number of statement columns.
const NumColumns = 5

// PointsPerMM converts millimetres to PDF points.
const PointsPerMM = 2.83465

// tolerance absorbs float rounding in the bottom-margin check.
const tolerance = 1e-6

// MM converts millimetres to points.
func MM(v float64) float64 { return v * PointsPerMM }

// Inches converts inches to points.
func Inches(v float64) float64 { return v * 72 }

// UnitFactor returns the number of points in one unit ("pt", "mm" or "in").
func UnitFactor(unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "pt":
		return 1, nil
	case "mm":
		return PointsPerMM, nil
	case "in":
		return 72, nil
	default:
		return 0, fmt.Errorf("unknown unit %q", unit)
	}
}

// Config is the raw geometry input, in points.
type Config struct {
	PageWidth    float64
	PageHeight   float64
	ColumnX      [NumColumns]float64
	BandLeft     float64
	BandRight    float64
	TitleY       float64
	HeaderY      float64
	FirstRowY    float64
	BottomMargin float64
	RowsPerPage  int
	RowHeight    float64 // 0 derives it from the page height
	FooterOffset float64 // distance of the footer line from the page bottom
}

// Geometry is the validated, derived page model. Treat it as read-only.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	ColumnX      [NumColumns]float64
	ColumnWidth  [NumColumns]float64
	BandLeft     float64
	BandRight    float64
	TitleY       float64
	HeaderY      float64
	FirstRowY    float64
	RowHeight    float64
	RowsPerPage  int
	BottomMargin float64
	FooterY      float64
}

// New validates cfg and derives column widths and row height.
func New(cfg Config) (*Geometry, error) {
	if cfg.PageWidth <= 0 || cfg.PageHeight <= 0 {
		return nil, fmt.Errorf("%w: page size %.4f x %.4f", ErrInvalidGeometry, cfg.PageWidth, cfg.PageHeight)
	}
	if cfg.RowsPerPage < 1 {
		return nil, fmt.Errorf("%w: rows per page %d", ErrInvalidGeometry, cfg.RowsPerPage)
	}

	g := &Geometry{
		PageWidth:    cfg.PageWidth,
		PageHeight:   cfg.PageHeight,
		ColumnX:      cfg.ColumnX,
		BandLeft:     cfg.BandLeft,
		BandRight:    cfg.BandRight,
		TitleY:       cfg.TitleY,
		HeaderY:      cfg.HeaderY,
		FirstRowY:    cfg.FirstRowY,
		RowsPerPage:  cfg.RowsPerPage,
		BottomMargin: cfg.BottomMargin,
		FooterY:      cfg.PageHeight - cfg.FooterOffset,
	}

	for i := 0; i < NumColumns-1; i++ {
		g.ColumnWidth[i] = cfg.ColumnX[i+1] - cfg.ColumnX[i]
	}
	g.ColumnWidth[NumColumns-1] = cfg.BandRight - cfg.ColumnX[NumColumns-1]
	for i, w := range g.ColumnWidth {
		if w <= 0 {
			return nil, fmt.Errorf("%w: column %d width %.4f is not positive", ErrInvalidGeometry, i, w)
		}
	}
	if cfg.BandLeft >= cfg.BandRight {
		return nil, fmt.Errorf("%w: band %.4f..%.4f is empty", ErrInvalidGeometry, cfg.BandLeft, cfg.BandRight)
	}

	switch {
	case cfg.RowHeight > 0:
		g.RowHeight = cfg.RowHeight
	case cfg.RowsPerPage > 1:
		g.RowHeight = (cfg.PageHeight - cfg.BottomMargin - cfg.FirstRowY) / float64(cfg.RowsPerPage-1)
	default:
		return nil, fmt.Errorf("%w: row height cannot be derived from a single row per page", ErrInvalidGeometry)
	}
	if g.RowHeight <= 0 || math.IsNaN(g.RowHeight) {
		return nil, fmt.Errorf("%w: row height %.4f is not positive", ErrInvalidGeometry, g.RowHeight)
	}

	lastRowTop := g.FirstRowY + g.RowHeight*float64(g.RowsPerPage-1)
	if lastRowTop+g.BottomMargin > g.PageHeight+tolerance {
		return nil, fmt.Errorf("%w: last row at %.4f runs into the bottom margin (%.4f of %.4f)",
			ErrInvalidGeometry, lastRowTop, g.BottomMargin, g.PageHeight)
	}
	return g, nil
}

// BandWidth is the width of a full row band across all columns.
func (g *Geometry) BandWidth() float64 {
	return g.BandRight - g.ColumnX[0]
}

// RowY returns the top of the n-th row slot on a page (0-based).
func (g *Geometry) RowY(n int) float64 {
	return g.FirstRowY + float64(n)*g.RowHeight
}

// DefaultConfig is the 187.33 x 279.40 mm statement template.
func DefaultConfig() Config {
	pageWidth := MM(187.33)
	return Config{
		PageWidth:    pageWidth,
		PageHeight:   MM(279.40),
		ColumnX:      [NumColumns]float64{MM(5.07), MM(20.47), MM(105.12), MM(131.46), MM(153.27)},
		BandLeft:     MM(4.97),
		BandRight:    MM(187.33 - 18.42),
		TitleY:       MM(10),
		HeaderY:      92.448,
		FirstRowY:    104.73901,
		BottomMargin: MM(18.16),
		RowsPerPage:  51,
		FooterOffset: 15,
	}
}

// Scale returns cfg with every length multiplied by factor.
func (cfg Config) Scale(factor float64) Config {
	out := cfg
	out.PageWidth *= factor
	out.PageHeight *= factor
	for i := range out.ColumnX {
		out.ColumnX[i] *= factor
	}
	out.BandLeft *= factor
	out.BandRight *= factor
	out.TitleY *= factor
	out.HeaderY *= factor
	out.FirstRowY *= factor
	out.BottomMargin *= factor
	out.RowHeight *= factor
	out.FooterOffset *= factor
	return out
}
