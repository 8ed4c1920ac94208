package render

import "github.com/cleared-dev/estado/internal/layout"

// Labels are the fixed strings printed on every page.
type Labels struct {
	Title   string // formatted with the upper-cased period
	Client  string
	Page    string // formatted with the page number
	Columns [layout.NumColumns]string
}

// Style holds fonts, colors and insets.
type Style struct {
	TitleSize  float64
	InfoSize   float64
	HeaderSize float64
	BodySize   float64
	FooterSize float64
	TitleLine  float64 // height of the title line
	InfoLine   float64 // height of each client info line
	Bands      [2]Color
	HeaderFill Color
	TextInset  float64 // subtracted from the description width before wrapping
	Labels     Labels
}

// DefaultStyle matches the printed statement: Helvetica 9 pt body, white and
// #bfbfbf bands.
func DefaultStyle() Style {
	return Style{
		TitleSize:  14,
		InfoSize:   10,
		HeaderSize: 9,
		BodySize:   9,
		FooterSize: 8,
		TitleLine:  18,
		InfoLine:   10,
		Bands:      [2]Color{{255, 255, 255}, {191, 191, 191}},
		HeaderFill: Color{255, 255, 255},
		TextInset:  layout.MM(2),
		Labels: Labels{
			Title:   "ESTADO DE CUENTA AL %s",
			Client:  "CLIENTE:",
			Page:    "Página: %d",
			Columns: [layout.NumColumns]string{"FECHA", "CONCEPTO", "RETIROS", "DEPÓSITOS", "SALDO"},
		},
	}
}
