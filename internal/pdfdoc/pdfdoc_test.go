package pdfdoc

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/estado/internal/layout"
	"github.com/cleared-dev/estado/internal/model"
	"github.com/cleared-dev/estado/internal/render"
)

var _ render.Surface = (*Document)(nil)

func TestDocument_RendersStatement(t *testing.T) {
	g, err := layout.New(layout.DefaultConfig())
	require.NoError(t, err)

	doc := New(g.PageWidth, g.PageHeight, Options{
		Title:   "Estado de cuenta",
		Created: time.Date(2025, 1, 21, 0, 0, 0, 0, time.UTC),
	})
	r, err := render.New(doc, render.Options{
		Geometry: g,
		Header:   render.Header{Client: "PATRICIA IÑIGUEZ FLORES", Account: "61900627", Period: "21 DE ENERO DE 2025"},
		Footer:   "000191.B41EJDA029.OD.0121.01",
		Style:    render.DefaultStyle(),
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)

	recs := make([]model.TransactionRecord, 60)
	for i := range recs {
		recs[i] = model.TransactionRecord{
			Date:        "10 ENE",
			Description: "DEPÓSITO EN EFECTIVO SUCURSAL",
			Deposit:     model.MustAmount("1234.5"),
			Balance:     model.MustAmount("99999.99"),
		}
	}
	sum := r.Render(recs)
	assert.Equal(t, 2, sum.Pages)
	assert.Equal(t, 2, doc.PageCount())

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestDocument_TextWidthGrowsWithText(t *testing.T) {
	doc := New(200, 200, Options{})
	doc.AddPage()
	doc.SetFont(render.Regular, 9)
	short := doc.TextWidth("PAGO")
	long := doc.TextWidth("PAGO TARJETA DE CREDITO")
	assert.Greater(t, short, 0.0)
	assert.Greater(t, long, short)
}

func TestAlignStr(t *testing.T) {
	assert.Equal(t, "LM", alignStr(render.AlignLeft))
	assert.Equal(t, "CM", alignStr(render.AlignCenter))
	assert.Equal(t, "RM", alignStr(render.AlignRight))
}
