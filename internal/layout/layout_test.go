package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGeometry(t *testing.T) {
	g, err := New(DefaultConfig())
	require.NoError(t, err)

	assert.InDelta(t, 531.0, g.PageWidth, 0.05)
	assert.InDelta(t, 792.0, g.PageHeight, 0.01)
	assert.Equal(t, 51, g.RowsPerPage)

	wantWidths := []float64{
		MM(20.47 - 5.07),
		MM(105.12 - 20.47),
		MM(131.46 - 105.12),
		MM(153.27 - 131.46),
		MM(187.33-18.42) - MM(153.27),
	}
	for i, w := range wantWidths {
		assert.InDelta(t, w, g.ColumnWidth[i], 1e-9, "column %d", i)
	}

	wantRow := (MM(279.40) - MM(18.16) - 104.73901) / 50
	assert.InDelta(t, wantRow, g.RowHeight, 1e-9)
	assert.InDelta(t, g.PageHeight-g.BottomMargin, g.RowY(50), 1e-6)
	assert.InDelta(t, g.PageHeight-15, g.FooterY, 1e-9)
}

func TestNew_ExplicitRowHeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RowHeight = 10
	g, err := New(cfg)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, g.RowHeight, 1e-9)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero page", func(c *Config) { c.PageWidth = 0 }},
		{"no rows", func(c *Config) { c.RowsPerPage = 0 }},
		{"columns out of order", func(c *Config) { c.ColumnX[2] = c.ColumnX[1] }},
		{"band right before last column", func(c *Config) { c.BandRight = c.ColumnX[4] - 1 }},
		{"first row below page", func(c *Config) { c.FirstRowY = c.PageHeight }},
		{"single row without height", func(c *Config) { c.RowsPerPage = 1 }},
		{"explicit height overflows", func(c *Config) { c.RowHeight = 20 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}

func TestUnitFactor(t *testing.T) {
	f, err := UnitFactor("mm")
	require.NoError(t, err)
	assert.InDelta(t, PointsPerMM, f, 1e-12)

	f, err = UnitFactor("")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, f, 1e-12)

	_, err = UnitFactor("cubits")
	assert.Error(t, err)
}

func TestScale(t *testing.T) {
	mm := Config{PageWidth: 100, ColumnX: [NumColumns]float64{1, 2, 3, 4, 5}, RowsPerPage: 7}
	pt := mm.Scale(PointsPerMM)
	assert.InDelta(t, MM(100), pt.PageWidth, 1e-9)
	assert.InDelta(t, MM(5), pt.ColumnX[4], 1e-9)
	assert.Equal(t, 7, pt.RowsPerPage)
}
