package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/estado/internal/layout"
	"github.com/cleared-dev/estado/internal/normalize"
	"github.com/cleared-dev/estado/internal/render"
	"github.com/cleared-dev/estado/internal/statement"
)

// DefaultFooter is the reference line printed at the bottom of every page.
const DefaultFooter = "000191.B41EJDA029.OD.0121.01"

// DefaultOutputPrefix starts every generated PDF file name.
const DefaultOutputPrefix = "Banamex_LIMPIO"

// Config represents the top-level estado.yaml configuration.
type Config struct {
	Client       ClientConfig `yaml:"client"`
	Layout       LayoutConfig `yaml:"layout"`
	Style        StyleConfig  `yaml:"style"`
	Policy       PolicyConfig `yaml:"policy"`
	Text         TextConfig   `yaml:"text"`
	Footer       string       `yaml:"footer"`
	OutputPrefix string       `yaml:"output_prefix"`
}

// ClientConfig is the header information printed on every page.
type ClientConfig struct {
	Name    string `yaml:"name"`
	Account string `yaml:"account"`
	Period  string `yaml:"period"`
}

// LayoutConfig is the page geometry. Lengths are in Unit ("pt", "mm" or "in").
type LayoutConfig struct {
	Unit         string     `yaml:"unit"`
	PageWidth    float64    `yaml:"page_width"`
	PageHeight   float64    `yaml:"page_height"`
	ColumnX      [5]float64 `yaml:"column_x,flow"`
	BandLeft     float64    `yaml:"band_left"`
	BandRight    float64    `yaml:"band_right"`
	TitleY       float64    `yaml:"title_y"`
	HeaderY      float64    `yaml:"header_y"`
	FirstRowY    float64    `yaml:"first_row_y"`
	BottomMargin float64    `yaml:"bottom_margin"`
	RowsPerPage  int        `yaml:"rows_per_page"`
	RowHeight    float64    `yaml:"row_height,omitempty"` // 0 derives it
	FooterOffset float64    `yaml:"footer_offset"`
}

// StyleConfig controls fonts and fills. TextInset is in points.
type StyleConfig struct {
	Font       string    `yaml:"font"`
	TitleSize  float64   `yaml:"title_size"`
	InfoSize   float64   `yaml:"info_size"`
	HeaderSize float64   `yaml:"header_size"`
	BodySize   float64   `yaml:"body_size"`
	FooterSize float64   `yaml:"footer_size"`
	BandColors [2]string `yaml:"band_colors,flow"`
	HeaderFill string    `yaml:"header_fill"`
	TextInset  float64   `yaml:"text_inset"`
}

// PolicyConfig controls field normalization.
type PolicyConfig struct {
	ZeroAsEmpty   bool   `yaml:"zero_as_empty"`
	DropEmptyRows bool   `yaml:"drop_empty_rows"`
	Sentinels     string `yaml:"sentinels"` // "whole-value" or "strip-tokens"
}

// TextConfig controls reconstruction from extracted text lines.
type TextConfig struct {
	DatePattern     string   `yaml:"date_pattern"`
	DepositKeywords []string `yaml:"deposit_keywords"`
	OpeningBalance  string   `yaml:"opening_balance,omitempty"`
	Encoding        string   `yaml:"encoding,omitempty"`
}

// Load reads an estado.yaml file from disk. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration of the standard statement template.
func Default() *Config {
	geo := layout.DefaultConfig()
	style := render.DefaultStyle()
	return &Config{
		Layout: LayoutConfig{
			Unit:         "pt",
			PageWidth:    geo.PageWidth,
			PageHeight:   geo.PageHeight,
			ColumnX:      geo.ColumnX,
			BandLeft:     geo.BandLeft,
			BandRight:    geo.BandRight,
			TitleY:       geo.TitleY,
			HeaderY:      geo.HeaderY,
			FirstRowY:    geo.FirstRowY,
			BottomMargin: geo.BottomMargin,
			RowsPerPage:  geo.RowsPerPage,
			FooterOffset: geo.FooterOffset,
		},
		Style: StyleConfig{
			Font:       "Helvetica",
			TitleSize:  style.TitleSize,
			InfoSize:   style.InfoSize,
			HeaderSize: style.HeaderSize,
			BodySize:   style.BodySize,
			FooterSize: style.FooterSize,
			BandColors: [2]string{style.Bands[0].Hex(), style.Bands[1].Hex()},
			HeaderFill: style.HeaderFill.Hex(),
			TextInset:  style.TextInset,
		},
		Policy: PolicyConfig{
			ZeroAsEmpty: true,
			Sentinels:   normalize.WholeValue.String(),
		},
		Text: TextConfig{
			DatePattern:     statement.DefaultDatePattern,
			DepositKeywords: append([]string(nil), statement.DefaultDepositKeywords...),
		},
		Footer:       DefaultFooter,
		OutputPrefix: DefaultOutputPrefix,
	}
}

// Geometry converts the layout section to points and validates it.
func (c *Config) Geometry() (*layout.Geometry, error) {
	factor, err := layout.UnitFactor(c.Layout.Unit)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	l := c.Layout
	raw := layout.Config{
		PageWidth:    l.PageWidth,
		PageHeight:   l.PageHeight,
		ColumnX:      l.ColumnX,
		BandLeft:     l.BandLeft,
		BandRight:    l.BandRight,
		TitleY:       l.TitleY,
		HeaderY:      l.HeaderY,
		FirstRowY:    l.FirstRowY,
		BottomMargin: l.BottomMargin,
		RowsPerPage:  l.RowsPerPage,
		RowHeight:    l.RowHeight,
		FooterOffset: l.FooterOffset,
	}
	return layout.New(raw.Scale(factor))
}

// NormalizePolicy returns the field normalization policy.
func (c *Config) NormalizePolicy() (normalize.Policy, error) {
	mode, err := normalize.ParseSentinelMode(c.Policy.Sentinels)
	if err != nil {
		return normalize.Policy{}, fmt.Errorf("policy: %w", err)
	}
	return normalize.Policy{ZeroAsEmpty: c.Policy.ZeroAsEmpty, Sentinels: mode}, nil
}

// StatementOptions builds reconstruction options logging to log.
func (c *Config) StatementOptions(log zerolog.Logger) (statement.Options, error) {
	opts := statement.DefaultOptions()
	opts.Logger = log
	opts.DropEmpty = c.Policy.DropEmptyRows

	policy, err := c.NormalizePolicy()
	if err != nil {
		return opts, err
	}
	opts.Policy = policy

	if c.Text.DatePattern != "" {
		re, err := regexp.Compile(c.Text.DatePattern)
		if err != nil {
			return opts, fmt.Errorf("text: date_pattern: %w", err)
		}
		opts.DatePattern = re
	}
	if len(c.Text.DepositKeywords) > 0 {
		opts.DepositKeywords = c.Text.DepositKeywords
	}
	if c.Text.OpeningBalance != "" {
		d, ok := normalize.ParseAmount(c.Text.OpeningBalance)
		if !ok {
			return opts, fmt.Errorf("text: opening_balance %q is not an amount", c.Text.OpeningBalance)
		}
		opts.OpeningBalance = decimal.NewNullDecimal(d)
	}
	return opts, nil
}

// RenderStyle returns the page style with configured sizes and colors.
func (c *Config) RenderStyle() (render.Style, error) {
	style := render.DefaultStyle()
	s := c.Style
	setPositive(&style.TitleSize, s.TitleSize)
	setPositive(&style.InfoSize, s.InfoSize)
	setPositive(&style.HeaderSize, s.HeaderSize)
	setPositive(&style.BodySize, s.BodySize)
	setPositive(&style.FooterSize, s.FooterSize)
	if s.TextInset >= 0 {
		style.TextInset = s.TextInset
	}

	for i, hex := range s.BandColors {
		if hex == "" {
			continue
		}
		col, err := render.ParseColor(hex)
		if err != nil {
			return style, fmt.Errorf("style: band_colors[%d]: %w", i, err)
		}
		style.Bands[i] = col
	}
	if s.HeaderFill != "" {
		col, err := render.ParseColor(s.HeaderFill)
		if err != nil {
			return style, fmt.Errorf("style: header_fill: %w", err)
		}
		style.HeaderFill = col
	}
	return style, nil
}

func setPositive(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}
