package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/estado/internal/check"
	"github.com/cleared-dev/estado/internal/config"
	"github.com/cleared-dev/estado/internal/export"
	"github.com/cleared-dev/estado/internal/importer"
	"github.com/cleared-dev/estado/internal/logger"
	"github.com/cleared-dev/estado/internal/model"
	"github.com/cleared-dev/estado/internal/pdfdoc"
	"github.com/cleared-dev/estado/internal/render"
	"github.com/cleared-dev/estado/internal/runlog"
	"github.com/cleared-dev/estado/internal/statement"
)

// Job describes one conversion. Empty header fields fall back to the configuration.
type Job struct {
	Input      string
	Format     string // empty detects it from the file
	Output     string // empty writes <prefix>_<account>_<YYYYMMDD>.pdf next to the input
	RecordsOut string // optional records CSV written alongside the PDF
	LogRoot    string // optional directory holding logs/conversions.csv
	Header     render.Header
}

// Result reports what a conversion produced.
type Result struct {
	RunID    string
	Format   string
	Output   string
	Records  []model.TransactionRecord
	Summary  render.Summary
	Findings []check.ValidationError
	Warnings int
}

// Converter runs conversions against one configuration.
type Converter struct {
	cfg      *config.Config
	registry *importer.Registry
	log      zerolog.Logger
	now      func() time.Time
}

// New creates a Converter. A nil cfg uses config.Default().
func New(cfg *config.Config, log zerolog.Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	reg := importer.NewRegistry()
	reg.Register(&importer.XLSXReader{})
	reg.Register(&importer.XLSReader{})
	reg.Register(&importer.CSVReader{})
	reg.Register(&importer.TextReader{Encoding: cfg.Text.Encoding})
	reg.Register(&importer.PDFReader{})

	return &Converter{cfg: cfg, registry: reg, log: log, now: time.Now}
}

// Extract reads path and reconstructs its transaction records. It returns the
// input format that was used.
func (c *Converter) Extract(ctx context.Context, path, format string) ([]model.TransactionRecord, string, error) {
	return c.extract(ctx, c.log, path, format)
}

func (c *Converter) extract(ctx context.Context, log zerolog.Logger, path, format string) ([]model.TransactionRecord, string, error) {
	inputs, format, err := c.registry.ReadFile(path, format)
	if err != nil {
		return nil, format, err
	}
	log.Debug().Str("format", format).Int("inputs", len(inputs)).Msg("input read")
	if err := ctx.Err(); err != nil {
		return nil, format, err
	}

	opts, err := c.cfg.StatementOptions(log)
	if err != nil {
		return nil, format, fmt.Errorf("configuring reconstruction: %w", err)
	}
	records, err := statement.Reconstruct(inputs, opts)
	if err != nil {
		return nil, format, fmt.Errorf("reconstructing %s: %w", filepath.Base(path), err)
	}
	log.Info().Int("records", len(records)).Msg("records reconstructed")
	return records, format, nil
}

// Render draws records as a PDF onto w.
func (c *Converter) Render(ctx context.Context, records []model.TransactionRecord, header render.Header, w io.Writer) (render.Summary, error) {
	return c.render(ctx, c.log, records, header, w)
}

func (c *Converter) render(ctx context.Context, log zerolog.Logger, records []model.TransactionRecord, header render.Header, w io.Writer) (render.Summary, error) {
	geo, err := c.cfg.Geometry()
	if err != nil {
		return render.Summary{}, err
	}
	style, err := c.cfg.RenderStyle()
	if err != nil {
		return render.Summary{}, err
	}

	header = c.header(header)
	doc := pdfdoc.New(geo.PageWidth, geo.PageHeight, pdfdoc.Options{
		Family: c.cfg.Style.Font,
		Title:  fmt.Sprintf(style.Labels.Title, strings.ToUpper(header.Period)),
		Author: header.Client,
	})
	r, err := render.New(doc, render.Options{
		Geometry: geo,
		Header:   header,
		Footer:   c.cfg.Footer,
		Style:    style,
		Logger:   log,
	})
	if err != nil {
		return render.Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return render.Summary{}, err
	}

	summary := r.Render(records)
	if err := doc.Output(w); err != nil {
		return summary, fmt.Errorf("writing pdf: %w", err)
	}
	log.Info().Int("pages", summary.Pages).Int("rows", summary.Rows).Msg("pdf rendered")
	return summary, nil
}

// Convert runs the full pipeline for job: read, reconstruct, check, render.
func (c *Converter) Convert(ctx context.Context, job Job) (*Result, error) {
	entry := runlog.NewEntry()
	counter := &logger.Counter{}
	log := logger.WithFields(c.log, map[string]any{"run_id": entry.RunID.String(), "input": filepath.Base(job.Input)}).Hook(counter)

	records, format, err := c.extract(ctx, log, job.Input, job.Format)
	if err != nil {
		return nil, err
	}

	opts, err := c.cfg.StatementOptions(log)
	if err != nil {
		return nil, err
	}
	findings := check.CheckBalances(records, opts.OpeningBalance)
	for _, f := range findings {
		log.Warn().Str("kind", f.Kind.String()).Int("record", f.Record).Msg(f.Description)
	}

	header := c.header(job.Header)
	out := job.Output
	if out == "" {
		out = filepath.Join(filepath.Dir(job.Input), OutputName(c.cfg.OutputPrefix, accountOrStem(header.Account, job.Input), c.now()))
	}

	var buf bytes.Buffer
	summary, err := c.render(ctx, log, records, header, &buf)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", out, err)
	}

	if job.RecordsOut != "" {
		if err := WriteRecordsFile(job.RecordsOut, records); err != nil {
			return nil, err
		}
	}

	res := &Result{
		RunID:    entry.RunID.String(),
		Format:   format,
		Output:   out,
		Records:  records,
		Summary:  summary,
		Findings: findings,
		Warnings: counter.Count(),
	}

	if job.LogRoot != "" {
		entry.Input = job.Input
		entry.Format = format
		entry.Output = out
		entry.Records = len(records)
		entry.Pages = summary.Pages
		entry.Warnings = res.Warnings
		if err := runlog.Append(job.LogRoot, []runlog.Entry{entry}); err != nil {
			return res, fmt.Errorf("recording run: %w", err)
		}
	}
	return res, nil
}

func (c *Converter) header(h render.Header) render.Header {
	if h.Client == "" {
		h.Client = c.cfg.Client.Name
	}
	if h.Account == "" {
		h.Account = c.cfg.Client.Account
	}
	if h.Period == "" {
		h.Period = c.cfg.Client.Period
	}
	return h
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// OutputName returns <prefix>_<account>_<YYYYMMDD>.pdf with unsafe characters replaced.
func OutputName(prefix, account string, t time.Time) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{prefix, account} {
		if p = strings.Trim(unsafeName.ReplaceAllString(p, "-"), "-"); p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, t.Format("20060102"))
	return strings.Join(parts, "_") + ".pdf"
}

func accountOrStem(account, input string) string {
	if account != "" {
		return account
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadRecordsFile loads an edited records CSV.
func ReadRecordsFile(path string) ([]model.TransactionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening records: %w", err)
	}
	defer f.Close()
	return export.ReadRecords(f)
}

// WriteRecordsFile writes records as CSV to path.
func WriteRecordsFile(path string, records []model.TransactionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating records file: %w", err)
	}
	if err := export.WriteRecords(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
