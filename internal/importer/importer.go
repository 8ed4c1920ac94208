package importer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/estado/internal/model"
)

// ErrUnknownFormat is returned when no reader is registered for a format.
var ErrUnknownFormat = errors.New("unknown input format")

// ErrTooFewColumns is returned when a spreadsheet header has fewer than five columns.
var ErrTooFewColumns = errors.New("spreadsheet has fewer than 5 columns")

// Reader converts a statement file into ordered inputs.
type Reader interface {
	Read(data []byte) ([]model.Input, error)
	Format() string
}

// Registry holds named readers.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(rd Reader) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader format: " + key)
	}
	r.readers[key] = rd
}

// Get returns the reader for format, or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&XLSXReader{})
	r.Register(&XLSReader{})
	r.Register(&CSVReader{})
	r.Register(&TextReader{})
	r.Register(&PDFReader{})
	return r
}

// Detect picks a format from the file extension, falling back to magic bytes.
func Detect(name string, data []byte) string {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")); ext {
	case "xlsx", "xlsm", "xls", "csv", "txt", "pdf":
		if ext == "xlsm" {
			return "xlsx"
		}
		return ext
	}

	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return "pdf"
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		return "xlsx"
	case bytes.HasPrefix(data, []byte{0xD0, 0xCF, 0x11, 0xE0}):
		return "xls"
	default:
		return "txt"
	}
}

// ReadFile reads path with the reader for format, detecting it when empty.
// It returns the format used.
func (r *Registry) ReadFile(path, format string) ([]model.Input, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	if format == "" {
		format = Detect(path, data)
	}
	rd := r.Get(format)
	if rd == nil {
		return nil, format, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	inputs, err := rd.Read(data)
	if err != nil {
		return nil, format, fmt.Errorf("reading %s as %s: %w", filepath.Base(path), format, err)
	}
	return inputs, format, nil
}

// sheetRows turns a header row plus data rows into positional inputs. Data rows
// are padded to the header width with missing fields; blank cells are kept as
// present-but-empty so the normalizer decides what they mean.
func sheetRows(rows [][]string) ([]model.Input, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	width := len(rows[0])
	if width < model.NumColumns {
		return nil, fmt.Errorf("%w: header has %d", ErrTooFewColumns, width)
	}

	inputs := make([]model.Input, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		n := max(width, len(cells))
		fields := make([]model.RawField, n)
		for j := range fields {
			if j < len(cells) {
				fields[j] = model.Field(cells[j])
			}
		}
		inputs = append(inputs, model.SpreadsheetRow{Line: i + 2, Fields: fields})
	}
	return inputs, nil
}
