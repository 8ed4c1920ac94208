package importer

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/cleared-dev/estado/internal/model"
)

// TextReader reads already-extracted statement text, one line per physical line.
type TextReader struct {
	Encoding string // "", "utf-8", "latin1" or "windows-1252"
}

// Format returns the reader name.
func (r *TextReader) Format() string { return "txt" }

// Read splits data into text lines, decoding from the configured encoding.
func (r *TextReader) Read(data []byte) ([]model.Input, error) {
	enc, err := lookupEncoding(r.Encoding)
	if err != nil {
		return nil, err
	}
	var src = bytes.NewReader(data)
	scanner := bufio.NewScanner(src)
	if enc != nil {
		scanner = bufio.NewScanner(transform.NewReader(src, enc.NewDecoder()))
	}
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var inputs []model.Input
	line := 0
	for scanner.Scan() {
		line++
		inputs = append(inputs, model.TextLine{Line: line, Text: strings.TrimRight(scanner.Text(), "\r")})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning text: %w", err)
	}
	return inputs, nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported text encoding %q", name)
	}
}

// PDFReader extracts row-ordered text lines from a text-based PDF. It does no OCR.
type PDFReader struct{}

// Format returns the reader name.
func (r *PDFReader) Format() string { return "pdf" }

// Read returns one TextLine per visual row, top to bottom, page by page.
func (r *PDFReader) Read(data []byte) ([]model.Input, error) {
	rd, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	var inputs []model.Input
	line := 0
	for i := 1; i <= rd.NumPage(); i++ {
		p := rd.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		for _, row := range rows {
			text := joinRow(row.Content)
			if text == "" {
				continue
			}
			line++
			inputs = append(inputs, model.TextLine{Line: line, Text: text})
		}
	}
	return inputs, nil
}

// joinRow concatenates glyph runs left to right, inserting a space wherever the
// horizontal gap between runs is wider than a fraction of the font size.
func joinRow(texts []pdf.Text) string {
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var b strings.Builder
	end := 0.0
	for i, t := range sorted {
		if i > 0 && t.X-end > t.FontSize*0.25 {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		end = t.X + t.W
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
