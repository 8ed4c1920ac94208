package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one conversion in the run log.
type Entry struct {
	Timestamp time.Time
	RunID     uuid.UUID
	Input     string
	Format    string
	Output    string
	Records   int
	Pages     int
	Warnings  int
}

// Header is the CSV header for conversions.csv.
const Header = "timestamp,run_id,input,format,output,records,pages,warnings"

const (
	numFields    = 8
	logDir       = "logs"
	logFile      = "conversions.csv"
	colTimestamp = 0
	colRunID     = 1
	colInput     = 2
	colFormat    = 3
	colOutput    = 4
	colRecords   = 5
	colPages     = 6
	colWarnings  = 7
)

// NewEntry returns an entry stamped with the current time and a fresh run id.
func NewEntry() Entry {
	return Entry{Timestamp: time.Now().UTC().Truncate(time.Second), RunID: uuid.New()}
}

// Path returns the log file location under root.
func Path(root string) string {
	return filepath.Join(root, logDir, logFile)
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID.String()
	row[colInput] = e.Input
	row[colFormat] = e.Format
	row[colOutput] = e.Output
	row[colRecords] = strconv.Itoa(e.Records)
	row[colPages] = strconv.Itoa(e.Pages)
	row[colWarnings] = strconv.Itoa(e.Warnings)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	id, err := uuid.Parse(record[colRunID])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing run id %q: %w", record[colRunID], err)
	}

	e := Entry{
		Timestamp: ts,
		RunID:     id,
		Input:     record[colInput],
		Format:    record[colFormat],
		Output:    record[colOutput],
	}
	for _, f := range []struct {
		col int
		dst *int
	}{{colRecords, &e.Records}, {colPages, &e.Pages}, {colWarnings, &e.Warnings}} {
		n, err := strconv.Atoi(record[f.col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[f.col], err)
		}
		*f.dst = n
	}
	return e, nil
}

// Append writes entries to <root>/logs/conversions.csv, creating the file and header if needed.
func Append(root string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Join(root, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := Path(root)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/conversions.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(Path(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
