package csvlog

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/cdtdelta/cmdsynth/internal/model"
)

// ReadResult contains the outcome of reading a generated command log.
type ReadResult struct {
	Events []*model.CommandEvent
	Count  int
}

// isCompressed reports whether path should be gzip encoded.
func isCompressed(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

// Writer streams command events to a CSV file, header first.
// Paths ending in .gz are gzip compressed.
type Writer struct {
	f    *os.File
	buf  *bufio.Writer
	gz   *gzip.Writer
	csv  *csv.Writer
	rows int
}

// Create truncates or creates path and writes the header row.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	w := &Writer{f: f, buf: bufio.NewWriterSize(f, 1<<16)}
	var out io.Writer = w.buf
	if isCompressed(path) {
		w.gz = gzip.NewWriter(w.buf)
		out = w.gz
	}
	w.csv = csv.NewWriter(out)
	w.csv.UseCRLF = true

	if err := w.csv.Write(model.Fields); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}
	return w, nil
}

// Write appends one event row.
func (w *Writer) Write(e *model.CommandEvent) error {
	if err := w.csv.Write(e.Record()); err != nil {
		return fmt.Errorf("writing row %d: %w", w.rows+1, err)
	}
	w.rows++
	return nil
}

// Rows returns the number of data rows written so far.
func (w *Writer) Rows() int {
	return w.rows
}

// Close flushes all buffered output and closes the file.
func (w *Writer) Close() error {
	w.csv.Flush()
	err := w.csv.Error()
	if w.gz != nil {
		if cerr := w.gz.Close(); err == nil {
			err = cerr
		}
	}
	if ferr := w.buf.Flush(); err == nil {
		err = ferr
	}
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}

// WriteEvents writes events to a new CSV file at path.
func WriteEvents(path string, events []*model.CommandEvent) error {
	w, err := Create(path)
	if err != nil {
		return err
	}
	for _, e := range events {
		if err := w.Write(e); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

// openReader opens path for reading, decompressing .gz files.
func openReader(path string) (io.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file: %w", err)
	}
	if !isCompressed(path) {
		return f, f.Close, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	return gz, func() error {
		gz.Close()
		return f.Close()
	}, nil
}

// ValidateHeader checks that a file starts with the command log header.
// Returns an error describing the mismatch if validation fails.
func ValidateHeader(path string) error {
	r, closeFn, err := openReader(path)
	if err != nil {
		return err
	}
	defer closeFn()

	header, err := csv.NewReader(newNullStripper(r)).Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	return checkHeader(header)
}

func checkHeader(header []string) error {
	if len(header) != len(model.Fields) {
		return fmt.Errorf("header has %d columns, expected %d", len(header), len(model.Fields))
	}
	for i, expected := range model.Fields {
		if header[i] != expected {
			return fmt.Errorf("header mismatch at column %d: expected '%s', got '%s'", i, expected, header[i])
		}
	}
	return nil
}

// ReadEvents reads events back from a generated command log.
// Optionally limits the number of events (pass 0 for no limit).
// An onProgress callback is called every 10,000 events if non-nil.
func ReadEvents(path string, limit int, onProgress func(count int)) (*ReadResult, error) {
	r, closeFn, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	reader := csv.NewReader(newNullStripper(r))
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, fmt.Errorf("invalid command log: %w", err)
	}

	result := &ReadResult{}
	for {
		if limit > 0 && result.Count >= limit {
			break
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", result.Count+1, err)
		}

		event, err := rowToEvent(row)
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", result.Count+1, err)
		}
		result.Events = append(result.Events, event)
		result.Count++

		if onProgress != nil && result.Count%10000 == 0 {
			onProgress(result.Count)
		}
	}

	return result, nil
}

// rowToEvent converts a CSV row in model.Fields order into an event.
func rowToEvent(row []string) (*model.CommandEvent, error) {
	var err error
	atoi := func(field int) int {
		if err != nil {
			return 0
		}
		var v int
		v, err = strconv.Atoi(row[field])
		if err != nil {
			err = fmt.Errorf("column %s: %w", model.Fields[field], err)
		}
		return v
	}

	e := &model.CommandEvent{
		CommandID:        row[0],
		RawCommand:       row[1],
		BaseCommand:      row[2],
		ShellType:        row[3],
		ExitCode:         atoi(4),
		Timestamp:        row[5],
		WorkingDirectory: row[7],
		UserID:           atoi(8),
		UserName:         row[9],
		HostName:         row[10],
		RiskLevel:        atoi(11),
	}
	if err != nil {
		return nil, err
	}

	switch row[6] {
	case "true":
		e.SudoUsed = true
	case "false":
	default:
		return nil, fmt.Errorf("column sudo_used: invalid value %q", row[6])
	}
	return e, nil
}

// nullStripper wraps a reader and strips null bytes from the stream.
type nullStripper struct {
	r io.Reader
}

func newNullStripper(r io.Reader) io.Reader {
	return &nullStripper{r: r}
}

func (ns *nullStripper) Read(p []byte) (int, error) {
	n, err := ns.r.Read(p)
	if n > 0 {
		cleaned := strings.ReplaceAll(string(p[:n]), "\x00", "")
		copy(p, cleaned)
		n = len(cleaned)
	}
	return n, err
}
