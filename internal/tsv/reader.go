// Package tsv loads the transcript, metadata and exon tables from
// tab-separated files. Tables carry a header row, except metadata exported
// from BioMart without one (see Loader.SetMetadataHeaderless). Gzipped files
// are detected by their .gz suffix.
package tsv

import (
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Batch-level input errors. Row-level problems never abort a load.
var (
	ErrMissingColumn       = errors.New("missing required column")
	ErrEmptyTable          = errors.New("table has no rows")
	ErrDuplicateTranscript = errors.New("duplicate transcript_id")
)

// column names a required column and the header spellings accepted for it.
type column struct {
	name    string
	aliases []string
}

func (c column) matches(header string) bool {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == c.name {
		return true
	}
	for _, a := range c.aliases {
		if h == strings.ToLower(a) {
			return true
		}
	}
	return false
}

// record is one data row addressed by column name.
type record struct {
	fields []string
	index  map[string]int
}

func (r record) str(name string) string {
	return strings.TrimSpace(r.fields[r.index[name]])
}

func (r record) num(name string) (int64, error) {
	v, err := strconv.ParseInt(r.str(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", name, err)
	}
	return v, nil
}

// Loader reads input tables, logging rows it has to skip.
type Loader struct {
	logger             *zap.Logger
	metadataHeaderless bool
}

// NewLoader creates a loader that discards log output.
func NewLoader() *Loader {
	return &Loader{logger: zap.NewNop()}
}

// SetLogger sets the logger for skipped-row warnings.
func (l *Loader) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// SetMetadataHeaderless makes ReadMetadata treat the first line as data, with
// columns in BioMart export order: gene_id, transcript_id, transcript_start,
// transcript_end, chromosome.
func (l *Loader) SetMetadataHeaderless(v bool) {
	l.metadataHeaderless = v
}

// ctxReader fails reads once ctx is done, so a cancelled load stops at the
// next buffer refill.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// openFile opens path, transparently decompressing .gz files.
func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open gzip reader: %w", err)
	}
	return &gzipFile{Reader: gz, f: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	g.Reader.Close()
	return g.f.Close()
}

// readTable resolves the required columns and calls fn for every data row.
// The columns come from the header row, or from positions when positions is
// non-nil and the table has no header. Rows for which fn returns an error are
// skipped and counted.
func (l *Loader) readTable(r io.Reader, table string, required []column, positions map[string]int, fn func(record) error) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read %s header: %w", table, err)
		}
		return fmt.Errorf("%s: %w", table, ErrEmptyTable)
	}

	var pending []string
	index := positions
	if index == nil {
		header := strings.Split(strings.TrimPrefix(scanner.Text(), "#"), "\t")
		index = make(map[string]int, len(required))
		for _, c := range required {
			for i, h := range header {
				if c.matches(h) {
					index[c.name] = i
					break
				}
			}
			if _, ok := index[c.name]; !ok {
				return fmt.Errorf("%s: %w: %s", table, ErrMissingColumn, c.name)
			}
		}
	} else {
		pending = append(pending, scanner.Text())
	}
	width := 0
	for _, i := range index {
		width = max(width, i+1)
	}

	rows, skipped := 0, 0
	lineNum := 1 - len(pending)
	for len(pending) > 0 || scanner.Scan() {
		lineNum++
		var line string
		if len(pending) > 0 {
			line, pending = pending[0], nil
		} else {
			line = scanner.Text()
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < width {
			skipped++
			continue
		}
		if err := fn(record{fields: fields, index: index}); err != nil {
			if errors.Is(err, ErrDuplicateTranscript) {
				return fmt.Errorf("%s line %d: %w", table, lineNum, err)
			}
			l.logger.Debug("skipping malformed row",
				zap.String("table", table),
				zap.Int("line", lineNum),
				zap.Error(err))
			skipped++
			continue
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", table, err)
	}

	if skipped > 0 {
		l.logger.Warn("skipped malformed rows",
			zap.String("table", table),
			zap.Int("skipped", skipped))
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", table, ErrEmptyTable)
	}
	return nil
}
