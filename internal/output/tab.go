// Package output provides result output formatters.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-splice/internal/genome"
	"github.com/inodb/vibe-splice/internal/splice"
)

// TabWriter writes splice results in tab-delimited format.
type TabWriter struct {
	w            *bufio.Writer
	columns      []string
	withEncoding bool
}

// NewTabWriter creates a new tab-delimited writer. When withEncoding is set a
// trailing column carries the 0/1 encoding string.
func NewTabWriter(w io.Writer, withEncoding bool) *TabWriter {
	columns := []string{
		"#transcript_id",
		"gene_id",
		"species",
		"chromosome",
		"unspliced_len",
		"coding_seq_len",
		"exon_count",
		"intron_count",
		"exon_bases",
		"spliced_fraction",
		"consistent",
		"flags",
		"exons",
		"introns",
	}
	if withEncoding {
		columns = append(columns, "encoding")
	}
	return &TabWriter{
		w:            bufio.NewWriter(w),
		columns:      columns,
		withEncoding: withEncoding,
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single result.
func (tw *TabWriter) Write(r *splice.Result) error {
	t := r.Transcript

	consistent := "NO"
	if r.Consistent {
		consistent = "YES"
	}

	values := []string{
		t.ID,
		orDash(t.GeneID),
		orDash(t.Species),
		orDash(r.Chrom),
		strconv.FormatInt(t.UnsplicedLen, 10),
		strconv.FormatInt(t.CodingSeqLen, 10),
		strconv.Itoa(len(r.Exons)),
		strconv.Itoa(len(r.Introns)),
		strconv.FormatInt(r.ExonBases(), 10),
		strconv.FormatFloat(r.SplicedFraction, 'f', 6, 64),
		consistent,
		orDash(r.Flags.String()),
		orDash(genome.FormatIntervals(r.Exons)),
		orDash(genome.FormatIntervals(r.Introns)),
	}
	if tw.withEncoding {
		values = append(values, r.Encoding.String())
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
