// Package genome provides the transcript, metadata and exon tables consumed
// by the splice encoder.
package genome

// Transcript is a row of the transcript table.
type Transcript struct {
	ID           string // Transcript ID (e.g., ENST00000311936)
	GeneID       string // Parent gene ID
	Species      string // Species tag (human, mouse)
	UnsplicedLen int64  // Length of the unspliced transcript sequence
	CodingSeqLen int64  // Length of the spliced (mature) sequence
}

// Metadata holds the genomic coordinates recorded for a transcript.
type Metadata struct {
	TranscriptID string
	GeneID       string
	Chrom        string
	Start        int64 // Transcript start (1-based)
	End          int64 // Transcript end (1-based, inclusive)
}

// Span returns the genomic length of the transcript (End - Start + 1).
func (m Metadata) Span() int64 {
	return m.End - m.Start + 1
}

// Exon represents a single exon row. Exons are stored unordered.
type Exon struct {
	ID           string
	TranscriptID string
	Start        int64 // Genomic start (1-based)
	End          int64 // Genomic end (1-based, inclusive)
}

// Len returns the number of bases covered by the exon.
func (e Exon) Len() int64 {
	return e.End - e.Start + 1
}

// Interval is a transcript-relative, 0-based, inclusive [Start, End] pair.
type Interval struct {
	Start int64
	End   int64
}

// Len returns the number of positions covered by the interval.
func (iv Interval) Len() int64 {
	return iv.End - iv.Start + 1
}

// Contains returns true if pos lies within the interval boundaries.
func (iv Interval) Contains(pos int64) bool {
	return pos >= iv.Start && pos <= iv.End
}
