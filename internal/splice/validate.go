package splice

import "github.com/inodb/vibe-splice/internal/genome"

// Validate reports whether the number of exon positions in enc equals the
// independently recorded coding-sequence length.
func Validate(enc Encoding, codingSeqLen int64) bool {
	return enc.Ones() == codingSeqLen
}

// SpanMatches reports whether the transcript's recorded unspliced length
// equals the genomic span recorded in its metadata.
func SpanMatches(t genome.Transcript, m genome.Metadata) bool {
	return t.UnsplicedLen == m.Span()
}

// Fraction returns the share of exon positions in enc, in [0, 1]. An empty
// encoding yields 0.
func Fraction(enc Encoding) float64 {
	if len(enc) == 0 {
		return 0
	}
	return float64(enc.Ones()) / float64(len(enc))
}
