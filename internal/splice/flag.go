// Package splice derives transcript-relative exon and intron intervals and
// the per-nucleotide exon/intron encoding of unspliced transcripts.
package splice

import "strings"

// Flag is a set of per-transcript anomalies. Flags never abort a run: a
// flagged transcript is still encoded and reported, marked as suspect.
type Flag uint8

const (
	NoExons              Flag = 1 << iota // transcript has no exon rows
	OverlappingExons                      // next exon starts at or before the previous end
	AdjacentExons                         // consecutive exons touch with no intronic base between them
	CoordinateOutOfRange                  // normalized exon falls outside [0, unspliced_len-1]
	InvertedExon                          // exon genomic start > end
	EncodingMismatch                      // exon base count differs from coding_seq_len
	OversizedTranscript                   // unspliced_len above MaxUnsplicedLen, not encoded
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{NoExons, "no_exons"},
	{OverlappingExons, "overlapping_exons"},
	{AdjacentExons, "adjacent_exons"},
	{CoordinateOutOfRange, "coordinate_out_of_range"},
	{InvertedExon, "inverted_exon"},
	{EncodingMismatch, "encoding_mismatch"},
	{OversizedTranscript, "oversized_transcript"},
}

// AllFlags lists every flag in reporting order.
func AllFlags() []Flag {
	flags := make([]Flag, len(flagNames))
	for i, fn := range flagNames {
		flags[i] = fn.flag
	}
	return flags
}

// Has reports whether every bit of other is set in f.
func (f Flag) Has(other Flag) bool {
	return f&other == other
}

// String returns the comma-joined flag names, or "" when no flag is set.
func (f Flag) String() string {
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseFlags parses the comma-joined form produced by String. Unknown names
// are ignored.
func ParseFlags(s string) Flag {
	var f Flag
	for _, name := range strings.Split(s, ",") {
		for _, fn := range flagNames {
			if fn.name == name {
				f |= fn.flag
			}
		}
	}
	return f
}
