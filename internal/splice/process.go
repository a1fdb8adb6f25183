package splice

import "github.com/inodb/vibe-splice/internal/genome"

// Result holds everything derived for one transcript.
type Result struct {
	Transcript      genome.Transcript
	Chrom           string
	Exons           []genome.Interval // sorted, transcript-relative, unclamped
	Introns         []genome.Interval
	Encoding        Encoding
	Consistent      bool
	SplicedFraction float64
	Flags           Flag
}

// Suspect reports whether any anomaly was flagged for the transcript.
func (r *Result) Suspect() bool {
	return r.Flags != 0
}

// ExonBases returns the number of exon positions in the encoding.
func (r *Result) ExonBases() int64 {
	return r.Encoding.Ones()
}

// Process derives exon and intron intervals, the encoding, the consistency
// check and the spliced fraction for a single transcript. It depends only on
// the transcript's own rows and is safe to call concurrently.
func Process(t genome.Transcript, m genome.Metadata, exons []genome.Exon) *Result {
	r := &Result{Transcript: t, Chrom: m.Chrom}

	if len(exons) == 0 {
		r.Flags |= NoExons
	}

	ivs := make([]genome.Interval, 0, len(exons))
	for _, e := range exons {
		if e.Start > e.End {
			r.Flags |= InvertedExon
			continue
		}
		iv := Normalize(e.Start, e.End, m.Start)
		if !InRange(iv, t.UnsplicedLen) {
			r.Flags |= CoordinateOutOfRange
		}
		ivs = append(ivs, iv)
	}

	r.Exons = SortIntervals(ivs)
	r.Flags |= gapAnomalies(r.Exons)
	r.Introns = DeriveIntrons(r.Exons)

	if t.UnsplicedLen > MaxUnsplicedLen {
		r.Flags |= OversizedTranscript
		r.Encoding = Encoding{}
		return r
	}
	r.Encoding = Encode(r.Exons, t.UnsplicedLen)

	r.Consistent = Validate(r.Encoding, t.CodingSeqLen)
	if !r.Consistent {
		r.Flags |= EncodingMismatch
	}
	r.SplicedFraction = Fraction(r.Encoding)

	return r
}
