package splice

import (
	"sort"

	"github.com/inodb/vibe-splice/internal/genome"
)

// Normalize maps a genome-absolute exon onto transcript-relative, 0-based
// coordinates given the transcript's genomic start.
func Normalize(genomicStart, genomicEnd, transcriptStart int64) genome.Interval {
	return genome.Interval{
		Start: genomicStart - transcriptStart,
		End:   genomicEnd - transcriptStart,
	}
}

// InRange reports whether iv is well-formed and lies within [0, unsplicedLen-1].
func InRange(iv genome.Interval, unsplicedLen int64) bool {
	return iv.Start <= iv.End && iv.Start >= 0 && iv.End <= unsplicedLen-1
}

// Clamp restricts iv to [0, unsplicedLen-1]. It returns false when nothing of
// the interval remains inside the sequence.
func Clamp(iv genome.Interval, unsplicedLen int64) (genome.Interval, bool) {
	if iv.Start < 0 {
		iv.Start = 0
	}
	if iv.End > unsplicedLen-1 {
		iv.End = unsplicedLen - 1
	}
	return iv, iv.Start <= iv.End
}

// SortIntervals returns a copy of ivs ordered by ascending Start. Ties keep
// their input order.
func SortIntervals(ivs []genome.Interval) []genome.Interval {
	sorted := make([]genome.Interval, len(ivs))
	copy(sorted, ivs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})
	return sorted
}

// HasOverlap reports whether any interval in a sorted slice starts at or
// before the furthest end seen so far.
func HasOverlap(sorted []genome.Interval) bool {
	return gapAnomalies(sorted).Has(OverlappingExons)
}

// gapAnomalies walks consecutive sorted intervals and reports overlapping and
// touching pairs.
func gapAnomalies(sorted []genome.Interval) Flag {
	if len(sorted) < 2 {
		return 0
	}

	var f Flag
	maxEnd := sorted[0].End
	for _, next := range sorted[1:] {
		switch {
		case next.Start <= maxEnd:
			f |= OverlappingExons
		case next.Start == maxEnd+1:
			f |= AdjacentExons
		}
		if next.End > maxEnd {
			maxEnd = next.End
		}
	}
	return f
}
