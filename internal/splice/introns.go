package splice

import "github.com/inodb/vibe-splice/internal/genome"

// DeriveIntrons returns the gaps between consecutive sorted exon intervals.
// For N disjoint, non-touching exons there are exactly N-1 introns; a pair
// that touches or overlaps yields no intron. The gap is measured from the
// furthest exon end seen so far so that a nested exon cannot open an
// intron inside an enclosing one.
func DeriveIntrons(sorted []genome.Interval) []genome.Interval {
	if len(sorted) < 2 {
		return nil
	}

	introns := make([]genome.Interval, 0, len(sorted)-1)
	maxEnd := sorted[0].End
	for _, next := range sorted[1:] {
		if next.Start > maxEnd+1 {
			introns = append(introns, genome.Interval{Start: maxEnd + 1, End: next.Start - 1})
		}
		if next.End > maxEnd {
			maxEnd = next.End
		}
	}
	return introns
}

// IntronsFromEncoding recovers intron intervals as the zero runs lying
// strictly between the first and last exon positions of an encoding.
func IntronsFromEncoding(enc Encoding) []genome.Interval {
	first, last := -1, -1
	for i, v := range enc {
		if v == 1 {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil
	}

	var introns []genome.Interval
	runStart := -1
	for i := first; i <= last; i++ {
		switch {
		case enc[i] == 0 && runStart < 0:
			runStart = i
		case enc[i] == 1 && runStart >= 0:
			introns = append(introns, genome.Interval{Start: int64(runStart), End: int64(i - 1)})
			runStart = -1
		}
	}
	return introns
}
