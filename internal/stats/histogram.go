package stats

// Histogram counts values in equal-width bins. Edges has len(Counts)+1
// entries; every bin is half-open except the last, which includes its upper
// edge.
type Histogram struct {
	Edges  []float64
	Counts []int
}

// NewHistogram bins values into n equal-width bins spanning their range.
// A sample with a single distinct value gets a unit-wide range around it.
func NewHistogram(values []float64, n int) Histogram {
	if n <= 0 || len(values) == 0 {
		return Histogram{}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	return NewHistogramRange(values, n, lo, hi)
}

// NewHistogramRange bins values into n equal-width bins over [lo, hi].
// Values outside the range are ignored.
func NewHistogramRange(values []float64, n int, lo, hi float64) Histogram {
	if n <= 0 || hi <= lo {
		return Histogram{}
	}

	width := (hi - lo) / float64(n)
	h := Histogram{
		Edges:  make([]float64, n+1),
		Counts: make([]int, n),
	}
	for i := range h.Edges {
		h.Edges[i] = lo + float64(i)*width
	}
	h.Edges[n] = hi

	for _, v := range values {
		if v < lo || v > hi {
			continue
		}
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		h.Counts[i]++
	}
	return h
}

// Total returns the number of binned values.
func (h Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}
