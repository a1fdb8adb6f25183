// Package stats computes descriptive statistics over the input tables and
// the derived spliced fractions.
package stats

import (
	"math"
	"sort"

	"github.com/inodb/vibe-splice/internal/genome"
	"github.com/inodb/vibe-splice/internal/splice"
)

// Summary describes a sample of values. Std is the sample standard deviation
// (n-1 denominator), 0 for fewer than two values.
type Summary struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
	Median float64
}

// Summarize computes a Summary. An empty sample yields the zero Summary.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var std float64
	if n > 1 {
		var ss float64
		for _, v := range sorted {
			d := v - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(n-1))
	}

	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return Summary{
		Count:  n,
		Mean:   mean,
		Std:    std,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Median: median,
	}
}

// Dataset holds gene-level statistics of the metadata table.
type Dataset struct {
	Genes              int
	Transcripts        int
	TranscriptsPerGene Summary
	TranscriptLength   Summary
}

// DescribeDataset computes gene and transcript statistics over a
// deduplicated metadata index.
func DescribeDataset(meta map[string]genome.Metadata) Dataset {
	perGene := genome.TranscriptsPerGene(meta)
	counts := make([]float64, 0, len(perGene))
	for _, n := range perGene {
		counts = append(counts, float64(n))
	}

	return Dataset{
		Genes:              len(perGene),
		Transcripts:        len(meta),
		TranscriptsPerGene: Summarize(counts),
		TranscriptLength:   Summarize(TranscriptLengths(meta)),
	}
}

// TranscriptLengths returns the genomic span of every transcript.
func TranscriptLengths(meta map[string]genome.Metadata) []float64 {
	lengths := make([]float64, 0, len(meta))
	for _, m := range meta {
		lengths = append(lengths, float64(m.Span()))
	}
	return lengths
}

// SplicedFractions maps transcript ID to spliced fraction. Whether flagged
// transcripts take part is the caller's choice.
func SplicedFractions(results []*splice.Result, includeSuspect bool) map[string]float64 {
	fractions := make(map[string]float64, len(results))
	for _, r := range results {
		if !includeSuspect && r.Suspect() {
			continue
		}
		fractions[r.Transcript.ID] = r.SplicedFraction
	}
	return fractions
}

// Values returns the values of a fraction map in ascending key order.
func Values(m map[string]float64) []float64 {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]float64, len(keys))
	for i, k := range keys {
		values[i] = m[k]
	}
	return values
}
