package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-splice/internal/genome"
	"github.com/inodb/vibe-splice/internal/splice"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{4, 1, 3, 2})

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 2.5, s.Mean)
	assert.InDelta(t, 1.290994, s.Std, 1e-6)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)
	assert.Equal(t, 2.5, s.Median)
}

func TestSummarize_EdgeCases(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))

	one := Summarize([]float64{7})
	assert.Equal(t, 0.0, one.Std)
	assert.Equal(t, 7.0, one.Median)
}

func TestDescribeDataset(t *testing.T) {
	meta := genome.DedupMetadata(genome.MetadataTable{
		{TranscriptID: "T1", GeneID: "G1", Start: 1, End: 10},
		{TranscriptID: "T2", GeneID: "G1", Start: 1, End: 20},
		{TranscriptID: "T3", GeneID: "G1", Start: 1, End: 30},
		{TranscriptID: "T4", GeneID: "G2", Start: 1, End: 40},
	})

	d := DescribeDataset(meta)

	assert.Equal(t, 2, d.Genes)
	assert.Equal(t, 4, d.Transcripts)
	assert.Equal(t, 2.0, d.TranscriptsPerGene.Mean)
	assert.InDelta(t, 1.414214, d.TranscriptsPerGene.Std, 1e-6)
	assert.Equal(t, 25.0, d.TranscriptLength.Mean)
}

func TestSplicedFractions(t *testing.T) {
	results := []*splice.Result{
		{Transcript: genome.Transcript{ID: "A"}, SplicedFraction: 0.25},
		{Transcript: genome.Transcript{ID: "B"}, SplicedFraction: 1, Flags: splice.EncodingMismatch},
	}

	all := SplicedFractions(results, true)
	assert.Len(t, all, 2)
	assert.Equal(t, []float64{0.25, 1}, Values(all))

	clean := SplicedFractions(results, false)
	require.Len(t, clean, 1)
	assert.Equal(t, 0.25, clean["A"])
}

func TestHistogram(t *testing.T) {
	h := NewHistogramRange([]float64{0, 0.1, 0.5, 0.99, 1, 1.5}, 4, 0, 1)

	require.Len(t, h.Edges, 5)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, h.Edges)
	assert.Equal(t, []int{2, 0, 1, 2}, h.Counts, "upper edge lands in last bin, 1.5 ignored")
	assert.Equal(t, 5, h.Total())
}

func TestNewHistogram_SingleValue(t *testing.T) {
	h := NewHistogram([]float64{3, 3, 3}, 20)

	assert.Len(t, h.Counts, 20)
	assert.Equal(t, 3, h.Total())
	assert.Equal(t, Histogram{}, NewHistogram(nil, 20))
}
