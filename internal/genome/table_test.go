package genome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupMetadata_KeepsFirst(t *testing.T) {
	rows := MetadataTable{
		{TranscriptID: "ENST001", GeneID: "G1", Chrom: "1", Start: 100, End: 200},
		{TranscriptID: "ENST002", GeneID: "G1", Chrom: "1", Start: 300, End: 400},
		{TranscriptID: "ENST001", GeneID: "G9", Chrom: "X", Start: 1, End: 2},
	}

	idx := DedupMetadata(rows)
	require.Len(t, idx, 2)
	assert.Equal(t, "1", idx["ENST001"].Chrom, "first row wins")
	assert.Equal(t, int64(101), idx["ENST001"].Span())
}

func TestGroupExons_PreservesStoredOrder(t *testing.T) {
	rows := ExonTable{
		{ID: "E2", TranscriptID: "T1", Start: 200, End: 230},
		{ID: "E9", TranscriptID: "T2", Start: 5, End: 9},
		{ID: "E1", TranscriptID: "T1", Start: 100, End: 150},
	}

	idx := GroupExons(rows)
	require.Len(t, idx["T1"], 2)
	assert.Equal(t, "E2", idx["T1"][0].ID)
	assert.Equal(t, "E1", idx["T1"][1].ID)
	assert.Len(t, idx["T2"], 1)
	assert.Empty(t, idx["T3"])
}

func TestExonLen(t *testing.T) {
	assert.Equal(t, int64(51), Exon{Start: 100, End: 150}.Len())
	assert.Equal(t, int64(1), Exon{Start: 7, End: 7}.Len())
}

func TestInterval(t *testing.T) {
	iv := Interval{Start: 51, End: 99}
	assert.Equal(t, int64(49), iv.Len())
	assert.True(t, iv.Contains(51), "start boundary inclusive")
	assert.True(t, iv.Contains(99), "end boundary inclusive")
	assert.False(t, iv.Contains(100))
}

func TestTranscriptsPerGeneAndChromosomes(t *testing.T) {
	meta := DedupMetadata(MetadataTable{
		{TranscriptID: "T1", GeneID: "G1", Chrom: "2"},
		{TranscriptID: "T2", GeneID: "G1", Chrom: "1"},
		{TranscriptID: "T3", GeneID: "G2", Chrom: "1"},
	})

	counts := TranscriptsPerGene(meta)
	assert.Equal(t, 2, counts["G1"])
	assert.Equal(t, 1, counts["G2"])
	assert.Equal(t, []string{"1", "2"}, Chromosomes(meta))
}

func TestFilterSpecies(t *testing.T) {
	rows := TranscriptTable{{ID: "H1", Species: "human"}, {ID: "M1", Species: "mouse"}}

	assert.Equal(t, rows, FilterSpecies(rows, ""))
	out := FilterSpecies(rows, "mouse")
	require.Len(t, out, 1)
	assert.Equal(t, "M1", out[0].ID)
}

func TestFormatParseIntervals(t *testing.T) {
	ivs := []Interval{{Start: -5, End: 4}, {Start: 10, End: 25}}

	s := FormatIntervals(ivs)
	assert.Equal(t, "-5-4;10-25", s)

	parsed, err := ParseIntervals(s)
	require.NoError(t, err)
	assert.Equal(t, ivs, parsed)

	empty, err := ParseIntervals("-")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ParseIntervals("12")
	assert.Error(t, err)
}
