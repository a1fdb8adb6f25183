package splice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inodb/vibe-splice/internal/genome"
)

func TestFilterTranscripts(t *testing.T) {
	transcripts := genome.TranscriptTable{
		{ID: "OK", UnsplicedLen: 131},
		{ID: "MISSING", UnsplicedLen: 10},
		{ID: "SHORT", UnsplicedLen: 99},
		{ID: "DUP", UnsplicedLen: 11},
	}
	metadata := genome.MetadataTable{
		{TranscriptID: "OK", Start: 100, End: 230},
		{TranscriptID: "SHORT", Start: 1, End: 100},
		{TranscriptID: "DUP", Start: 1, End: 11},
		{TranscriptID: "DUP", Start: 1, End: 50}, // ignored, first row wins
	}

	x := FilterTranscripts(transcripts, metadata)

	assert.Equal(t, []string{"MISSING"}, x.NotFound)
	assert.Equal(t, []string{"SHORT"}, x.LengthMismatch)
	assert.Equal(t, 2, x.Len())
	assert.False(t, x.Excluded("OK"))
	assert.False(t, x.Excluded("DUP"))
	assert.True(t, x.Excluded("MISSING"))

	r, ok := x.Reason("SHORT")
	assert.True(t, ok)
	assert.Equal(t, ReasonLengthMismatch, r)
}

func TestFilterTranscripts_Deterministic(t *testing.T) {
	transcripts := genome.TranscriptTable{{ID: "C"}, {ID: "A"}, {ID: "B"}}

	for i := 0; i < 5; i++ {
		x := FilterTranscripts(transcripts, nil)
		assert.Equal(t, []string{"C", "A", "B"}, x.NotFound)
	}
}

func TestExclusions_ZeroValue(t *testing.T) {
	var x Exclusions
	assert.False(t, x.Excluded("anything"))
	assert.Equal(t, 0, x.Len())
}
