package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-splice/internal/genome"
	"github.com/inodb/vibe-splice/internal/pipeline"
)

func testReport(t *testing.T) *pipeline.Report {
	t.Helper()
	in := pipeline.Input{
		Transcripts: genome.TranscriptTable{
			{ID: "A", UnsplicedLen: 10, CodingSeqLen: 10},
			{ID: "B", UnsplicedLen: 10, CodingSeqLen: 4},
			{ID: "C", UnsplicedLen: 10, CodingSeqLen: 10},
			{ID: "D", UnsplicedLen: 99, CodingSeqLen: 10},
		},
		Metadata: genome.MetadataTable{
			{TranscriptID: "A", Chrom: "1", Start: 1, End: 10},
			{TranscriptID: "B", Chrom: "1", Start: 1, End: 10},
			{TranscriptID: "D", Chrom: "1", Start: 1, End: 10},
		},
		Exons: genome.ExonTable{
			{TranscriptID: "A", Start: 1, End: 10},
			{TranscriptID: "B", Start: 1, End: 3},
			{TranscriptID: "B", Start: 8, End: 10},
		},
	}
	report, err := pipeline.Run(context.Background(), in, pipeline.Options{Workers: 2})
	require.NoError(t, err)
	return report
}

func TestRecorder_Observe(t *testing.T) {
	r := NewRecorder()
	r.Observe(testReport(t))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.transcripts.WithLabelValues("encoded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.transcripts.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.transcripts.WithLabelValues("length_mismatch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.flags.WithLabelValues("encoding_mismatch")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.flags.WithLabelValues("overlapping_exons")))

	families, err := r.Registry().Gather()
	require.NoError(t, err)
	var samples uint64
	for _, mf := range families {
		if mf.GetName() == "vibe_splice_spliced_fraction" {
			samples = mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, uint64(2), samples)
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.Observe(testReport(t))

	path := filepath.Join(t.TempDir(), "vibe_splice.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `vibe_splice_transcripts_total{outcome="encoded"} 2`)
	assert.Contains(t, string(data), "vibe_splice_spliced_fraction_bucket")
}
