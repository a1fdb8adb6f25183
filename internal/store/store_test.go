package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-splice/internal/genome"
	"github.com/inodb/vibe-splice/internal/splice"
)

var drivers = []string{DriverDuckDB, DriverSQLite}

func openInMemory(t *testing.T, driver string) *Store {
	t.Helper()
	s, err := Open(driver, "")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testResults() []*splice.Result {
	ok := splice.Process(
		genome.Transcript{ID: "ENST001", GeneID: "ENSG001", Species: "human", UnsplicedLen: 131, CodingSeqLen: 82},
		genome.Metadata{TranscriptID: "ENST001", Chrom: "1", Start: 100, End: 230},
		[]genome.Exon{{Start: 200, End: 230}, {Start: 100, End: 150}},
	)
	bad := splice.Process(
		genome.Transcript{ID: "ENST002", GeneID: "ENSG001", Species: "human", UnsplicedLen: 20, CodingSeqLen: 99},
		genome.Metadata{TranscriptID: "ENST002", Chrom: "1", Start: 100, End: 119},
		[]genome.Exon{{Start: 95, End: 104}, {Start: 110, End: 125}},
	)
	other := splice.Process(
		genome.Transcript{ID: "ENST003", GeneID: "ENSG002", Species: "human", UnsplicedLen: 10, CodingSeqLen: 10},
		genome.Metadata{TranscriptID: "ENST003", Chrom: "X", Start: 1, End: 10},
		[]genome.Exon{{Start: 1, End: 10}},
	)
	return []*splice.Result{ok, bad, other}
}

func TestOpenClose(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			s := openInMemory(t, driver)
			assert.NotNil(t, s.DB())
			assert.Equal(t, driver, s.Driver())
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("postgres", "")
	assert.Error(t, err)
}

func TestDriverForPath(t *testing.T) {
	assert.Equal(t, DriverSQLite, DriverForPath("/tmp/results.sqlite"))
	assert.Equal(t, DriverSQLite, DriverForPath("results.DB"))
	assert.Equal(t, DriverDuckDB, DriverForPath("results.duckdb"))
	assert.Equal(t, DriverDuckDB, DriverForPath("results"))
}

func TestWriteAndLookupResults(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			s := openInMemory(t, driver)
			results := testResults()

			// duplicate IDs are written once
			require.NoError(t, s.WriteResults(append(results, results[0])))

			n, err := s.ResultCount()
			require.NoError(t, err)
			assert.Equal(t, 3, n)

			got, err := s.LookupResult("ENST001")
			require.NoError(t, err)
			require.NotNil(t, got)
			want := results[0]
			assert.Equal(t, want.Transcript, got.Transcript)
			assert.Equal(t, want.Chrom, got.Chrom)
			assert.Equal(t, want.Exons, got.Exons)
			assert.Equal(t, want.Introns, got.Introns)
			assert.Equal(t, want.Encoding, got.Encoding, "encoding rebuilt from exons")
			assert.True(t, got.Consistent)
			assert.InDelta(t, want.SplicedFraction, got.SplicedFraction, 1e-12)

			flagged, err := s.LookupResult("ENST002")
			require.NoError(t, err)
			require.NotNil(t, flagged)
			assert.Equal(t, results[1].Flags, flagged.Flags)
			assert.Equal(t, []genome.Interval{{Start: -5, End: 4}, {Start: 10, End: 25}}, flagged.Exons)
			assert.False(t, flagged.Consistent)

			missing, err := s.LookupResult("ENST999")
			require.NoError(t, err)
			assert.Nil(t, missing)
		})
	}
}

func TestSearchByGene(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			s := openInMemory(t, driver)
			require.NoError(t, s.WriteResults(testResults()))

			got, err := s.SearchByGene("ENSG001")
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "ENST001", got[0].Transcript.ID)
			assert.Equal(t, "ENST002", got[1].Transcript.ID)

			got, err = s.SearchByGene("NOPE")
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestFractions(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			s := openInMemory(t, driver)
			require.NoError(t, s.WriteResults(testResults()))

			all, err := s.Fractions(true)
			require.NoError(t, err)
			assert.Len(t, all, 3)

			clean, err := s.Fractions(false)
			require.NoError(t, err)
			assert.Len(t, clean, 2)
			assert.NotContains(t, clean, "ENST002")
			assert.Equal(t, 1.0, clean["ENST003"])
		})
	}
}

func TestExclusions(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			s := openInMemory(t, driver)

			var x splice.Exclusions
			x.Add("T2", splice.ReasonNotFound)
			x.Add("T1", splice.ReasonLengthMismatch)
			require.NoError(t, s.WriteExclusions(&x))

			got, err := s.Exclusions()
			require.NoError(t, err)
			assert.Equal(t, []string{"T2"}, got.NotFound)
			assert.Equal(t, []string{"T1"}, got.LengthMismatch)
			assert.True(t, got.Excluded("T1"))
		})
	}
}

func TestClear(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			s := openInMemory(t, driver)
			require.NoError(t, s.WriteResults(testResults()))
			var x splice.Exclusions
			x.Add("T1", splice.ReasonNotFound)
			require.NoError(t, s.WriteExclusions(&x))

			require.NoError(t, s.Clear())

			n, err := s.ResultCount()
			require.NoError(t, err)
			assert.Equal(t, 0, n)
			got, err := s.Exclusions()
			require.NoError(t, err)
			assert.Equal(t, 0, got.Len())

			// rewriting after a clear does not hit the primary key
			require.NoError(t, s.WriteResults(testResults()))
		})
	}
}

func TestOpen_FileBacked(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "results."+driver)

			s, err := Open(driver, path)
			require.NoError(t, err)
			require.NoError(t, s.WriteResults(testResults()))
			require.NoError(t, s.Close())

			s, err = Open(driver, path)
			require.NoError(t, err)
			defer s.Close()
			n, err := s.ResultCount()
			require.NoError(t, err)
			assert.Equal(t, 3, n)
		})
	}
}
