package tsv

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/inodb/vibe-splice/internal/genome"
)

var transcriptColumns = []column{
	{name: "transcript_id"},
	{name: "gene_id"},
	{name: "species"},
	{name: "unspliced_len"},
	{name: "coding_seq_len"},
}

// Metadata headers also accept Ensembl BioMart export names.
var metadataColumns = []column{
	{name: "transcript_id", aliases: []string{"Transcript stable ID"}},
	{name: "gene_id", aliases: []string{"Gene stable ID"}},
	{name: "chromosome", aliases: []string{"Chromosome", "Chromosome/scaffold name", "chrom"}},
	{name: "transcript_start", aliases: []string{"Transcript start (bp)"}},
	{name: "transcript_end", aliases: []string{"Transcript end (bp)"}},
}

// metadataPositions is the BioMart column order of headerless metadata exports.
var metadataPositions = map[string]int{
	"gene_id":          0,
	"transcript_id":    1,
	"transcript_start": 2,
	"transcript_end":   3,
	"chromosome":       4,
}

var exonColumns = []column{
	{name: "exon_id", aliases: []string{"Exon stable ID"}},
	{name: "transcript_id", aliases: []string{"Transcript stable ID"}},
	{name: "exon_start", aliases: []string{"Exon region start (bp)"}},
	{name: "exon_end", aliases: []string{"Exon region end (bp)"}},
}

// ReadTranscripts parses a transcript table. Transcript IDs must be unique.
func (l *Loader) ReadTranscripts(r io.Reader) (genome.TranscriptTable, error) {
	var table genome.TranscriptTable
	seen := make(map[string]bool)
	err := l.readTable(r, "transcripts", transcriptColumns, nil, func(rec record) error {
		unspliced, err := rec.num("unspliced_len")
		if err != nil {
			return err
		}
		coding, err := rec.num("coding_seq_len")
		if err != nil {
			return err
		}
		id := rec.str("transcript_id")
		if seen[id] {
			return fmt.Errorf("%w: %s", ErrDuplicateTranscript, id)
		}
		seen[id] = true
		table = append(table, genome.Transcript{
			ID:           id,
			GeneID:       rec.str("gene_id"),
			Species:      rec.str("species"),
			UnsplicedLen: unspliced,
			CodingSeqLen: coding,
		})
		return nil
	})
	return table, err
}

// ReadMetadata parses a metadata table. Duplicate transcript IDs are kept in
// load order; genome.DedupMetadata resolves them.
func (l *Loader) ReadMetadata(r io.Reader) (genome.MetadataTable, error) {
	var table genome.MetadataTable
	var positions map[string]int
	if l.metadataHeaderless {
		positions = metadataPositions
	}
	err := l.readTable(r, "metadata", metadataColumns, positions, func(rec record) error {
		start, err := rec.num("transcript_start")
		if err != nil {
			return err
		}
		end, err := rec.num("transcript_end")
		if err != nil {
			return err
		}
		table = append(table, genome.Metadata{
			TranscriptID: rec.str("transcript_id"),
			GeneID:       rec.str("gene_id"),
			Chrom:        rec.str("chromosome"),
			Start:        start,
			End:          end,
		})
		return nil
	})
	return table, err
}

// ReadExons parses an exon table.
func (l *Loader) ReadExons(r io.Reader) (genome.ExonTable, error) {
	var table genome.ExonTable
	err := l.readTable(r, "exons", exonColumns, nil, func(rec record) error {
		start, err := rec.num("exon_start")
		if err != nil {
			return err
		}
		end, err := rec.num("exon_end")
		if err != nil {
			return err
		}
		table = append(table, genome.Exon{
			ID:           rec.str("exon_id"),
			TranscriptID: rec.str("transcript_id"),
			Start:        start,
			End:          end,
		})
		return nil
	})
	return table, err
}

// Paths locates the three input tables.
type Paths struct {
	Transcripts string
	Metadata    string
	Exons       string
}

// Tables holds the loaded input tables.
type Tables struct {
	Transcripts genome.TranscriptTable
	Metadata    genome.MetadataTable
	Exons       genome.ExonTable
}

// LoadAll reads the three tables concurrently. The first failure cancels the
// other loads and is returned.
func (l *Loader) LoadAll(ctx context.Context, p Paths) (Tables, error) {
	var t Tables
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		t.Transcripts, err = loadFile(gctx, p.Transcripts, l.ReadTranscripts)
		return err
	})
	g.Go(func() (err error) {
		t.Metadata, err = loadFile(gctx, p.Metadata, l.ReadMetadata)
		return err
	})
	g.Go(func() (err error) {
		t.Exons, err = loadFile(gctx, p.Exons, l.ReadExons)
		return err
	})

	if err := g.Wait(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

// LoadMetadata reads a single metadata table from path.
func (l *Loader) LoadMetadata(ctx context.Context, path string) (genome.MetadataTable, error) {
	return loadFile(ctx, path, l.ReadMetadata)
}

func loadFile[T any](ctx context.Context, path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, fmt.Errorf("load %s: %w", path, err)
	}
	f, err := openFile(path)
	if err != nil {
		return zero, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	v, err := read(ctxReader{ctx: ctx, r: f})
	if err != nil {
		return zero, fmt.Errorf("load %s: %w", path, err)
	}
	return v, nil
}
