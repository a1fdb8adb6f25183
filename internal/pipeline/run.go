package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/inodb/vibe-splice/internal/genome"
	"github.com/inodb/vibe-splice/internal/splice"
)

// ErrNoResults is returned when Options.RequireResults is set and no
// transcript survived filtering.
var ErrNoResults = errors.New("no transcripts left to encode")

// Input is the read-only data for a run.
type Input struct {
	Transcripts genome.TranscriptTable
	Metadata    genome.MetadataTable
	Exons       genome.ExonTable
}

// Options controls a run.
type Options struct {
	Workers        int      // worker goroutines; 0 means runtime.NumCPU()
	Chromosomes    []string // restrict to these metadata chromosomes; empty keeps all
	Memo           *Memo    // optional result memo, may be shared across runs
	RequireResults bool
	Logger         *zap.Logger
}

// Report collects the outcome of a run.
type Report struct {
	Results    []*splice.Result // retained transcripts, transcript-table order
	Exclusions splice.Exclusions
	Skipped    int // retained transcripts outside the chromosome filter
	CacheHits  int
	Elapsed    time.Duration

	index map[string]int
}

// Lookup returns the result for a transcript ID.
func (r *Report) Lookup(id string) (*splice.Result, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.Results[i], true
}

// Suspect returns the number of results carrying at least one flag.
func (r *Report) Suspect() int {
	n := 0
	for _, res := range r.Results {
		if res.Suspect() {
			n++
		}
	}
	return n
}

// FlagCounts counts results per individual flag.
func (r *Report) FlagCounts() map[splice.Flag]int {
	counts := make(map[splice.Flag]int)
	for _, res := range r.Results {
		for _, f := range splice.AllFlags() {
			if res.Flags.Has(f) {
				counts[f]++
			}
		}
	}
	return counts
}

// Run filters the transcript collection once, then encodes every retained
// transcript on a worker pool. Cancelling ctx stops dispatching new
// transcripts; the partial report is returned together with the context
// error.
func Run(ctx context.Context, in Input, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	meta := genome.DedupMetadata(in.Metadata)
	report := &Report{Exclusions: splice.FilterIndexed(in.Transcripts, meta)}
	exons := genome.GroupExons(in.Exons)

	var chromSet map[string]bool
	if len(opts.Chromosomes) > 0 {
		chromSet = make(map[string]bool, len(opts.Chromosomes))
		for _, c := range opts.Chromosomes {
			chromSet[c] = true
		}
	}

	var work []WorkItem
	for _, t := range in.Transcripts {
		if report.Exclusions.Excluded(t.ID) {
			continue
		}
		m := meta[t.ID]
		if chromSet != nil && !chromSet[m.Chrom] {
			report.Skipped++
			continue
		}
		work = append(work, WorkItem{Seq: len(work), Transcript: t, Metadata: m, Exons: exons[t.ID]})
	}

	logger.Info("filtered transcripts",
		zap.Int("total", len(in.Transcripts)),
		zap.Int("not_found", len(report.Exclusions.NotFound)),
		zap.Int("length_mismatch", len(report.Exclusions.LengthMismatch)),
		zap.Int("chromosome_skipped", report.Skipped),
		zap.Int("retained", len(work)))

	if opts.RequireResults && len(work) == 0 {
		return report, ErrNoResults
	}

	enc := NewEncoder()
	enc.SetLogger(logger)
	enc.SetMemo(opts.Memo)

	items := make(chan WorkItem, 2*runtime.NumCPU())
	go func() {
		defer close(items)
		for _, w := range work {
			select {
			case <-ctx.Done():
				return
			case items <- w:
			}
		}
	}()

	// The producer dispatches in order and only stops early, so the
	// sequence numbers that come back are always a prefix.
	report.Results = make([]*splice.Result, 0, len(work))
	report.index = make(map[string]int, len(work))
	err := OrderedCollect(enc.ParallelEncode(items, opts.Workers), func(r WorkResult) error {
		report.index[r.Result.Transcript.ID] = len(report.Results)
		report.Results = append(report.Results, r.Result)
		if r.Cached {
			report.CacheHits++
		}
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("collect results: %w", err)
	}
	report.Elapsed = time.Since(start)

	logger.Info("encoded transcripts",
		zap.Int("encoded", len(report.Results)),
		zap.Int("suspect", report.Suspect()),
		zap.Int("cache_hits", report.CacheHits),
		zap.Duration("elapsed", report.Elapsed))

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("encode run: %w", err)
	}
	return report, nil
}
