// Package pipeline runs the splice encoder over a transcript collection with
// a bounded worker pool.
package pipeline

import (
	"go.uber.org/zap"

	"github.com/inodb/vibe-splice/internal/splice"
)

// Encoder turns work items into splice results, optionally through a memo.
type Encoder struct {
	memo   *Memo
	logger *zap.Logger
}

// NewEncoder creates an encoder without memoization.
func NewEncoder() *Encoder {
	return &Encoder{logger: zap.NewNop()}
}

// SetMemo enables memoization of results across calls.
func (e *Encoder) SetMemo(m *Memo) {
	e.memo = m
}

// SetLogger sets the logger for per-transcript diagnostics.
func (e *Encoder) SetLogger(l *zap.Logger) {
	e.logger = l
}

// Encode processes a single work item. The second return value reports
// whether the result came from the memo.
func (e *Encoder) Encode(item WorkItem) (*splice.Result, bool) {
	var key string
	if e.memo != nil {
		key = MemoKey(item)
		if r, ok := e.memo.Get(key); ok {
			// The key covers what the encoding depends on, not the
			// descriptive columns, so those come from the current row.
			hit := *r
			hit.Transcript = item.Transcript
			hit.Chrom = item.Metadata.Chrom
			return &hit, true
		}
	}

	r := splice.Process(item.Transcript, item.Metadata, item.Exons)
	if r.Suspect() {
		e.logger.Debug("suspect transcript",
			zap.String("transcript", r.Transcript.ID),
			zap.String("flags", r.Flags.String()),
			zap.Int64("exon_bases", r.ExonBases()),
			zap.Int64("coding_seq_len", r.Transcript.CodingSeqLen))
	}

	if e.memo != nil {
		e.memo.Add(key, r)
	}
	return r, false
}
