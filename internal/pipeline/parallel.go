package pipeline

import (
	"runtime"
	"sync"

	"github.com/inodb/vibe-splice/internal/genome"
	"github.com/inodb/vibe-splice/internal/splice"
)

// WorkItem holds one retained transcript and its own rows, ready for encoding.
type WorkItem struct {
	Seq        int
	Transcript genome.Transcript
	Metadata   genome.Metadata
	Exons      []genome.Exon
}

// WorkResult holds the encoding output for a single transcript.
type WorkResult struct {
	Seq    int
	Result *splice.Result
	Cached bool // served from the memo
}

// ParallelEncode fans items out to workers goroutines (runtime.NumCPU() when
// workers <= 0). Results come back as they finish; OrderedCollect restores
// dispatch order.
func (e *Encoder) ParallelEncode(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for item := range items {
				r, cached := e.Encode(item)
				results <- WorkResult{Seq: item.Seq, Result: r, Cached: cached}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect hands results to fn by ascending Seq, holding back any that
// arrive ahead of their turn. Sequence numbers must form a prefix 0..n-1 of
// the dispatched items. After fn fails the channel is drained so the workers
// can exit, and the error is returned.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	held := make(map[int]WorkResult)
	want := 0

	for r := range results {
		held[r.Seq] = r
		for next, ok := held[want]; ok; next, ok = held[want] {
			delete(held, want)
			want++
			if err := fn(next); err != nil {
				for range results {
				}
				return err
			}
		}
	}
	return nil
}
