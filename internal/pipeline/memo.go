package pipeline

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/inodb/vibe-splice/internal/genome"
	"github.com/inodb/vibe-splice/internal/splice"
)

// Memo caches splice results keyed by transcript ID and a content hash of
// everything the result depends on. Results are immutable and may be shared.
type Memo struct {
	cache *lru.Cache[string, *splice.Result]
}

// NewMemo creates a memo holding at most size results.
func NewMemo(size int) (*Memo, error) {
	c, err := lru.New[string, *splice.Result](size)
	if err != nil {
		return nil, fmt.Errorf("create memo: %w", err)
	}
	return &Memo{cache: c}, nil
}

// Get returns the cached result for key.
func (m *Memo) Get(key string) (*splice.Result, bool) {
	return m.cache.Get(key)
}

// Add stores r under key.
func (m *Memo) Add(key string, r *splice.Result) {
	m.cache.Add(key, r)
}

// Len returns the number of cached results.
func (m *Memo) Len() int {
	return m.cache.Len()
}

// MemoKey returns "<transcript_id>:<hash>" where the hash covers the exon
// coordinates (order independent), the transcript's genomic start, its
// recorded lengths and its chromosome.
func MemoKey(item WorkItem) string {
	coords := make([]genome.Interval, len(item.Exons))
	for i, e := range item.Exons {
		coords[i] = genome.Interval{Start: e.Start, End: e.End}
	}
	slices.SortFunc(coords, func(a, b genome.Interval) int {
		if a.Start != b.Start {
			return cmp.Compare(a.Start, b.Start)
		}
		return cmp.Compare(a.End, b.End)
	})

	buf := make([]byte, 0, 8*(2*len(coords)+3))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(item.Metadata.Start))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(item.Transcript.UnsplicedLen))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(item.Transcript.CodingSeqLen))
	for _, c := range coords {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(c.Start))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(c.End))
	}

	d := xxhash.New()
	d.Write(buf)
	d.WriteString(item.Metadata.Chrom)
	return item.Transcript.ID + ":" + strconv.FormatUint(d.Sum64(), 16)
}
