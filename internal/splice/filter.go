package splice

import "github.com/inodb/vibe-splice/internal/genome"

// Reason explains why a transcript was excluded before encoding.
type Reason string

const (
	ReasonNotFound       Reason = "not_found"
	ReasonLengthMismatch Reason = "length_mismatch"
)

// Exclusions holds the transcripts removed by the pre-encoding data-quality
// gate. Both lists follow transcript-table order.
type Exclusions struct {
	NotFound       []string // no metadata row, so no genomic coordinates
	LengthMismatch []string // unspliced length disagrees with metadata span

	reasons map[string]Reason
}

// Excluded reports whether id is in either exclusion set.
func (x *Exclusions) Excluded(id string) bool {
	_, ok := x.reasons[id]
	return ok
}

// Reason returns the exclusion reason for id.
func (x *Exclusions) Reason(id string) (Reason, bool) {
	r, ok := x.reasons[id]
	return r, ok
}

// Len returns the total number of excluded transcripts.
func (x *Exclusions) Len() int {
	return len(x.NotFound) + len(x.LengthMismatch)
}

// Add records id under reason r.
func (x *Exclusions) Add(id string, r Reason) {
	if x.reasons == nil {
		x.reasons = make(map[string]Reason)
	}
	x.reasons[id] = r
	switch r {
	case ReasonNotFound:
		x.NotFound = append(x.NotFound, id)
	case ReasonLengthMismatch:
		x.LengthMismatch = append(x.LengthMismatch, id)
	}
}

// FilterTranscripts determines which transcripts cannot be encoded. Metadata
// rows are deduplicated keeping the first row per transcript ID before the
// join.
func FilterTranscripts(transcripts genome.TranscriptTable, metadata genome.MetadataTable) Exclusions {
	return FilterIndexed(transcripts, genome.DedupMetadata(metadata))
}

// FilterIndexed is FilterTranscripts over an already deduplicated metadata
// index.
func FilterIndexed(transcripts genome.TranscriptTable, meta map[string]genome.Metadata) Exclusions {
	var x Exclusions
	for _, t := range transcripts {
		m, ok := meta[t.ID]
		if !ok {
			x.Add(t.ID, ReasonNotFound)
			continue
		}
		if !SpanMatches(t, m) {
			x.Add(t.ID, ReasonLengthMismatch)
		}
	}
	return x
}
