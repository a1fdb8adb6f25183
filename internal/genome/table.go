package genome

import "sort"

// TranscriptTable holds transcript rows in load order.
type TranscriptTable []Transcript

// MetadataTable holds metadata rows in load order. Transcript IDs may repeat.
type MetadataTable []Metadata

// ExonTable holds exon rows in load order.
type ExonTable []Exon

// DedupMetadata indexes metadata by transcript ID, keeping the first row seen
// for each ID.
func DedupMetadata(rows MetadataTable) map[string]Metadata {
	idx := make(map[string]Metadata, len(rows))
	for _, m := range rows {
		if _, ok := idx[m.TranscriptID]; ok {
			continue
		}
		idx[m.TranscriptID] = m
	}
	return idx
}

// GroupExons indexes exons by owning transcript ID. Within a transcript the
// stored row order is preserved.
func GroupExons(rows ExonTable) map[string][]Exon {
	idx := make(map[string][]Exon)
	for _, e := range rows {
		idx[e.TranscriptID] = append(idx[e.TranscriptID], e)
	}
	return idx
}

// TranscriptsPerGene counts distinct transcripts for every gene in the
// metadata index.
func TranscriptsPerGene(meta map[string]Metadata) map[string]int {
	counts := make(map[string]int)
	for _, m := range meta {
		counts[m.GeneID]++
	}
	return counts
}

// Chromosomes returns a sorted list of chromosomes in the metadata index.
func Chromosomes(meta map[string]Metadata) []string {
	seen := make(map[string]bool)
	for _, m := range meta {
		seen[m.Chrom] = true
	}
	chroms := make([]string, 0, len(seen))
	for c := range seen {
		chroms = append(chroms, c)
	}
	sort.Strings(chroms)
	return chroms
}

// FilterSpecies returns the transcripts tagged with species. An empty species
// keeps every row.
func FilterSpecies(rows TranscriptTable, species string) TranscriptTable {
	if species == "" {
		return rows
	}
	var out TranscriptTable
	for _, t := range rows {
		if t.Species == species {
			out = append(out, t)
		}
	}
	return out
}
