package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-splice/internal/genome"
	"github.com/inodb/vibe-splice/internal/splice"
)

const resultColumns = `transcript_id, gene_id, species, chrom,
	unspliced_len, coding_seq_len, exon_count, intron_count, exon_bases,
	spliced_fraction, consistent, flags, exons, introns`

// resultRow flattens a result into column order.
func resultRow(r *splice.Result) []any {
	t := r.Transcript
	return []any{
		t.ID, t.GeneID, t.Species, r.Chrom,
		t.UnsplicedLen, t.CodingSeqLen, int32(len(r.Exons)), int32(len(r.Introns)), r.ExonBases(),
		r.SplicedFraction, r.Consistent, r.Flags.String(),
		genome.FormatIntervals(r.Exons), genome.FormatIntervals(r.Introns),
	}
}

// WriteResults batch-inserts splice results. Duplicate transcript IDs are
// deduplicated before writing, keeping the first.
func (s *Store) WriteResults(results []*splice.Result) error {
	if len(results) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(results))
	deduped := make([]*splice.Result, 0, len(results))
	for _, r := range results {
		if !seen[r.Transcript.ID] {
			seen[r.Transcript.ID] = true
			deduped = append(deduped, r)
		}
	}

	if s.driver == DriverDuckDB {
		return s.appendResults(deduped)
	}
	return s.insertResults(deduped)
}

// appendResults writes through the DuckDB Appender API.
func (s *Store) appendResults(results []*splice.Result) error {
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "splice_results")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range results {
		row := resultRow(r)
		values := make([]driver.Value, len(row))
		for i, v := range row {
			values[i] = v
		}
		if err := appender.AppendRow(values...); err != nil {
			return fmt.Errorf("append result %s: %w", r.Transcript.ID, err)
		}
	}

	return appender.Flush()
}

// insertResults writes with a prepared statement inside one transaction.
func (s *Store) insertResults(results []*splice.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO splice_results (` + resultColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		if _, err := stmt.Exec(resultRow(r)...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert result %s: %w", r.Transcript.ID, err)
		}
	}
	return tx.Commit()
}

// LookupResult returns the stored result for a transcript, or nil if absent.
// The encoding is rebuilt from the stored exon intervals.
func (s *Store) LookupResult(id string) (*splice.Result, error) {
	rows, err := s.db.Query(`SELECT `+resultColumns+`
		FROM splice_results WHERE transcript_id=?`, id)
	if err != nil {
		return nil, fmt.Errorf("query result: %w", err)
	}
	defer rows.Close()

	results, err := scanResults(rows)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// SearchByGene returns all stored results for a gene.
func (s *Store) SearchByGene(geneID string) ([]*splice.Result, error) {
	rows, err := s.db.Query(`SELECT `+resultColumns+`
		FROM splice_results WHERE gene_id=? ORDER BY transcript_id`, geneID)
	if err != nil {
		return nil, fmt.Errorf("query by gene: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// Fractions returns transcript ID -> spliced fraction. Suspect results are
// included only when includeSuspect is set.
func (s *Store) Fractions(includeSuspect bool) (map[string]float64, error) {
	rows, err := s.db.Query(`SELECT transcript_id, spliced_fraction
		FROM splice_results WHERE ? OR flags = ''`, includeSuspect)
	if err != nil {
		return nil, fmt.Errorf("query fractions: %w", err)
	}
	defer rows.Close()

	fractions := make(map[string]float64)
	for rows.Next() {
		var id string
		var f float64
		if err := rows.Scan(&id, &f); err != nil {
			return nil, fmt.Errorf("scan fraction: %w", err)
		}
		fractions[id] = f
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fractions: %w", err)
	}
	return fractions, nil
}

// ResultCount returns the number of stored results.
func (s *Store) ResultCount() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM splice_results").Scan(&n); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}

// scanResults scans rows into results.
func scanResults(rows *sql.Rows) ([]*splice.Result, error) {
	var results []*splice.Result
	for rows.Next() {
		var (
			r                  splice.Result
			exonCount, intrCnt int
			exonBases          int64
			flags              string
			exons, introns     string
		)
		t := &r.Transcript
		if err := rows.Scan(
			&t.ID, &t.GeneID, &t.Species, &r.Chrom,
			&t.UnsplicedLen, &t.CodingSeqLen, &exonCount, &intrCnt, &exonBases,
			&r.SplicedFraction, &r.Consistent, &flags, &exons, &introns,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}

		var err error
		if r.Exons, err = genome.ParseIntervals(exons); err != nil {
			return nil, fmt.Errorf("result %s exons: %w", t.ID, err)
		}
		if r.Introns, err = genome.ParseIntervals(introns); err != nil {
			return nil, fmt.Errorf("result %s introns: %w", t.ID, err)
		}
		r.Flags = splice.ParseFlags(flags)
		r.Encoding = splice.Encode(r.Exons, t.UnsplicedLen)
		if r.Encoding.Ones() != exonBases {
			return nil, fmt.Errorf("result %s: rebuilt encoding has %d exon bases, stored %d",
				t.ID, r.Encoding.Ones(), exonBases)
		}
		results = append(results, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}
