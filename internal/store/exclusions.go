package store

import (
	"fmt"

	"github.com/inodb/vibe-splice/internal/splice"
)

// WriteExclusions stores the transcripts excluded before encoding.
func (s *Store) WriteExclusions(x *splice.Exclusions) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO exclusions (transcript_id, reason) VALUES (?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range x.NotFound {
		if _, err := stmt.Exec(id, string(splice.ReasonNotFound)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert exclusion %s: %w", id, err)
		}
	}
	for _, id := range x.LengthMismatch {
		if _, err := stmt.Exec(id, string(splice.ReasonLengthMismatch)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert exclusion %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// Exclusions reads back the stored exclusion sets, ordered by transcript ID.
func (s *Store) Exclusions() (splice.Exclusions, error) {
	var x splice.Exclusions
	rows, err := s.db.Query(`SELECT transcript_id, reason FROM exclusions ORDER BY transcript_id`)
	if err != nil {
		return x, fmt.Errorf("query exclusions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, reason string
		if err := rows.Scan(&id, &reason); err != nil {
			return x, fmt.Errorf("scan exclusion: %w", err)
		}
		x.Add(id, splice.Reason(reason))
	}
	if err := rows.Err(); err != nil {
		return x, fmt.Errorf("iterate exclusions: %w", err)
	}
	return x, nil
}
