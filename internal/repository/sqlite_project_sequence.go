package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/epcrisk/internal/db"
)

// SQLiteProjectSequenceRepo hands out project-scoped milestone numbers
// from the project_sequences table.
type SQLiteProjectSequenceRepo struct {
	db db.DBTX
}

func NewSQLiteProjectSequenceRepo(conn db.DBTX) *SQLiteProjectSequenceRepo {
	return &SQLiteProjectSequenceRepo{db: conn}
}

// NextProjectSeq returns the next milestone number for a project. The row is
// seeded from existing milestones on first use, so numbers are never reused
// even after the highest milestone is removed.
func (r *SQLiteProjectSequenceRepo) NextProjectSeq(ctx context.Context, projectID string) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO project_sequences (project_id, next_seq)
		SELECT ?, COALESCE(MAX(seq), 0) + 1 FROM milestones WHERE project_id = ?`
	if _, err := r.db.ExecContext(ctx, seedQuery, projectID, projectID); err != nil {
		return 0, fmt.Errorf("seeding milestone sequence for %s: %w", projectID, err)
	}

	var next int
	allocQuery := `UPDATE project_sequences
		SET next_seq = next_seq + 1
		WHERE project_id = ?
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery, projectID).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating milestone seq for project %s: %w", projectID, err)
	}
	return next, nil
}
