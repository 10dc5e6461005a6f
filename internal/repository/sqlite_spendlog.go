package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/epcrisk/internal/db"
	"github.com/alexanderramin/epcrisk/internal/domain"
)

type SQLiteSpendLogRepo struct {
	db db.DBTX
}

func NewSQLiteSpendLogRepo(conn db.DBTX) *SQLiteSpendLogRepo {
	return &SQLiteSpendLogRepo{db: conn}
}

const spendLogColumns = `id, milestone_id, log_date, wages, materials, machinery, notes, created_at`

func (r *SQLiteSpendLogRepo) Create(ctx context.Context, l *domain.DailySpendLog) error {
	query := `INSERT INTO daily_spend_logs (` + spendLogColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.MilestoneID, formatDate(l.Date),
		l.Wages, l.Materials, l.Machinery, l.Notes,
		formatTimestamp(l.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("logging spend for %s: %w", formatDate(l.Date), ErrDuplicateLogDate)
		}
		return fmt.Errorf("inserting spend log: %w", err)
	}
	return nil
}

func (r *SQLiteSpendLogRepo) GetByID(ctx context.Context, id string) (*domain.DailySpendLog, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+spendLogColumns+` FROM daily_spend_logs WHERE id = ?`, id)
	l, err := scanSpendLog(row)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *SQLiteSpendLogRepo) ListByMilestone(ctx context.Context, milestoneID string) ([]domain.DailySpendLog, error) {
	return r.list(ctx,
		`SELECT `+spendLogColumns+` FROM daily_spend_logs WHERE milestone_id = ? ORDER BY log_date`,
		milestoneID)
}

func (r *SQLiteSpendLogRepo) ListByProject(ctx context.Context, projectID string, asOf time.Time) ([]domain.DailySpendLog, error) {
	query := `SELECT l.id, l.milestone_id, l.log_date, l.wages, l.materials, l.machinery, l.notes, l.created_at
		FROM daily_spend_logs l
		JOIN milestones m ON m.id = l.milestone_id
		WHERE m.project_id = ?`
	args := []any{projectID}
	if !asOf.IsZero() {
		// ISO dates compare correctly as strings.
		query += ` AND l.log_date <= ?`
		args = append(args, formatDate(asOf))
	}
	query += ` ORDER BY m.seq, l.log_date`
	return r.list(ctx, query, args...)
}

func (r *SQLiteSpendLogRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM daily_spend_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting spend log: %w", err)
	}
	return requireAffected(res, "spend log")
}

func (r *SQLiteSpendLogRepo) list(ctx context.Context, query string, args ...any) ([]domain.DailySpendLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing spend logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.DailySpendLog
	for rows.Next() {
		l, err := scanSpendLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating spend logs: %w", err)
	}
	return logs, nil
}

func scanSpendLog(row rowScanner) (domain.DailySpendLog, error) {
	var l domain.DailySpendLog
	var logDate, createdAt string
	err := row.Scan(&l.ID, &l.MilestoneID, &logDate, &l.Wages, &l.Materials, &l.Machinery, &l.Notes, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return l, fmt.Errorf("spend log %w", ErrNotFound)
		}
		return l, fmt.Errorf("scanning spend log: %w", err)
	}
	if l.Date, err = parseDate("log_date", logDate); err != nil {
		return l, err
	}
	if l.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return l, err
	}
	return l, nil
}
