package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/epcrisk/internal/db"
	"github.com/alexanderramin/epcrisk/internal/domain"
)

// SQLiteMilestoneRepo implements MilestoneRepo. Resource lines live in
// resource_lines and are rewritten wholesale on every Create/Update, so
// callers wanting atomicity should run it inside a unit of work.
type SQLiteMilestoneRepo struct {
	db db.DBTX
}

func NewSQLiteMilestoneRepo(conn db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: conn}
}

const milestoneColumns = `id, project_id, seq, name, planned_budget, start_date, due_date,
	payment_trigger_date, status, phases, delay_penalty_per_day, created_at, updated_at`

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	query := `INSERT INTO milestones (` + milestoneColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.ProjectID, m.Seq, m.Name, m.PlannedBudget,
		formatDate(m.StartDate), formatDate(m.DueDate), formatDate(m.PaymentTriggerDate),
		string(m.Status), m.Phases, m.DelayPenaltyPerDay,
		formatTimestamp(m.CreatedAt), formatTimestamp(m.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	return r.writeResources(ctx, m.ID, m.Resources)
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+milestoneColumns+` FROM milestones WHERE id = ?`, id)
	m, err := scanMilestone(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadResources(ctx, []*domain.Milestone{m}); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *SQLiteMilestoneRepo) GetBySeq(ctx context.Context, projectID string, seq int) (*domain.Milestone, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+milestoneColumns+` FROM milestones WHERE project_id = ? AND seq = ?`, projectID, seq)
	m, err := scanMilestone(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadResources(ctx, []*domain.Milestone{m}); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *SQLiteMilestoneRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Milestone, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+milestoneColumns+` FROM milestones WHERE project_id = ? ORDER BY seq, created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var milestones []*domain.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}
	// Close before issuing the resource query; a single-connection pool
	// would otherwise block.
	rows.Close()

	if err := r.loadResources(ctx, milestones); err != nil {
		return nil, err
	}
	return milestones, nil
}

func (r *SQLiteMilestoneRepo) Update(ctx context.Context, m *domain.Milestone) error {
	query := `UPDATE milestones SET name = ?, planned_budget = ?, start_date = ?, due_date = ?,
		payment_trigger_date = ?, status = ?, phases = ?, delay_penalty_per_day = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.Name, m.PlannedBudget,
		formatDate(m.StartDate), formatDate(m.DueDate), formatDate(m.PaymentTriggerDate),
		string(m.Status), m.Phases, m.DelayPenaltyPerDay, formatTimestamp(m.UpdatedAt),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating milestone: %w", err)
	}
	if err := requireAffected(res, "milestone"); err != nil {
		return err
	}
	return r.writeResources(ctx, m.ID, m.Resources)
}

func (r *SQLiteMilestoneRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting milestone: %w", err)
	}
	return requireAffected(res, "milestone")
}

func (r *SQLiteMilestoneRepo) writeResources(ctx context.Context, milestoneID string, plan domain.ResourcePlan) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM resource_lines WHERE milestone_id = ?`, milestoneID); err != nil {
		return fmt.Errorf("clearing resource lines: %w", err)
	}

	insert := `INSERT INTO resource_lines (milestone_id, kind, name, count, quantity, rate, days, order_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	idx := 0
	exec := func(kind domain.ResourceKind, name string, count int, qty, rate float64, days int) error {
		idx++
		if _, err := r.db.ExecContext(ctx, insert, milestoneID, string(kind), name, count, qty, rate, days, idx); err != nil {
			return fmt.Errorf("inserting %s resource line: %w", kind, err)
		}
		return nil
	}

	for _, l := range plan.Labourers {
		if err := exec(domain.ResourceLabour, l.Role, l.Count, 0, l.DailyRate, l.Days); err != nil {
			return err
		}
	}
	for _, m := range plan.Materials {
		if err := exec(domain.ResourceMaterial, m.Name, 0, m.Quantity, m.UnitCost, 0); err != nil {
			return err
		}
	}
	for _, m := range plan.Machines {
		if err := exec(domain.ResourceMachine, m.Name, m.Count, 0, m.DailyRate, m.Days); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteMilestoneRepo) loadResources(ctx context.Context, milestones []*domain.Milestone) error {
	if len(milestones) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Milestone, len(milestones))
	for _, m := range milestones {
		byID[m.ID] = m
	}

	query := `SELECT rl.milestone_id, rl.kind, rl.name, rl.count, rl.quantity, rl.rate, rl.days
		FROM resource_lines rl
		JOIN milestones m ON m.id = rl.milestone_id
		WHERE m.project_id = ?
		ORDER BY rl.milestone_id, rl.order_index`
	rows, err := r.db.QueryContext(ctx, query, milestones[0].ProjectID)
	if err != nil {
		return fmt.Errorf("listing resource lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			milestoneID, kind, name string
			count, days             int
			qty, rate               float64
		)
		if err := rows.Scan(&milestoneID, &kind, &name, &count, &qty, &rate, &days); err != nil {
			return fmt.Errorf("scanning resource line: %w", err)
		}
		m, ok := byID[milestoneID]
		if !ok {
			continue
		}
		switch domain.ResourceKind(kind) {
		case domain.ResourceLabour:
			m.Resources.Labourers = append(m.Resources.Labourers,
				domain.LabourLine{Role: name, Count: count, DailyRate: rate, Days: days})
		case domain.ResourceMaterial:
			m.Resources.Materials = append(m.Resources.Materials,
				domain.MaterialLine{Name: name, Quantity: qty, UnitCost: rate})
		case domain.ResourceMachine:
			m.Resources.Machines = append(m.Resources.Machines,
				domain.MachineLine{Name: name, Count: count, DailyRate: rate, Days: days})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating resource lines: %w", err)
	}
	return nil
}

func scanMilestone(row rowScanner) (*domain.Milestone, error) {
	var m domain.Milestone
	var start, due, trigger, status, createdAt, updatedAt string
	err := row.Scan(
		&m.ID, &m.ProjectID, &m.Seq, &m.Name, &m.PlannedBudget,
		&start, &due, &trigger, &status, &m.Phases, &m.DelayPenaltyPerDay,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("milestone %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning milestone: %w", err)
	}
	m.Status = domain.MilestoneStatus(status)

	if m.StartDate, err = parseDate("start_date", start); err != nil {
		return nil, err
	}
	if m.DueDate, err = parseDate("due_date", due); err != nil {
		return nil, err
	}
	if m.PaymentTriggerDate, err = parseDate("payment_trigger_date", trigger); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
