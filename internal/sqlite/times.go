package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tkoehler/timekeep/internal/domain/entity"
	"github.com/tkoehler/timekeep/internal/repository"
)

var timeColumns = map[string]string{
	"uuid":           "uuid",
	"name":           "name",
	"task_uuid":      "task_uuid",
	"start":          "start_time",
	"end":            "end_time",
	"payment_status": "payment_status",
	"changed":        "changed",
}

// TimeEntryRepository implements repository.TimeEntryRepository for SQLite
type TimeEntryRepository struct {
	db *DB
}

// NewTimeEntryRepository creates a new TimeEntryRepository
func NewTimeEntryRepository(db *DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

const timeFields = `uuid, user_id, name, task_uuid, start_time, end_time, note, payment_status, status, commit_id, changed`

func scanTimeEntry(row interface{ Scan(...any) error }) (*entity.TimeEntry, error) {
	var t entity.TimeEntry
	err := row.Scan(&t.UUID, &t.UserID, &t.Name, &t.TaskUUID, &t.Start, &t.End,
		&t.Note, &t.PaymentStatus, &t.Status, &t.Commit, &t.Changed)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID retrieves a time entry by uuid, deleted or not.
func (r *TimeEntryRepository) GetByID(ctx context.Context, userID, uuid string) (*entity.TimeEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM times WHERE uuid = ? AND user_id = ?`, timeFields)

	t, err := scanTimeEntry(r.db.QueryRowContext(ctx, query, uuid, userID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}
	return t, nil
}

// FindActiveForUser returns active time entries owned by the user.
func (r *TimeEntryRepository) FindActiveForUser(ctx context.Context, userID, sortField string) ([]entity.TimeEntry, error) {
	order, err := orderClause(timeColumns, sortField)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM times WHERE user_id = ? AND status = ? %s`, timeFields, order)

	rows, err := r.db.QueryContext(ctx, query, userID, entity.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []entity.TimeEntry
	for rows.Next() {
		t, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, *t)
	}
	return entries, rows.Err()
}

// GetActiveByAttribute returns active time entries matching field = value.
func (r *TimeEntryRepository) GetActiveByAttribute(ctx context.Context, userID, field, value, sortField string) ([]entity.TimeEntry, error) {
	col, err := column(timeColumns, field)
	if err != nil {
		return nil, err
	}
	order, err := orderClause(timeColumns, sortField)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM times WHERE user_id = ? AND status = ? AND %s = ? %s`,
		timeFields, col, order)

	rows, err := r.db.QueryContext(ctx, query, userID, entity.StatusActive, value)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	var entries []entity.TimeEntry
	for rows.Next() {
		t, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, *t)
	}
	return entries, rows.Err()
}

// Insert creates a new time entry row.
func (r *TimeEntryRepository) Insert(ctx context.Context, t *entity.TimeEntry) error {
	query := `
		INSERT INTO times (uuid, user_id, name, task_uuid, start_time, end_time,
			note, payment_status, status, commit_id, changed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		t.UUID, t.UserID, t.Name, t.TaskUUID, t.Start, t.End,
		t.Note, t.PaymentStatus, t.Status, t.Commit, t.Changed)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to insert time entry: %w", err)
	}
	return nil
}

// Update persists a full time entry row by uuid.
func (r *TimeEntryRepository) Update(ctx context.Context, t *entity.TimeEntry) error {
	query := `
		UPDATE times
		SET name = ?, task_uuid = ?, start_time = ?, end_time = ?, note = ?,
			payment_status = ?, status = ?, commit_id = ?, changed = ?
		WHERE uuid = ? AND user_id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.TaskUUID, t.Start, t.End, t.Note,
		t.PaymentStatus, t.Status, t.Commit, t.Changed, t.UUID, t.UserID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to update time entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
