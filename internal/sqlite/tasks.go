package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tkoehler/timekeep/internal/domain/entity"
	"github.com/tkoehler/timekeep/internal/repository"
)

var taskColumns = map[string]string{
	"uuid":         "uuid",
	"name":         "name",
	"project_uuid": "project_uuid",
	"changed":      "changed",
}

// TaskRepository implements repository.TaskRepository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskFields = `uuid, user_id, name, project_uuid, status, commit_id, changed`

func scanTask(row interface{ Scan(...any) error }) (*entity.Task, error) {
	var t entity.Task
	err := row.Scan(&t.UUID, &t.UserID, &t.Name, &t.ProjectUUID, &t.Status, &t.Commit, &t.Changed)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID retrieves a task by uuid, deleted or not.
func (r *TaskRepository) GetByID(ctx context.Context, userID, uuid string) (*entity.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE uuid = ? AND user_id = ?`, taskFields)

	t, err := scanTask(r.db.QueryRowContext(ctx, query, uuid, userID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// FindActiveForUser returns active tasks owned by the user.
func (r *TaskRepository) FindActiveForUser(ctx context.Context, userID, sortField string) ([]entity.Task, error) {
	order, err := orderClause(taskColumns, sortField)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE user_id = ? AND status = ? %s`, taskFields, order)

	rows, err := r.db.QueryContext(ctx, query, userID, entity.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// GetActiveByAttribute returns active tasks matching field = value.
func (r *TaskRepository) GetActiveByAttribute(ctx context.Context, userID, field, value, sortField string) ([]entity.Task, error) {
	col, err := column(taskColumns, field)
	if err != nil {
		return nil, err
	}
	order, err := orderClause(taskColumns, sortField)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE user_id = ? AND status = ? AND %s = ? %s`,
		taskFields, col, order)

	rows, err := r.db.QueryContext(ctx, query, userID, entity.StatusActive, value)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Insert creates a new task row.
func (r *TaskRepository) Insert(ctx context.Context, t *entity.Task) error {
	query := `
		INSERT INTO tasks (uuid, user_id, name, project_uuid, status, commit_id, changed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		t.UUID, t.UserID, t.Name, t.ProjectUUID, t.Status, t.Commit, t.Changed)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// Update persists a full task row by uuid.
func (r *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	query := `
		UPDATE tasks
		SET name = ?, project_uuid = ?, status = ?, commit_id = ?, changed = ?
		WHERE uuid = ? AND user_id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.ProjectUUID, t.Status, t.Commit, t.Changed, t.UUID, t.UserID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to update task: %w", err)
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
