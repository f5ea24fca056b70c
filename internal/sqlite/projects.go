package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tkoehler/timekeep/internal/domain/entity"
	"github.com/tkoehler/timekeep/internal/repository"
)

var projectColumns = map[string]string{
	"uuid":        "uuid",
	"name":        "name",
	"client_uuid": "client_uuid",
	"changed":     "changed",
}

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectFields = `uuid, user_id, name, client_uuid, status, commit_id, changed`

func scanProject(row interface{ Scan(...any) error }) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(&p.UUID, &p.UserID, &p.Name, &p.ClientUUID, &p.Status, &p.Commit, &p.Changed)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID retrieves a project by uuid, deleted or not.
func (r *ProjectRepository) GetByID(ctx context.Context, userID, uuid string) (*entity.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE uuid = ? AND user_id = ?`, projectFields)

	p, err := scanProject(r.db.QueryRowContext(ctx, query, uuid, userID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// FindActiveForUser returns active projects owned by the user.
func (r *ProjectRepository) FindActiveForUser(ctx context.Context, userID, sortField string) ([]entity.Project, error) {
	order, err := orderClause(projectColumns, sortField)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE user_id = ? AND status = ? %s`, projectFields, order)

	rows, err := r.db.QueryContext(ctx, query, userID, entity.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// GetActiveByAttribute returns active projects matching field = value.
func (r *ProjectRepository) GetActiveByAttribute(ctx context.Context, userID, field, value, sortField string) ([]entity.Project, error) {
	col, err := column(projectColumns, field)
	if err != nil {
		return nil, err
	}
	order, err := orderClause(projectColumns, sortField)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE user_id = ? AND status = ? AND %s = ? %s`,
		projectFields, col, order)

	rows, err := r.db.QueryContext(ctx, query, userID, entity.StatusActive, value)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// Insert creates a new project row.
func (r *ProjectRepository) Insert(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (uuid, user_id, name, client_uuid, status, commit_id, changed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.UUID, p.UserID, p.Name, p.ClientUUID, p.Status, p.Commit, p.Changed)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// Update persists a full project row by uuid.
func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projects
		SET name = ?, client_uuid = ?, status = ?, commit_id = ?, changed = ?
		WHERE uuid = ? AND user_id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.ClientUUID, p.Status, p.Commit, p.Changed, p.UUID, p.UserID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to update project: %w", err)
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
