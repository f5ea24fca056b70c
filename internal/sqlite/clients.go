package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tkoehler/timekeep/internal/domain/entity"
	"github.com/tkoehler/timekeep/internal/repository"
)

var clientColumns = map[string]string{
	"uuid":    "uuid",
	"name":    "name",
	"changed": "changed",
}

// ClientRepository implements repository.ClientRepository for SQLite
type ClientRepository struct {
	db *DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientFields = `uuid, user_id, name, note, status, commit_id, changed`

func scanClient(row interface{ Scan(...any) error }) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.UUID, &c.UserID, &c.Name, &c.Note, &c.Status, &c.Commit, &c.Changed)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID retrieves a client by uuid, deleted or not.
func (r *ClientRepository) GetByID(ctx context.Context, userID, uuid string) (*entity.Client, error) {
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE uuid = ? AND user_id = ?`, clientFields)

	c, err := scanClient(r.db.QueryRowContext(ctx, query, uuid, userID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

// FindActiveForUser returns active clients owned by the user.
func (r *ClientRepository) FindActiveForUser(ctx context.Context, userID, sortField string) ([]entity.Client, error) {
	order, err := orderClause(clientColumns, sortField)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE user_id = ? AND status = ? %s`, clientFields, order)

	rows, err := r.db.QueryContext(ctx, query, userID, entity.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

// GetActiveByAttribute returns active clients matching field = value.
func (r *ClientRepository) GetActiveByAttribute(ctx context.Context, userID, field, value, sortField string) ([]entity.Client, error) {
	col, err := column(clientColumns, field)
	if err != nil {
		return nil, err
	}
	order, err := orderClause(clientColumns, sortField)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM clients WHERE user_id = ? AND status = ? AND %s = ? %s`,
		clientFields, col, order)

	rows, err := r.db.QueryContext(ctx, query, userID, entity.StatusActive, value)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

// Insert creates a new client row.
func (r *ClientRepository) Insert(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (uuid, user_id, name, note, status, commit_id, changed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.UUID, c.UserID, c.Name, c.Note, c.Status, c.Commit, c.Changed)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrInvalidInput
		}
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

// Update persists a full client row by uuid.
func (r *ClientRepository) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients
		SET name = ?, note = ?, status = ?, commit_id = ?, changed = ?
		WHERE uuid = ? AND user_id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.Note, c.Status, c.Commit, c.Changed, c.UUID, c.UserID)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
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
