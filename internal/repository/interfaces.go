package repository

import (
	"context"

	"github.com/tkoehler/timekeep/internal/domain/entity"
)

// ClientRepository manages client persistence. Every query is scoped to
// the owning user; a uuid owned by someone else reads as ErrNotFound.
type ClientRepository interface {
	GetByID(ctx context.Context, userID, uuid string) (*entity.Client, error)
	FindActiveForUser(ctx context.Context, userID, sortField string) ([]entity.Client, error)
	GetActiveByAttribute(ctx context.Context, userID, field, value, sortField string) ([]entity.Client, error)
	Insert(ctx context.Context, c *entity.Client) error
	Update(ctx context.Context, c *entity.Client) error
}

// ProjectRepository manages project persistence
type ProjectRepository interface {
	GetByID(ctx context.Context, userID, uuid string) (*entity.Project, error)
	FindActiveForUser(ctx context.Context, userID, sortField string) ([]entity.Project, error)
	GetActiveByAttribute(ctx context.Context, userID, field, value, sortField string) ([]entity.Project, error)
	Insert(ctx context.Context, p *entity.Project) error
	Update(ctx context.Context, p *entity.Project) error
}

// TaskRepository manages task persistence
type TaskRepository interface {
	GetByID(ctx context.Context, userID, uuid string) (*entity.Task, error)
	FindActiveForUser(ctx context.Context, userID, sortField string) ([]entity.Task, error)
	GetActiveByAttribute(ctx context.Context, userID, field, value, sortField string) ([]entity.Task, error)
	Insert(ctx context.Context, t *entity.Task) error
	Update(ctx context.Context, t *entity.Task) error
}

// TimeEntryRepository manages time entry persistence
type TimeEntryRepository interface {
	GetByID(ctx context.Context, userID, uuid string) (*entity.TimeEntry, error)
	FindActiveForUser(ctx context.Context, userID, sortField string) ([]entity.TimeEntry, error)
	GetActiveByAttribute(ctx context.Context, userID, field, value, sortField string) ([]entity.TimeEntry, error)
	Insert(ctx context.Context, t *entity.TimeEntry) error
	Update(ctx context.Context, t *entity.TimeEntry) error
}

// CommitRepository is the append-only ledger of issued commit ids. It
// records existence only; the commit id on each entity row is the join key
// grouping rows written together.
type CommitRepository interface {
	Insert(ctx context.Context, userID, commitID string) error
	Exists(ctx context.Context, userID, commitID string) (bool, error)
	Latest(ctx context.Context, userID string) (string, error)
}
