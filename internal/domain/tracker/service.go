package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tkoehler/timekeep/internal/domain/entity"
	"github.com/tkoehler/timekeep/internal/repository"
)

// Service is the versioned storage core. Every mutation is stamped with a
// commit id issued fresh per logical operation, so rows last touched
// together share one commit value.
type Service struct {
	clients  repository.ClientRepository
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
	times    repository.TimeEntryRepository
	commits  repository.CommitRepository
	logger   *slog.Logger
}

// NewService creates a new tracker service.
func NewService(
	clients repository.ClientRepository,
	projects repository.ProjectRepository,
	tasks repository.TaskRepository,
	times repository.TimeEntryRepository,
	commits repository.CommitRepository,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		clients:  clients,
		projects: projects,
		tasks:    tasks,
		times:    times,
		commits:  commits,
		logger:   logger,
	}
}

// issueCommit returns a fresh commit id and records it in the ledger.
func (s *Service) issueCommit(ctx context.Context, userID string) (string, error) {
	commitID := uuid.NewString()
	if err := s.commits.Insert(ctx, userID, commitID); err != nil {
		return "", fmt.Errorf("issuing commit: %w", err)
	}
	return commitID, nil
}

// LatestCommit returns the most recently issued commit id for the user.
// Sync clients use it as their next last-known commit marker.
func (s *Service) LatestCommit(ctx context.Context, userID string) (string, error) {
	commitID, err := s.commits.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("getting latest commit: %w", err)
	}
	return commitID, nil
}

// ClientFields are the content fields of a client.
type ClientFields struct {
	Name string
	Note string
}

// ProjectFields are the content fields of a project.
type ProjectFields struct {
	Name       string
	ClientUUID string
}

// TaskFields are the content fields of a task.
type TaskFields struct {
	Name        string
	ProjectUUID string
}

// TimeEntryFields are the content fields of a time entry.
type TimeEntryFields struct {
	Name     string
	TaskUUID string
	Note     string
	Start    time.Time
	End      time.Time
}

// AddClient creates a new active client under a fresh commit.
func (s *Service) AddClient(ctx context.Context, userID string, f ClientFields) (*entity.Client, error) {
	ent, err := s.Upsert(ctx, userID, entity.Patch{
		Kind: entity.KindClient,
		Name: &f.Name,
		Note: &f.Note,
	})
	if err != nil {
		return nil, err
	}
	return ent.(*entity.Client), nil
}

// AddProject creates a new active project under a fresh commit.
func (s *Service) AddProject(ctx context.Context, userID string, f ProjectFields) (*entity.Project, error) {
	ent, err := s.Upsert(ctx, userID, entity.Patch{
		Kind:       entity.KindProject,
		Name:       &f.Name,
		ClientUUID: &f.ClientUUID,
	})
	if err != nil {
		return nil, err
	}
	return ent.(*entity.Project), nil
}

// AddTask creates a new active task under a fresh commit.
func (s *Service) AddTask(ctx context.Context, userID string, f TaskFields) (*entity.Task, error) {
	ent, err := s.Upsert(ctx, userID, entity.Patch{
		Kind:        entity.KindTask,
		Name:        &f.Name,
		ProjectUUID: &f.ProjectUUID,
	})
	if err != nil {
		return nil, err
	}
	return ent.(*entity.Task), nil
}

// AddTimeEntry creates a new active time entry under a fresh commit. An
// interval that ends before it starts is rejected before any commit is
// issued.
func (s *Service) AddTimeEntry(ctx context.Context, userID string, f TimeEntryFields) (*entity.TimeEntry, error) {
	ent, err := s.Upsert(ctx, userID, entity.Patch{
		Kind:     entity.KindTime,
		Name:     &f.Name,
		TaskUUID: &f.TaskUUID,
		Note:     &f.Note,
		Start:    &f.Start,
		End:      &f.End,
	})
	if err != nil {
		return nil, err
	}
	return ent.(*entity.TimeEntry), nil
}

// IntervalForDuration converts a user-entered duration in hours plus an
// optional day into a start/end pair: the end is the end of the given day
// (or now when day is zero) and the start lies the duration before it.
// Decimal commas are accepted ("1,25" is 1.25 hours).
func IntervalForDuration(duration string, day time.Time) (start, end time.Time, err error) {
	hours, err := entity.ParseHours(duration)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if day.IsZero() {
		end = time.Now()
	} else {
		end = day.Add(24 * time.Hour)
	}
	start = end.Add(-time.Duration(hours * float64(time.Hour)))
	return start, end, nil
}

// GetClient returns a client by uuid.
func (s *Service) GetClient(ctx context.Context, userID, uuid string) (*entity.Client, error) {
	c, err := s.clients.GetByID(ctx, userID, uuid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting client: %w", err)
	}
	return c, nil
}

// GetProject returns a project by uuid.
func (s *Service) GetProject(ctx context.Context, userID, uuid string) (*entity.Project, error) {
	p, err := s.projects.GetByID(ctx, userID, uuid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return p, nil
}

// GetTask returns a task by uuid.
func (s *Service) GetTask(ctx context.Context, userID, uuid string) (*entity.Task, error) {
	t, err := s.tasks.GetByID(ctx, userID, uuid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

// GetTimeEntry returns a time entry by uuid.
func (s *Service) GetTimeEntry(ctx context.Context, userID, uuid string) (*entity.TimeEntry, error) {
	t, err := s.times.GetByID(ctx, userID, uuid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting time entry: %w", err)
	}
	return t, nil
}

// DeleteClient soft-deletes a client and cascades through its projects,
// tasks and time entries under one commit.
func (s *Service) DeleteClient(ctx context.Context, userID, uuid string) error {
	c, err := s.GetClient(ctx, userID, uuid)
	if err != nil {
		return err
	}
	commitID, err := s.issueCommit(ctx, userID)
	if err != nil {
		return err
	}
	c.Status = entity.StatusDeleted
	c.Commit = commitID
	c.Changed = time.Now()
	if err := s.clients.Update(ctx, c); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	return s.CascadeDelete(ctx, userID, entity.KindClient, uuid, commitID)
}

// DeleteProject soft-deletes a project and cascades through its tasks and
// time entries under one commit.
func (s *Service) DeleteProject(ctx context.Context, userID, uuid string) error {
	p, err := s.GetProject(ctx, userID, uuid)
	if err != nil {
		return err
	}
	commitID, err := s.issueCommit(ctx, userID)
	if err != nil {
		return err
	}
	p.Status = entity.StatusDeleted
	p.Commit = commitID
	p.Changed = time.Now()
	if err := s.projects.Update(ctx, p); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return s.CascadeDelete(ctx, userID, entity.KindProject, uuid, commitID)
}

// DeleteTask soft-deletes a task and cascades through its time entries
// under one commit.
func (s *Service) DeleteTask(ctx context.Context, userID, uuid string) error {
	t, err := s.GetTask(ctx, userID, uuid)
	if err != nil {
		return err
	}
	commitID, err := s.issueCommit(ctx, userID)
	if err != nil {
		return err
	}
	t.Status = entity.StatusDeleted
	t.Commit = commitID
	t.Changed = time.Now()
	if err := s.tasks.Update(ctx, t); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return s.CascadeDelete(ctx, userID, entity.KindTask, uuid, commitID)
}

// DeleteTimeEntry soft-deletes a time entry. Time entries are leaves, so
// there is nothing to cascade.
func (s *Service) DeleteTimeEntry(ctx context.Context, userID, uuid string) error {
	t, err := s.GetTimeEntry(ctx, userID, uuid)
	if err != nil {
		return err
	}
	commitID, err := s.issueCommit(ctx, userID)
	if err != nil {
		return err
	}
	t.Status = entity.StatusDeleted
	t.Commit = commitID
	t.Changed = time.Now()
	if err := s.times.Update(ctx, t); err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	return nil
}

// SetPaymentStatus updates a time entry's payment flag under a fresh
// commit.
func (s *Service) SetPaymentStatus(ctx context.Context, userID, uuid string, status entity.PaymentStatus) (*entity.TimeEntry, error) {
	t, err := s.GetTimeEntry(ctx, userID, uuid)
	if err != nil {
		return nil, err
	}
	commitID, err := s.issueCommit(ctx, userID)
	if err != nil {
		return nil, err
	}
	t.PaymentStatus = status
	t.Commit = commitID
	t.Changed = time.Now()
	if err := s.times.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("updating payment status: %w", err)
	}
	return t, nil
}
