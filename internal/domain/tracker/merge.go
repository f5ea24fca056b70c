package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tkoehler/timekeep/internal/domain/entity"
	"github.com/tkoehler/timekeep/internal/repository"
)

// Upsert applies a single patch under its own fresh commit: without a
// uuid it creates a new active entity, with one it updates the existing
// record in place, bumping commit and changed. This one code path backs
// both interactive adds and sync writes.
func (s *Service) Upsert(ctx context.Context, userID string, p entity.Patch) (entity.Entity, error) {
	if err := entity.ValidatePatch(p); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, userID, p); err != nil {
		return nil, err
	}
	commitID, err := s.issueCommit(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.applyPatch(ctx, userID, commitID, p)
}

// MergeBatch reconciles an ordered batch of client-submitted patches
// against server state and returns the authoritative merged entities in
// input order. The whole batch shares one commit id, mirroring interactive
// write semantics where one call is one logical transaction. Items are
// processed strictly sequentially so a later item may reference a uuid
// assigned by an earlier one.
//
// A concurrent edit (the client's last-known commit differing from the
// server's) is not an error: the incoming fields win and the overwrite is
// logged. A failing item aborts the batch with its index; entities merged
// before it stand, and re-submitting the batch is safe because every write
// path here is idempotent.
func (s *Service) MergeBatch(ctx context.Context, userID string, patches []entity.Patch) ([]entity.Entity, error) {
	for i := range patches {
		if err := entity.ValidatePatch(patches[i]); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	if len(patches) == 0 {
		return nil, nil
	}

	commitID, err := s.issueCommit(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := make([]entity.Entity, 0, len(patches))
	for i := range patches {
		ent, err := s.applyPatch(ctx, userID, commitID, patches[i])
		if err != nil {
			return merged, fmt.Errorf("item %d: %w", i, err)
		}
		merged = append(merged, ent)
	}

	s.logger.Debug("merged batch", "user", userID, "commit", commitID, "items", len(merged))
	return merged, nil
}

// checkReferences verifies that any parent reference carried by the patch
// resolves to an entity owned by the user.
func (s *Service) checkReferences(ctx context.Context, userID string, p entity.Patch) error {
	var err error
	switch {
	case p.ClientUUID != nil:
		_, err = s.clients.GetByID(ctx, userID, *p.ClientUUID)
	case p.ProjectUUID != nil:
		_, err = s.projects.GetByID(ctx, userID, *p.ProjectUUID)
	case p.TaskUUID != nil:
		_, err = s.tasks.GetByID(ctx, userID, *p.TaskUUID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.ErrInvalidReference
		}
		return fmt.Errorf("checking reference: %w", err)
	}
	return nil
}

// applyPatch is the merge step for one item: create when the uuid is
// unknown (keeping a client-assigned uuid if present), otherwise update in
// place under last-writer-wins.
func (s *Service) applyPatch(ctx context.Context, userID, commitID string, p entity.Patch) (entity.Entity, error) {
	if err := s.checkReferences(ctx, userID, p); err != nil {
		return nil, err
	}
	switch p.Kind {
	case entity.KindClient:
		return s.applyClientPatch(ctx, userID, commitID, p)
	case entity.KindProject:
		return s.applyProjectPatch(ctx, userID, commitID, p)
	case entity.KindTask:
		return s.applyTaskPatch(ctx, userID, commitID, p)
	case entity.KindTime:
		return s.applyTimePatch(ctx, userID, commitID, p)
	}
	return nil, entity.ErrUnknownKind
}

func (s *Service) logOverwrite(userID string, p entity.Patch, serverCommit string) {
	if p.LastKnownCommit != "" && p.LastKnownCommit != serverCommit {
		s.logger.Debug("overwriting concurrent edit",
			"user", userID, "kind", p.Kind, "uuid", p.UUID,
			"client_commit", p.LastKnownCommit, "server_commit", serverCommit)
	}
}

func (s *Service) applyClientPatch(ctx context.Context, userID, commitID string, p entity.Patch) (*entity.Client, error) {
	now := time.Now()
	c, err := s.fetchOrNewClient(ctx, userID, p.UUID, now)
	if err != nil {
		return nil, err
	}
	if c.Commit != "" {
		s.logOverwrite(userID, p, c.Commit)
	}

	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Note != nil {
		c.Note = *p.Note
	}
	c.Commit = commitID
	c.Changed = now

	wasActive := c.Status == entity.StatusActive
	if p.Deleted {
		c.Status = entity.StatusDeleted
	}

	if err := s.persistClient(ctx, c); err != nil {
		return nil, err
	}
	if p.Deleted && wasActive {
		if err := s.CascadeDelete(ctx, userID, entity.KindClient, c.UUID, commitID); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (s *Service) applyProjectPatch(ctx context.Context, userID, commitID string, p entity.Patch) (*entity.Project, error) {
	now := time.Now()
	proj, err := s.fetchOrNewProject(ctx, userID, p.UUID, now)
	if err != nil {
		return nil, err
	}
	if proj.Commit != "" {
		s.logOverwrite(userID, p, proj.Commit)
	}

	if p.Name != nil {
		proj.Name = *p.Name
	}
	if p.ClientUUID != nil {
		proj.ClientUUID = *p.ClientUUID
	}
	proj.Commit = commitID
	proj.Changed = now

	wasActive := proj.Status == entity.StatusActive
	if p.Deleted {
		proj.Status = entity.StatusDeleted
	}

	if err := s.persistProject(ctx, proj); err != nil {
		return nil, err
	}
	if p.Deleted && wasActive {
		if err := s.CascadeDelete(ctx, userID, entity.KindProject, proj.UUID, commitID); err != nil {
			return nil, err
		}
	}
	return proj, nil
}

func (s *Service) applyTaskPatch(ctx context.Context, userID, commitID string, p entity.Patch) (*entity.Task, error) {
	now := time.Now()
	task, err := s.fetchOrNewTask(ctx, userID, p.UUID, now)
	if err != nil {
		return nil, err
	}
	if task.Commit != "" {
		s.logOverwrite(userID, p, task.Commit)
	}

	if p.Name != nil {
		task.Name = *p.Name
	}
	if p.ProjectUUID != nil {
		task.ProjectUUID = *p.ProjectUUID
	}
	task.Commit = commitID
	task.Changed = now

	wasActive := task.Status == entity.StatusActive
	if p.Deleted {
		task.Status = entity.StatusDeleted
	}

	if err := s.persistTask(ctx, task); err != nil {
		return nil, err
	}
	if p.Deleted && wasActive {
		if err := s.CascadeDelete(ctx, userID, entity.KindTask, task.UUID, commitID); err != nil {
			return nil, err
		}
	}
	return task, nil
}

func (s *Service) applyTimePatch(ctx context.Context, userID, commitID string, p entity.Patch) (*entity.TimeEntry, error) {
	now := time.Now()
	t, err := s.fetchOrNewTimeEntry(ctx, userID, p.UUID, now)
	if err != nil {
		return nil, err
	}
	if t.Commit != "" {
		s.logOverwrite(userID, p, t.Commit)
	}

	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Note != nil {
		t.Note = *p.Note
	}
	if p.TaskUUID != nil {
		t.TaskUUID = *p.TaskUUID
	}
	if p.Start != nil {
		t.Start = *p.Start
	}
	if p.End != nil {
		t.End = *p.End
	}
	if p.PaymentStatus != nil {
		t.PaymentStatus = *p.PaymentStatus
	}
	// The interval may have become invalid through a partial update.
	if t.End.Before(t.Start) {
		return nil, entity.ErrInvalidDuration
	}
	t.Commit = commitID
	t.Changed = now
	if p.Deleted {
		t.Status = entity.StatusDeleted
	}

	if err := s.persistTimeEntry(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// fetchOrNew* return the stored entity for an upsert, or a fresh active
// one when the uuid is empty or unknown to the server. A client-assigned
// uuid is kept.

func (s *Service) fetchOrNewClient(ctx context.Context, userID, id string, now time.Time) (*entity.Client, error) {
	if id != "" {
		c, err := s.clients.GetByID(ctx, userID, id)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("loading client: %w", err)
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	return &entity.Client{UUID: id, UserID: userID, Status: entity.StatusActive, Changed: now}, nil
}

func (s *Service) fetchOrNewProject(ctx context.Context, userID, id string, now time.Time) (*entity.Project, error) {
	if id != "" {
		p, err := s.projects.GetByID(ctx, userID, id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("loading project: %w", err)
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	return &entity.Project{UUID: id, UserID: userID, Status: entity.StatusActive, Changed: now}, nil
}

func (s *Service) fetchOrNewTask(ctx context.Context, userID, id string, now time.Time) (*entity.Task, error) {
	if id != "" {
		t, err := s.tasks.GetByID(ctx, userID, id)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("loading task: %w", err)
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	return &entity.Task{UUID: id, UserID: userID, Status: entity.StatusActive, Changed: now}, nil
}

func (s *Service) fetchOrNewTimeEntry(ctx context.Context, userID, id string, now time.Time) (*entity.TimeEntry, error) {
	if id != "" {
		t, err := s.times.GetByID(ctx, userID, id)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("loading time entry: %w", err)
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	return &entity.TimeEntry{
		UUID:          id,
		UserID:        userID,
		PaymentStatus: entity.PaymentUnpaid,
		Status:        entity.StatusActive,
		Changed:       now,
	}, nil
}

// persist* write an entity back: update first, insert when the row
// doesn't exist yet.

func (s *Service) persistClient(ctx context.Context, c *entity.Client) error {
	err := s.clients.Update(ctx, c)
	if errors.Is(err, repository.ErrNotFound) {
		err = s.clients.Insert(ctx, c)
	}
	if err != nil {
		return fmt.Errorf("persisting client: %w", err)
	}
	return nil
}

func (s *Service) persistProject(ctx context.Context, p *entity.Project) error {
	err := s.projects.Update(ctx, p)
	if errors.Is(err, repository.ErrNotFound) {
		err = s.projects.Insert(ctx, p)
	}
	if err != nil {
		return fmt.Errorf("persisting project: %w", err)
	}
	return nil
}

func (s *Service) persistTask(ctx context.Context, t *entity.Task) error {
	err := s.tasks.Update(ctx, t)
	if errors.Is(err, repository.ErrNotFound) {
		err = s.tasks.Insert(ctx, t)
	}
	if err != nil {
		return fmt.Errorf("persisting task: %w", err)
	}
	return nil
}

func (s *Service) persistTimeEntry(ctx context.Context, t *entity.TimeEntry) error {
	err := s.times.Update(ctx, t)
	if errors.Is(err, repository.ErrNotFound) {
		err = s.times.Insert(ctx, t)
	}
	if err != nil {
		return fmt.Errorf("persisting time entry: %w", err)
	}
	return nil
}
