package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/tkoehler/timekeep/internal/domain/entity"
)

// CascadeFailure identifies one branch that could not be soft-deleted.
type CascadeFailure struct {
	Kind entity.Kind
	UUID string
	Err  error
}

// CascadeError reports the branches a cascade failed to delete, together
// with the commit id in use, so the caller can re-invoke the cascade with
// the same commit. Re-application is idempotent: already-deleted rows no
// longer match the active filter and are left untouched.
type CascadeError struct {
	Commit string
	Failed []CascadeFailure
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade under commit %s left %d branches undeleted", e.Commit, len(e.Failed))
}

// CascadeDelete soft-deletes every active descendant of the given entity,
// stamping each with commitID and a fresh changed timestamp. The root
// itself is expected to be marked deleted already. A failed branch stops
// descent below that branch only; siblings continue.
func (s *Service) CascadeDelete(ctx context.Context, userID string, kind entity.Kind, uuid, commitID string) error {
	if !entity.ValidKind(kind) {
		return entity.ErrUnknownKind
	}
	failed := s.cascade(ctx, userID, kind, uuid, commitID, time.Now())
	if len(failed) > 0 {
		s.logger.Error("cascade incomplete",
			"user", userID, "root", uuid, "commit", commitID, "failed", len(failed))
		return &CascadeError{Commit: commitID, Failed: failed}
	}
	return nil
}

func (s *Service) cascade(ctx context.Context, userID string, kind entity.Kind, uuid, commitID string, now time.Time) []CascadeFailure {
	var failed []CascadeFailure

	switch kind {
	case entity.KindClient:
		children, err := s.projects.GetActiveByAttribute(ctx, userID, "client_uuid", uuid, "")
		if err != nil {
			return append(failed, CascadeFailure{Kind: entity.KindProject, UUID: uuid, Err: err})
		}
		for i := range children {
			p := &children[i]
			p.Status = entity.StatusDeleted
			p.Commit = commitID
			p.Changed = now
			if err := s.projects.Update(ctx, p); err != nil {
				failed = append(failed, CascadeFailure{Kind: entity.KindProject, UUID: p.UUID, Err: err})
				continue
			}
			failed = append(failed, s.cascade(ctx, userID, entity.KindProject, p.UUID, commitID, now)...)
		}

	case entity.KindProject:
		children, err := s.tasks.GetActiveByAttribute(ctx, userID, "project_uuid", uuid, "")
		if err != nil {
			return append(failed, CascadeFailure{Kind: entity.KindTask, UUID: uuid, Err: err})
		}
		for i := range children {
			t := &children[i]
			t.Status = entity.StatusDeleted
			t.Commit = commitID
			t.Changed = now
			if err := s.tasks.Update(ctx, t); err != nil {
				failed = append(failed, CascadeFailure{Kind: entity.KindTask, UUID: t.UUID, Err: err})
				continue
			}
			failed = append(failed, s.cascade(ctx, userID, entity.KindTask, t.UUID, commitID, now)...)
		}

	case entity.KindTask:
		children, err := s.times.GetActiveByAttribute(ctx, userID, "task_uuid", uuid, "")
		if err != nil {
			return append(failed, CascadeFailure{Kind: entity.KindTime, UUID: uuid, Err: err})
		}
		for i := range children {
			t := &children[i]
			t.Status = entity.StatusDeleted
			t.Commit = commitID
			t.Changed = now
			if err := s.times.Update(ctx, t); err != nil {
				failed = append(failed, CascadeFailure{Kind: entity.KindTime, UUID: t.UUID, Err: err})
			}
		}

	case entity.KindTime:
		// Leaves have no descendants.
	}

	return failed
}
