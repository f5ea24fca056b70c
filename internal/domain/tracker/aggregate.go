package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tkoehler/timekeep/internal/domain/entity"
	"github.com/tkoehler/timekeep/internal/repository"
)

// Hours returns the billable duration of the subtree rooted at the given
// entity: the sum of end minus start over every active time entry beneath
// it. The figure is recomputed from the live hierarchy on every call, so
// it can never go stale; deleted descendants never contribute.
func (s *Service) Hours(ctx context.Context, userID string, kind entity.Kind, uuid string) (time.Duration, error) {
	switch kind {
	case entity.KindTime:
		t, err := s.times.GetByID(ctx, userID, uuid)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return 0, ErrNotFound
			}
			return 0, fmt.Errorf("getting time entry: %w", err)
		}
		if t.Status != entity.StatusActive {
			return 0, nil
		}
		return t.Duration(), nil

	case entity.KindTask:
		entries, err := s.times.GetActiveByAttribute(ctx, userID, "task_uuid", uuid, "")
		if err != nil {
			return 0, fmt.Errorf("listing time entries: %w", err)
		}
		var total time.Duration
		for i := range entries {
			total += entries[i].Duration()
		}
		return total, nil

	case entity.KindProject:
		tasks, err := s.tasks.GetActiveByAttribute(ctx, userID, "project_uuid", uuid, "")
		if err != nil {
			return 0, fmt.Errorf("listing tasks: %w", err)
		}
		var total time.Duration
		for i := range tasks {
			hours, err := s.Hours(ctx, userID, entity.KindTask, tasks[i].UUID)
			if err != nil {
				return 0, err
			}
			total += hours
		}
		return total, nil

	case entity.KindClient:
		projects, err := s.projects.GetActiveByAttribute(ctx, userID, "client_uuid", uuid, "")
		if err != nil {
			return 0, fmt.Errorf("listing projects: %w", err)
		}
		var total time.Duration
		for i := range projects {
			hours, err := s.Hours(ctx, userID, entity.KindProject, projects[i].UUID)
			if err != nil {
				return 0, err
			}
			total += hours
		}
		return total, nil
	}

	return 0, entity.ErrUnknownKind
}

// ChildCount returns the number of active immediate children of the given
// kind under the parent uuid. It is not recursive.
func (s *Service) ChildCount(ctx context.Context, userID, parentUUID string, childKind entity.Kind) (int, error) {
	switch childKind {
	case entity.KindProject:
		children, err := s.projects.GetActiveByAttribute(ctx, userID, "client_uuid", parentUUID, "")
		if err != nil {
			return 0, fmt.Errorf("counting projects: %w", err)
		}
		return len(children), nil
	case entity.KindTask:
		children, err := s.tasks.GetActiveByAttribute(ctx, userID, "project_uuid", parentUUID, "")
		if err != nil {
			return 0, fmt.Errorf("counting tasks: %w", err)
		}
		return len(children), nil
	case entity.KindTime:
		children, err := s.times.GetActiveByAttribute(ctx, userID, "task_uuid", parentUUID, "")
		if err != nil {
			return 0, fmt.Errorf("counting time entries: %w", err)
		}
		return len(children), nil
	}
	return 0, entity.ErrUnknownKind
}

// ClientOverview is a client decorated with its read-time aggregates.
type ClientOverview struct {
	entity.Client
	Hours        time.Duration
	ProjectCount int
}

// ProjectOverview is a project decorated with its read-time aggregates.
type ProjectOverview struct {
	entity.Project
	Hours     time.Duration
	TaskCount int
}

// TaskOverview is a task decorated with its read-time aggregates.
type TaskOverview struct {
	entity.Task
	Hours time.Duration
}

// Clients lists the user's active clients by name, each carrying its
// project count and summed hours.
func (s *Service) Clients(ctx context.Context, userID string) ([]ClientOverview, error) {
	clients, err := s.clients.FindActiveForUser(ctx, userID, "name")
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}

	overviews := make([]ClientOverview, 0, len(clients))
	for i := range clients {
		hours, err := s.Hours(ctx, userID, entity.KindClient, clients[i].UUID)
		if err != nil {
			return nil, err
		}
		count, err := s.ChildCount(ctx, userID, clients[i].UUID, entity.KindProject)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, ClientOverview{
			Client:       clients[i],
			Hours:        hours,
			ProjectCount: count,
		})
	}
	return overviews, nil
}

// Projects lists active projects, scoped to a client when clientUUID is
// non-empty, each carrying its task count and summed hours.
func (s *Service) Projects(ctx context.Context, userID, clientUUID string) ([]ProjectOverview, error) {
	var (
		projects []entity.Project
		err      error
	)
	if clientUUID != "" {
		projects, err = s.projects.GetActiveByAttribute(ctx, userID, "client_uuid", clientUUID, "")
	} else {
		projects, err = s.projects.FindActiveForUser(ctx, userID, "")
	}
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	overviews := make([]ProjectOverview, 0, len(projects))
	for i := range projects {
		hours, err := s.Hours(ctx, userID, entity.KindProject, projects[i].UUID)
		if err != nil {
			return nil, err
		}
		count, err := s.ChildCount(ctx, userID, projects[i].UUID, entity.KindTask)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, ProjectOverview{
			Project:   projects[i],
			Hours:     hours,
			TaskCount: count,
		})
	}
	return overviews, nil
}

// Tasks lists active tasks, scoped to a project when projectUUID is
// non-empty, each carrying its summed hours.
func (s *Service) Tasks(ctx context.Context, userID, projectUUID string) ([]TaskOverview, error) {
	var (
		tasks []entity.Task
		err   error
	)
	if projectUUID != "" {
		tasks, err = s.tasks.GetActiveByAttribute(ctx, userID, "project_uuid", projectUUID, "")
	} else {
		tasks, err = s.tasks.FindActiveForUser(ctx, userID, "")
	}
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	overviews := make([]TaskOverview, 0, len(tasks))
	for i := range tasks {
		hours, err := s.Hours(ctx, userID, entity.KindTask, tasks[i].UUID)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, TaskOverview{Task: tasks[i], Hours: hours})
	}
	return overviews, nil
}

// Times lists active time entries, scoped to a task and ordered by start
// when taskUUID is non-empty.
func (s *Service) Times(ctx context.Context, userID, taskUUID string) ([]entity.TimeEntry, error) {
	if taskUUID != "" {
		entries, err := s.times.GetActiveByAttribute(ctx, userID, "task_uuid", taskUUID, "start")
		if err != nil {
			return nil, fmt.Errorf("listing time entries: %w", err)
		}
		return entries, nil
	}
	entries, err := s.times.FindActiveForUser(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	return entries, nil
}
