package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tkoehler/timekeep/internal/domain/entity"
)

// ClientRepository is a mock for repository.ClientRepository.
type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) GetByID(ctx context.Context, userID, uuid string) (*entity.Client, error) {
	args := m.Called(ctx, userID, uuid)
	if c, ok := args.Get(0).(*entity.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) FindActiveForUser(ctx context.Context, userID, sortField string) ([]entity.Client, error) {
	args := m.Called(ctx, userID, sortField)
	if list, ok := args.Get(0).([]entity.Client); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) GetActiveByAttribute(ctx context.Context, userID, field, value, sortField string) ([]entity.Client, error) {
	args := m.Called(ctx, userID, field, value, sortField)
	if list, ok := args.Get(0).([]entity.Client); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) Insert(ctx context.Context, c *entity.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ClientRepository) Update(ctx context.Context, c *entity.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) GetByID(ctx context.Context, userID, uuid string) (*entity.Project, error) {
	args := m.Called(ctx, userID, uuid)
	if p, ok := args.Get(0).(*entity.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) FindActiveForUser(ctx context.Context, userID, sortField string) ([]entity.Project, error) {
	args := m.Called(ctx, userID, sortField)
	if list, ok := args.Get(0).([]entity.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) GetActiveByAttribute(ctx context.Context, userID, field, value, sortField string) ([]entity.Project, error) {
	args := m.Called(ctx, userID, field, value, sortField)
	if list, ok := args.Get(0).([]entity.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Insert(ctx context.Context, p *entity.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// TaskRepository is a mock for repository.TaskRepository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) GetByID(ctx context.Context, userID, uuid string) (*entity.Task, error) {
	args := m.Called(ctx, userID, uuid)
	if t, ok := args.Get(0).(*entity.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) FindActiveForUser(ctx context.Context, userID, sortField string) ([]entity.Task, error) {
	args := m.Called(ctx, userID, sortField)
	if list, ok := args.Get(0).([]entity.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) GetActiveByAttribute(ctx context.Context, userID, field, value, sortField string) ([]entity.Task, error) {
	args := m.Called(ctx, userID, field, value, sortField)
	if list, ok := args.Get(0).([]entity.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Insert(ctx context.Context, t *entity.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) Update(ctx context.Context, t *entity.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

// TimeEntryRepository is a mock for repository.TimeEntryRepository.
type TimeEntryRepository struct {
	mock.Mock
}

func (m *TimeEntryRepository) GetByID(ctx context.Context, userID, uuid string) (*entity.TimeEntry, error) {
	args := m.Called(ctx, userID, uuid)
	if t, ok := args.Get(0).(*entity.TimeEntry); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimeEntryRepository) FindActiveForUser(ctx context.Context, userID, sortField string) ([]entity.TimeEntry, error) {
	args := m.Called(ctx, userID, sortField)
	if list, ok := args.Get(0).([]entity.TimeEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimeEntryRepository) GetActiveByAttribute(ctx context.Context, userID, field, value, sortField string) ([]entity.TimeEntry, error) {
	args := m.Called(ctx, userID, field, value, sortField)
	if list, ok := args.Get(0).([]entity.TimeEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimeEntryRepository) Insert(ctx context.Context, t *entity.TimeEntry) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TimeEntryRepository) Update(ctx context.Context, t *entity.TimeEntry) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

// CommitRepository is a mock for repository.CommitRepository.
type CommitRepository struct {
	mock.Mock
}

func (m *CommitRepository) Insert(ctx context.Context, userID, commitID string) error {
	args := m.Called(ctx, userID, commitID)
	return args.Error(0)
}

func (m *CommitRepository) Exists(ctx context.Context, userID, commitID string) (bool, error) {
	args := m.Called(ctx, userID, commitID)
	return args.Bool(0), args.Error(1)
}

func (m *CommitRepository) Latest(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
