package tracker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tkoehler/timekeep/internal/domain/entity"
	"github.com/tkoehler/timekeep/internal/domain/tracker"
	"github.com/tkoehler/timekeep/internal/repository/mocks"
)

func TestCascadeSharesOneCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clientUUID, projectUUID, taskUUID := f.seed(t)

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entry, err := f.svc.AddTimeEntry(ctx, testUser, tracker.TimeEntryFields{
		TaskUUID: taskUUID,
		Start:    start,
		End:      start.Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteClient(ctx, testUser, clientUUID))

	c, err := f.svc.GetClient(ctx, testUser, clientUUID)
	require.NoError(t, err)
	p, err := f.svc.GetProject(ctx, testUser, projectUUID)
	require.NoError(t, err)
	task, err := f.svc.GetTask(ctx, testUser, taskUUID)
	require.NoError(t, err)
	te, err := f.svc.GetTimeEntry(ctx, testUser, entry.UUID)
	require.NoError(t, err)

	require.Equal(t, entity.StatusDeleted, c.Status)
	require.Equal(t, entity.StatusDeleted, p.Status)
	require.Equal(t, entity.StatusDeleted, task.Status)
	require.Equal(t, entity.StatusDeleted, te.Status)

	// The root and every cascaded row carry the same commit id.
	require.NotEmpty(t, c.Commit)
	require.Equal(t, c.Commit, p.Commit)
	require.Equal(t, c.Commit, task.Commit)
	require.Equal(t, c.Commit, te.Commit)
}

func TestCascadeReapplyIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clientUUID, projectUUID, _ := f.seed(t)

	require.NoError(t, f.svc.DeleteClient(ctx, testUser, clientUUID))

	before, err := f.svc.GetProject(ctx, testUser, projectUUID)
	require.NoError(t, err)

	// Retrying with the stamped commit touches nothing: the children are
	// no longer active.
	require.NoError(t, f.svc.CascadeDelete(ctx, testUser, entity.KindClient, clientUUID, before.Commit))

	after, err := f.svc.GetProject(ctx, testUser, projectUUID)
	require.NoError(t, err)
	require.Equal(t, before.Commit, after.Commit)
	require.Equal(t, before.Changed, after.Changed)
}

func TestCascadeDelete_UnknownKind(t *testing.T) {
	f := newFixture(t)

	err := f.svc.CascadeDelete(context.Background(), testUser, "widgets", "some-uuid", "some-commit")
	require.ErrorIs(t, err, entity.ErrUnknownKind)
}

func TestCascadeBranchFailureSparesSiblings(t *testing.T) {
	clients := &mocks.ClientRepository{}
	projects := &mocks.ProjectRepository{}
	tasks := &mocks.TaskRepository{}
	times := &mocks.TimeEntryRepository{}
	commits := &mocks.CommitRepository{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := tracker.NewService(clients, projects, tasks, times, commits, logger)

	diskErr := errors.New("disk I/O error")
	projects.On("GetActiveByAttribute", mock.Anything, testUser, "client_uuid", "c1", "").
		Return([]entity.Project{
			{UUID: "p1", UserID: testUser, ClientUUID: "c1", Status: entity.StatusActive},
			{UUID: "p2", UserID: testUser, ClientUUID: "c1", Status: entity.StatusActive},
		}, nil)
	projects.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Project) bool { return p.UUID == "p1" })).
		Return(diskErr)
	projects.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.Project) bool { return p.UUID == "p2" })).
		Return(nil)
	tasks.On("GetActiveByAttribute", mock.Anything, testUser, "project_uuid", "p2", "").
		Return([]entity.Task{}, nil)

	err := svc.CascadeDelete(context.Background(), testUser, entity.KindClient, "c1", "commit-x")

	var cascadeErr *tracker.CascadeError
	require.ErrorAs(t, err, &cascadeErr)
	require.Equal(t, "commit-x", cascadeErr.Commit)
	require.Len(t, cascadeErr.Failed, 1)
	require.Equal(t, entity.KindProject, cascadeErr.Failed[0].Kind)
	require.Equal(t, "p1", cascadeErr.Failed[0].UUID)
	require.ErrorIs(t, cascadeErr.Failed[0].Err, diskErr)

	// The failed branch was not descended into; the sibling was.
	tasks.AssertNotCalled(t, "GetActiveByAttribute", mock.Anything, testUser, "project_uuid", "p1", "")
	projects.AssertExpectations(t)
	tasks.AssertExpectations(t)
}
