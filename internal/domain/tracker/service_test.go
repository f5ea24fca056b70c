package tracker_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tkoehler/timekeep/internal/domain/entity"
	"github.com/tkoehler/timekeep/internal/domain/tracker"
	"github.com/tkoehler/timekeep/internal/sqlite"
)

const testUser = "user1"

type fixture struct {
	svc     *tracker.Service
	clients *sqlite.ClientRepository
	times   *sqlite.TimeEntryRepository
	commits *sqlite.CommitRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	clients := sqlite.NewClientRepository(db)
	projects := sqlite.NewProjectRepository(db)
	tasks := sqlite.NewTaskRepository(db)
	times := sqlite.NewTimeEntryRepository(db)
	commits := sqlite.NewCommitRepository(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		svc:     tracker.NewService(clients, projects, tasks, times, commits, logger),
		clients: clients,
		times:   times,
		commits: commits,
	}
}

// seed builds a client/project/task chain and returns the three uuids.
func (f *fixture) seed(t *testing.T) (clientUUID, projectUUID, taskUUID string) {
	t.Helper()
	ctx := context.Background()

	c, err := f.svc.AddClient(ctx, testUser, tracker.ClientFields{Name: "Acme"})
	require.NoError(t, err)
	p, err := f.svc.AddProject(ctx, testUser, tracker.ProjectFields{Name: "Website", ClientUUID: c.UUID})
	require.NoError(t, err)
	task, err := f.svc.AddTask(ctx, testUser, tracker.TaskFields{Name: "Design", ProjectUUID: p.UUID})
	require.NoError(t, err)
	return c.UUID, p.UUID, task.UUID
}

func TestEndToEndHierarchy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clientUUID, projectUUID, taskUUID := f.seed(t)

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 11, 30, 0, 0, time.UTC)
	_, err := f.svc.AddTimeEntry(ctx, testUser, tracker.TimeEntryFields{
		TaskUUID: taskUUID,
		Start:    start,
		End:      end,
	})
	require.NoError(t, err)

	for _, node := range []struct {
		kind entity.Kind
		uuid string
	}{
		{entity.KindTask, taskUUID},
		{entity.KindProject, projectUUID},
		{entity.KindClient, clientUUID},
	} {
		hours, err := f.svc.Hours(ctx, testUser, node.kind, node.uuid)
		require.NoError(t, err)
		require.Equal(t, 150*time.Minute, hours, "hours of %s", node.kind)
	}

	require.NoError(t, f.svc.DeleteProject(ctx, testUser, projectUUID))

	task, err := f.svc.GetTask(ctx, testUser, taskUUID)
	require.NoError(t, err)
	require.Equal(t, entity.StatusDeleted, task.Status)

	hours, err := f.svc.Hours(ctx, testUser, entity.KindClient, clientUUID)
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), hours)

	count, err := f.svc.ChildCount(ctx, testUser, clientUUID, entity.KindProject)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestAddProject_InvalidReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddProject(ctx, testUser, tracker.ProjectFields{Name: "Orphan", ClientUUID: "missing"})
	require.ErrorIs(t, err, entity.ErrInvalidReference)

	// Rejected before any commit was issued.
	_, err = f.svc.LatestCommit(ctx, testUser)
	require.ErrorIs(t, err, tracker.ErrNotFound)
}

func TestAddProject_ForeignUserReference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clientUUID, _, _ := f.seed(t)

	_, err := f.svc.AddProject(ctx, "user2", tracker.ProjectFields{Name: "Stolen", ClientUUID: clientUUID})
	require.ErrorIs(t, err, entity.ErrInvalidReference)
}

func TestAddTimeEntry_RejectsBackwardInterval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, taskUUID := f.seed(t)

	start := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)
	_, err := f.svc.AddTimeEntry(ctx, testUser, tracker.TimeEntryFields{
		TaskUUID: taskUUID,
		Start:    start,
		End:      start.Add(-time.Hour),
	})
	require.ErrorIs(t, err, entity.ErrInvalidDuration)

	entries, err := f.svc.Times(ctx, testUser, taskUUID)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestUpsert_FreshAndStableUUIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	name := "Acme"
	ent, err := f.svc.Upsert(ctx, testUser, entity.Patch{Kind: entity.KindClient, Name: &name})
	require.NoError(t, err)
	created := ent.(*entity.Client)
	require.NotEmpty(t, created.UUID)
	require.NotEmpty(t, created.Commit)

	renamed := "Acme Corp"
	ent, err = f.svc.Upsert(ctx, testUser, entity.Patch{
		Kind: entity.KindClient,
		UUID: created.UUID,
		Name: &renamed,
	})
	require.NoError(t, err)
	updated := ent.(*entity.Client)
	require.Equal(t, created.UUID, updated.UUID)
	require.Equal(t, testUser, updated.UserID)
	require.Equal(t, "Acme Corp", updated.Name)
	require.NotEqual(t, created.Commit, updated.Commit)
}

func TestDeleteTimeEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, taskUUID := f.seed(t)

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entry, err := f.svc.AddTimeEntry(ctx, testUser, tracker.TimeEntryFields{
		TaskUUID: taskUUID,
		Start:    start,
		End:      start.Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteTimeEntry(ctx, testUser, entry.UUID))

	hours, err := f.svc.Hours(ctx, testUser, entity.KindTime, entry.UUID)
	require.NoError(t, err)
	require.Equal(t, time.Duration(0), hours)

	require.ErrorIs(t, f.svc.DeleteTimeEntry(ctx, testUser, "missing"), tracker.ErrNotFound)
}

func TestSetPaymentStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, taskUUID := f.seed(t)

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	entry, err := f.svc.AddTimeEntry(ctx, testUser, tracker.TimeEntryFields{
		TaskUUID: taskUUID,
		Start:    start,
		End:      start.Add(time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, entity.PaymentUnpaid, entry.PaymentStatus)

	paid, err := f.svc.SetPaymentStatus(ctx, testUser, entry.UUID, entity.PaymentPaid)
	require.NoError(t, err)
	require.Equal(t, entity.PaymentPaid, paid.PaymentStatus)
	require.NotEqual(t, entry.Commit, paid.Commit)
}

func TestIntervalForDuration(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	start, end, err := tracker.IntervalForDuration("2,5", day)
	require.NoError(t, err)
	require.Equal(t, day.Add(24*time.Hour), end)
	require.Equal(t, 150*time.Minute, end.Sub(start))

	_, _, err = tracker.IntervalForDuration("soon", day)
	require.ErrorIs(t, err, entity.ErrInvalidDuration)
}

func TestListingsCarryAggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clientUUID, projectUUID, taskUUID := f.seed(t)

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err := f.svc.AddTimeEntry(ctx, testUser, tracker.TimeEntryFields{
		TaskUUID: taskUUID,
		Start:    start,
		End:      start.Add(time.Hour),
	})
	require.NoError(t, err)

	clients, err := f.svc.Clients(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.Equal(t, clientUUID, clients[0].UUID)
	require.Equal(t, 1, clients[0].ProjectCount)
	require.Equal(t, time.Hour, clients[0].Hours)

	projects, err := f.svc.Projects(ctx, testUser, clientUUID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, projectUUID, projects[0].UUID)
	require.Equal(t, 1, projects[0].TaskCount)
	require.Equal(t, time.Hour, projects[0].Hours)

	tasks, err := f.svc.Tasks(ctx, testUser, projectUUID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, time.Hour, tasks[0].Hours)
}
