package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tkoehler/timekeep/internal/domain/entity"
	"github.com/tkoehler/timekeep/internal/repository"
)

// seedHierarchy inserts a client, project and task so time entries have a
// valid parent chain.
func seedHierarchy(t *testing.T, db *DB, userID string) (clientUUID, projectUUID, taskUUID string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	clientUUID, projectUUID, taskUUID = "c1", "p1", "t1"
	require.NoError(t, NewClientRepository(db).Insert(ctx, &entity.Client{
		UUID: clientUUID, UserID: userID, Name: "Acme",
		Status: entity.StatusActive, Commit: "commit1", Changed: now,
	}))
	require.NoError(t, NewProjectRepository(db).Insert(ctx, &entity.Project{
		UUID: projectUUID, UserID: userID, Name: "Website", ClientUUID: clientUUID,
		Status: entity.StatusActive, Commit: "commit1", Changed: now,
	}))
	require.NoError(t, NewTaskRepository(db).Insert(ctx, &entity.Task{
		UUID: taskUUID, UserID: userID, Name: "Design", ProjectUUID: projectUUID,
		Status: entity.StatusActive, Commit: "commit1", Changed: now,
	}))
	return clientUUID, projectUUID, taskUUID
}

func newTimeEntry(uuid, userID, taskUUID string, start, end time.Time) *entity.TimeEntry {
	return &entity.TimeEntry{
		UUID:          uuid,
		UserID:        userID,
		TaskUUID:      taskUUID,
		Start:         start,
		End:           end,
		PaymentStatus: entity.PaymentUnpaid,
		Status:        entity.StatusActive,
		Commit:        "commit1",
		Changed:       time.Now(),
	}
}

func TestTimeEntryRepository_InsertGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	_, _, taskUUID := seedHierarchy(t, db, "user1")
	repo := NewTimeEntryRepository(db)

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(150 * time.Minute)
	entry := newTimeEntry("e1", "user1", taskUUID, start, end)
	entry.Note = "kickoff"
	require.NoError(t, repo.Insert(ctx, entry))

	loaded, err := repo.GetByID(ctx, "user1", "e1")
	require.NoError(t, err)
	require.Equal(t, taskUUID, loaded.TaskUUID)
	require.Equal(t, "kickoff", loaded.Note)
	require.Equal(t, entity.PaymentUnpaid, loaded.PaymentStatus)
	require.Equal(t, 150*time.Minute, loaded.Duration())
}

func TestTimeEntryRepository_ParentConstraint(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedHierarchy(t, db, "user1")
	repo := NewTimeEntryRepository(db)

	entry := newTimeEntry("e1", "user1", "missing", time.Now(), time.Now())
	require.Equal(t, repository.ErrForeignKeyViolation, repo.Insert(ctx, entry))
}

func TestTimeEntryRepository_ByTaskSortedByStart(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	_, _, taskUUID := seedHierarchy(t, db, "user1")
	repo := NewTimeEntryRepository(db)

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, newTimeEntry("e2", "user1", taskUUID, base.Add(2*time.Hour), base.Add(3*time.Hour))))
	require.NoError(t, repo.Insert(ctx, newTimeEntry("e1", "user1", taskUUID, base, base.Add(time.Hour))))
	deleted := newTimeEntry("e3", "user1", taskUUID, base.Add(4*time.Hour), base.Add(5*time.Hour))
	deleted.Status = entity.StatusDeleted
	require.NoError(t, repo.Insert(ctx, deleted))

	entries, err := repo.GetActiveByAttribute(ctx, "user1", "task_uuid", taskUUID, "start")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "e1", entries[0].UUID)
	require.Equal(t, "e2", entries[1].UUID)
}

func TestCommitRepository(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewCommitRepository(db)

	_, err := repo.Latest(ctx, "user1")
	require.Equal(t, repository.ErrNotFound, err)

	require.NoError(t, repo.Insert(ctx, "user1", "commit1"))
	require.NoError(t, repo.Insert(ctx, "user1", "commit2"))

	exists, err := repo.Exists(ctx, "user1", "commit1")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.Exists(ctx, "user2", "commit1")
	require.NoError(t, err)
	require.False(t, exists)

	latest, err := repo.Latest(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, "commit2", latest)
}
