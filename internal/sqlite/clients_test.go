package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tkoehler/timekeep/internal/domain/entity"
	"github.com/tkoehler/timekeep/internal/repository"
)

func newClient(uuid, userID, name string) *entity.Client {
	return &entity.Client{
		UUID:    uuid,
		UserID:  userID,
		Name:    name,
		Status:  entity.StatusActive,
		Commit:  "commit1",
		Changed: time.Now(),
	}
}

func TestClientRepository_InsertGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewClientRepository(db)

	c := newClient("c1", "user1", "Acme")
	c.Note = "retainer"
	require.NoError(t, repo.Insert(ctx, c))

	loaded, err := repo.GetByID(ctx, "user1", "c1")
	require.NoError(t, err)
	require.Equal(t, "Acme", loaded.Name)
	require.Equal(t, "retainer", loaded.Note)
	require.Equal(t, entity.StatusActive, loaded.Status)
	require.Equal(t, "commit1", loaded.Commit)
}

func TestClientRepository_UserIsolation(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewClientRepository(db)

	require.NoError(t, repo.Insert(ctx, newClient("c1", "user1", "Acme")))

	_, err := repo.GetByID(ctx, "user2", "c1")
	require.Equal(t, repository.ErrNotFound, err)

	clients, err := repo.FindActiveForUser(ctx, "user2", "")
	require.NoError(t, err)
	require.Empty(t, clients)
}

func TestClientRepository_FindActiveSkipsDeleted(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewClientRepository(db)

	require.NoError(t, repo.Insert(ctx, newClient("c1", "user1", "Beta")))
	deleted := newClient("c2", "user1", "Gone")
	deleted.Status = entity.StatusDeleted
	require.NoError(t, repo.Insert(ctx, deleted))
	require.NoError(t, repo.Insert(ctx, newClient("c3", "user1", "Acme")))

	clients, err := repo.FindActiveForUser(ctx, "user1", "name")
	require.NoError(t, err)
	require.Len(t, clients, 2)
	require.Equal(t, "Acme", clients[0].Name)
	require.Equal(t, "Beta", clients[1].Name)

	// Deleted rows stay fetchable by id.
	loaded, err := repo.GetByID(ctx, "user1", "c2")
	require.NoError(t, err)
	require.Equal(t, entity.StatusDeleted, loaded.Status)
}

func TestClientRepository_SortFieldWhitelist(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewClientRepository(db)

	_, err := repo.FindActiveForUser(ctx, "user1", "name; DROP TABLE clients")
	require.Equal(t, repository.ErrInvalidInput, err)

	_, err = repo.GetActiveByAttribute(ctx, "user1", "status", "deleted", "")
	require.Equal(t, repository.ErrInvalidInput, err)
}

func TestClientRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewClientRepository(db)

	c := newClient("c1", "user1", "Acme")
	require.NoError(t, repo.Insert(ctx, c))

	c.Name = "Acme Corp"
	c.Commit = "commit2"
	c.Status = entity.StatusDeleted
	require.NoError(t, repo.Update(ctx, c))

	loaded, err := repo.GetByID(ctx, "user1", "c1")
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", loaded.Name)
	require.Equal(t, "commit2", loaded.Commit)
	require.Equal(t, entity.StatusDeleted, loaded.Status)

	missing := newClient("nope", "user1", "X")
	require.Equal(t, repository.ErrNotFound, repo.Update(ctx, missing))
}
