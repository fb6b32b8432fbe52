package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/discgolf-api/internal/domain"
	"github.com/pkordes/discgolf-api/internal/repo"
	"github.com/pkordes/discgolf-api/internal/storage"
)

const usersDoc = `[
	{"id":1,"username":"admin","password":"root"},
	{"id":2,"username":"alice","password":"pw"}
]`

func newUserRepo(t *testing.T) (repo.UserRepo, storage.Store) {
	t.Helper()
	s := newStore(t)
	seed(t, s, storage.CollectionUsers, usersDoc)
	r, err := repo.NewUserRepo(context.Background(), s)
	require.NoError(t, err)
	return r, s
}

func TestUserRepo_Lookup(t *testing.T) {
	r, _ := newUserRepo(t)
	ctx := context.Background()

	byID, err := r.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := r.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, byName.IsAdmin())

	_, err = r.GetByUsername(ctx, "Alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_CreateDuplicate(t *testing.T) {
	r, _ := newUserRepo(t)

	_, err := r.Create(context.Background(), domain.User{Username: "ALICE", Password: "x"})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepo_UpdateRejectsTakenName(t *testing.T) {
	r, _ := newUserRepo(t)
	ctx := context.Background()

	_, err := r.Update(ctx, domain.User{ID: 2, Username: "Admin", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	stored, err := r.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username, "rejected update leaves the user alone")

	renamed, err := r.Update(ctx, domain.User{ID: 2, Username: "ALICE", Password: "pw"})
	require.NoError(t, err, "changing the case of its own name is allowed")
	assert.Equal(t, "ALICE", renamed.Username)
}

func TestUserRepo_CreateAndDeleteByUsername(t *testing.T) {
	r, s := newUserRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, domain.User{Username: "carol", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID)

	require.NoError(t, r.DeleteByUsername(ctx, "alice"))
	assert.ErrorIs(t, r.DeleteByUsername(ctx, "alice"), domain.ErrNotFound)

	reloaded, err := repo.NewUserRepo(ctx, s)
	require.NoError(t, err)
	all, err := reloaded.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "admin", all[0].Username)
	assert.Equal(t, "carol", all[1].Username)
}

func TestUserRepo_SessionIsNotPersisted(t *testing.T) {
	r, s := newUserRepo(t)
	ctx := context.Background()

	got, err := r.SetSession(ctx, "alice", func(u *domain.User) error {
		u.Login("pw")
		return nil
	})
	require.NoError(t, err)
	assert.True(t, got.LoggedIn())

	same, err := r.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, same.LoggedIn(), "login state is kept in memory")

	reloaded, err := repo.NewUserRepo(ctx, s)
	require.NoError(t, err)
	fresh, err := reloaded.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.False(t, fresh.LoggedIn(), "login state is not written to the store")
}

func TestUserRepo_DeleteMissing(t *testing.T) {
	r, _ := newUserRepo(t)

	assert.ErrorIs(t, r.Delete(context.Background(), 99), domain.ErrNotFound)
}
