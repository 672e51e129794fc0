package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mikiasgoitom/videoreact/internal/domain/contract"
	"github.com/mikiasgoitom/videoreact/internal/domain/entity"
	"github.com/mikiasgoitom/videoreact/internal/infrastructure/database"
	"github.com/mikiasgoitom/videoreact/internal/infrastructure/repository/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "interactions.db")
	db, err := database.NewSQLiteDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, path
}

func newRepo(t *testing.T) *sqlite.InteractionRepository {
	t.Helper()
	db, _ := openDB(t)
	repo, err := sqlite.NewInteractionRepository(context.Background(), db)
	require.NoError(t, err)
	return repo
}

func TestFindByVideoID_NotFound(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.FindByVideoID(context.Background(), "missing")
	assert.ErrorIs(t, err, contract.ErrInteractionNotFound)
}

func TestGetOrCreate_DoesNotPersist(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	i, err := repo.GetOrCreate(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, &entity.Interaction{VideoID: "v1"}, i)

	_, err = repo.FindByVideoID(ctx, "v1")
	assert.ErrorIs(t, err, contract.ErrInteractionNotFound)
}

func TestCommit_InsertThenUpdate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	i, err := repo.GetOrCreate(ctx, "v1")
	require.NoError(t, err)
	i.Likes = 1
	require.NoError(t, repo.Commit(ctx, i))

	got, err := repo.FindByVideoID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Likes)

	got.Dislikes = 4
	require.NoError(t, repo.Commit(ctx, got))

	again, err := repo.GetOrCreate(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, &entity.Interaction{VideoID: "v1", Likes: 1, Dislikes: 4}, again)
}

func TestCommit_KeysAreIndependent(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Commit(ctx, &entity.Interaction{VideoID: "a", Likes: 2}))
	require.NoError(t, repo.Commit(ctx, &entity.Interaction{VideoID: "b", Dislikes: 3}))

	a, err := repo.FindByVideoID(ctx, "a")
	require.NoError(t, err)
	b, err := repo.FindByVideoID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(2), a.Likes)
	assert.Equal(t, int64(0), a.Dislikes)
	assert.Equal(t, int64(3), b.Dislikes)
}

func TestCommit_RejectsNegativeCounters(t *testing.T) {
	repo := newRepo(t)

	err := repo.Commit(context.Background(), &entity.Interaction{VideoID: "v1", Likes: -1})
	assert.ErrorIs(t, err, contract.ErrStoreUnavailable)
}

func TestCommit_ClosedDatabase(t *testing.T) {
	db, _ := openDB(t)
	repo, err := sqlite.NewInteractionRepository(context.Background(), db)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	err = repo.Commit(context.Background(), &entity.Interaction{VideoID: "v1"})
	assert.ErrorIs(t, err, contract.ErrStoreUnavailable)
}

func TestRecordsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	db, path := openDB(t)
	repo, err := sqlite.NewInteractionRepository(ctx, db)
	require.NoError(t, err)
	require.NoError(t, repo.Commit(ctx, &entity.Interaction{VideoID: "v1", Likes: 3, Dislikes: 1}))
	require.NoError(t, db.Close())

	reopened, err := database.NewSQLiteDB(path)
	require.NoError(t, err)
	defer reopened.Close()
	repo, err = sqlite.NewInteractionRepository(ctx, reopened)
	require.NoError(t, err)

	got, err := repo.FindByVideoID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Likes)
	assert.Equal(t, int64(1), got.Dislikes)
}

func TestReset(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Commit(ctx, &entity.Interaction{VideoID: "v1", Likes: 1}))

	require.NoError(t, repo.Reset(ctx))

	_, err := repo.FindByVideoID(ctx, "v1")
	assert.ErrorIs(t, err, contract.ErrInteractionNotFound)
}
