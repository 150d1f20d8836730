package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/kanri/internal/db"
	"github.com/alexanderramin/kanri/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Roadmap")
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Roadmap", fetched.Name)
	assert.Equal(t, proj.CreatedAt, fetched.CreatedAt)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_ListAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	p1 := testutil.NewTestProject("One")
	p2 := testutil.NewTestProject("Two")
	require.NoError(t, repo.Create(ctx, p1))
	require.NoError(t, repo.Create(ctx, p2))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "One", list[0].Name)

	require.NoError(t, repo.Delete(ctx, p1.ID))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p2.ID, list[0].ID)
}

func TestProjectRepo_DeleteCascadesBoard(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	columns := NewSQLiteColumnRepo(db)
	cards := NewSQLiteCardRepo(db)

	proj := testutil.NewTestProject("Doomed")
	require.NoError(t, projects.Create(ctx, proj))
	col := testutil.NewTestColumn(proj.ID, "Todo", 0)
	require.NoError(t, columns.Create(ctx, col))
	require.NoError(t, cards.Create(ctx, testutil.NewTestCard(col, "Card")))

	require.NoError(t, projects.Delete(ctx, proj.ID))

	remaining, err := cards.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestProjectRepo_PersistsAcrossReopen(t *testing.T) {
	database, path := testutil.NewTestFileDB(t)
	ctx := context.Background()

	p := testutil.NewTestProject("Durable")
	require.NoError(t, NewSQLiteProjectRepo(database).Create(ctx, p))
	require.NoError(t, database.Close())

	reopened, err := db.OpenDB(path)
	require.NoError(t, err)
	defer reopened.Close()

	var mode string
	require.NoError(t, reopened.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	got, err := NewSQLiteProjectRepo(reopened).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Durable", got.Name)
}
