package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/alexanderramin/kanri/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boardFixture struct {
	project *domain.Project
	todo    *domain.Column
	done    *domain.Column
	user    *domain.User
	tag     *domain.Tag
}

func seedBoard(t *testing.T, db *sql.DB) boardFixture {
	t.Helper()
	ctx := context.Background()

	f := boardFixture{
		project: testutil.NewTestProject("Board"),
		user:    testutil.NewTestUser("Alice"),
	}
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, f.project))
	require.NoError(t, NewSQLiteUserRepo(db).Create(ctx, f.user))

	f.todo = testutil.NewTestColumn(f.project.ID, "Todo", 0)
	f.done = testutil.NewTestColumn(f.project.ID, "Done", 1)
	columns := NewSQLiteColumnRepo(db)
	require.NoError(t, columns.Create(ctx, f.todo))
	require.NoError(t, columns.Create(ctx, f.done))

	f.tag = testutil.NewTestTag(f.project.ID, "bug")
	require.NoError(t, NewSQLiteTagRepo(db).Create(ctx, f.tag))
	return f
}

func TestCardRepo_CreateWithTagsAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := seedBoard(t, db)
	repo := NewSQLiteCardRepo(db)
	ctx := context.Background()

	card := testutil.NewTestCard(f.todo, "Fix login",
		testutil.WithAssignee(f.user.ID),
		testutil.WithTags(f.tag.ID),
		testutil.WithDueDate(1_750_000_000_000),
		testutil.WithDescription("details"),
	)
	require.NoError(t, repo.Create(ctx, card))

	fetched, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fix login", fetched.Title)
	assert.Equal(t, "details", fetched.Description)
	require.NotNil(t, fetched.AssigneeID)
	assert.Equal(t, f.user.ID, *fetched.AssigneeID)
	require.NotNil(t, fetched.DueDate)
	assert.Equal(t, int64(1_750_000_000_000), *fetched.DueDate)
	assert.Equal(t, []string{f.tag.ID}, fetched.TagIDs)
}

func TestCardRepo_NextPositionAppends(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := seedBoard(t, db)
	repo := NewSQLiteCardRepo(db)
	ctx := context.Background()

	pos, err := repo.NextPosition(ctx, f.todo.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	require.NoError(t, repo.Create(ctx, testutil.NewTestCard(f.todo, "A", testutil.WithPosition(0))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCard(f.todo, "B", testutil.WithPosition(1))))

	pos, err = repo.NextPosition(ctx, f.todo.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, pos)

	pos, err = repo.NextPosition(ctx, f.done.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
}

func TestCardRepo_UpdateFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := seedBoard(t, db)
	repo := NewSQLiteCardRepo(db)
	ctx := context.Background()

	card := testutil.NewTestCard(f.todo, "Card")
	require.NoError(t, repo.Create(ctx, card))

	require.NoError(t, repo.UpdateAssignee(ctx, card.ID, &f.user.ID))
	due := int64(42)
	require.NoError(t, repo.UpdateDueDate(ctx, card.ID, &due))
	require.NoError(t, repo.ReplaceTags(ctx, card.ID, []string{f.tag.ID, f.tag.ID}))

	fetched, err := repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, domain.StrValue(fetched.AssigneeID))
	assert.Equal(t, int64(42), *fetched.DueDate)
	assert.Equal(t, []string{f.tag.ID}, fetched.TagIDs)

	require.NoError(t, repo.UpdateAssignee(ctx, card.ID, nil))
	fetched, err = repo.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.AssigneeID)
}

func TestCardRepo_UpdateMissingCard(t *testing.T) {
	db := testutil.NewTestDB(t)
	err := NewSQLiteCardRepo(db).UpdateDueDate(context.Background(), "ghost", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestColumnRepo_ListByProjectCarriesOrderedCardIDs(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := seedBoard(t, db)
	cards := NewSQLiteCardRepo(db)
	ctx := context.Background()

	second := testutil.NewTestCard(f.todo, "Second", testutil.WithPosition(1))
	first := testutil.NewTestCard(f.todo, "First", testutil.WithPosition(0))
	require.NoError(t, cards.Create(ctx, second))
	require.NoError(t, cards.Create(ctx, first))

	columns, err := NewSQLiteColumnRepo(db).ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "Todo", columns[0].Name)
	assert.Equal(t, []string{first.ID, second.ID}, columns[0].CardIDs)
	assert.Equal(t, []string{}, columns[1].CardIDs)
}

func TestColumnRepo_DeleteCascadesCards(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := seedBoard(t, db)
	cards := NewSQLiteCardRepo(db)
	columns := NewSQLiteColumnRepo(db)
	ctx := context.Background()

	require.NoError(t, cards.Create(ctx, testutil.NewTestCard(f.todo, "Gone")))
	require.NoError(t, columns.Delete(ctx, f.todo.ID))

	list, err := cards.ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, columns.Delete(ctx, f.todo.ID), ErrNotFound)
}

func TestTagRepo_DeleteRemovesCardAssociation(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := seedBoard(t, db)
	cards := NewSQLiteCardRepo(db)
	ctx := context.Background()

	card := testutil.NewTestCard(f.todo, "Tagged", testutil.WithTags(f.tag.ID))
	require.NoError(t, cards.Create(ctx, card))
	require.NoError(t, NewSQLiteTagRepo(db).Delete(ctx, f.tag.ID))

	fetched, err := cards.GetByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.TagIDs)
}
