package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/alexanderramin/kanri/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepo_ListByCardResolvesAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := seedBoard(t, db)
	ctx := context.Background()

	card := testutil.NewTestCard(f.todo, "Discuss")
	require.NoError(t, NewSQLiteCardRepo(db).Create(ctx, card))

	repo := NewSQLiteCommentRepo(db)
	require.NoError(t, repo.Create(ctx, testutil.NewTestComment(card.ID, f.user.ID, "first")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestComment(card.ID, "departed-user", "second")))

	comments, err := repo.ListByCard(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "Alice", comments[0].AuthorName)
	assert.Equal(t, "", comments[1].AuthorName)
}

func TestCommentRepo_ListByCard_EmptyIsNotNil(t *testing.T) {
	db := testutil.NewTestDB(t)
	comments, err := NewSQLiteCommentRepo(db).ListByCard(context.Background(), "none")
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestRevisionRepo_ProjectAndCardScopes(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := seedBoard(t, db)
	ctx := context.Background()

	card := testutil.NewTestCard(f.todo, "Tracked")
	require.NoError(t, NewSQLiteCardRepo(db).Create(ctx, card))

	repo := NewSQLiteRevisionRepo(db)
	require.NoError(t, repo.Create(ctx, testutil.NewTestRevision(f.project.ID, "", f.user.ID, domain.ActionColumnCreated)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestRevision(f.project.ID, card.ID, f.user.ID, domain.ActionCardCreated)))

	all, err := repo.ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].IsProjectLevel())
	assert.Equal(t, "Alice", all[0].UserName)
	assert.False(t, all[1].IsProjectLevel())

	byCard, err := repo.ListByCard(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, byCard, 1)
	assert.Equal(t, domain.ActionCardCreated, byCard[0].Action)
}

func TestFilterPresetRepo_RoundTripsOptionalFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := seedBoard(t, db)
	repo := NewSQLiteFilterPresetRepo(db)
	ctx := context.Background()

	preset := testutil.NewTestFilterPreset(f.project.ID, "Due soon", f.user.ID)
	field := domain.DateFieldDue
	preset.DateField = &field
	preset.DateFrom = domain.StrPtr("2026-01-01")
	preset.AssigneeID = &f.user.ID
	preset.TagIDs = []string{f.tag.ID}
	preset.UnassignedOnly = true
	preset.Search = "login"
	require.NoError(t, repo.Create(ctx, preset))

	list, err := repo.ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	assert.Equal(t, "Due soon", got.Name)
	require.NotNil(t, got.DateField)
	assert.Equal(t, domain.DateFieldDue, *got.DateField)
	assert.Equal(t, "2026-01-01", domain.StrValue(got.DateFrom))
	assert.Nil(t, got.DateTo)
	assert.Equal(t, []string{f.tag.ID}, got.TagIDs)
	assert.True(t, got.UnassignedOnly)
	assert.Equal(t, "login", got.Search)

	require.NoError(t, repo.Delete(ctx, preset.ID))
	assert.ErrorIs(t, repo.Delete(ctx, preset.ID), ErrNotFound)
}
