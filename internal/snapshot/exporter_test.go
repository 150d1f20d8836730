package snapshot_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/alexanderramin/kanri/internal/snapshot"
	"github.com/alexanderramin/kanri/internal/snapshot/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExport_ProjectsBoardIntoDocument(t *testing.T) {
	env := newBoardEnv(t)
	src := seedSource(t, env)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

	doc, err := snapshot.NewExporter(env.backend, snapshot.WithClock(func() time.Time { return fixed })).
		Export(context.Background(), src.projectID)
	require.NoError(t, err)

	require.NotNil(t, doc.SchemaVersion)
	assert.Equal(t, snapshot.CurrentSchemaVersion, *doc.SchemaVersion)
	assert.Equal(t, "2026-01-02T03:04:05.006Z", doc.ExportedAt)
	require.NotNil(t, doc.Meta)
	assert.NotEmpty(t, doc.Meta.Fields)
	assert.Len(t, doc.Users, 2)

	require.NotNil(t, doc.Project)
	assert.Equal(t, src.projectID, doc.Project.ID)
	assert.Equal(t, "Source", doc.Project.Name)
	require.Len(t, doc.Project.Columns, 3)
	assert.Equal(t, "Todo", doc.Project.Columns[0].Name)
	assert.Equal(t, "Doing", doc.Project.Columns[1].Name)
	assert.Equal(t, "Done", doc.Project.Columns[2].Name)
	assert.Empty(t, doc.Project.Columns[2].Cards)
	assert.Equal(t, 3, doc.CardCount())

	todo := doc.Project.Columns[0].Cards
	require.Len(t, todo, 2)
	assert.Equal(t, "Draft roadmap", todo[0].Title)
	assert.Equal(t, 0, todo[0].Order)
	assert.Equal(t, "Fix login", todo[1].Title)
	assert.Equal(t, 1, todo[1].Order)

	fix := todo[1]
	require.NotNil(t, fix.AssigneeID)
	assert.Equal(t, src.bob, *fix.AssigneeID)
	assert.Equal(t, []string{src.bug}, fix.TagIDs)
	require.NotNil(t, fix.DueDate)
	assert.Equal(t, "2025-07-01T00:00:00.000Z", *fix.DueDate)
	require.Len(t, fix.Comments, 1)
	assert.Equal(t, "Alice", fix.Comments[0].AuthorName)
	assert.Equal(t, "reproduced on staging", fix.Comments[0].Text)
	assert.Len(t, fix.History, 5, "created, assigned, tagged, due date, comment")

	assert.Len(t, doc.Project.Tags, 2)
	assert.Len(t, doc.Project.Activity, 5, "three columns and two tags")
	for _, a := range doc.Project.Activity {
		assert.Empty(t, a.CardID)
	}

	require.Len(t, doc.Project.FilterPresets, 1)
	fp := doc.Project.FilterPresets[0]
	assert.Equal(t, "Bob's bugs", fp.Name)
	require.NotNil(t, fp.DateField)
	assert.Equal(t, "dueDate", *fp.DateField)
	assert.Equal(t, "2025-01-01", *fp.DateFrom)
}

func TestExport_CardReadFailureExportsEmptyList(t *testing.T) {
	env := newBoardEnv(t)
	src := seedSource(t, env)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))
	faulty := &faultyBackend{Backend: env.backend, failComments: map[string]bool{src.fixLogin: true}}

	doc, err := snapshot.NewExporter(faulty, snapshot.WithLogger(logger), snapshot.WithFanoutLimit(2)).
		Export(context.Background(), src.projectID)
	require.NoError(t, err)

	fix := findCard(t, doc, "Fix login")
	assert.NotNil(t, fix.Comments)
	assert.Empty(t, fix.Comments)
	assert.NotEmpty(t, fix.History, "history is fetched independently")
	assert.Len(t, findCard(t, doc, "Ship it").Comments, 1)

	assert.Contains(t, logs.String(), "card read failed")
	assert.Contains(t, logs.String(), "field=comments")
	assert.Contains(t, logs.String(), src.fixLogin)
}

func TestExport_BulkReadFailuresAreAllReported(t *testing.T) {
	backend := new(mocks.Backend)
	usersErr := errors.New("users unavailable")
	tagsErr := errors.New("tags unavailable")

	backend.On("GetProject", mock.Anything, "p1").Return(&domain.Project{ID: "p1", Name: "P"}, nil)
	backend.On("ListColumns", mock.Anything, "p1").Return([]*domain.Column{}, nil)
	backend.On("ListCards", mock.Anything, "p1").Return([]*domain.Card{}, nil)
	backend.On("ListUsers", mock.Anything).Return(nil, usersErr)
	backend.On("ListTags", mock.Anything, "p1").Return(nil, tagsErr)
	backend.On("GetProjectRevisions", mock.Anything, "p1").Return([]*domain.Revision{}, nil)
	backend.On("ListFilterPresets", mock.Anything, "p1").Return([]*domain.FilterPreset{}, nil)

	doc, err := snapshot.NewExporter(backend).Export(context.Background(), "p1")
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, usersErr)
	assert.ErrorIs(t, err, tagsErr)
	assert.Contains(t, err.Error(), "reading users")
	assert.Contains(t, err.Error(), "reading tags")
	backend.AssertExpectations(t)
	backend.AssertNotCalled(t, "GetComments", mock.Anything, mock.Anything)
}

func TestExport_SkipsDanglingCardReferences(t *testing.T) {
	backend := new(mocks.Backend)
	backend.On("GetProject", mock.Anything, "p1").Return(&domain.Project{ID: "p1", Name: "P"}, nil)
	backend.On("ListColumns", mock.Anything, "p1").Return([]*domain.Column{
		{ID: "c1", Name: "Todo", CardIDs: []string{"gone", "k1"}},
	}, nil)
	backend.On("ListCards", mock.Anything, "p1").Return([]*domain.Card{
		{ID: "k1", ColumnID: "c1", Title: "Only", TagIDs: []string{}},
	}, nil)
	backend.On("ListUsers", mock.Anything).Return([]*domain.User{}, nil)
	backend.On("ListTags", mock.Anything, "p1").Return([]*domain.Tag{}, nil)
	backend.On("GetProjectRevisions", mock.Anything, "p1").Return([]*domain.Revision{
		{ID: "r1", ProjectID: "p1", Action: domain.ActionColumnCreated},
		{ID: "r2", ProjectID: "p1", CardID: "k1", Action: domain.ActionCardCreated},
	}, nil)
	backend.On("ListFilterPresets", mock.Anything, "p1").Return([]*domain.FilterPreset{}, nil)
	backend.On("GetComments", mock.Anything, "k1").Return([]*domain.Comment{}, nil)
	backend.On("GetCardRevisions", mock.Anything, "k1").Return([]*domain.Revision{}, nil)

	doc, err := snapshot.NewExporter(backend).Export(context.Background(), "p1")
	require.NoError(t, err)

	cards := doc.Project.Columns[0].Cards
	require.Len(t, cards, 1)
	assert.Equal(t, "Only", cards[0].Title)
	assert.Equal(t, 0, cards[0].Order)
	require.Len(t, doc.Project.Activity, 1)
	assert.Equal(t, "r1", doc.Project.Activity[0].ID)
}
