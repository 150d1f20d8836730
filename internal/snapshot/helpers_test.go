package snapshot_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/alexanderramin/kanri/internal/repository"
	"github.com/alexanderramin/kanri/internal/service"
	"github.com/alexanderramin/kanri/internal/snapshot"
	"github.com/alexanderramin/kanri/internal/testutil"
	"github.com/stretchr/testify/require"
)

// boardEnv is a real SQLite-backed board for end-to-end engine tests.
type boardEnv struct {
	backend  *service.BoardService
	projects service.ProjectService
	users    service.UserService
}

func newBoardEnv(t *testing.T) *boardEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &boardEnv{
		backend:  service.NewBoardService(database, testutil.NewTestUoW(database)),
		projects: service.NewProjectService(repository.NewSQLiteProjectRepo(database)),
		users:    service.NewUserService(repository.NewSQLiteUserRepo(database)),
	}
}

func (e *boardEnv) project(t *testing.T, name string) string {
	t.Helper()
	p, err := e.projects.Create(context.Background(), name)
	require.NoError(t, err)
	return p.ID
}

func (e *boardEnv) user(t *testing.T, name string) string {
	t.Helper()
	u, err := e.users.Create(context.Background(), name, false)
	require.NoError(t, err)
	return u.ID
}

func (e *boardEnv) column(t *testing.T, projectID, name, actor string) string {
	t.Helper()
	id, err := e.backend.CreateColumn(context.Background(), projectID, name, actor)
	require.NoError(t, err)
	return id
}

func (e *boardEnv) tag(t *testing.T, projectID, name string) string {
	t.Helper()
	id, err := e.backend.CreateTag(context.Background(), projectID, name, "")
	require.NoError(t, err)
	return id
}

func (e *boardEnv) card(t *testing.T, projectID, columnID, title, actor string) string {
	t.Helper()
	id, err := e.backend.CreateCard(context.Background(), domain.NewCard{
		ProjectID: projectID,
		ColumnID:  columnID,
		Title:     title,
		CreatedBy: actor,
	})
	require.NoError(t, err)
	return id
}

// columnCards returns the project's cards grouped by column name, in board order.
func (e *boardEnv) columnCards(t *testing.T, projectID string) map[string][]string {
	t.Helper()
	ctx := context.Background()
	columns, err := e.backend.ListColumns(ctx, projectID)
	require.NoError(t, err)
	cards, err := e.backend.ListCards(ctx, projectID)
	require.NoError(t, err)

	titles := make(map[string]string, len(cards))
	for _, c := range cards {
		titles[c.ID] = c.Title
	}
	out := make(map[string][]string, len(columns))
	for _, col := range columns {
		out[col.Name] = []string{}
		for _, id := range col.CardIDs {
			out[col.Name] = append(out[col.Name], titles[id])
		}
	}
	return out
}

// faultyBackend wraps a Backend and fails or panics on selected calls.
type faultyBackend struct {
	snapshot.Backend

	failColumn   map[string]bool // by column name
	failCard     map[string]bool // by card title
	failComments map[string]bool // by card id
	panicOnUsers bool
}

func (f *faultyBackend) CreateColumn(ctx context.Context, projectID, name, actingUserID string) (string, error) {
	if f.failColumn[name] {
		return "", errInjected
	}
	return f.Backend.CreateColumn(ctx, projectID, name, actingUserID)
}

func (f *faultyBackend) CreateCard(ctx context.Context, card domain.NewCard) (string, error) {
	if f.failCard[card.Title] {
		return "", errInjected
	}
	return f.Backend.CreateCard(ctx, card)
}

func (f *faultyBackend) GetComments(ctx context.Context, cardID string) ([]*domain.Comment, error) {
	if f.failComments[cardID] {
		return nil, errInjected
	}
	return f.Backend.GetComments(ctx, cardID)
}

func (f *faultyBackend) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if f.panicOnUsers {
		panic("user directory exploded")
	}
	return f.Backend.ListUsers(ctx)
}

var errInjected = errors.New("injected failure")

func ptrStr(s string) *string { return &s }

func schemaVersion(v int) *int { return &v }

func hasMessage(msgs []string, sub string) bool {
	for _, m := range msgs {
		if strings.Contains(strings.ToLower(m), strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
