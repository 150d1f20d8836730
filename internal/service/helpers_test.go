package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/kanri/internal/repository"
	"github.com/alexanderramin/kanri/internal/testutil"
	"github.com/stretchr/testify/require"
)

func setupBoard(t *testing.T) (*BoardService, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewBoardService(database, testutil.NewTestUoW(database)), database
}

// seedProject creates a project and an acting user.
func seedProject(t *testing.T, database *sql.DB) (projectID, userID string) {
	t.Helper()
	ctx := context.Background()
	p, err := NewProjectService(repository.NewSQLiteProjectRepo(database)).Create(ctx, "Board")
	require.NoError(t, err)
	u, err := NewUserService(repository.NewSQLiteUserRepo(database)).Create(ctx, "Alice", false)
	require.NoError(t, err)
	return p.ID, u.ID
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.events)
	return o.events[len(o.events)-1]
}
