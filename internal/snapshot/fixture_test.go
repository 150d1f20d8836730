package snapshot_test

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/alexanderramin/kanri/internal/snapshot"
	"github.com/stretchr/testify/require"
)

// sourceBoard is a populated project used as export input.
type sourceBoard struct {
	projectID    string
	alice        string
	bob          string
	todo         string
	doing        string
	done         string
	bug          string
	feature      string
	draftRoadmap string
	fixLogin     string
	shipIt       string
}

var dueJuly = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

// seedSource builds:
//
//	Todo:  Draft roadmap, Fix login (bob, [bug], due 2025-07-01, 1 comment)
//	Doing: Ship it (1 comment)
//	Done:  (empty)
//
// plus tags bug and feature and one filter preset.
func seedSource(t *testing.T, env *boardEnv) sourceBoard {
	t.Helper()
	ctx := context.Background()

	var s sourceBoard
	s.projectID = env.project(t, "Source")
	s.alice = env.user(t, "Alice")
	s.bob = env.user(t, "Bob")

	s.todo = env.column(t, s.projectID, "Todo", s.alice)
	s.doing = env.column(t, s.projectID, "Doing", s.alice)
	s.done = env.column(t, s.projectID, "Done", s.alice)

	s.bug = env.tag(t, s.projectID, "bug")
	s.feature = env.tag(t, s.projectID, "feature")

	s.draftRoadmap = env.card(t, s.projectID, s.todo, "Draft roadmap", s.alice)
	s.fixLogin = env.card(t, s.projectID, s.todo, "Fix login", s.alice)
	s.shipIt = env.card(t, s.projectID, s.doing, "Ship it", s.alice)

	require.NoError(t, env.backend.AssignCard(ctx, s.fixLogin, &s.bob, s.alice))
	require.NoError(t, env.backend.UpdateCardTags(ctx, s.fixLogin, []string{s.bug}, s.alice))
	require.NoError(t, env.backend.UpdateCardDueDate(ctx, s.fixLogin, &dueJuly, s.alice))
	_, err := env.backend.AddComment(ctx, s.fixLogin, s.alice, "reproduced on staging")
	require.NoError(t, err)
	_, err = env.backend.AddComment(ctx, s.shipIt, s.bob, "waiting on review")
	require.NoError(t, err)

	field := domain.DateFieldDue
	_, err = env.backend.SaveFilterPreset(ctx, &domain.FilterPreset{
		ProjectID:  s.projectID,
		Name:       "Bob's bugs",
		CreatedBy:  s.alice,
		AssigneeID: &s.bob,
		TagIDs:     []string{s.bug, s.feature},
		DateField:  &field,
		DateFrom:   ptrStr("2025-01-01"),
	})
	require.NoError(t, err)
	return s
}

func exportSource(t *testing.T, env *boardEnv, projectID string) *snapshot.Document {
	t.Helper()
	doc, err := snapshot.NewExporter(env.backend).Export(context.Background(), projectID)
	require.NoError(t, err)
	return doc
}

func findCard(t *testing.T, doc *snapshot.Document, title string) snapshot.ExportedCard {
	t.Helper()
	for _, col := range doc.Project.Columns {
		for _, c := range col.Cards {
			if c.Title == title {
				return c
			}
		}
	}
	t.Fatalf("card %q not in document", title)
	return snapshot.ExportedCard{}
}

func userIDByName(t *testing.T, env *boardEnv, name string) string {
	t.Helper()
	users, err := env.backend.ListUsers(context.Background())
	require.NoError(t, err)
	for _, u := range users {
		if u.Name == name {
			return u.ID
		}
	}
	t.Fatalf("user %q not found", name)
	return ""
}
