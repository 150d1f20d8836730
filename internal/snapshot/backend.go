package snapshot

import (
	"context"

	"github.com/alexanderramin/kanri/internal/domain"
)

// Backend is the board service the snapshot engine reads from and writes
// to. Every call is independently atomic; the engine never relies on
// several calls committing together. Create methods return the new id.
type Backend interface {
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)

	ListColumns(ctx context.Context, projectID string) ([]*domain.Column, error)
	CreateColumn(ctx context.Context, projectID, name, actingUserID string) (string, error)
	DeleteColumn(ctx context.Context, columnID string) error

	ListCards(ctx context.Context, projectID string) ([]*domain.Card, error)
	CreateCard(ctx context.Context, card domain.NewCard) (string, error)
	AssignCard(ctx context.Context, cardID string, assigneeID *string, actingUserID string) error
	UpdateCardTags(ctx context.Context, cardID string, tagIDs []string, actingUserID string) error
	UpdateCardDueDate(ctx context.Context, cardID string, dueDate *int64, actingUserID string) error

	ListTags(ctx context.Context, projectID string) ([]*domain.Tag, error)
	CreateTag(ctx context.Context, projectID, name, color string) (string, error)
	DeleteTag(ctx context.Context, tagID string) error

	ListUsers(ctx context.Context) ([]*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) (string, error)

	ListFilterPresets(ctx context.Context, projectID string) ([]*domain.FilterPreset, error)
	SaveFilterPreset(ctx context.Context, p *domain.FilterPreset) (string, error)
	DeleteFilterPreset(ctx context.Context, presetID string) error

	GetComments(ctx context.Context, cardID string) ([]*domain.Comment, error)
	AddComment(ctx context.Context, cardID, authorID, text string) (string, error)

	GetCardRevisions(ctx context.Context, cardID string) ([]*domain.Revision, error)
	GetProjectRevisions(ctx context.Context, projectID string) ([]*domain.Revision, error)
}
