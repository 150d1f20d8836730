package repository

import (
	"context"

	"github.com/alexanderramin/kanri/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type ColumnRepo interface {
	Create(ctx context.Context, c *domain.Column) error
	GetByID(ctx context.Context, id string) (*domain.Column, error)
	// ListByProject returns columns ordered by position, each with its
	// card ids in board order.
	ListByProject(ctx context.Context, projectID string) ([]*domain.Column, error)
	NextPosition(ctx context.Context, projectID string) (int, error)
	Delete(ctx context.Context, id string) error
}

type CardRepo interface {
	Create(ctx context.Context, c *domain.Card) error
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Card, error)
	NextPosition(ctx context.Context, columnID string) (int, error)
	UpdateAssignee(ctx context.Context, id string, assigneeID *string) error
	UpdateDueDate(ctx context.Context, id string, dueDate *int64) error
	ReplaceTags(ctx context.Context, id string, tagIDs []string) error
	Delete(ctx context.Context, id string) error
}

type TagRepo interface {
	Create(ctx context.Context, t *domain.Tag) error
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Tag, error)
	Delete(ctx context.Context, id string) error
}

type CommentRepo interface {
	Create(ctx context.Context, c *domain.Comment) error
	ListByCard(ctx context.Context, cardID string) ([]*domain.Comment, error)
}

type RevisionRepo interface {
	Create(ctx context.Context, r *domain.Revision) error
	ListByCard(ctx context.Context, cardID string) ([]*domain.Revision, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Revision, error)
}

type FilterPresetRepo interface {
	Create(ctx context.Context, f *domain.FilterPreset) error
	GetByID(ctx context.Context, id string) (*domain.FilterPreset, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.FilterPreset, error)
	Delete(ctx context.Context, id string) error
}
