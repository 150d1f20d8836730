package mocks

import (
	"context"

	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Backend is a mock for snapshot.Backend.
type Backend struct {
	mock.Mock
}

func (m *Backend) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if p, ok := args.Get(0).(*domain.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) ListColumns(ctx context.Context, projectID string) ([]*domain.Column, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]*domain.Column); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) CreateColumn(ctx context.Context, projectID, name, actingUserID string) (string, error) {
	args := m.Called(ctx, projectID, name, actingUserID)
	return args.String(0), args.Error(1)
}

func (m *Backend) DeleteColumn(ctx context.Context, columnID string) error {
	args := m.Called(ctx, columnID)
	return args.Error(0)
}

func (m *Backend) ListCards(ctx context.Context, projectID string) ([]*domain.Card, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]*domain.Card); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) CreateCard(ctx context.Context, card domain.NewCard) (string, error) {
	args := m.Called(ctx, card)
	return args.String(0), args.Error(1)
}

func (m *Backend) AssignCard(ctx context.Context, cardID string, assigneeID *string, actingUserID string) error {
	args := m.Called(ctx, cardID, assigneeID, actingUserID)
	return args.Error(0)
}

func (m *Backend) UpdateCardTags(ctx context.Context, cardID string, tagIDs []string, actingUserID string) error {
	args := m.Called(ctx, cardID, tagIDs, actingUserID)
	return args.Error(0)
}

func (m *Backend) UpdateCardDueDate(ctx context.Context, cardID string, dueDate *int64, actingUserID string) error {
	args := m.Called(ctx, cardID, dueDate, actingUserID)
	return args.Error(0)
}

func (m *Backend) ListTags(ctx context.Context, projectID string) ([]*domain.Tag, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]*domain.Tag); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) CreateTag(ctx context.Context, projectID, name, color string) (string, error) {
	args := m.Called(ctx, projectID, name, color)
	return args.String(0), args.Error(1)
}

func (m *Backend) DeleteTag(ctx context.Context, tagID string) error {
	args := m.Called(ctx, tagID)
	return args.Error(0)
}

func (m *Backend) ListUsers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]*domain.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) CreateUser(ctx context.Context, u *domain.User) (string, error) {
	args := m.Called(ctx, u)
	return args.String(0), args.Error(1)
}

func (m *Backend) ListFilterPresets(ctx context.Context, projectID string) ([]*domain.FilterPreset, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]*domain.FilterPreset); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) SaveFilterPreset(ctx context.Context, p *domain.FilterPreset) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *Backend) DeleteFilterPreset(ctx context.Context, presetID string) error {
	args := m.Called(ctx, presetID)
	return args.Error(0)
}

func (m *Backend) GetComments(ctx context.Context, cardID string) ([]*domain.Comment, error) {
	args := m.Called(ctx, cardID)
	if list, ok := args.Get(0).([]*domain.Comment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) AddComment(ctx context.Context, cardID, authorID, text string) (string, error) {
	args := m.Called(ctx, cardID, authorID, text)
	return args.String(0), args.Error(1)
}

func (m *Backend) GetCardRevisions(ctx context.Context, cardID string) ([]*domain.Revision, error) {
	args := m.Called(ctx, cardID)
	if list, ok := args.Get(0).([]*domain.Revision); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) GetProjectRevisions(ctx context.Context, projectID string) ([]*domain.Revision, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]*domain.Revision); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
