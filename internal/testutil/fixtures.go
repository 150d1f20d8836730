package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/google/uuid"
)

var fixtureClock atomic.Int64

// tick returns strictly increasing millisecond timestamps so fixtures
// created in sequence sort deterministically.
func tick() int64 {
	return 1_700_000_000_000 + fixtureClock.Add(1)
}

func NewTestProject(name string) *domain.Project {
	return &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: tick(),
	}
}

// User options
type UserOption func(*domain.User)

func WithAdmin() UserOption {
	return func(u *domain.User) {
		u.IsAdmin = true
	}
}

func WithCredential(c string) UserOption {
	return func(u *domain.User) {
		u.Credential = c
	}
}

func NewTestUser(name string, opts ...UserOption) *domain.User {
	u := &domain.User{
		ID:         uuid.New().String(),
		Name:       name,
		Credential: domain.CredentialUnset,
		CreatedAt:  tick(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func NewTestColumn(projectID, name string, position int) *domain.Column {
	return &domain.Column{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Position:  position,
		CreatedAt: tick(),
	}
}

// Card options
type CardOption func(*domain.Card)

func WithPosition(p int) CardOption {
	return func(c *domain.Card) {
		c.Position = p
	}
}

func WithAssignee(userID string) CardOption {
	return func(c *domain.Card) {
		c.AssigneeID = &userID
	}
}

func WithTags(tagIDs ...string) CardOption {
	return func(c *domain.Card) {
		c.TagIDs = tagIDs
	}
}

func WithDueDate(ms int64) CardOption {
	return func(c *domain.Card) {
		c.DueDate = &ms
	}
}

func WithDescription(d string) CardOption {
	return func(c *domain.Card) {
		c.Description = d
	}
}

func NewTestCard(col *domain.Column, title string, opts ...CardOption) *domain.Card {
	c := &domain.Card{
		ID:        uuid.New().String(),
		ProjectID: col.ProjectID,
		ColumnID:  col.ID,
		Title:     title,
		CreatedAt: tick(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewTestTag(projectID, name string) *domain.Tag {
	return &domain.Tag{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Color:     domain.DefaultTagColor,
	}
}

func NewTestComment(cardID, authorID, text string) *domain.Comment {
	return &domain.Comment{
		ID:        uuid.New().String(),
		CardID:    cardID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: tick(),
	}
}

func NewTestRevision(projectID, cardID, userID string, action domain.RevisionAction) *domain.Revision {
	return &domain.Revision{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		CardID:    cardID,
		UserID:    userID,
		Action:    action,
		Details:   fmt.Sprintf("%s by %s", action, userID),
		CreatedAt: tick(),
	}
}

func NewTestFilterPreset(projectID, name, createdBy string) *domain.FilterPreset {
	return &domain.FilterPreset{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		CreatedBy: createdBy,
		TagIDs:    []string{},
		CreatedAt: tick(),
	}
}
