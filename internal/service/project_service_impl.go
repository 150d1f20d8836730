package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/alexanderramin/kanri/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
}

func NewProjectService(projects repository.ProjectRepo) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) Create(ctx context.Context, name string) (*domain.Project, error) {
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedAt: domain.NowMillis(),
	}
	if err := p.ValidateName(); err != nil {
		return nil, err
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

// Delete removes the project and everything scoped to it.
func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

type userService struct {
	users repository.UserRepo
}

func NewUserService(users repository.UserRepo) UserService {
	return &userService{users: users}
}

// Create adds a user without a credential.
func (s *userService) Create(ctx context.Context, name string, isAdmin bool) (*domain.User, error) {
	u := &domain.User{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(name),
		Credential: domain.CredentialUnset,
		IsAdmin:    isAdmin,
		CreatedAt:  domain.NowMillis(),
	}
	if err := u.ValidateName(); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}
