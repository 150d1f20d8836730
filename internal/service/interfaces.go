package service

import (
	"context"

	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/alexanderramin/kanri/internal/snapshot"
)

type ProjectService interface {
	Create(ctx context.Context, name string) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type UserService interface {
	Create(ctx context.Context, name string, isAdmin bool) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// ImportService loads snapshot documents into an existing project.
type ImportService interface {
	ImportFile(ctx context.Context, path, projectID, actingUserID string, mode snapshot.Mode) (*snapshot.ImportResult, error)
	ImportDocument(ctx context.Context, doc *snapshot.Document, projectID, actingUserID string, mode snapshot.Mode) (*snapshot.ImportResult, error)
}

type ExportService interface {
	ExportProject(ctx context.Context, projectID string) (*snapshot.Document, error)
	ExportToFile(ctx context.Context, projectID, path string) (*snapshot.Document, error)
}
