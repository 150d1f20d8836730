package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/kanri/internal/snapshot"
)

type importService struct {
	backend  snapshot.Backend
	importer *snapshot.Importer
	observer UseCaseObserver
}

func NewImportService(backend snapshot.Backend, opts []snapshot.Option, observers ...UseCaseObserver) ImportService {
	return &importService{
		backend:  backend,
		importer: snapshot.NewImporter(backend, opts...),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, path, projectID, actingUserID string, mode snapshot.Mode) (*snapshot.ImportResult, error) {
	doc, err := snapshot.LoadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot file: %w", err)
	}
	return s.ImportDocument(ctx, doc, projectID, actingUserID, mode)
}

// ImportDocument checks the target project and mode, then runs the
// import. Entity-level failures are reported in the result, not as an
// error.
func (s *importService) ImportDocument(ctx context.Context, doc *snapshot.Document, projectID, actingUserID string, mode snapshot.Mode) (result *snapshot.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"project_id": projectID,
		"mode":       string(mode),
	}
	defer func() {
		if result != nil {
			fields["errors"] = len(result.Errors)
			fields["warnings"] = len(result.Warnings)
			fields["cards"] = result.Counts.Cards
			fields["unassigned_cards"] = result.UnassignedCardCount
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-document",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil && result != nil && result.Success,
			Err:       err,
			Fields:    fields,
		})
	}()

	if _, err = snapshot.ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if _, err = s.backend.GetProject(ctx, projectID); err != nil {
		return nil, fmt.Errorf("target project: %w", err)
	}

	return s.importer.Import(ctx, doc, projectID, actingUserID, mode), nil
}

type exportService struct {
	exporter *snapshot.Exporter
	observer UseCaseObserver
}

func NewExportService(backend snapshot.Backend, opts []snapshot.Option, observers ...UseCaseObserver) ExportService {
	return &exportService{
		exporter: snapshot.NewExporter(backend, opts...),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *exportService) ExportProject(ctx context.Context, projectID string) (doc *snapshot.Document, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{"project_id": projectID}
		if doc != nil {
			fields["columns"] = len(doc.Project.Columns)
			fields["cards"] = doc.CardCount()
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "export-project",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	return s.exporter.Export(ctx, projectID)
}

func (s *exportService) ExportToFile(ctx context.Context, projectID, path string) (*snapshot.Document, error) {
	doc, err := s.ExportProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := snapshot.SaveDocument(path, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
