package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/kanri/internal/db"
	"github.com/alexanderramin/kanri/internal/domain"
	"github.com/alexanderramin/kanri/internal/repository"
	"github.com/alexanderramin/kanri/internal/snapshot"
	"github.com/google/uuid"
)

var _ snapshot.Backend = (*BoardService)(nil)

// BoardService is the SQLite-backed board backend. Each mutation commits
// together with its revision log entry.
type BoardService struct {
	uow db.UnitOfWork

	projects  repository.ProjectRepo
	users     repository.UserRepo
	columns   repository.ColumnRepo
	cards     repository.CardRepo
	tags      repository.TagRepo
	comments  repository.CommentRepo
	revisions repository.RevisionRepo
	presets   repository.FilterPresetRepo
}

func NewBoardService(conn db.DBTX, uow db.UnitOfWork) *BoardService {
	return &BoardService{
		uow:       uow,
		projects:  repository.NewSQLiteProjectRepo(conn),
		users:     repository.NewSQLiteUserRepo(conn),
		columns:   repository.NewSQLiteColumnRepo(conn),
		cards:     repository.NewSQLiteCardRepo(conn),
		tags:      repository.NewSQLiteTagRepo(conn),
		comments:  repository.NewSQLiteCommentRepo(conn),
		revisions: repository.NewSQLiteRevisionRepo(conn),
		presets:   repository.NewSQLiteFilterPresetRepo(conn),
	}
}

func (s *BoardService) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, projectID)
}

func (s *BoardService) ListColumns(ctx context.Context, projectID string) ([]*domain.Column, error) {
	return s.columns.ListByProject(ctx, projectID)
}

func (s *BoardService) CreateColumn(ctx context.Context, projectID, name, actingUserID string) (string, error) {
	col := &domain.Column{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      strings.TrimSpace(name),
		CreatedBy: actingUserID,
		CreatedAt: domain.NowMillis(),
	}
	if err := col.ValidateName(); err != nil {
		return "", err
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txColumns := repository.NewSQLiteColumnRepo(tx)

		pos, err := txColumns.NextPosition(ctx, projectID)
		if err != nil {
			return err
		}
		col.Position = pos
		if err := txColumns.Create(ctx, col); err != nil {
			return err
		}
		return logRevision(ctx, tx, projectID, "", actingUserID, domain.ActionColumnCreated,
			fmt.Sprintf("created column %q", col.Name))
	})
	if err != nil {
		return "", err
	}
	return col.ID, nil
}

// DeleteColumn removes the column and, through the schema, its cards.
func (s *BoardService) DeleteColumn(ctx context.Context, columnID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txColumns := repository.NewSQLiteColumnRepo(tx)

		col, err := txColumns.GetByID(ctx, columnID)
		if err != nil {
			return err
		}
		if err := txColumns.Delete(ctx, columnID); err != nil {
			return err
		}
		return logRevision(ctx, tx, col.ProjectID, "", "", domain.ActionColumnDeleted,
			fmt.Sprintf("deleted column %q with %d card(s)", col.Name, len(col.CardIDs)))
	})
}

func (s *BoardService) ListCards(ctx context.Context, projectID string) ([]*domain.Card, error) {
	return s.cards.ListByProject(ctx, projectID)
}

// CreateCard appends a card to the end of its column.
func (s *BoardService) CreateCard(ctx context.Context, nc domain.NewCard) (string, error) {
	nc.Title = strings.TrimSpace(nc.Title)
	if err := nc.Validate(); err != nil {
		return "", err
	}
	card := &domain.Card{
		ID:          uuid.New().String(),
		ProjectID:   nc.ProjectID,
		ColumnID:    nc.ColumnID,
		Title:       nc.Title,
		Description: nc.Description,
		TagIDs:      []string{},
		CreatedBy:   nc.CreatedBy,
		CreatedAt:   domain.NowMillis(),
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txColumns := repository.NewSQLiteColumnRepo(tx)
		txCards := repository.NewSQLiteCardRepo(tx)

		col, err := txColumns.GetByID(ctx, nc.ColumnID)
		if err != nil {
			return err
		}
		if col.ProjectID != nc.ProjectID {
			return fmt.Errorf("column %q does not belong to project %s", col.Name, nc.ProjectID)
		}

		pos, err := txCards.NextPosition(ctx, nc.ColumnID)
		if err != nil {
			return err
		}
		card.Position = pos
		if err := txCards.Create(ctx, card); err != nil {
			return err
		}
		return logRevision(ctx, tx, card.ProjectID, card.ID, nc.CreatedBy, domain.ActionCardCreated,
			fmt.Sprintf("created card %q in %q", card.Title, col.Name))
	})
	if err != nil {
		return "", err
	}
	return card.ID, nil
}

// AssignCard sets or clears (nil assigneeID) the card's assignee.
func (s *BoardService) AssignCard(ctx context.Context, cardID string, assigneeID *string, actingUserID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCards := repository.NewSQLiteCardRepo(tx)

		card, err := txCards.GetByID(ctx, cardID)
		if err != nil {
			return err
		}
		details := "unassigned card"
		if assigneeID != nil {
			user, err := repository.NewSQLiteUserRepo(tx).GetByID(ctx, *assigneeID)
			if err != nil {
				return err
			}
			details = fmt.Sprintf("assigned card to %s", user.Name)
		}
		if err := txCards.UpdateAssignee(ctx, cardID, assigneeID); err != nil {
			return err
		}
		return logRevision(ctx, tx, card.ProjectID, cardID, actingUserID, domain.ActionCardAssigned, details)
	})
}

// UpdateCardTags replaces the card's tags. Every tag must belong to the
// card's project.
func (s *BoardService) UpdateCardTags(ctx context.Context, cardID string, tagIDs []string, actingUserID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCards := repository.NewSQLiteCardRepo(tx)
		txTags := repository.NewSQLiteTagRepo(tx)

		card, err := txCards.GetByID(ctx, cardID)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(tagIDs))
		for _, id := range tagIDs {
			tag, err := txTags.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if tag.ProjectID != card.ProjectID {
				return fmt.Errorf("tag %q does not belong to the card's project", tag.Name)
			}
			names = append(names, tag.Name)
		}
		if err := txCards.ReplaceTags(ctx, cardID, tagIDs); err != nil {
			return err
		}
		return logRevision(ctx, tx, card.ProjectID, cardID, actingUserID, domain.ActionCardTagged,
			fmt.Sprintf("set tags [%s]", strings.Join(names, ", ")))
	})
}

// UpdateCardDueDate sets or clears (nil dueDate) the card's due date.
func (s *BoardService) UpdateCardDueDate(ctx context.Context, cardID string, dueDate *int64, actingUserID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCards := repository.NewSQLiteCardRepo(tx)

		card, err := txCards.GetByID(ctx, cardID)
		if err != nil {
			return err
		}
		if err := txCards.UpdateDueDate(ctx, cardID, dueDate); err != nil {
			return err
		}
		details := "cleared due date"
		if dueDate != nil {
			details = "set due date to " + snapshot.MillisToISO(*dueDate)
		}
		return logRevision(ctx, tx, card.ProjectID, cardID, actingUserID, domain.ActionCardDueDateSet, details)
	})
}

func (s *BoardService) ListTags(ctx context.Context, projectID string) ([]*domain.Tag, error) {
	return s.tags.ListByProject(ctx, projectID)
}

func (s *BoardService) CreateTag(ctx context.Context, projectID, name, color string) (string, error) {
	tag := &domain.Tag{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      strings.TrimSpace(name),
		Color:     domain.CoalesceStr(color, domain.DefaultTagColor),
	}
	if err := tag.ValidateName(); err != nil {
		return "", err
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteTagRepo(tx).Create(ctx, tag); err != nil {
			return err
		}
		return logRevision(ctx, tx, projectID, "", "", domain.ActionTagCreated,
			fmt.Sprintf("created tag %q", tag.Name))
	})
	if err != nil {
		return "", err
	}
	return tag.ID, nil
}

func (s *BoardService) DeleteTag(ctx context.Context, tagID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTags := repository.NewSQLiteTagRepo(tx)

		tag, err := txTags.GetByID(ctx, tagID)
		if err != nil {
			return err
		}
		if err := txTags.Delete(ctx, tagID); err != nil {
			return err
		}
		return logRevision(ctx, tx, tag.ProjectID, "", "", domain.ActionTagDeleted,
			fmt.Sprintf("deleted tag %q", tag.Name))
	})
}

func (s *BoardService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// CreateUser stores u with a fresh id and returns it. An empty credential
// is stored as domain.CredentialUnset.
func (s *BoardService) CreateUser(ctx context.Context, u *domain.User) (string, error) {
	created := *u
	created.ID = uuid.New().String()
	created.Name = strings.TrimSpace(created.Name)
	created.Credential = domain.CoalesceStr(created.Credential, domain.CredentialUnset)
	created.CreatedAt = domain.NowMillis()
	if err := created.ValidateName(); err != nil {
		return "", err
	}
	if err := s.users.Create(ctx, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (s *BoardService) ListFilterPresets(ctx context.Context, projectID string) ([]*domain.FilterPreset, error) {
	return s.presets.ListByProject(ctx, projectID)
}

func (s *BoardService) SaveFilterPreset(ctx context.Context, p *domain.FilterPreset) (string, error) {
	saved := *p
	saved.ID = uuid.New().String()
	saved.CreatedAt = domain.NowMillis()
	if saved.TagIDs == nil {
		saved.TagIDs = []string{}
	}
	if err := saved.Validate(); err != nil {
		return "", err
	}
	if err := s.presets.Create(ctx, &saved); err != nil {
		return "", err
	}
	return saved.ID, nil
}

func (s *BoardService) DeleteFilterPreset(ctx context.Context, presetID string) error {
	return s.presets.Delete(ctx, presetID)
}

func (s *BoardService) GetComments(ctx context.Context, cardID string) ([]*domain.Comment, error) {
	return s.comments.ListByCard(ctx, cardID)
}

func (s *BoardService) AddComment(ctx context.Context, cardID, authorID, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("comment text is required")
	}
	comment := &domain.Comment{
		ID:        uuid.New().String(),
		CardID:    cardID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: domain.NowMillis(),
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		card, err := repository.NewSQLiteCardRepo(tx).GetByID(ctx, cardID)
		if err != nil {
			return err
		}
		if err := repository.NewSQLiteCommentRepo(tx).Create(ctx, comment); err != nil {
			return err
		}
		return logRevision(ctx, tx, card.ProjectID, cardID, authorID, domain.ActionCommentAdded, "added a comment")
	})
	if err != nil {
		return "", err
	}
	return comment.ID, nil
}

func (s *BoardService) GetCardRevisions(ctx context.Context, cardID string) ([]*domain.Revision, error) {
	return s.revisions.ListByCard(ctx, cardID)
}

func (s *BoardService) GetProjectRevisions(ctx context.Context, projectID string) ([]*domain.Revision, error) {
	return s.revisions.ListByProject(ctx, projectID)
}

// GetCard returns a single card with its tag ids.
func (s *BoardService) GetCard(ctx context.Context, cardID string) (*domain.Card, error) {
	return s.cards.GetByID(ctx, cardID)
}

func logRevision(ctx context.Context, tx db.DBTX, projectID, cardID, userID string, action domain.RevisionAction, details string) error {
	return repository.NewSQLiteRevisionRepo(tx).Create(ctx, &domain.Revision{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		CardID:    cardID,
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: domain.NowMillis(),
	})
}
