package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/kanri/internal/domain"
)

// Exporter assembles a Document from the backend's current state.
type Exporter struct {
	backend Backend
	opts    options
}

func NewExporter(backend Backend, opts ...Option) *Exporter {
	return &Exporter{backend: backend, opts: buildOptions(opts)}
}

// boardState is the result of the bulk reads that start an export.
type boardState struct {
	project   *domain.Project
	columns   []*domain.Column
	cards     []*domain.Card
	users     []*domain.User
	tags      []*domain.Tag
	revisions []*domain.Revision
	presets   []*domain.FilterPreset
}

// cardActivity holds the per-card reads, indexed like boardState.cards.
type cardActivity struct {
	comments [][]*domain.Comment
	history  [][]*domain.Revision
}

// Export reads the project and returns its snapshot. It fails only when
// one of the bulk reads fails, in which case every failed read is
// reported. Per-card comment or history failures are logged and exported
// as empty lists.
func (e *Exporter) Export(ctx context.Context, projectID string) (*Document, error) {
	log := e.opts.logger.With("project_id", projectID)
	log.DebugContext(ctx, "export started")

	state, err := e.readBoard(ctx, projectID)
	if err != nil {
		log.ErrorContext(ctx, "export aborted", "error", err)
		return nil, fmt.Errorf("exporting project %s: %w", projectID, err)
	}

	activity := e.readCardActivity(ctx, log, state.cards)

	cardIndex := make(map[string]int, len(state.cards))
	for i, c := range state.cards {
		cardIndex[c.ID] = i
	}

	columns := make([]ExportedColumn, 0, len(state.columns))
	for _, col := range state.columns {
		ec := ExportedColumn{ID: col.ID, Name: col.Name, Cards: []ExportedCard{}}
		for _, cardID := range col.CardIDs {
			i, ok := cardIndex[cardID]
			if !ok {
				continue
			}
			ec.Cards = append(ec.Cards, exportCard(state.cards[i], len(ec.Cards), activity.comments[i], activity.history[i]))
		}
		columns = append(columns, ec)
	}

	projectActivity := []ExportedRevision{}
	for _, rev := range state.revisions {
		if rev.IsProjectLevel() {
			projectActivity = append(projectActivity, exportRevision(rev))
		}
	}

	version := CurrentSchemaVersion
	doc := &Document{
		SchemaVersion: &version,
		ExportedAt:    MillisToISO(e.opts.now().UnixMilli()),
		Meta:          documentMeta(),
		Users:         exportUsers(state.users),
		Project: &ExportedProject{
			ID:            state.project.ID,
			Name:          state.project.Name,
			Columns:       columns,
			Tags:          exportTags(state.tags),
			Activity:      projectActivity,
			FilterPresets: exportPresets(state.presets),
		},
	}

	log.DebugContext(ctx, "export finished",
		"columns", len(columns), "cards", doc.CardCount(), "tags", len(doc.Project.Tags))
	return doc, nil
}

func (e *Exporter) readBoard(ctx context.Context, projectID string) (*boardState, error) {
	var s boardState
	reads := []func(ctx context.Context) error{
		func(ctx context.Context) (err error) {
			s.project, err = e.backend.GetProject(ctx, projectID)
			return wrapRead("project", err)
		},
		func(ctx context.Context) (err error) {
			s.columns, err = e.backend.ListColumns(ctx, projectID)
			return wrapRead("columns", err)
		},
		func(ctx context.Context) (err error) {
			s.cards, err = e.backend.ListCards(ctx, projectID)
			return wrapRead("cards", err)
		},
		func(ctx context.Context) (err error) {
			s.users, err = e.backend.ListUsers(ctx)
			return wrapRead("users", err)
		},
		func(ctx context.Context) (err error) {
			s.tags, err = e.backend.ListTags(ctx, projectID)
			return wrapRead("tags", err)
		},
		func(ctx context.Context) (err error) {
			s.revisions, err = e.backend.GetProjectRevisions(ctx, projectID)
			return wrapRead("project revisions", err)
		},
		func(ctx context.Context) (err error) {
			s.presets, err = e.backend.ListFilterPresets(ctx, projectID)
			return wrapRead("filter presets", err)
		},
	}

	errs := runAll(ctx, len(reads), len(reads), func(ctx context.Context, i int) error {
		return reads[i](ctx)
	})
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if s.project == nil {
		return nil, fmt.Errorf("reading project: %w", ErrMissingProject)
	}
	return &s, nil
}

// readCardActivity fetches comments and history for every card, two
// tasks per card.
func (e *Exporter) readCardActivity(ctx context.Context, log *slog.Logger, cards []*domain.Card) cardActivity {
	a := cardActivity{
		comments: make([][]*domain.Comment, len(cards)),
		history:  make([][]*domain.Revision, len(cards)),
	}
	errs := runAll(ctx, e.opts.fanoutLimit, 2*len(cards), func(ctx context.Context, i int) (err error) {
		card := cards[i/2]
		if i%2 == 0 {
			a.comments[i/2], err = e.backend.GetComments(ctx, card.ID)
		} else {
			a.history[i/2], err = e.backend.GetCardRevisions(ctx, card.ID)
		}
		return err
	})
	for i, err := range errs {
		if err == nil {
			continue
		}
		field := "comments"
		if i%2 == 1 {
			field = "history"
		}
		log.WarnContext(ctx, "card read failed, exporting empty list",
			"card_id", cards[i/2].ID, "field", field, "error", err)
	}
	return a
}

func wrapRead(what string, err error) error {
	if err != nil {
		return fmt.Errorf("reading %s: %w", what, err)
	}
	return nil
}

func exportCard(c *domain.Card, order int, comments []*domain.Comment, history []*domain.Revision) ExportedCard {
	ec := ExportedCard{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Order:       order,
		AssigneeID:  c.AssigneeID,
		TagIDs:      append([]string{}, c.TagIDs...),
		DueDate:     optionalISO(c.DueDate),
		CreatedAt:   MillisToISO(c.CreatedAt),
		Comments:    make([]ExportedComment, 0, len(comments)),
		History:     make([]ExportedRevision, 0, len(history)),
	}
	for _, cm := range comments {
		ec.Comments = append(ec.Comments, ExportedComment{
			ID:         cm.ID,
			AuthorID:   cm.AuthorID,
			AuthorName: cm.AuthorName,
			Text:       cm.Text,
			CreatedAt:  MillisToISO(cm.CreatedAt),
		})
	}
	for _, rev := range history {
		ec.History = append(ec.History, exportRevision(rev))
	}
	return ec
}

func exportRevision(r *domain.Revision) ExportedRevision {
	return ExportedRevision{
		ID:        r.ID,
		CardID:    r.CardID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Action:    string(r.Action),
		Details:   r.Details,
		CreatedAt: MillisToISO(r.CreatedAt),
	}
}

// exportUsers omits credentials.
func exportUsers(users []*domain.User) []ExportedUser {
	out := make([]ExportedUser, 0, len(users))
	for _, u := range users {
		out = append(out, ExportedUser{
			ID:            u.ID,
			Name:          u.Name,
			IsAdmin:       u.IsAdmin,
			IsMasterAdmin: u.IsMasterAdmin,
		})
	}
	return out
}

func exportTags(tags []*domain.Tag) []ExportedTag {
	out := make([]ExportedTag, 0, len(tags))
	for _, t := range tags {
		out = append(out, ExportedTag{ID: t.ID, Name: t.Name, Color: t.Color})
	}
	return out
}

func exportPresets(presets []*domain.FilterPreset) []ExportedFilterPreset {
	out := make([]ExportedFilterPreset, 0, len(presets))
	for _, p := range presets {
		ep := ExportedFilterPreset{
			ID:             p.ID,
			Name:           p.Name,
			CreatedBy:      p.CreatedBy,
			AssigneeID:     p.AssigneeID,
			TagIDs:         append([]string{}, p.TagIDs...),
			UnassignedOnly: p.UnassignedOnly,
			Search:         p.Search,
			DateFrom:       p.DateFrom,
			DateTo:         p.DateTo,
		}
		if p.DateField != nil {
			field := string(*p.DateField)
			ep.DateField = &field
		}
		out = append(out, ep)
	}
	return out
}
