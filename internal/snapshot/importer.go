package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/alexanderramin/kanri/internal/domain"
)

// Mode selects how an import treats the target project's existing data.
type Mode string

const (
	// ModeReplace deletes the project's columns, cards, tags and presets
	// before importing.
	ModeReplace Mode = "replace"
	// ModeMerge keeps existing data and reuses same-named tags and columns.
	ModeMerge Mode = "merge"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeReplace, ModeMerge:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidMode, s, ModeReplace, ModeMerge)
}

// Importer recreates a Document's contents in a target project.
type Importer struct {
	backend Backend
	opts    options
}

func NewImporter(backend Backend, opts ...Option) *Importer {
	return &Importer{backend: backend, opts: buildOptions(opts)}
}

// importRun is the state of a single Import call.
type importRun struct {
	backend   Backend
	opts      options
	log       *slog.Logger
	doc       *Document
	projectID string
	actor     string
	mode      Mode
	ids       *IDMap
	result    *ImportResult

	// Backend ids of columns and cards by document position, "" when not
	// imported. Document ids may be empty or repeated, positions are not.
	columnIDs []string
	cardIDs   [][]string
}

// Import runs the import pipeline and always returns a result. Users are
// reconciled by name in both modes. Entity failures are recorded and the
// run continues; only an unusable document, an unknown mode or a failed
// wipe listing stop it early.
func (im *Importer) Import(ctx context.Context, doc *Document, targetProjectID, actingUserID string, mode Mode) (result *ImportResult) {
	r := &importRun{
		backend:   im.backend,
		opts:      im.opts,
		log:       im.opts.logger.With("project_id", targetProjectID, "mode", string(mode)),
		doc:       doc,
		projectID: targetProjectID,
		actor:     actingUserID,
		mode:      mode,
		ids:       NewIDMap(),
		result:    newImportResult(),
	}
	result = r.result

	defer func() {
		if rec := recover(); rec != nil {
			r.log.ErrorContext(ctx, "import aborted by unexpected failure", "panic", rec)
			result.addError(fmt.Sprintf("import aborted by unexpected failure: %v", rec))
		}
		result.finish()
		r.log.InfoContext(ctx, "import finished",
			"success", result.Success,
			"errors", len(result.Errors),
			"warnings", len(result.Warnings),
			"unassigned_cards", result.UnassignedCardCount)
	}()

	if _, err := ParseMode(string(mode)); err != nil {
		r.abort(ctx, err)
		return result
	}
	if doc == nil {
		r.abort(ctx, ErrMissingProject)
		return result
	}
	r.checkSchema(ctx)
	if doc.Project == nil {
		r.abort(ctx, ErrMissingProject)
		return result
	}
	for _, err := range ValidateDocument(doc) {
		r.warn(ctx, "document: "+err.Error())
	}

	if mode == ModeReplace {
		if err := r.wipe(ctx); err != nil {
			r.abort(ctx, err)
			return result
		}
	}

	r.importUsers(ctx)
	r.importTags(ctx)
	r.importColumns(ctx)
	r.importCards(ctx)
	r.importComments(ctx)
	r.importPresets(ctx)
	return result
}

func (r *importRun) warn(ctx context.Context, msg string) {
	r.log.DebugContext(ctx, "import warning", "warning", msg)
	r.result.addWarning(msg)
}

func (r *importRun) fail(ctx context.Context, msg string) {
	r.log.WarnContext(ctx, "import entity failed", "error", msg)
	r.result.addError(msg)
}

func (r *importRun) abort(ctx context.Context, err error) {
	r.log.ErrorContext(ctx, "import aborted", "error", err)
	r.result.fatal(err)
}

func (r *importRun) checkSchema(ctx context.Context) {
	v := r.doc.SchemaVersion
	switch {
	case v == nil:
		r.warn(ctx, fmt.Sprintf("document has no schema version; assuming schema version %d defaults", CurrentSchemaVersion))
	case *v < CurrentSchemaVersion:
		r.warn(ctx, fmt.Sprintf("document schema version %d is older than %d; missing fields take defaults", *v, CurrentSchemaVersion))
	case *v > CurrentSchemaVersion:
		r.warn(ctx, fmt.Sprintf("document schema version %d is newer than %d; unknown fields are ignored", *v, CurrentSchemaVersion))
	}
}

// wipe deletes the target project's columns (and with them their cards),
// tags and filter presets. A failed listing is returned; failed deletions
// become warnings.
func (r *importRun) wipe(ctx context.Context) error {
	r.log.DebugContext(ctx, "stage wipe")

	var columns, tags, presets []string
	listings := []func(ctx context.Context) error{
		func(ctx context.Context) error {
			list, err := r.backend.ListColumns(ctx, r.projectID)
			for _, c := range list {
				columns = append(columns, c.ID)
			}
			return wrapRead("columns", err)
		},
		func(ctx context.Context) error {
			list, err := r.backend.ListTags(ctx, r.projectID)
			for _, t := range list {
				tags = append(tags, t.ID)
			}
			return wrapRead("tags", err)
		},
		func(ctx context.Context) error {
			list, err := r.backend.ListFilterPresets(ctx, r.projectID)
			for _, p := range list {
				presets = append(presets, p.ID)
			}
			return wrapRead("filter presets", err)
		},
	}
	errs := runAll(ctx, len(listings), len(listings), func(ctx context.Context, i int) error {
		return listings[i](ctx)
	})
	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("replace aborted, cannot list existing project data: %w", err)
		}
	}

	r.deleteAll(ctx, "column", columns, r.backend.DeleteColumn)
	r.deleteAll(ctx, "tag", tags, r.backend.DeleteTag)
	r.deleteAll(ctx, "filter preset", presets, r.backend.DeleteFilterPreset)
	return nil
}

func (r *importRun) deleteAll(ctx context.Context, kind string, ids []string, del func(ctx context.Context, id string) error) {
	errs := runAll(ctx, r.opts.fanoutLimit, len(ids), func(ctx context.Context, i int) error {
		return del(ctx, ids[i])
	})
	for i, err := range errs {
		if err != nil {
			r.warn(ctx, fmt.Sprintf("failed to delete existing %s %s: %v", kind, ids[i], err))
		}
	}
}

// importUsers reuses users by case-insensitive name and creates the rest
// without a credential. The user listing is refreshed after every
// creation so later names see the new accounts.
func (r *importRun) importUsers(ctx context.Context) {
	r.log.DebugContext(ctx, "stage users", "count", len(r.doc.Users))

	users := newNameIndex(func(ctx context.Context) ([]nameEntry, error) {
		list, err := r.backend.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		entries := make([]nameEntry, 0, len(list))
		for _, u := range list {
			entries = append(entries, nameEntry{ID: u.ID, Name: u.Name})
		}
		return entries, nil
	})
	if err := users.Refresh(ctx); err != nil {
		r.fail(ctx, fmt.Sprintf("listing users failed, no users imported: %v", err))
		return
	}

	for _, u := range r.doc.Users {
		if id, ok := users.Find(u.Name); ok {
			r.ids.Set(KindUser, u.ID, id)
			r.warn(ctx, fmt.Sprintf("user %q already exists, reusing existing account", u.Name))
			continue
		}

		id, err := r.backend.CreateUser(ctx, &domain.User{Name: u.Name, Credential: domain.CredentialUnset})
		if err != nil {
			r.fail(ctx, fmt.Sprintf("failed to create user %q: %v", u.Name, err))
			continue
		}
		r.ids.Set(KindUser, u.ID, id)
		r.result.Counts.Users++
		r.warn(ctx, fmt.Sprintf("user %q was created without a credential; an administrator must set one before they can sign in", u.Name))

		users.Add(u.Name, id)
		if err := users.Refresh(ctx); err != nil {
			r.warn(ctx, fmt.Sprintf("refreshing users after creating %q failed, continuing with known names: %v", u.Name, err))
		}
	}
}

// importTags reuses same-named tags in merge mode; replace mode always
// creates since the wipe removed the old ones.
func (r *importRun) importTags(ctx context.Context) {
	r.log.DebugContext(ctx, "stage tags", "count", len(r.doc.Project.Tags))

	tags := newNameIndex(func(ctx context.Context) ([]nameEntry, error) {
		list, err := r.backend.ListTags(ctx, r.projectID)
		if err != nil {
			return nil, err
		}
		entries := make([]nameEntry, 0, len(list))
		for _, t := range list {
			entries = append(entries, nameEntry{ID: t.ID, Name: t.Name})
		}
		return entries, nil
	})
	merge := r.mode == ModeMerge
	if merge {
		if err := tags.Refresh(ctx); err != nil {
			r.fail(ctx, fmt.Sprintf("listing tags failed, no tags imported: %v", err))
			return
		}
	}

	for _, t := range r.doc.Project.Tags {
		if merge {
			if id, ok := tags.Find(t.Name); ok {
				r.ids.Set(KindTag, t.ID, id)
				r.warn(ctx, fmt.Sprintf("tag %q already exists, reusing existing tag", t.Name))
				continue
			}
		}

		id, err := r.backend.CreateTag(ctx, r.projectID, t.Name, t.Color)
		if err != nil {
			r.fail(ctx, fmt.Sprintf("failed to create tag %q: %v", t.Name, err))
			continue
		}
		r.ids.Set(KindTag, t.ID, id)
		r.result.Counts.Tags++

		if merge {
			tags.Add(t.Name, id)
			if err := tags.Refresh(ctx); err != nil {
				r.warn(ctx, fmt.Sprintf("refreshing tags after creating %q failed, continuing with known names: %v", t.Name, err))
			}
		}
	}
}

// importColumns processes columns in document order. In merge mode the
// project's columns are re-read before each one.
func (r *importRun) importColumns(ctx context.Context) {
	r.log.DebugContext(ctx, "stage columns", "count", len(r.doc.Project.Columns))

	columns := newNameIndex(func(ctx context.Context) ([]nameEntry, error) {
		list, err := r.backend.ListColumns(ctx, r.projectID)
		if err != nil {
			return nil, err
		}
		entries := make([]nameEntry, 0, len(list))
		for _, c := range list {
			entries = append(entries, nameEntry{ID: c.ID, Name: c.Name})
		}
		return entries, nil
	})

	r.columnIDs = make([]string, len(r.doc.Project.Columns))
	for i, col := range r.doc.Project.Columns {
		if r.mode == ModeMerge {
			if err := columns.Refresh(ctx); err != nil {
				r.fail(ctx, fmt.Sprintf("column %q not imported, listing existing columns failed: %v", col.Name, err))
				continue
			}
			if id, ok := columns.Find(col.Name); ok {
				r.mapColumn(i, col.ID, id)
				continue
			}
		}

		id, err := r.backend.CreateColumn(ctx, r.projectID, col.Name, r.actor)
		if err != nil {
			r.fail(ctx, fmt.Sprintf("failed to create column %q: %v", col.Name, err))
			continue
		}
		r.mapColumn(i, col.ID, id)
		r.result.Counts.Columns++
	}
}

func (r *importRun) mapColumn(pos int, oldID, newID string) {
	r.columnIDs[pos] = newID
	if oldID != "" {
		r.ids.Set(KindColumn, oldID, newID)
	}
}

// importCards creates each column's cards in ascending Order. Cards of a
// column that did not resolve are quarantined rather than created.
func (r *importRun) importCards(ctx context.Context) {
	r.log.DebugContext(ctx, "stage cards", "count", r.doc.CardCount())

	r.cardIDs = make([][]string, len(r.doc.Project.Columns))
	for ci, col := range r.doc.Project.Columns {
		columnID := r.columnIDs[ci]
		r.cardIDs[ci] = make([]string, len(col.Cards))
		for _, k := range indexesByOrder(col.Cards) {
			c := col.Cards[k]
			if columnID == "" {
				r.result.quarantine(c.Title)
				continue
			}

			id, err := r.backend.CreateCard(ctx, domain.NewCard{
				ProjectID:   r.projectID,
				ColumnID:    columnID,
				Title:       c.Title,
				Description: c.Description,
				CreatedBy:   r.actor,
			})
			if err != nil {
				r.fail(ctx, fmt.Sprintf("failed to create card %q: %v", c.Title, err))
				continue
			}
			r.cardIDs[ci][k] = id
			if c.ID != "" {
				r.ids.Set(KindCard, c.ID, id)
			}
			r.result.Counts.Cards++
			r.enrichCard(ctx, id, c)
		}
	}
}

// enrichCard applies assignee, tags and due date to a created card. Each
// failure is a warning since the card itself exists. Tag references that
// do not resolve are dropped without a warning.
func (r *importRun) enrichCard(ctx context.Context, cardID string, c ExportedCard) {
	if c.AssigneeID != nil && *c.AssigneeID != "" {
		if userID, ok := r.ids.Resolve(KindUser, *c.AssigneeID); !ok {
			r.warn(ctx, fmt.Sprintf("card %q: assignee not found, left unassigned", c.Title))
		} else if err := r.backend.AssignCard(ctx, cardID, &userID, r.actor); err != nil {
			r.warn(ctx, fmt.Sprintf("card %q: failed to set assignee: %v", c.Title, err))
		}
	}

	if len(c.TagIDs) > 0 {
		if tagIDs := r.ids.ResolveAll(KindTag, c.TagIDs); len(tagIDs) > 0 {
			if err := r.backend.UpdateCardTags(ctx, cardID, tagIDs, r.actor); err != nil {
				r.warn(ctx, fmt.Sprintf("card %q: failed to set tags: %v", c.Title, err))
			}
		}
	}

	if c.DueDate != nil && *c.DueDate != "" {
		due, err := ISOToMillis(*c.DueDate)
		if err != nil {
			r.warn(ctx, fmt.Sprintf("card %q: due date %q could not be converted, left unset: %v", c.Title, *c.DueDate, err))
		} else if err := r.backend.UpdateCardDueDate(ctx, cardID, &due, r.actor); err != nil {
			r.warn(ctx, fmt.Sprintf("card %q: failed to set due date: %v", c.Title, err))
		}
	}
}

// importComments recreates comments of imported cards in document order,
// authored by the acting user.
func (r *importRun) importComments(ctx context.Context) {
	r.log.DebugContext(ctx, "stage comments")

	for ci, col := range r.doc.Project.Columns {
		for k, c := range col.Cards {
			cardID := r.cardIDs[ci][k]
			if cardID == "" {
				continue
			}
			for _, cm := range c.Comments {
				if _, err := r.backend.AddComment(ctx, cardID, r.actor, cm.Text); err != nil {
					r.fail(ctx, fmt.Sprintf("failed to import comment %s on card %q: %v", cm.ID, c.Title, err))
					continue
				}
				r.result.Counts.Comments++
			}
		}
	}

	if r.result.Counts.Comments > 0 {
		r.warn(ctx, fmt.Sprintf("%d comment(s) imported; their authorship was reassigned to the importing user", r.result.Counts.Comments))
	}
}

// importPresets saves each preset with references remapped. An unmapped
// assignee becomes nil and unmapped tags are dropped.
func (r *importRun) importPresets(ctx context.Context) {
	r.log.DebugContext(ctx, "stage filter presets", "count", len(r.doc.Project.FilterPresets))

	for _, fp := range r.doc.Project.FilterPresets {
		preset := &domain.FilterPreset{
			ProjectID:      r.projectID,
			Name:           fp.Name,
			CreatedBy:      r.actor,
			TagIDs:         r.ids.ResolveAll(KindTag, fp.TagIDs),
			UnassignedOnly: fp.UnassignedOnly,
			Search:         fp.Search,
			DateFrom:       fp.DateFrom,
			DateTo:         fp.DateTo,
		}
		if fp.AssigneeID != nil {
			if userID, ok := r.ids.Resolve(KindUser, *fp.AssigneeID); ok {
				preset.AssigneeID = &userID
			}
		}
		if fp.DateField != nil && *fp.DateField != "" {
			if domain.ValidDateFields[*fp.DateField] {
				field := domain.DateField(*fp.DateField)
				preset.DateField = &field
			} else {
				r.warn(ctx, fmt.Sprintf("filter preset %q: unknown date field %q dropped", fp.Name, *fp.DateField))
			}
		}

		if _, err := r.backend.SaveFilterPreset(ctx, preset); err != nil {
			r.fail(ctx, fmt.Sprintf("failed to save filter preset %q: %v", fp.Name, err))
			continue
		}
		r.result.Counts.Presets++
	}
}

// indexesByOrder returns the positions of cards sorted by Order, keeping
// document order among equal values.
func indexesByOrder(cards []ExportedCard) []int {
	out := make([]int, len(cards))
	for i := range out {
		out[i] = i
	}
	sort.SliceStable(out, func(i, j int) bool {
		return cards[out[i]].Order < cards[out[j]].Order
	})
	return out
}
