package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/kanri/internal/db"
	"github.com/alexanderramin/kanri/internal/domain"
)

const cardColumns = `id, project_id, column_id, title, description, position,
		assignee_id, due_date, created_by, created_at`

// SQLiteCardRepo implements CardRepo using a SQLite database.
type SQLiteCardRepo struct {
	db db.DBTX
}

func NewSQLiteCardRepo(conn db.DBTX) *SQLiteCardRepo {
	return &SQLiteCardRepo{db: conn}
}

func (r *SQLiteCardRepo) Create(ctx context.Context, c *domain.Card) error {
	query := `INSERT INTO cards (` + cardColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ProjectID,
		c.ColumnID,
		c.Title,
		c.Description,
		c.Position,
		nullableString(c.AssigneeID),
		nullableInt64(c.DueDate),
		c.CreatedBy,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting card: %w", err)
	}
	if len(c.TagIDs) > 0 {
		return r.ReplaceTags(ctx, c.ID, c.TagIDs)
	}
	return nil
}

func (r *SQLiteCardRepo) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning card: %w", err)
	}

	tags, err := r.tagIDs(ctx, `SELECT card_id, tag_id FROM card_tags WHERE card_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, err
	}
	c.TagIDs = tagsOrEmpty(tags[c.ID])
	return c, nil
}

func (r *SQLiteCardRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE project_id = ? ORDER BY column_id, position, created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}

	var cards []*domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning card row: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating cards: %w", err)
	}
	rows.Close()

	tags, err := r.tagIDs(ctx, `SELECT ct.card_id, ct.tag_id FROM card_tags ct
		JOIN cards c ON c.id = ct.card_id WHERE c.project_id = ? ORDER BY ct.rowid`, projectID)
	if err != nil {
		return nil, err
	}
	for _, c := range cards {
		c.TagIDs = tagsOrEmpty(tags[c.ID])
	}
	return cards, nil
}

func (r *SQLiteCardRepo) NextPosition(ctx context.Context, columnID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM cards WHERE column_id = ?`, columnID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("reading next card position: %w", err)
	}
	return next, nil
}

func (r *SQLiteCardRepo) UpdateAssignee(ctx context.Context, id string, assigneeID *string) error {
	return r.exec(ctx, "updating card assignee", `UPDATE cards SET assignee_id = ? WHERE id = ?`,
		nullableString(assigneeID), id)
}

func (r *SQLiteCardRepo) UpdateDueDate(ctx context.Context, id string, dueDate *int64) error {
	return r.exec(ctx, "updating card due date", `UPDATE cards SET due_date = ? WHERE id = ?`,
		nullableInt64(dueDate), id)
}

// ReplaceTags sets the card's tag set to exactly tagIDs.
func (r *SQLiteCardRepo) ReplaceTags(ctx context.Context, id string, tagIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM card_tags WHERE card_id = ?`, id); err != nil {
		return fmt.Errorf("clearing card tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO card_tags (card_id, tag_id) VALUES (?, ?)`, id, tagID); err != nil {
			return fmt.Errorf("inserting card tag: %w", err)
		}
	}
	return nil
}

func (r *SQLiteCardRepo) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, "deleting card", `DELETE FROM cards WHERE id = ?`, id)
}

// exec runs a single-row mutation and reports ErrNotFound when nothing matched.
func (r *SQLiteCardRepo) exec(ctx context.Context, what, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: card %v: %w", what, args[len(args)-1], ErrNotFound)
	}
	return nil
}

func (r *SQLiteCardRepo) tagIDs(ctx context.Context, query, arg string) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing card tags: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var cardID, tagID string
		if err := rows.Scan(&cardID, &tagID); err != nil {
			return nil, fmt.Errorf("scanning card tag: %w", err)
		}
		out[cardID] = append(out[cardID], tagID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card tags: %w", err)
	}
	return out, nil
}

func tagsOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func scanCard(s rowScanner) (*domain.Card, error) {
	var c domain.Card
	var assignee sql.NullString
	var due sql.NullInt64
	err := s.Scan(
		&c.ID, &c.ProjectID, &c.ColumnID, &c.Title, &c.Description, &c.Position,
		&assignee, &due, &c.CreatedBy, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.AssigneeID = stringPtr(assignee)
	c.DueDate = int64Ptr(due)
	return &c, nil
}
