package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/kanri/internal/db"
	"github.com/alexanderramin/kanri/internal/domain"
)

const columnColumns = `id, project_id, name, position, created_by, created_at`

// SQLiteColumnRepo implements ColumnRepo using a SQLite database.
type SQLiteColumnRepo struct {
	db db.DBTX
}

func NewSQLiteColumnRepo(conn db.DBTX) *SQLiteColumnRepo {
	return &SQLiteColumnRepo{db: conn}
}

func (r *SQLiteColumnRepo) Create(ctx context.Context, c *domain.Column) error {
	query := `INSERT INTO board_columns (` + columnColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.ProjectID, c.Name, c.Position, c.CreatedBy, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting column: %w", err)
	}
	return nil
}

func (r *SQLiteColumnRepo) GetByID(ctx context.Context, id string) (*domain.Column, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columnColumns+` FROM board_columns WHERE id = ?`, id)
	c, err := scanColumn(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("column %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning column: %w", err)
	}

	ids, err := r.cardIDs(ctx, `SELECT id, column_id FROM cards WHERE column_id = ? ORDER BY position, created_at`, id)
	if err != nil {
		return nil, err
	}
	c.CardIDs = ids[c.ID]
	return c, nil
}

func (r *SQLiteColumnRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Column, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+columnColumns+` FROM board_columns WHERE project_id = ? ORDER BY position, created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}

	var columns []*domain.Column
	for rows.Next() {
		c, err := scanColumn(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning column row: %w", err)
		}
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating columns: %w", err)
	}
	// The pool holds one connection; release it before the card query.
	rows.Close()

	byColumn, err := r.cardIDs(ctx,
		`SELECT id, column_id FROM cards WHERE project_id = ? ORDER BY position, created_at`, projectID)
	if err != nil {
		return nil, err
	}
	for _, c := range columns {
		c.CardIDs = byColumn[c.ID]
		if c.CardIDs == nil {
			c.CardIDs = []string{}
		}
	}
	return columns, nil
}

func (r *SQLiteColumnRepo) NextPosition(ctx context.Context, projectID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM board_columns WHERE project_id = ?`, projectID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("reading next column position: %w", err)
	}
	return next, nil
}

func (r *SQLiteColumnRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM board_columns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting column: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("column %s: %w", id, ErrNotFound)
	}
	return nil
}

// cardIDs groups card ids by column id, preserving query order.
func (r *SQLiteColumnRepo) cardIDs(ctx context.Context, query string, arg string) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing column cards: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var cardID, columnID string
		if err := rows.Scan(&cardID, &columnID); err != nil {
			return nil, fmt.Errorf("scanning column card: %w", err)
		}
		out[columnID] = append(out[columnID], cardID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column cards: %w", err)
	}
	return out, nil
}

func scanColumn(s rowScanner) (*domain.Column, error) {
	var c domain.Column
	if err := s.Scan(&c.ID, &c.ProjectID, &c.Name, &c.Position, &c.CreatedBy, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
