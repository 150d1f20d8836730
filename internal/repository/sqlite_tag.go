package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/kanri/internal/db"
	"github.com/alexanderramin/kanri/internal/domain"
)

// SQLiteTagRepo implements TagRepo using a SQLite database.
type SQLiteTagRepo struct {
	db db.DBTX
}

func NewSQLiteTagRepo(conn db.DBTX) *SQLiteTagRepo {
	return &SQLiteTagRepo{db: conn}
}

func (r *SQLiteTagRepo) Create(ctx context.Context, t *domain.Tag) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tags (id, project_id, name, color) VALUES (?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.Name, t.Color)
	if err != nil {
		return fmt.Errorf("inserting tag: %w", err)
	}
	return nil
}

func (r *SQLiteTagRepo) GetByID(ctx context.Context, id string) (*domain.Tag, error) {
	var t domain.Tag
	err := r.db.QueryRowContext(ctx, `SELECT id, project_id, name, color FROM tags WHERE id = ?`, id).
		Scan(&t.ID, &t.ProjectID, &t.Name, &t.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tag %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning tag: %w", err)
	}
	return &t, nil
}

func (r *SQLiteTagRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, name, color FROM tags WHERE project_id = ? ORDER BY rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

func (r *SQLiteTagRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("tag %s: %w", id, ErrNotFound)
	}
	return nil
}
