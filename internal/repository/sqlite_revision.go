package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/kanri/internal/db"
	"github.com/alexanderramin/kanri/internal/domain"
)

const revisionSelect = `SELECT r.id, r.project_id, r.card_id, r.user_id, COALESCE(u.name, ''),
		r.action, r.details, r.created_at
	FROM revisions r LEFT JOIN users u ON u.id = r.user_id`

// SQLiteRevisionRepo implements RevisionRepo using a SQLite database.
type SQLiteRevisionRepo struct {
	db db.DBTX
}

func NewSQLiteRevisionRepo(conn db.DBTX) *SQLiteRevisionRepo {
	return &SQLiteRevisionRepo{db: conn}
}

func (r *SQLiteRevisionRepo) Create(ctx context.Context, rev *domain.Revision) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO revisions (id, project_id, card_id, user_id, action, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rev.ID,
		rev.ProjectID,
		nullableString(domain.StrPtr(rev.CardID)),
		rev.UserID,
		string(rev.Action),
		rev.Details,
		rev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting revision: %w", err)
	}
	return nil
}

func (r *SQLiteRevisionRepo) ListByCard(ctx context.Context, cardID string) ([]*domain.Revision, error) {
	return r.list(ctx, revisionSelect+` WHERE r.card_id = ? ORDER BY r.created_at, r.rowid`, cardID)
}

// ListByProject returns every revision of the project, card-level entries included.
func (r *SQLiteRevisionRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Revision, error) {
	return r.list(ctx, revisionSelect+` WHERE r.project_id = ? ORDER BY r.created_at, r.rowid`, projectID)
}

func (r *SQLiteRevisionRepo) list(ctx context.Context, query, arg string) ([]*domain.Revision, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing revisions: %w", err)
	}
	defer rows.Close()

	revisions := []*domain.Revision{}
	for rows.Next() {
		var rev domain.Revision
		var cardID sql.NullString
		var action string
		if err := rows.Scan(&rev.ID, &rev.ProjectID, &cardID, &rev.UserID, &rev.UserName,
			&action, &rev.Details, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning revision row: %w", err)
		}
		rev.CardID = cardID.String
		rev.Action = domain.RevisionAction(action)
		revisions = append(revisions, &rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revisions: %w", err)
	}
	return revisions, nil
}
