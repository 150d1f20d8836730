package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/kanri/internal/db"
	"github.com/alexanderramin/kanri/internal/domain"
)

// SQLiteCommentRepo implements CommentRepo using a SQLite database.
type SQLiteCommentRepo struct {
	db db.DBTX
}

func NewSQLiteCommentRepo(conn db.DBTX) *SQLiteCommentRepo {
	return &SQLiteCommentRepo{db: conn}
}

func (r *SQLiteCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, card_id, author_id, text, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.CardID, c.AuthorID, c.Text, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}
	return nil
}

// ListByCard returns the card's comments oldest first. AuthorName is
// resolved from users; authors that no longer exist yield an empty name.
func (r *SQLiteCommentRepo) ListByCard(ctx context.Context, cardID string) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT c.id, c.card_id, c.author_id, COALESCE(u.name, ''), c.text, c.created_at
		FROM comments c LEFT JOIN users u ON u.id = c.author_id
		WHERE c.card_id = ? ORDER BY c.created_at, c.rowid`, cardID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.CardID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning comment row: %w", err)
		}
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}
	return comments, nil
}
