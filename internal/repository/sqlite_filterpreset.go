package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/kanri/internal/db"
	"github.com/alexanderramin/kanri/internal/domain"
)

const presetColumns = `id, project_id, name, created_by, assignee_id, tag_ids, unassigned_only,
		search, date_field, date_from, date_to, created_at`

// SQLiteFilterPresetRepo implements FilterPresetRepo using a SQLite database.
type SQLiteFilterPresetRepo struct {
	db db.DBTX
}

func NewSQLiteFilterPresetRepo(conn db.DBTX) *SQLiteFilterPresetRepo {
	return &SQLiteFilterPresetRepo{db: conn}
}

func (r *SQLiteFilterPresetRepo) Create(ctx context.Context, f *domain.FilterPreset) error {
	tagIDs, err := encodeIDs(f.TagIDs)
	if err != nil {
		return err
	}
	var dateField *string
	if f.DateField != nil {
		s := string(*f.DateField)
		dateField = &s
	}
	query := `INSERT INTO filter_presets (` + presetColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		f.ID,
		f.ProjectID,
		f.Name,
		f.CreatedBy,
		nullableString(f.AssigneeID),
		tagIDs,
		boolToInt(f.UnassignedOnly),
		f.Search,
		nullableString(dateField),
		nullableString(f.DateFrom),
		nullableString(f.DateTo),
		f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting filter preset: %w", err)
	}
	return nil
}

func (r *SQLiteFilterPresetRepo) GetByID(ctx context.Context, id string) (*domain.FilterPreset, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+presetColumns+` FROM filter_presets WHERE id = ?`, id)
	f, err := scanFilterPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("filter preset %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning filter preset: %w", err)
	}
	return f, nil
}

func (r *SQLiteFilterPresetRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.FilterPreset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+presetColumns+` FROM filter_presets WHERE project_id = ? ORDER BY created_at, rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing filter presets: %w", err)
	}
	defer rows.Close()

	var presets []*domain.FilterPreset
	for rows.Next() {
		f, err := scanFilterPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning filter preset row: %w", err)
		}
		presets = append(presets, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating filter presets: %w", err)
	}
	return presets, nil
}

func (r *SQLiteFilterPresetRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM filter_presets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting filter preset: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("filter preset %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanFilterPreset(s rowScanner) (*domain.FilterPreset, error) {
	var f domain.FilterPreset
	var assignee, dateField, dateFrom, dateTo sql.NullString
	var tagIDs string
	var unassigned int
	err := s.Scan(&f.ID, &f.ProjectID, &f.Name, &f.CreatedBy, &assignee, &tagIDs, &unassigned,
		&f.Search, &dateField, &dateFrom, &dateTo, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	f.AssigneeID = stringPtr(assignee)
	f.UnassignedOnly = intToBool(unassigned)
	f.DateFrom = stringPtr(dateFrom)
	f.DateTo = stringPtr(dateTo)
	if dateField.Valid {
		df := domain.DateField(dateField.String)
		f.DateField = &df
	}
	if f.TagIDs, err = decodeIDs(tagIDs); err != nil {
		return nil, err
	}
	return &f, nil
}
