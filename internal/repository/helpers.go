package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// nullableString converts a *string to a value suitable for SQLite storage.
func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// nullableInt64 converts a *int64 to a value suitable for SQLite storage.
func nullableInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// encodeIDs stores an id list as a JSON array; nil becomes "[]".
func encodeIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("encoding id list: %w", err)
	}
	return string(b), nil
}

func decodeIDs(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decoding id list: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
