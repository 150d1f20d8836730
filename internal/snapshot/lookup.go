package snapshot

import (
	"context"
	"strings"
)

type nameEntry struct {
	ID   string
	Name string
}

// nameIndex is a case-insensitive name lookup over a backend listing.
// Backend creations are not reflected until Refresh or Add is called.
type nameIndex struct {
	load   func(ctx context.Context) ([]nameEntry, error)
	byName map[string]string
}

func newNameIndex(load func(ctx context.Context) ([]nameEntry, error)) *nameIndex {
	return &nameIndex{load: load, byName: map[string]string{}}
}

// Refresh re-reads the listing. On failure the previous contents are kept.
func (x *nameIndex) Refresh(ctx context.Context) error {
	entries, err := x.load(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]string, len(entries))
	for _, e := range entries {
		key := foldName(e.Name)
		if _, seen := byName[key]; !seen {
			byName[key] = e.ID
		}
	}
	x.byName = byName
	return nil
}

// Add records a name the caller just created. An existing entry for the
// same name wins.
func (x *nameIndex) Add(name, id string) {
	key := foldName(name)
	if _, seen := x.byName[key]; !seen {
		x.byName[key] = id
	}
}

// Find returns the id of the first entry whose name matches ignoring case.
func (x *nameIndex) Find(name string) (string, bool) {
	id, ok := x.byName[foldName(name)]
	return id, ok
}

func foldName(name string) string {
	return strings.ToLower(name)
}
