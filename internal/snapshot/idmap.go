package snapshot

// Kind names an entity type whose document ids are remapped on import.
type Kind string

const (
	KindUser   Kind = "user"
	KindTag    Kind = "tag"
	KindColumn Kind = "column"
	KindCard   Kind = "card"
)

// IDMap associates document ids with the ids the backend assigned,
// per entity kind. It lives for a single import run.
type IDMap struct {
	byKind map[Kind]map[string]string
}

func NewIDMap() *IDMap {
	return &IDMap{byKind: make(map[Kind]map[string]string)}
}

// Set records that oldID of kind was imported as newID. A later Set for
// the same oldID overwrites the earlier mapping.
func (m *IDMap) Set(kind Kind, oldID, newID string) {
	ids, ok := m.byKind[kind]
	if !ok {
		ids = make(map[string]string)
		m.byKind[kind] = ids
	}
	ids[oldID] = newID
}

func (m *IDMap) Resolve(kind Kind, oldID string) (string, bool) {
	if oldID == "" {
		return "", false
	}
	newID, ok := m.byKind[kind][oldID]
	return newID, ok
}

// ResolveAll maps each old id, dropping the ones with no mapping. The
// result keeps input order and is never nil.
func (m *IDMap) ResolveAll(kind Kind, oldIDs []string) []string {
	out := make([]string, 0, len(oldIDs))
	for _, oldID := range oldIDs {
		if newID, ok := m.Resolve(kind, oldID); ok {
			out = append(out, newID)
		}
	}
	return out
}

func (m *IDMap) Len(kind Kind) int {
	return len(m.byKind[kind])
}
