package domain

// Revision is one entry of the backend's activity log. Project-level
// entries have an empty CardID.
type Revision struct {
	ID        string
	ProjectID string
	CardID    string
	UserID    string
	UserName  string
	Action    RevisionAction
	Details   string
	CreatedAt int64
}

// IsProjectLevel reports whether the entry is not tied to any card.
func (r *Revision) IsProjectLevel() bool {
	return r.CardID == ""
}
