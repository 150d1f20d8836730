package domain

// DefaultTagColor is used when a tag is created without a color.
const DefaultTagColor = "#928374"

type Tag struct {
	ID        string
	ProjectID string
	Name      string
	Color     string
}

func (t *Tag) ValidateName() error {
	return validateName("tag", t.Name)
}
