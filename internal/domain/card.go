package domain

import "fmt"

type Card struct {
	ID          string
	ProjectID   string
	ColumnID    string
	Title       string
	Description string
	Position    int
	AssigneeID  *string
	TagIDs      []string
	DueDate     *int64 // unix milliseconds
	CreatedBy   string
	CreatedAt   int64
}

// NewCard carries the fields required to create a card.
type NewCard struct {
	ProjectID   string
	ColumnID    string
	Title       string
	Description string
	CreatedBy   string
}

func (n NewCard) Validate() error {
	if n.ProjectID == "" {
		return fmt.Errorf("card project is required")
	}
	if n.ColumnID == "" {
		return fmt.Errorf("card column is required")
	}
	if n.Title == "" {
		return fmt.Errorf("card title is required")
	}
	return nil
}
