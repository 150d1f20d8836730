package domain

type Column struct {
	ID        string
	ProjectID string
	Name      string
	Position  int
	CreatedBy string
	CreatedAt int64

	// CardIDs lists the column's cards in board order.
	CardIDs []string
}

func (c *Column) ValidateName() error {
	return validateName("column", c.Name)
}
