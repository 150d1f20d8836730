package domain

type Comment struct {
	ID         string
	CardID     string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  int64
}
