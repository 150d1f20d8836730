package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// CurrentSchemaVersion is the document version written by Export.
const CurrentSchemaVersion = 1

// Document is the portable snapshot of one project. All ids are in the
// source system's id space and all timestamps are ISO-8601 strings.
type Document struct {
	SchemaVersion *int             `json:"schemaVersion,omitempty"`
	ExportedAt    string           `json:"exportedAt"`
	Meta          *Meta            `json:"_meta,omitempty"`
	Users         []ExportedUser   `json:"users"`
	Project       *ExportedProject `json:"project"`
}

// Meta describes the document for human readers. Import ignores it.
type Meta struct {
	Description string            `json:"description"`
	Fields      map[string]string `json:"fields"`
}

type ExportedUser struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	IsAdmin       bool   `json:"isAdmin"`
	IsMasterAdmin bool   `json:"isMasterAdmin"`
}

type ExportedProject struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Columns       []ExportedColumn       `json:"columns"`
	Tags          []ExportedTag          `json:"tags"`
	Activity      []ExportedRevision     `json:"activity"`
	FilterPresets []ExportedFilterPreset `json:"filterPresets"`
}

type ExportedColumn struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Cards []ExportedCard `json:"cards"`
}

// ExportedCard carries its position explicitly in Order; the array
// position of a card within its column is not significant.
type ExportedCard struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Order       int                `json:"order"`
	AssigneeID  *string            `json:"assigneeId,omitempty"`
	TagIDs      []string           `json:"tagIds"`
	DueDate     *string            `json:"dueDate,omitempty"`
	CreatedAt   string             `json:"createdAt"`
	Comments    []ExportedComment  `json:"comments"`
	History     []ExportedRevision `json:"history"`
}

type ExportedComment struct {
	ID         string `json:"id"`
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName"`
	Text       string `json:"text"`
	CreatedAt  string `json:"createdAt"`
}

type ExportedRevision struct {
	ID        string `json:"id"`
	CardID    string `json:"cardId,omitempty"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	CreatedAt string `json:"createdAt"`
}

type ExportedTag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ExportedFilterPreset keeps DateFrom and DateTo as calendar-date strings.
type ExportedFilterPreset struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	CreatedBy      string   `json:"createdBy"`
	AssigneeID     *string  `json:"assigneeId,omitempty"`
	TagIDs         []string `json:"tagIds"`
	UnassignedOnly bool     `json:"unassignedOnly"`
	Search         string   `json:"search"`
	DateField      *string  `json:"dateField,omitempty"`
	DateFrom       *string  `json:"dateFrom,omitempty"`
	DateTo         *string  `json:"dateTo,omitempty"`
}

// CardCount returns the number of cards across all columns.
func (d *Document) CardCount() int {
	if d == nil || d.Project == nil {
		return 0
	}
	n := 0
	for _, col := range d.Project.Columns {
		n += len(col.Cards)
	}
	return n
}

func documentMeta() *Meta {
	return &Meta{
		Description: "Project board snapshot. Ids belong to the exporting system and are " +
			"remapped on import; timestamps are ISO-8601 UTC.",
		Fields: map[string]string{
			"schemaVersion":                        "document format version; newer readers tolerate older values",
			"exportedAt":                           "time the snapshot was taken",
			"users":                                "accounts referenced by the project; credentials are never exported",
			"project.columns":                      "board columns in display order",
			"project.columns[].cards[].order":      "zero-based position of the card within its column",
			"project.columns[].cards[].assigneeId": "id of a user in users, if assigned",
			"project.columns[].cards[].tagIds":     "ids of tags in project.tags",
			"project.columns[].cards[].dueDate":    "due date, if set",
			"project.columns[].cards[].comments":   "comments oldest first; authorName is informational",
			"project.columns[].cards[].history":    "revision log entries for the card",
			"project.tags":                         "labels available to the project's cards",
			"project.activity":                     "project-level revision log entries not tied to a card",
			"project.filterPresets":                "saved board filters; dateFrom and dateTo are YYYY-MM-DD",
		},
	}
}

// DecodeDocument parses a snapshot document. Unknown fields are ignored.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing snapshot document: %w", err)
	}
	return &doc, nil
}

// LoadDocument reads and parses a snapshot document file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing snapshot file: %w", err)
	}
	return &doc, nil
}

// WriteDocument writes doc as indented JSON.
func WriteDocument(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding snapshot document: %w", err)
	}
	return nil
}

// SaveDocument writes doc to path, replacing any existing file.
func SaveDocument(path string, doc *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	if err := WriteDocument(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
