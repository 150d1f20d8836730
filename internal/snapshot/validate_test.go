package snapshot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrStr(s string) *string { return &s }

func validMinimalDocument() *Document {
	v := CurrentSchemaVersion
	return &Document{
		SchemaVersion: &v,
		Users:         []ExportedUser{{ID: "u1", Name: "Alice"}},
		Project: &ExportedProject{
			ID:   "p1",
			Name: "Board",
			Tags: []ExportedTag{{ID: "t1", Name: "bug"}},
			Columns: []ExportedColumn{
				{ID: "c1", Name: "Todo", Cards: []ExportedCard{
					{ID: "k1", Title: "First", Order: 0},
					{ID: "k2", Title: "Second", Order: 1},
				}},
			},
			FilterPresets: []ExportedFilterPreset{{ID: "f1", Name: "Mine"}},
		},
	}
}

func TestValidateDocument_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateDocument(validMinimalDocument()))
}

func TestValidateDocument_NilTolerated(t *testing.T) {
	assert.Empty(t, ValidateDocument(nil))
	assert.Empty(t, ValidateDocument(&Document{}))
}

func TestValidateDocument_Findings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Document)
		wantMsg string
	}{
		{"missing project name", func(d *Document) { d.Project.Name = "" }, "project.name is required"},
		{"duplicate user id", func(d *Document) {
			d.Users = append(d.Users, ExportedUser{ID: "u1", Name: "Bob"})
		}, `users[1].id: duplicate id "u1"`},
		{"empty tag name", func(d *Document) { d.Project.Tags[0].Name = "" }, "project.tags[0].name is required"},
		{"missing column id", func(d *Document) { d.Project.Columns[0].ID = "" }, "project.columns[0].id is required"},
		{"duplicate card order", func(d *Document) { d.Project.Columns[0].Cards[1].Order = 0 }, "duplicate order 0"},
		{"negative card order", func(d *Document) { d.Project.Columns[0].Cards[0].Order = -1 }, "order must not be negative"},
		{"card id reused across columns", func(d *Document) {
			d.Project.Columns = append(d.Project.Columns, ExportedColumn{ID: "c2", Name: "Done",
				Cards: []ExportedCard{{ID: "k1", Title: "Dup", Order: 0}}})
		}, `project.columns[1].cards[0].id: duplicate id "k1"`},
		{"empty card title", func(d *Document) { d.Project.Columns[0].Cards[0].Title = "" }, "cards[0].title is required"},
		{"invalid preset date field", func(d *Document) {
			d.Project.FilterPresets[0].DateField = ptrStr("updatedAt")
		}, `dateField: invalid value "updatedAt"`},
		{"invalid preset date", func(d *Document) {
			d.Project.FilterPresets[0].DateFrom = ptrStr("01/02/2025")
		}, "dateFrom: invalid date format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validMinimalDocument()
			tt.mutate(doc)
			errs := ValidateDocument(doc)
			if assert.NotEmpty(t, errs) {
				found := false
				for _, err := range errs {
					if strings.Contains(err.Error(), tt.wantMsg) {
						found = true
					}
				}
				assert.True(t, found, "expected finding containing %q, got %v", tt.wantMsg, errs)
			}
		})
	}
}
