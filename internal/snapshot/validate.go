package snapshot

import (
	"fmt"
	"time"

	"github.com/alexanderramin/kanri/internal/domain"
)

// ValidateDocument checks a document for structural problems and returns
// every finding. Findings are advisory: Import reports them as warnings
// and proceeds with its normal reconciliation rules.
func ValidateDocument(doc *Document) []error {
	if doc == nil || doc.Project == nil {
		return nil
	}
	var errs []error

	errs = append(errs, validateUsers(doc.Users)...)

	p := doc.Project
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}

	tagIDs := make(map[string]bool)
	for i, t := range p.Tags {
		prefix := fmt.Sprintf("project.tags[%d]", i)
		errs = append(errs, checkID(prefix, t.ID, tagIDs)...)
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}

	columnIDs := make(map[string]bool)
	cardIDs := make(map[string]bool)
	for i, col := range p.Columns {
		prefix := fmt.Sprintf("project.columns[%d]", i)
		errs = append(errs, checkID(prefix, col.ID, columnIDs)...)
		if col.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		errs = append(errs, validateCards(prefix, col, cardIDs)...)
	}

	for i, fp := range p.FilterPresets {
		errs = append(errs, validatePreset(fmt.Sprintf("project.filterPresets[%d]", i), fp)...)
	}

	return errs
}

func validateUsers(users []ExportedUser) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, u := range users {
		prefix := fmt.Sprintf("users[%d]", i)
		errs = append(errs, checkID(prefix, u.ID, seen)...)
		if u.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}
	return errs
}

func validateCards(prefix string, col ExportedColumn, seen map[string]bool) []error {
	var errs []error
	orders := make(map[int]bool)
	for j, c := range col.Cards {
		cp := fmt.Sprintf("%s.cards[%d]", prefix, j)
		errs = append(errs, checkID(cp, c.ID, seen)...)
		if c.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", cp))
		}
		if c.Order < 0 {
			errs = append(errs, fmt.Errorf("%s.order must not be negative", cp))
		} else if orders[c.Order] {
			errs = append(errs, fmt.Errorf("%s.order: duplicate order %d in column %q", cp, c.Order, col.Name))
		}
		orders[c.Order] = true
	}
	return errs
}

func validatePreset(prefix string, fp ExportedFilterPreset) []error {
	var errs []error
	if fp.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if fp.DateField != nil && *fp.DateField != "" && !domain.ValidDateFields[*fp.DateField] {
		errs = append(errs, fmt.Errorf("%s.dateField: invalid value %q", prefix, *fp.DateField))
	}
	errs = append(errs, validateOptionalDate(prefix+".dateFrom", fp.DateFrom)...)
	errs = append(errs, validateOptionalDate(prefix+".dateTo", fp.DateTo)...)
	return errs
}

func checkID(prefix, id string, seen map[string]bool) []error {
	if id == "" {
		return []error{fmt.Errorf("%s.id is required", prefix)}
	}
	if seen[id] {
		return []error{fmt.Errorf("%s.id: duplicate id %q", prefix, id)}
	}
	seen[id] = true
	return nil
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, *dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}
