package domain

import "fmt"

type FilterPreset struct {
	ID             string
	ProjectID      string
	Name           string
	CreatedBy      string
	AssigneeID     *string
	TagIDs         []string
	UnassignedOnly bool
	Search         string
	DateField      *DateField
	DateFrom       *string // YYYY-MM-DD
	DateTo         *string // YYYY-MM-DD
	CreatedAt      int64
}

func (f *FilterPreset) Validate() error {
	if err := validateName("filter preset", f.Name); err != nil {
		return err
	}
	if f.DateField != nil && !ValidDateFields[string(*f.DateField)] {
		return fmt.Errorf("filter preset %q: invalid date field %q", f.Name, *f.DateField)
	}
	return nil
}
