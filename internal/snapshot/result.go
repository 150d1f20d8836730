package snapshot

import "fmt"

// Counts tallies entities created by an import. Reused entities are not
// counted.
type Counts struct {
	Users    int `json:"users"`
	Columns  int `json:"columns"`
	Cards    int `json:"cards"`
	Tags     int `json:"tags"`
	Comments int `json:"comments"`
	Presets  int `json:"presets"`
}

// ImportResult reports the outcome of one import. Errors name entities
// that were not created; warnings never affect Success. Callers should
// surface warnings and the unassigned titles as well as Success.
type ImportResult struct {
	Success              bool     `json:"success"`
	Errors               []string `json:"errors"`
	Warnings             []string `json:"warnings"`
	UnassignedCardCount  int      `json:"unassignedCardCount"`
	UnassignedCardTitles []string `json:"unassignedCardTitles"`
	Counts               Counts   `json:"counts"`
}

func newImportResult() *ImportResult {
	return &ImportResult{
		Errors:               []string{},
		Warnings:             []string{},
		UnassignedCardTitles: []string{},
	}
}

func (r *ImportResult) addError(msg string) {
	r.Errors = append(r.Errors, msg)
}

func (r *ImportResult) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// quarantine records a card that was not created because its column
// did not resolve.
func (r *ImportResult) quarantine(title string) {
	r.UnassignedCardCount++
	r.UnassignedCardTitles = append(r.UnassignedCardTitles, title)
}

// fatal replaces any entity errors with the single reason the run stopped.
func (r *ImportResult) fatal(err error) {
	r.Errors = []string{err.Error()}
}

func (r *ImportResult) finish() {
	if r.UnassignedCardCount > 0 {
		r.addWarning(fmt.Sprintf(
			"%d card(s) could not be placed because their column was not imported; recreate them manually: see unassignedCardTitles",
			r.UnassignedCardCount))
	}
	r.Success = len(r.Errors) == 0
}
