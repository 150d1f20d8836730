package cli

import (
	"context"
	"fmt"
	"strings"
)

type candidate struct {
	id   string
	name string
}

// resolveRef picks one candidate by exact ID, then unique ID prefix,
// then case-insensitive name.
func resolveRef(kind, input string, all []candidate) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s is required", kind)
	}

	for _, c := range all {
		if c.id == input {
			return c.id, nil
		}
	}

	var matches []string
	for _, c := range all {
		if strings.HasPrefix(c.id, input) {
			matches = append(matches, c.id)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}

	for _, c := range all {
		if strings.EqualFold(c.name, input) {
			matches = append(matches, c.id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s name %q is ambiguous (%d matches), use the ID", kind, input, len(matches))
	}
}

func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	all := make([]candidate, 0, len(projects))
	for _, p := range projects {
		all = append(all, candidate{id: p.ID, name: p.Name})
	}
	return resolveRef("project", input, all)
}

func resolveUserID(ctx context.Context, app *App, input string) (string, error) {
	users, err := app.Users.List(ctx)
	if err != nil {
		return "", err
	}
	all := make([]candidate, 0, len(users))
	for _, u := range users {
		all = append(all, candidate{id: u.ID, name: u.Name})
	}
	return resolveRef("user", input, all)
}

func resolveColumnID(ctx context.Context, app *App, projectID, input string) (string, error) {
	cols, err := app.Board.ListColumns(ctx, projectID)
	if err != nil {
		return "", err
	}
	all := make([]candidate, 0, len(cols))
	for _, c := range cols {
		all = append(all, candidate{id: c.ID, name: c.Name})
	}
	return resolveRef("column", input, all)
}

func resolveTagIDs(ctx context.Context, app *App, projectID string, inputs []string) ([]string, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	tags, err := app.Board.ListTags(ctx, projectID)
	if err != nil {
		return nil, err
	}
	all := make([]candidate, 0, len(tags))
	for _, t := range tags {
		all = append(all, candidate{id: t.ID, name: t.Name})
	}
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		id, err := resolveRef("tag", in, all)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
