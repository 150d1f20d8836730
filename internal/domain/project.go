package domain

import (
	"fmt"
	"strings"
)

const maxNameLen = 120

type Project struct {
	ID        string
	Name      string
	CreatedAt int64
}

// ValidateName checks that a project name is present and of sane length.
func (p *Project) ValidateName() error {
	return validateName("project", p.Name)
}

// DisplayID returns the first 8 characters of the project ID.
func (p *Project) DisplayID() string {
	return ShortID(p.ID)
}

// ShortID truncates a UUID-style identifier to 8 characters for display.
func ShortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func validateName(kind, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%s name is required", kind)
	}
	if len(trimmed) > maxNameLen {
		return fmt.Errorf("%s name %q exceeds %d characters", kind, trimmed, maxNameLen)
	}
	return nil
}
