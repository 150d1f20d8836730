package snapshot

import "errors"

var (
	// ErrMissingProject is reported when a document has no project object.
	ErrMissingProject = errors.New("document is missing its project")

	// ErrInvalidMode is returned for an import mode other than replace or merge.
	ErrInvalidMode = errors.New("invalid import mode")
)
