package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrNoReferenceData = errors.New("no reference data for event")
	ErrInvalidTable    = errors.New("invalid score table")
	ErrInvalidKey      = errors.New("invalid event key")
)
