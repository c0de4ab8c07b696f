package artifact

import "errors"

// Loader errors. Callers distinguish the three kinds to pick a fallback:
// a missing confidence artifact degrades to defaults, a missing
// comprehensive artifact is fatal to the dashboard.
var (
	// ErrMissing is returned when the artifact document does not exist.
	ErrMissing = errors.New("artifact missing")

	// ErrUnreadable is returned on I/O failure or read timeout.
	ErrUnreadable = errors.New("artifact unreadable")

	// ErrMalformed is returned when the document parses but violates the
	// top-level schema.
	ErrMalformed = errors.New("artifact malformed")
)
