package insert

import "errors"

// Errors returned by the insert controller.
var (
	// ErrUnknownVariant indicates a variant name missing from the catalog.
	ErrUnknownVariant = errors.New("unknown insert variant")

	// ErrTargetNotSelected indicates a variant required a target and none
	// could be selected. The session is aborted before any text mutation.
	ErrTargetNotSelected = errors.New("target not selected")

	// ErrCheckpointNotOpen indicates a checkpoint purpose was used before
	// being opened.
	ErrCheckpointNotOpen = errors.New("checkpoint not open")

	// ErrNoLastOperation indicates a repeat with nothing to repeat.
	ErrNoLastOperation = errors.New("no insert operation to repeat")

	// ErrSessionActive indicates Begin was called while a session was
	// still waiting for insert mode to end.
	ErrSessionActive = errors.New("insert session already active")
)
