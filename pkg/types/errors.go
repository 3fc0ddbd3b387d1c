package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrStoreBusy   = errors.New("store is busy")
)

// Entity and operation errors. Callers match these with errors.Is; the
// wrapped message carries the field or id that failed.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrValidation        = errors.New("validation failed")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrTableUnknown      = errors.New("unknown table")
)

// Enum domain errors.
var (
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrInvalidMatrix   = errors.New("invalid matrix value")
	ErrInvalidPriority = errors.New("invalid priority value")
	ErrInvalidRole     = errors.New("invalid role value")
	ErrInvalidQCType   = errors.New("invalid QC event type")
)
