package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. empty counter name, unknown log category).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrTooManyFiles is returned when an upload batch holds more files than the
// configured maximum. The whole batch is rejected before any file is read.
var ErrTooManyFiles = errors.New("too many files in upload batch")
