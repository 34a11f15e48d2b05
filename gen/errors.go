package gen

import "errors"

// ErrTooFewItems indicates n < 0.
var ErrTooFewItems = errors.New("gen: item count must be non-negative")

// ErrUnknownClass indicates an unsupported instance class.
var ErrUnknownClass = errors.New("gen: unknown instance class")

// ErrBadCount indicates a batch size below one.
var ErrBadCount = errors.New("gen: batch count must be at least one")
