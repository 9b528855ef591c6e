package repositories

import "errors"

// ErrConflict is returned by conditional writes when the stored row no longer
// matches the state the caller read.
var ErrConflict = errors.New("record was modified concurrently")
