package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSnapshot indicates the snapshot directory holds no snapshots.
	ErrNoSnapshot = errors.New("inventory: no snapshot found")
	// ErrCorruptSnapshot indicates a snapshot failed its integrity check.
	ErrCorruptSnapshot = errors.New("inventory: corrupt snapshot")
)

// LoadError wraps a loader failure with its source for logging and
// fallback decisions.
type LoadError struct {
	Source string // "postgres", "s3", "snapshot"
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("inventory: load from %s failed: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
