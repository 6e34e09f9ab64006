package domain

import (
	"errors"
	"fmt"
)

// ErrSessionBusy is returned when a turn is requested for a session that
// already has a turn in flight. The caller may retry once the current turn
// completes.
var ErrSessionBusy = errors.New("session busy: a turn is already in flight")

// StorageError wraps a failure of the message store. Fatal at startup,
// reported per request afterwards.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// GenerationError wraps a failure of the generation backend before or during
// a stream. The user half of the turn is preserved either way.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsGenerationError reports whether err is (or wraps) a GenerationError.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}
