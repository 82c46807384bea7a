package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("remote store unauthorized")
	ErrNotFound     = errors.New("remote record not found")
)

// TransientError marks a failure worth retrying: the request never
// reached the server, or the connection died before a status code was
// produced. Anything else (validation, auth, conflicts) is permanent and
// must not be retried.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient remote error: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err is (or wraps) a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
