package api

import (
	"errors"
	"fmt"
)

// ErrDuplicate is returned when the backend answers 201, which it uses to
// mean "a record with this key already exists" rather than "created".
var ErrDuplicate = errors.New("already exists")

// RequestError is returned for every outcome that is neither 200 nor 201:
// transport failures, 4xx and 5xx alike. The backend does not send a
// machine-readable reason, so only the status is kept.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Outcome is the tri-state result every form and handler branches on.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeDuplicate
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "failed"
	}
}

// Classify maps an error returned by the client onto an Outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrDuplicate):
		return OutcomeDuplicate
	default:
		return OutcomeFailed
	}
}

// IsDuplicate reports whether err (or any error in its chain) is ErrDuplicate.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
