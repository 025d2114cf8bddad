package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for the failures the review board knows about.
var (
	// ErrFetchFailure covers every way a review collection request can fail:
	// network unreachability, non-success status, timeout and undecodable bodies.
	ErrFetchFailure  = errors.New("failed to fetch review collection")
	ErrInvalidOrigin = errors.New("invalid backend origin")
)

// FetchError describes a failed review collection request.
// It always matches ErrFetchFailure with errors.Is.
type FetchError struct {
	Op     string // "request", "status" or "decode"
	URL    string
	Status int // HTTP status code, zero when no response was received
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: %s: unexpected status %d", e.Op, e.URL, ErrFetchFailure, e.Status)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.URL, ErrFetchFailure, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFetchFailure.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailure
}
