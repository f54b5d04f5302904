// SPDX-License-Identifier: Apache-2.0

package topology

import (
	"errors"
	"fmt"
)

// ErrNotInvertible is returned by Invert when a non-Empty segment
// cannot be inverted (e.g. a degenerate Affine), or when every segment
// is Empty. Empty segments alongside invertible ones are skipped.
var ErrNotInvertible = errors.New("topology: not every segment is invertible")

// ErrEmptySegments is returned by New when given no segments.
var ErrEmptySegments = errors.New("topology: a topology needs at least one segment")

// ErrNotContiguous is returned by New when segments are not ordered
// and gapless (each segment's input bounds must start exactly where
// the previous one ended).
var ErrNotContiguous = errors.New("topology: segments must be contiguous and non-overlapping")

// ErrMalformed is the sentinel callers check with errors.Is to detect
// a caller-bug invariant violation in the segment sequence handed to
// New or Join — non-contiguous segments, an empty segment list, or a
// join that collapses to nothing (spec §7, "Malformed").
var ErrMalformed = errors.New("topology: malformed topology")

// MalformedError carries the specific reason a topology failed its
// contiguity/non-emptiness invariants, and optionally the underlying
// cause (e.g. the mapping error that made a segment unusable).
// errors.Is(err, ErrMalformed) holds regardless of whether the caller
// also cares about the wrapped cause.
type MalformedError struct {
	Reason string
	Cause  error
}

func (e *MalformedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("topology: malformed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("topology: malformed: %s", e.Reason)
}

// Unwrap exposes both ErrMalformed and the underlying cause (if any)
// to errors.Is/errors.As, using Go's multi-error Unwrap form.
func (e *MalformedError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrMalformed, e.Cause}
	}
	return []error{ErrMalformed}
}

// NotInvertibleError carries the reason a topology could not be
// inverted.
type NotInvertibleError struct {
	Reason string
}

func (e *NotInvertibleError) Error() string {
	return fmt.Sprintf("topology: not invertible: %s", e.Reason)
}

func (e *NotInvertibleError) Unwrap() error { return ErrNotInvertible }
