// SPDX-License-Identifier: Apache-2.0

package mapping

import (
	"errors"
	"fmt"

	"github.com/wrinkles-go/wrinkles/ordinate"
)

// ErrOutOfBounds is returned by ProjectOrdinate/ProjectInterval when
// the input lies outside the mapping's input bounds.
var ErrOutOfBounds = errors.New("mapping: input out of bounds")

// ErrNotInvertible is returned by Inverse for an Empty mapping or a
// non-invertible Affine/Linear/Bezier mapping.
var ErrNotInvertible = errors.New("mapping: not invertible")

// OutOfBoundsError carries the offending ordinate and the bounds it
// was checked against. errors.Is(err, ErrOutOfBounds) holds via Unwrap
// regardless of whether the caller received this struct or the bare
// sentinel.
type OutOfBoundsError struct {
	Value  ordinate.Ordinate
	Bounds ordinate.Interval
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("mapping: %s outside bounds %s", e.Value, e.Bounds)
}

func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }

// NotInvertibleError carries the mapping kind and the reason it could
// not be inverted.
type NotInvertibleError struct {
	Kind   Kind
	Reason string
}

func (e *NotInvertibleError) Error() string {
	return fmt.Sprintf("mapping: %s not invertible: %s", e.Kind, e.Reason)
}

func (e *NotInvertibleError) Unwrap() error { return ErrNotInvertible }
