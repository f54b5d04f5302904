// SPDX-License-Identifier: Apache-2.0

package projection

import (
	"errors"
	"fmt"

	"github.com/wrinkles-go/wrinkles/composition"
	"github.com/wrinkles-go/wrinkles/ordinate"
	"github.com/wrinkles-go/wrinkles/topomap"
)

// ErrOutOfBounds is returned when an input ordinate or interval lies
// outside the projection's input bounds entirely.
var ErrOutOfBounds = errors.New("projection: input out of bounds")

// ErrEmpty is returned when the input lands in a reachable but Empty
// (gap) region of the projection — a distinct outcome from being out
// of bounds altogether (spec §7).
var ErrEmpty = errors.New("projection: input projects to an Empty region")

// ErrUnreachable is returned when the requested destination space is
// not reachable from the source space in the table.
var ErrUnreachable = topomap.ErrUnreachable

// ErrNoDiscreteInfo is returned by OrdinateToIndex/IndexToInterval
// when the destination space has no attached DiscreteSampling.
var ErrNoDiscreteInfo = errors.New("projection: destination space has no discrete sampling")

// OutOfBoundsError carries the offending ordinate and the bounds it
// was checked against.
type OutOfBoundsError struct {
	Value  ordinate.Ordinate
	Bounds ordinate.Interval
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("projection: %s outside bounds %s", e.Value, e.Bounds)
}

func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }

// EmptyError carries the ordinate that landed in a gap region.
type EmptyError struct {
	Value ordinate.Ordinate
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("projection: %s projects to an Empty region", e.Value)
}

func (e *EmptyError) Unwrap() error { return ErrEmpty }

// UnreachableError carries the source and destination spaces a
// projection_to query failed between — the destination never appears
// in any row of the builder's segment table.
type UnreachableError struct {
	From, To composition.Space
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("projection: %q not reachable from %q", e.To.Name, e.From.Name)
}

func (e *UnreachableError) Unwrap() error { return ErrUnreachable }

// NoDiscreteInfoError carries the destination space that lacks a
// DiscreteSampling.
type NoDiscreteInfoError struct {
	Space composition.Space
}

func (e *NoDiscreteInfoError) Error() string {
	return fmt.Sprintf("projection: space %q has no discrete sampling", e.Space.Name)
}

func (e *NoDiscreteInfoError) Unwrap() error { return ErrNoDiscreteInfo }
