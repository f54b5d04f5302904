// SPDX-License-Identifier: Apache-2.0

package topomap

import (
	"errors"
	"fmt"

	"github.com/wrinkles-go/wrinkles/composition"
)

// ErrUnreachable is returned when no path exists between two spaces
// in the map (spec §7, "Unreachable").
var ErrUnreachable = errors.New("topomap: target space is not reachable from source")

// ErrUnknownSpace is returned when a Space handle was never
// registered while building the map (e.g. it belongs to a different tree).
var ErrUnknownSpace = errors.New("topomap: space does not belong to this map")

// ErrMalformed is the sentinel callers check with errors.Is to detect
// a composition-tree invariant violation surfaced while building the
// map (spec §7, "Malformed").
var ErrMalformed = errors.New("topomap: malformed composition tree")

// UnreachableError carries the source and destination spaces a path
// query failed between.
type UnreachableError struct {
	From, To composition.Space
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("topomap: %q not reachable from %q", e.To.Name, e.From.Name)
}

func (e *UnreachableError) Unwrap() error { return ErrUnreachable }

// MalformedError carries the offending node's name and the underlying
// cause surfaced while walking the composition tree to build the map.
type MalformedError struct {
	NodeName string
	Cause    error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("topomap: node %q: %v", e.NodeName, e.Cause)
}

func (e *MalformedError) Unwrap() []error { return []error{ErrMalformed, e.Cause} }
