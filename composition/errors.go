// SPDX-License-Identifier: Apache-2.0

package composition

import (
	"errors"
	"fmt"
)

// ErrNotAChild is returned when a node is asked for its index or
// sibling relationship in a composition it does not belong to.
var ErrNotAChild = errors.New("composition: item is not a child of this composition")

// ErrNoIntrinsicMedia is returned when Clip.IndexAt is called on a
// clip with no attached discrete sampling.
var ErrNoIntrinsicMedia = errors.New("composition: node has no discrete media sampling")

// ErrMalformed is the sentinel callers check with errors.Is to detect
// a composition-tree invariant violation such as an empty Track/Stack
// asked for its intrinsic topology (spec §7, "Malformed").
var ErrMalformed = errors.New("composition: malformed composition tree")

// MalformedError carries the offending node's name and the specific
// invariant that was violated.
type MalformedError struct {
	Node   string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("composition: node %q malformed: %s", e.Node, e.Reason)
}

func (e *MalformedError) Unwrap() error { return ErrMalformed }
