// SPDX-License-Identifier: Apache-2.0

package ordinate

// Interval is a clopen [start, end) range of Ordinate, the
// rational-exact generalization of gotio's opentime.TimeRange.
// Invariant: start <= end; start == end denotes the unique empty
// interval; either endpoint may be infinite.
type Interval struct {
	start Ordinate
	end   Ordinate
}

// NewInterval builds a clopen interval. If end < start the interval
// is normalized to the empty interval [start, start).
func NewInterval(start, end Ordinate) Interval {
	if end.Less(start) {
		end = start
	}
	return Interval{start: start, end: end}
}

// NewIntervalFromDuration builds [start, start+duration).
func NewIntervalFromDuration(start, duration Ordinate) Interval {
	return NewInterval(start, start.Add(duration))
}

// Start returns the (inclusive) start of the interval.
func (iv Interval) Start() Ordinate { return iv.start }

// End returns the (exclusive) end of the interval.
func (iv Interval) End() Ordinate { return iv.end }

// Duration returns end - start.
func (iv Interval) Duration() Ordinate { return iv.end.Sub(iv.start) }

// IsEmpty reports whether this is the degenerate point interval.
func (iv Interval) IsEmpty() bool { return iv.start.Equal(iv.end) }

// Contains reports whether o lies in [start, end) under the clopen
// rule: start is inside, end is not.
func (iv Interval) Contains(o Ordinate) bool {
	return iv.start.LessEqual(o) && o.Less(iv.end)
}

// ContainsInterval reports whether other is entirely within iv.
func (iv Interval) ContainsInterval(other Interval) bool {
	if other.IsEmpty() {
		return iv.Contains(other.start) || iv.start.Equal(other.start)
	}
	return iv.start.LessEqual(other.start) && other.end.LessEqual(iv.end)
}

// Intersection returns the overlap of iv and other. Per spec §3.A:
// intersection returns empty iff a.end <= b.start or b.end <= a.start;
// else [max(starts), min(ends)). Empty intervals are preserved (an
// empty operand yields an empty result at the appropriate point).
func (iv Interval) Intersection(other Interval) Interval {
	if iv.end.LessEqual(other.start) || other.end.LessEqual(iv.start) {
		return NewInterval(iv.start, iv.start)
	}
	start := iv.start
	if other.start.Cmp(start) > 0 {
		start = other.start
	}
	end := iv.end
	if other.end.Cmp(end) < 0 {
		end = other.end
	}
	return NewInterval(start, end)
}

// Overlaps reports whether iv and other share any ordinate.
func (iv Interval) Overlaps(other Interval) bool {
	return !(iv.end.LessEqual(other.start) || other.end.LessEqual(iv.start))
}

// Union returns the smallest interval enclosing both iv and other.
// Callers should only rely on this when the two intervals overlap or
// touch; per spec §3, union is defined over "overlapping" intervals.
func (iv Interval) Union(other Interval) Interval {
	start := iv.start
	if other.start.Less(start) {
		start = other.start
	}
	end := iv.end
	if other.end.Cmp(end) > 0 {
		end = other.end
	}
	return NewInterval(start, end)
}

// Translate shifts the interval by delta.
func (iv Interval) Translate(delta Ordinate) Interval {
	return Interval{start: iv.start.Add(delta), end: iv.end.Add(delta)}
}

// Scale multiplies both endpoints by factor. A negative factor
// inverts the endpoint order, so the result is re-normalized.
func (iv Interval) Scale(factor Ordinate) Interval {
	return NewInterval(iv.start.Mul(factor), iv.end.Mul(factor))
}

// Equal reports exact equality of both endpoints.
func (iv Interval) Equal(other Interval) bool {
	return iv.start.Equal(other.start) && iv.end.Equal(other.end)
}

// String renders the interval for debugging.
func (iv Interval) String() string {
	return "[" + iv.start.String() + ", " + iv.end.String() + ")"
}
