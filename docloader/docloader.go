// SPDX-License-Identifier: Apache-2.0

// Package docloader ingests JSON timeline documents into a
// composition.Node tree, using github.com/bytedance/sonic for fast
// decoding and a schema-tag dispatch adapted from gotio's
// decodeSonicObject (opentimelineio/decode_sonic.go): a top-level
// OTIO_SCHEMA field selects the decode function for each node, walked
// recursively through children.
package docloader

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/wrinkles-go/wrinkles/affine"
	"github.com/wrinkles-go/wrinkles/composition"
	"github.com/wrinkles-go/wrinkles/curve"
	"github.com/wrinkles-go/wrinkles/mapping"
	"github.com/wrinkles-go/wrinkles/ordinate"
)

// SchemaError reports a malformed or unrecognized document node,
// mirroring gotio's errors.go SchemaError.
type SchemaError struct {
	Schema  string
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("docloader: schema %q: %s", e.Schema, e.Message)
}

// LoadBytes parses data as a JSON document and decodes its root node.
func LoadBytes(data []byte) (composition.Node, error) {
	data = SanitizeJSON(data)
	var m map[string]any
	if err := sonic.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("docloader: sonic unmarshal: %w", err)
	}
	return decodeNode(m)
}

func decodeNode(m map[string]any) (composition.Node, error) {
	schema, _ := m["OTIO_SCHEMA"].(string)
	switch schema {
	case "Timeline.1":
		return decodeTimeline(m)
	case "Stack.1":
		return decodeStack(m)
	case "Track.1":
		return decodeTrack(m)
	case "Clip.1":
		return decodeClip(m)
	case "Gap.1":
		return decodeGap(m)
	case "Warp.1":
		return decodeWarp(m)
	default:
		return nil, &SchemaError{Schema: schema, Message: "unrecognized OTIO_SCHEMA"}
	}
}

func name(m map[string]any) string {
	n, _ := m["name"].(string)
	return n
}

func decodeOrdinate(v any) (ordinate.Ordinate, error) {
	switch t := v.(type) {
	case float64:
		return ordinate.FromFloat64(t), nil
	case string:
		switch t {
		case "Inf", "Infinity", "+Inf":
			return ordinate.PosInf, nil
		case "-Inf", "-Infinity":
			return ordinate.NegInf, nil
		case "NaN":
			return ordinate.NaN, nil
		}
		return ordinate.Zero, &SchemaError{Message: fmt.Sprintf("unrecognized ordinate token %q", t)}
	case map[string]any:
		num, _ := t["num"].(float64)
		den, _ := t["den"].(float64)
		if den == 0 {
			den = 1
		}
		return ordinate.FromFrac(int64(num), int64(den)), nil
	default:
		return ordinate.Zero, &SchemaError{Message: "missing or invalid ordinate"}
	}
}

func decodeInterval(v any) (ordinate.Interval, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return ordinate.Interval{}, &SchemaError{Message: "missing interval"}
	}
	start, err := decodeOrdinate(m["start"])
	if err != nil {
		return ordinate.Interval{}, err
	}
	end, err := decodeOrdinate(m["end"])
	if err != nil {
		return ordinate.Interval{}, err
	}
	return ordinate.NewInterval(start, end), nil
}

func decodeSampling(v any) (*ordinate.Sampling, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, nil
	}
	rate, err := decodeOrdinate(m["rate"])
	if err != nil {
		return nil, err
	}
	startIndex, _ := m["start_index"].(float64)
	origin := ordinate.Zero
	if o, ok := m["origin_offset"]; ok {
		origin, err = decodeOrdinate(o)
		if err != nil {
			return nil, err
		}
	}
	return ordinate.NewSampling(rate, int64(startIndex), origin)
}

func decodeClip(m map[string]any) (*composition.Clip, error) {
	bounds, err := decodeInterval(m["media_bounds"])
	if err != nil {
		return nil, err
	}
	sampling, err := decodeSampling(m["sampling"])
	if err != nil {
		return nil, err
	}
	return composition.NewClip(name(m), bounds, sampling), nil
}

func decodeGap(m map[string]any) (*composition.Gap, error) {
	bounds, err := decodeInterval(m["bounds"])
	if err != nil {
		return nil, err
	}
	return composition.NewGap(name(m), bounds), nil
}

func decodeMapping(v any) (mapping.Mapping, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return mapping.Mapping{}, &SchemaError{Message: "missing mapping"}
	}
	kind, _ := m["kind"].(string)
	bounds, err := decodeInterval(m["bounds"])
	if err != nil {
		return mapping.Mapping{}, err
	}
	switch kind {
	case "empty":
		return mapping.NewEmpty(bounds), nil
	case "affine":
		offset, err := decodeOrdinate(m["offset"])
		if err != nil {
			return mapping.Mapping{}, err
		}
		scale, err := decodeOrdinate(m["scale"])
		if err != nil {
			return mapping.Mapping{}, err
		}
		return mapping.NewAffine(bounds, affine.New(offset, scale)), nil
	case "linear":
		knotsAny, _ := m["knots"].([]any)
		knots := make([]curve.Knot, 0, len(knotsAny))
		for _, kAny := range knotsAny {
			km, ok := kAny.(map[string]any)
			if !ok {
				continue
			}
			in, err := decodeOrdinate(km["in"])
			if err != nil {
				return mapping.Mapping{}, err
			}
			out, err := decodeOrdinate(km["out"])
			if err != nil {
				return mapping.Mapping{}, err
			}
			knots = append(knots, curve.Knot{In: in, Out: out})
		}
		lc, err := curve.NewLinearCurve(knots)
		if err != nil {
			return mapping.Mapping{}, err
		}
		return mapping.NewLinear(lc), nil
	case "bezier":
		segsAny, _ := m["segments"].([]any)
		segs := make([]curve.Segment, 0, len(segsAny))
		for _, sAny := range segsAny {
			sm, ok := sAny.(map[string]any)
			if !ok {
				continue
			}
			seg, err := decodeBezierSegment(sm)
			if err != nil {
				return mapping.Mapping{}, err
			}
			segs = append(segs, seg)
		}
		bc, err := curve.NewCurveFromPoints(segs)
		if err != nil {
			return mapping.Mapping{}, err
		}
		return mapping.NewBezier(bc), nil
	default:
		return mapping.Mapping{}, &SchemaError{Message: fmt.Sprintf("unrecognized mapping kind %q", kind)}
	}
}

func decodeBezierSegment(m map[string]any) (curve.Segment, error) {
	decodePoint := func(key string) (curve.Point, error) {
		pm, ok := m[key].(map[string]any)
		if !ok {
			return curve.Point{}, &SchemaError{Message: fmt.Sprintf("missing bezier control point %q", key)}
		}
		in, err := decodeOrdinate(pm["in"])
		if err != nil {
			return curve.Point{}, err
		}
		out, err := decodeOrdinate(pm["out"])
		if err != nil {
			return curve.Point{}, err
		}
		return curve.Point{In: in, Out: out}, nil
	}
	p0, err := decodePoint("p0")
	if err != nil {
		return curve.Segment{}, err
	}
	p1, err := decodePoint("p1")
	if err != nil {
		return curve.Segment{}, err
	}
	p2, err := decodePoint("p2")
	if err != nil {
		return curve.Segment{}, err
	}
	p3, err := decodePoint("p3")
	if err != nil {
		return curve.Segment{}, err
	}
	return curve.Segment{P0: p0, P1: p1, P2: p2, P3: p3}, nil
}

func decodeWarp(m map[string]any) (*composition.Warp, error) {
	childAny, ok := m["child"].(map[string]any)
	if !ok {
		return nil, &SchemaError{Message: "warp missing child"}
	}
	child, err := decodeNode(childAny)
	if err != nil {
		return nil, err
	}
	remap, err := decodeMapping(m["remap"])
	if err != nil {
		return nil, err
	}
	return composition.NewWarp(name(m), child, remap), nil
}

func decodeTrack(m map[string]any) (*composition.Track, error) {
	track := composition.NewTrack(name(m))
	children, _ := m["children"].([]any)
	for _, childAny := range children {
		childMap, ok := childAny.(map[string]any)
		if !ok {
			continue
		}
		child, err := decodeNode(childMap)
		if err != nil {
			return nil, err
		}
		track.Append(child)
	}
	return track, nil
}

func decodeStack(m map[string]any) (*composition.Stack, error) {
	stack := composition.NewStack(name(m))
	children, _ := m["children"].([]any)
	for _, childAny := range children {
		childMap, ok := childAny.(map[string]any)
		if !ok {
			continue
		}
		child, err := decodeNode(childMap)
		if err != nil {
			return nil, err
		}
		stack.Append(child)
	}
	return stack, nil
}

func decodeTimeline(m map[string]any) (*composition.Timeline, error) {
	tracksAny, ok := m["tracks"].(map[string]any)
	if !ok {
		return nil, &SchemaError{Message: "timeline missing tracks"}
	}
	tracksNode, err := decodeNode(tracksAny)
	if err != nil {
		return nil, err
	}
	stack, ok := tracksNode.(*composition.Stack)
	if !ok {
		return nil, &SchemaError{Message: "timeline.tracks must be a Stack"}
	}
	return composition.NewTimeline(name(m), stack), nil
}
