// SPDX-License-Identifier: Apache-2.0

package projection

import (
	"errors"
	"testing"

	"github.com/wrinkles-go/wrinkles/composition"
	"github.com/wrinkles-go/wrinkles/ordinate"
	"github.com/wrinkles-go/wrinkles/topomap"
)

func iv(a, b int64) ordinate.Interval {
	return ordinate.NewInterval(ordinate.FromInt64(a), ordinate.FromInt64(b))
}

func buildTimeline() (*composition.Timeline, *composition.Clip, *composition.Clip) {
	clipA := composition.NewClip("clipA", iv(0, 10), nil)
	clipB := composition.NewClip("clipB", iv(0, 5), nil)
	track := composition.NewTrack("V1")
	track.Append(clipA)
	track.Append(clipB)
	stack := composition.NewStack("stack")
	stack.Append(track)
	tl := composition.NewTimeline("tl", stack)
	return tl, clipA, clipB
}

func TestBuildProjectionTimelineToClipMedia(t *testing.T) {
	tl, clipA, clipB := buildTimeline()
	m, err := topomap.Build(tl)
	if err != nil {
		t.Fatalf("topomap.Build: %v", err)
	}
	b := NewBuilder(m)

	table, err := b.BuildProjection(tl.OutputSpace())
	if err != nil {
		t.Fatalf("BuildProjection: %v", err)
	}

	proj, err := b.ProjectionTo(table, clipA.MediaSpace())
	if err != nil {
		t.Fatalf("ProjectionTo clipA: %v", err)
	}
	got, err := proj.ProjectInstantaneous(ordinate.FromInt64(3))
	if err != nil {
		t.Fatalf("ProjectInstantaneous: %v", err)
	}
	if !got.Equal(ordinate.FromInt64(3)) {
		t.Errorf("timeline(3) in clipA media = %v, want 3", got)
	}

	projB, err := b.ProjectionTo(table, clipB.MediaSpace())
	if err != nil {
		t.Fatalf("ProjectionTo clipB: %v", err)
	}
	got2, err := projB.ProjectInstantaneous(ordinate.FromInt64(12))
	if err != nil {
		t.Fatalf("ProjectInstantaneous(12): %v", err)
	}
	if !got2.Equal(ordinate.FromInt64(2)) {
		t.Errorf("timeline(12) in clipB media = %v, want 2", got2)
	}

	if _, err := projB.ProjectInstantaneous(ordinate.FromInt64(3)); !errors.Is(err, ErrEmpty) {
		t.Errorf("timeline(3) projected into clipB err = %v, want ErrEmpty", err)
	}
}

func TestProjectIntervalSpansOnlyReachablePortion(t *testing.T) {
	tl, clipA, _ := buildTimeline()
	m, _ := topomap.Build(tl)
	b := NewBuilder(m)
	table, err := b.BuildProjection(tl.OutputSpace())
	if err != nil {
		t.Fatalf("BuildProjection: %v", err)
	}
	proj, err := b.ProjectionTo(table, clipA.MediaSpace())
	if err != nil {
		t.Fatalf("ProjectionTo: %v", err)
	}
	// [10,15) of the timeline is clipB's region, Empty in clipA's media.
	got, err := proj.ProjectInterval(iv(2, 13))
	if err != nil {
		t.Fatalf("ProjectInterval: %v", err)
	}
	want := iv(2, 10)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestBuildProjectionStackFanOut exercises the stack-overlay scenario:
// two clips both covering [0,5) under one stack produce a single row
// with two distinct-destination mappings, not two separate builds.
func TestBuildProjectionStackFanOut(t *testing.T) {
	clipA := composition.NewClip("overlayA", iv(0, 5), nil)
	clipB := composition.NewClip("overlayB", iv(0, 5), nil)
	stack := composition.NewStack("stack")
	stack.Append(clipA)
	stack.Append(clipB)

	m, err := topomap.Build(stack)
	if err != nil {
		t.Fatalf("topomap.Build: %v", err)
	}
	b := NewBuilder(m)

	table, err := b.BuildProjection(stack.OutputSpace())
	if err != nil {
		t.Fatalf("BuildProjection: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(table.Rows))
	}
	row := table.Rows[0]
	if !row.InputBounds.Equal(iv(0, 5)) {
		t.Errorf("row bounds = %v, want [0,5)", row.InputBounds)
	}
	if len(row.Mappings) != 2 {
		t.Fatalf("mappings = %d, want 2 (one per child)", len(row.Mappings))
	}
	if row.Mappings[0].Dest == row.Mappings[1].Dest {
		t.Errorf("both mappings point at the same destination, want distinct")
	}

	projA, err := b.ProjectionTo(table, clipA.MediaSpace())
	if err != nil {
		t.Fatalf("ProjectionTo clipA: %v", err)
	}
	gotA, err := projA.ProjectInstantaneous(ordinate.FromInt64(2))
	if err != nil {
		t.Fatalf("ProjectInstantaneous clipA: %v", err)
	}
	if !gotA.Equal(ordinate.FromInt64(2)) {
		t.Errorf("stack(2) in overlayA media = %v, want 2", gotA)
	}

	projB, err := b.ProjectionTo(table, clipB.MediaSpace())
	if err != nil {
		t.Fatalf("ProjectionTo clipB: %v", err)
	}
	gotB, err := projB.ProjectInstantaneous(ordinate.FromInt64(2))
	if err != nil {
		t.Fatalf("ProjectInstantaneous clipB: %v", err)
	}
	if !gotB.Equal(ordinate.FromInt64(2)) {
		t.Errorf("stack(2) in overlayB media = %v, want 2", gotB)
	}
}

func TestProjectionToUnknownDestinationIsUnreachable(t *testing.T) {
	tl, _, _ := buildTimeline()
	other := composition.NewClip("stray", iv(0, 1), nil)
	m, _ := topomap.Build(tl)
	b := NewBuilder(m)
	table, err := b.BuildProjection(tl.OutputSpace())
	if err != nil {
		t.Fatalf("BuildProjection: %v", err)
	}
	if _, err := b.ProjectionTo(table, other.MediaSpace()); !errors.Is(err, ErrUnreachable) {
		t.Errorf("err = %v, want ErrUnreachable", err)
	}
}
