// SPDX-License-Identifier: Apache-2.0

package topomap

import (
	"testing"

	"github.com/wrinkles-go/wrinkles/composition"
	"github.com/wrinkles-go/wrinkles/ordinate"
)

func buildSampleTimeline() *composition.Timeline {
	track := composition.NewTrack("V1")
	track.Append(composition.NewClip("clipA", ordinate.NewInterval(ordinate.FromInt64(0), ordinate.FromInt64(10)), nil))
	track.Append(composition.NewClip("clipB", ordinate.NewInterval(ordinate.FromInt64(0), ordinate.FromInt64(5)), nil))

	stack := composition.NewStack("stack")
	stack.Append(track)

	return composition.NewTimeline("tl", stack)
}

func TestBuildAndReachability(t *testing.T) {
	tl := buildSampleTimeline()
	m, err := Build(tl)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	track := tl.Tracks.Children()[0].(*composition.Track)
	clipA := track.Children()[0].(*composition.Clip)

	ok, err := m.Reachable(tl.OutputSpace(), clipA.MediaSpace())
	if err != nil {
		t.Fatalf("Reachable: %v", err)
	}
	if !ok {
		t.Error("expected clipA media space to be reachable from timeline output")
	}
}

func TestPathSpaces(t *testing.T) {
	tl := buildSampleTimeline()
	m, err := Build(tl)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	track := tl.Tracks.Children()[0].(*composition.Track)
	clipB := track.Children()[1].(*composition.Clip)

	path, err := m.PathSpaces(tl.OutputSpace(), clipB.MediaSpace())
	if err != nil {
		t.Fatalf("PathSpaces: %v", err)
	}
	if len(path) != 5 {
		t.Errorf("path length = %d, want 5 (timeline->stack->track->clip->media)", len(path))
	}
}

func TestUnreachableSpace(t *testing.T) {
	tlA := buildSampleTimeline()
	tlB := buildSampleTimeline()
	mA, _ := Build(tlA)

	_, err := mA.Reachable(tlA.OutputSpace(), tlB.OutputSpace())
	if err != ErrUnknownSpace {
		t.Errorf("err = %v, want ErrUnknownSpace for a space from a different tree", err)
	}
}
