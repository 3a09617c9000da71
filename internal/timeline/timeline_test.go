package timeline

import (
	"errors"
	"testing"

	"slidecast/internal/project"
	"slidecast/internal/services"
)

func entries() []project.Entry {
	return []project.Entry{
		{Image: "a.png", Caption: "one", Start: 0, End: 1.0},
		{Image: "a.png", Caption: "two", Start: 1.0, End: 2.0},
		{Image: "b.png", Caption: "three", Start: 2.0, End: 3.5},
		{Image: "c.png", Caption: "four", Start: 3.5, End: 4.0},
	}
}

func TestBuildCoverageIsTotal(t *testing.T) {
	tl, err := Build(entries(), 4.2, 30, 0.4)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tl.TotalFrames != 126 {
		t.Fatalf("expected 126 frames (4.2s * 30fps), got %d", tl.TotalFrames)
	}

	// Segments tile [0, TotalFrames) exactly.
	expected := 0
	for i, segment := range tl.Segments {
		if segment.StartFrame != expected {
			t.Fatalf("segment %d starts at %d, expected %d", i, segment.StartFrame, expected)
		}
		if segment.EndFrame < segment.StartFrame {
			t.Fatalf("segment %d has negative extent", i)
		}
		expected = segment.EndFrame
	}
	if expected != tl.TotalFrames {
		t.Fatalf("segments cover %d frames, expected %d", expected, tl.TotalFrames)
	}

	// Every frame resolves to exactly one segment.
	for frame := 0; frame < tl.TotalFrames; frame++ {
		pos, ok := tl.Resolve(frame)
		if !ok {
			t.Fatalf("frame %d did not resolve", frame)
		}
		segment := tl.Segments[pos.Segment]
		if frame < segment.StartFrame || frame >= segment.EndFrame {
			t.Fatalf("frame %d resolved outside its segment [%d,%d)", frame, segment.StartFrame, segment.EndFrame)
		}
	}
}

func TestBuildMarksImageTransitions(t *testing.T) {
	tl, err := Build(entries(), 4.2, 30, 0.4)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tl.Transitions() != 2 {
		t.Fatalf("expected 2 transitions, got %d", tl.Transitions())
	}
	// Same image between slides 0 and 1: no fade.
	if tl.Segments[1].FadeFrames != 0 {
		t.Fatalf("unexpected fade on same-image segment: %d", tl.Segments[1].FadeFrames)
	}
	// 0.4s at 30fps.
	if tl.Segments[2].FadeFrames != 12 {
		t.Fatalf("expected 12 fade frames, got %d", tl.Segments[2].FadeFrames)
	}
}

func TestBlendWeightMonotonicWithinWindow(t *testing.T) {
	tl, err := Build(entries(), 4.2, 30, 0.4)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	segment := tl.Segments[2]
	prev := -1.0
	for frame := segment.StartFrame; frame < segment.EndFrame; frame++ {
		pos, ok := tl.Resolve(frame)
		if !ok {
			t.Fatalf("frame %d did not resolve", frame)
		}
		if pos.Blend < prev {
			t.Fatalf("blend not monotonic at frame %d: %v < %v", frame, pos.Blend, prev)
		}
		prev = pos.Blend
	}

	first, _ := tl.Resolve(segment.StartFrame)
	if first.Blend != 0 || first.From != 1 {
		t.Fatalf("expected fade to open fully on previous image: %+v", first)
	}
	past, _ := tl.Resolve(segment.StartFrame + segment.FadeFrames)
	if past.Blend != 1 || past.From != -1 {
		t.Fatalf("expected fully opaque frame after the window: %+v", past)
	}
}

func TestBuildClampsFadeToSegmentLength(t *testing.T) {
	short := []project.Entry{
		{Image: "a.png", Start: 0, End: 0.1},
		{Image: "b.png", Start: 0.1, End: 0.2},
	}
	tl, err := Build(short, 0.2, 30, 0.4)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	segment := tl.Segments[1]
	if segment.FadeFrames > segment.Frames() {
		t.Fatalf("fade %d exceeds segment length %d", segment.FadeFrames, segment.Frames())
	}
}

func TestBuildAllowsSubFrameSlides(t *testing.T) {
	sub := []project.Entry{
		{Image: "a.png", Start: 0, End: 1.0},
		{Image: "b.png", Start: 1.0, End: 1.01},
		{Image: "c.png", Start: 1.01, End: 2.0},
	}
	tl, err := Build(sub, 2.0, 30, 0.4)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	total := 0
	for _, segment := range tl.Segments {
		total += segment.Frames()
	}
	if total != tl.TotalFrames {
		t.Fatalf("segments cover %d frames, expected %d", total, tl.TotalFrames)
	}
}

func TestBuildPullsFirstSlideToFrameZero(t *testing.T) {
	late := []project.Entry{{Image: "a.png", Start: 0.25, End: 2.0}}
	tl, err := Build(late, 2.0, 30, 0.4)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tl.Segments[0].StartFrame != 0 {
		t.Fatalf("first segment should start at frame 0, got %d", tl.Segments[0].StartFrame)
	}
}

func TestBuildValidation(t *testing.T) {
	if _, err := Build(nil, 1, 30, 0.4); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty entries, got %v", err)
	}
	if _, err := Build(entries(), 0, 30, 0.4); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation for zero duration, got %v", err)
	}
	if _, err := Build(entries(), 4.2, 0, 0.4); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation for zero fps, got %v", err)
	}
	unordered := entries()
	unordered[2].Start = 0.5
	if _, err := Build(unordered, 4.2, 30, 0.4); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation for unordered starts, got %v", err)
	}
}

func TestResolveOutOfRange(t *testing.T) {
	tl, err := Build(entries(), 4.2, 30, 0.4)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := tl.Resolve(-1); ok {
		t.Fatal("negative frame should not resolve")
	}
	if _, ok := tl.Resolve(tl.TotalFrames); ok {
		t.Fatal("frame past the end should not resolve")
	}
}
