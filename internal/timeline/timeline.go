package timeline

import (
	"fmt"
	"math"
	"sort"

	"slidecast/internal/project"
	"slidecast/internal/services"
)

// Segment is one slide's share of the output frame range.
type Segment struct {
	Index      int
	Image      string
	Caption    string
	Start      float64 // spoken start, seconds
	DisplayEnd float64 // display end on the absolute timeline, seconds
	StartFrame int     // inclusive
	EndFrame   int     // exclusive
	// FadeFrames is the length of the crossfade window opening this
	// segment; zero when the image does not change.
	FadeFrames int
}

// Frames returns the number of output frames the segment owns.
func (s Segment) Frames() int {
	return s.EndFrame - s.StartFrame
}

// Position resolves a frame index to its segment and blend state.
type Position struct {
	Segment int
	// Blend is the weight of the segment's own canvas. Inside a crossfade
	// window it ramps linearly from 0 toward 1; elsewhere it is exactly 1.
	Blend float64
	// From is the segment blended underneath during a crossfade, -1 otherwise.
	From int
}

// Timeline maps every output frame to exactly one slide, with crossfade
// windows at image changes.
type Timeline struct {
	Segments    []Segment
	TotalFrames int
	FPS         int
}

// Build computes the per-frame plan for the given slide sequence.
//
// Each slide is displayed from its spoken start until the next slide's
// start; the last slide runs to the end of the audio. Frame boundaries are
// round(start*fps) clamped into the non-decreasing range [0, totalFrames],
// so the segments tile the frame range exactly: slides shorter than one
// frame own zero frames. When the image changes between adjacent slides,
// the incoming segment opens with a crossfade window of
// trunc(crossfade*fps) frames, clamped to the segment length.
func Build(entries []project.Entry, audioDuration float64, fps int, crossfadeSeconds float64) (*Timeline, error) {
	if len(entries) == 0 {
		return nil, services.Wrap(services.ErrValidation, "timeline", "build", "no slides", nil)
	}
	if fps <= 0 {
		return nil, services.Wrap(services.ErrValidation, "timeline", "build", fmt.Sprintf("fps must be positive, got %d", fps), nil)
	}
	if math.IsNaN(audioDuration) || audioDuration <= 0 {
		return nil, services.Wrap(services.ErrValidation, "timeline", "build", fmt.Sprintf("audio duration must be positive, got %v", audioDuration), nil)
	}
	if crossfadeSeconds < 0 {
		return nil, services.Wrap(services.ErrValidation, "timeline", "build", "crossfade must be >= 0", nil)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Start < entries[i-1].Start {
			return nil, services.Wrap(services.ErrValidation, "timeline", "build",
				fmt.Sprintf("slide %d starts at %.3fs before slide %d at %.3fs", i, entries[i].Start, i-1, entries[i-1].Start), nil)
		}
	}

	totalFrames := int(audioDuration * float64(fps))
	if totalFrames <= 0 {
		return nil, services.Wrap(services.ErrValidation, "timeline", "build", "audio shorter than one frame", nil)
	}

	// Frame boundaries: the first slide is pulled back to frame 0 and the
	// last runs to the end of the audio, so coverage is total.
	boundaries := make([]int, len(entries)+1)
	for i := 1; i < len(entries); i++ {
		frame := int(math.Round(entries[i].Start * float64(fps)))
		if frame < boundaries[i-1] {
			frame = boundaries[i-1]
		}
		if frame > totalFrames {
			frame = totalFrames
		}
		boundaries[i] = frame
	}
	boundaries[len(entries)] = totalFrames

	fadeFrames := int(crossfadeSeconds * float64(fps))

	segments := make([]Segment, len(entries))
	for i, entry := range entries {
		displayEnd := audioDuration
		if i+1 < len(entries) {
			displayEnd = entries[i+1].Start
		}
		segment := Segment{
			Index:      i,
			Image:      entry.Image,
			Caption:    entry.Caption,
			Start:      entry.Start,
			DisplayEnd: displayEnd,
			StartFrame: boundaries[i],
			EndFrame:   boundaries[i+1],
		}
		if i > 0 && entry.Image != entries[i-1].Image {
			fade := fadeFrames
			if frames := segment.Frames(); fade > frames {
				fade = frames
			}
			segment.FadeFrames = fade
		}
		segments[i] = segment
	}

	return &Timeline{Segments: segments, TotalFrames: totalFrames, FPS: fps}, nil
}

// Resolve returns the segment owning the given frame. The boolean is false
// when the frame index is out of range.
func (t *Timeline) Resolve(frame int) (Position, bool) {
	if frame < 0 || frame >= t.TotalFrames {
		return Position{}, false
	}
	// Empty segments have EndFrame == StartFrame and can never satisfy
	// EndFrame > frame before their successor does, so the search lands on
	// the unique non-empty owner.
	idx := sort.Search(len(t.Segments), func(i int) bool {
		return t.Segments[i].EndFrame > frame
	})
	if idx >= len(t.Segments) {
		return Position{}, false
	}
	segment := t.Segments[idx]
	offset := frame - segment.StartFrame
	if offset < segment.FadeFrames {
		return Position{Segment: idx, Blend: BlendWeight(offset, segment.FadeFrames), From: idx - 1}, true
	}
	return Position{Segment: idx, Blend: 1, From: -1}, true
}

// Transitions counts the segments that open with a crossfade.
func (t *Timeline) Transitions() int {
	count := 0
	for _, segment := range t.Segments {
		if segment.FadeFrames > 0 {
			count++
		}
	}
	return count
}

// BlendWeight is the linear crossfade ramp: weight of the incoming image
// at the given offset into a fade window. It is 0 on the window's first
// frame and reaches 1 on the first frame past the window.
func BlendWeight(offset, fadeFrames int) float64 {
	if fadeFrames <= 0 || offset >= fadeFrames {
		return 1
	}
	if offset < 0 {
		return 0
	}
	return float64(offset) / float64(fadeFrames)
}
