package project

import (
	"fmt"
	"math"
	"strings"

	"slidecast/internal/services"
)

// Entry is one resolved slide: the image it shows, the caption it carries,
// and the spoken interval of the words it spans.
type Entry struct {
	Image   string
	Caption string
	Start   float64
	End     float64
}

// BuildSequence resolves every slide to an Entry. Slides without media keep
// showing the previous image; slides without timed words get their timing
// filled from their neighbors (start from the previous end, end from the
// next known start).
func BuildSequence(p *Project) ([]Entry, error) {
	index := p.WordIndex()
	entries := make([]Entry, 0, len(p.Slides))

	currentImage := ""
	for i, slide := range p.Slides {
		if name := firstImageName(slide); name != "" {
			currentImage = name
		}
		if currentImage == "" {
			return nil, services.Wrap(services.ErrValidation, "project", "sequence",
				fmt.Sprintf("slide %d has no image and none precedes it", i), nil)
		}

		entry := Entry{
			Image: currentImage,
			Start: math.NaN(),
			End:   math.NaN(),
		}
		for _, text := range slide.TextList {
			if value := text.Value; value != "" {
				entry.Caption = value
			}
			for _, id := range text.IDWords {
				word, ok := index[id]
				if !ok {
					continue
				}
				if math.IsNaN(entry.Start) || word.Start < entry.Start {
					entry.Start = word.Start
				}
				if math.IsNaN(entry.End) || word.End > entry.End {
					entry.End = word.End
				}
			}
		}
		entries = append(entries, entry)
	}

	fillTimings(entries)
	return entries, nil
}

// fillTimings interpolates missing slide timings in document order:
// forward-fill a missing start from the previous end (0 for the first
// slide), then backward-fill a missing end from the next known start
// (start + 1s when no later slide has one).
func fillTimings(entries []Entry) {
	for i := range entries {
		if math.IsNaN(entries[i].Start) {
			if i > 0 && !math.IsNaN(entries[i-1].End) {
				entries[i].Start = entries[i-1].End
			} else {
				entries[i].Start = 0
			}
		}
		if math.IsNaN(entries[i].End) {
			for j := i + 1; j < len(entries); j++ {
				if !math.IsNaN(entries[j].Start) {
					entries[i].End = entries[j].Start
					break
				}
			}
			if math.IsNaN(entries[i].End) {
				entries[i].End = entries[i].Start + 1
			}
		}
	}
}

// firstImageName returns the basename of the slide's first image media URL.
func firstImageName(slide Slide) string {
	for _, media := range slide.MediaList {
		if media.Type != "image" {
			continue
		}
		url := strings.TrimSpace(media.URL)
		if url == "" {
			continue
		}
		if idx := strings.LastIndexByte(url, '/'); idx >= 0 {
			url = url[idx+1:]
		}
		return url
	}
	return ""
}
