package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"slidecast/internal/services"
)

// WordID identifies a transcript word. Project files emitted by different
// exporters carry these as strings or as bare numbers; both decode to the
// same key space.
type WordID string

func (id *WordID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*id = WordID(value)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return err
	}
	*id = WordID(number.String())
	return nil
}

// Word is a single transcript word with its spoken interval in seconds.
type Word struct {
	ID    WordID  `json:"id"`
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment groups consecutive transcript words.
type Segment struct {
	Words []Word `json:"words"`
}

// Media references a slide asset by URL.
type Media struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Text is a caption phrase bound to the transcript words it spans.
type Text struct {
	Value   string   `json:"value"`
	IDWords []WordID `json:"idWords"`
}

// Slide pairs media with caption text.
type Slide struct {
	MediaList []Media `json:"mediaList"`
	TextList  []Text  `json:"textList"`
}

// Project is the declarative description of the video: ordered slides plus
// the word-level transcript of the voiceover.
type Project struct {
	Slides         []Slide   `json:"slides"`
	TranscriptFull []Segment `json:"transcriptFull"`
}

// Load parses a project JSON file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "project", "read", path, err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, services.Wrap(services.ErrValidation, "project", "parse", path, err)
	}
	if len(p.Slides) == 0 {
		return nil, services.Wrap(services.ErrValidation, "project", "parse", fmt.Sprintf("%s: no slides", path), nil)
	}
	return &p, nil
}

// WordIndex maps every transcript word id to its word, across all segments.
func (p *Project) WordIndex() map[WordID]Word {
	index := make(map[WordID]Word)
	for _, segment := range p.TranscriptFull {
		for _, word := range segment.Words {
			index[word.ID] = word
		}
	}
	return index
}
