// Package project parses the declarative project JSON and resolves its
// slides against the word-level voiceover transcript.
//
// A project file carries an ordered slide list and a transcript split into
// segments of timed words. BuildSequence flattens that into one Entry per
// slide: the image shown (carried forward across media-less slides), the
// caption, and the spoken interval of the words the caption spans, with
// neighbor-based fill for slides whose words carry no timestamps.
package project
