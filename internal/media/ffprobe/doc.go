// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The renderer uses it to read the voiceover duration (which fixes the
// output frame count) and to confirm input assets actually carry an audio
// stream before any frame is rendered.
package ffprobe
