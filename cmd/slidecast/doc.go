// Command slidecast renders promo videos from declarative slide projects.
//
// A project binds slides to images and captions and carries word-level
// voiceover timestamps; slidecast computes when each slide is on screen,
// composes one JPEG per frame with crossfades at image changes, and muxes
// the result with the voiceover through ffmpeg.
package main
