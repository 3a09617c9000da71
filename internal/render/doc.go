// Package render composes timeline segments into JPEG frames.
//
// Each slide image is scaled to the output geometry and letterboxed on
// black, the caption is burned in near the bottom edge with an outline,
// and the sticker overlay is composited into the top-right corner. Frames
// inside a crossfade window blend the previous slide into the current one.
package render
