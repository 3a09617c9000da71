// Package encode drives the external ffmpeg mux step: the rendered JPEG
// frame sequence and the voiceover track go in, the finished MP4 comes out.
package encode
