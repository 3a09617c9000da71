package encode

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"slidecast/internal/config"
	"slidecast/internal/logging"
	"slidecast/internal/render"
	"slidecast/internal/services"
)

// Encoder muxes rendered frames with the voiceover track via ffmpeg.
type Encoder struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New returns an encoder bound to the given configuration.
func New(cfg *config.Config, logger *slog.Logger) *Encoder {
	return &Encoder{cfg: cfg, logger: logging.NewComponentLogger(logger, "encode")}
}

// Args returns the full ffmpeg argument list for muxing framesDir with
// audioPath into outputPath, without the binary name.
func (e *Encoder) Args(framesDir, audioPath, outputPath string) []string {
	framePattern := filepath.Join(framesDir, render.FramePattern)

	frames := ffmpeg.Input(framePattern, ffmpeg.KwArgs{
		"framerate": e.cfg.Video.FPS,
	})
	audio := ffmpeg.Input(audioPath)

	stream := ffmpeg.Output([]*ffmpeg.Stream{frames, audio}, outputPath, ffmpeg.KwArgs{
		"c:v":      e.cfg.Encode.VideoCodec,
		"preset":   e.cfg.Encode.Preset,
		"crf":      e.cfg.Encode.CRF,
		"c:a":      e.cfg.Encode.AudioCodec,
		"b:a":      e.cfg.Encode.AudioBitrate,
		"pix_fmt":  e.cfg.Encode.PixelFormat,
		"movflags": "+faststart",
		"shortest": "",
	}).OverWriteOutput()

	return stream.GetArgs()
}

// CommandLine renders the full invocation for logging.
func (e *Encoder) CommandLine(framesDir, audioPath, outputPath string) string {
	parts := append([]string{e.cfg.FFmpegBinary()}, e.Args(framesDir, audioPath, outputPath)...)
	return strings.Join(parts, " ")
}

// Mux runs ffmpeg to combine the frame sequence and the audio track into
// the final video. ffmpeg's stderr is captured and attached to any failure.
func (e *Encoder) Mux(ctx context.Context, framesDir, audioPath, outputPath string) error {
	args := e.Args(framesDir, audioPath, outputPath)
	binary := e.cfg.FFmpegBinary()

	e.logger.Info("muxing frames with audio",
		logging.String("binary", binary),
		logging.String("output", outputPath))
	e.logger.Debug("ffmpeg command", logging.String("args", strings.Join(args, " ")))

	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, tail(detail, 2000))
		}
		return services.Wrap(services.ErrExternalTool, "encode", "ffmpeg mux", "ffmpeg failed", err)
	}
	return nil
}

// tail keeps the last max bytes of s; ffmpeg puts the useful error at the end.
func tail(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[len(s)-max:]
}
