package encode_test

import (
	"context"
	"strings"
	"testing"

	"slidecast/internal/encode"
	"slidecast/internal/logging"
	"slidecast/internal/testsupport"
)

func argValue(t *testing.T, args []string, flag string) string {
	t.Helper()
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("flag %s not found in %v", flag, args)
	return ""
}

func TestArgsCarryEncoderSettings(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	encoder := encode.New(cfg, logging.NewNop())

	args := encoder.Args("/tmp/frames", "/tmp/voice.mp3", "/tmp/out.mp4")

	if got := argValue(t, args, "-c:v"); got != "libx264" {
		t.Fatalf("video codec: %s", got)
	}
	if got := argValue(t, args, "-preset"); got != "medium" {
		t.Fatalf("preset: %s", got)
	}
	if got := argValue(t, args, "-crf"); got != "23" {
		t.Fatalf("crf: %s", got)
	}
	if got := argValue(t, args, "-c:a"); got != "aac" {
		t.Fatalf("audio codec: %s", got)
	}
	if got := argValue(t, args, "-b:a"); got != "192k" {
		t.Fatalf("audio bitrate: %s", got)
	}
	if got := argValue(t, args, "-pix_fmt"); got != "yuv420p" {
		t.Fatalf("pixel format: %s", got)
	}
	if got := argValue(t, args, "-movflags"); got != "+faststart" {
		t.Fatalf("movflags: %s", got)
	}
	if got := argValue(t, args, "-framerate"); got != "30" {
		t.Fatalf("framerate: %s", got)
	}

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-shortest") {
		t.Fatalf("missing -shortest in %s", joined)
	}
	if !strings.Contains(joined, "f_%06d.jpg") {
		t.Fatalf("missing frame pattern in %s", joined)
	}
	if !strings.Contains(joined, "-y") {
		t.Fatalf("missing overwrite flag in %s", joined)
	}
	if args[len(args)-1] != "/tmp/out.mp4" && !strings.Contains(joined, "/tmp/out.mp4") {
		t.Fatalf("missing output path in %s", joined)
	}
}

func TestArgsPlaceOverwriteFlagAfterOutput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	encoder := encode.New(cfg, logging.NewNop())

	args := encoder.Args("/tmp/frames", "/tmp/voice.mp3", "/tmp/out.mp4")

	// ffmpeg-go emits the output path before the trailing -y; anything
	// locating the output must not assume it is the final argument.
	if last := args[len(args)-1]; last != "-y" {
		t.Fatalf("expected trailing -y, got %q", last)
	}
	if prev := args[len(args)-2]; prev != "/tmp/out.mp4" {
		t.Fatalf("expected output path before -y, got %q", prev)
	}
}

func TestCommandLineStartsWithBinary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Encode.FFmpegBinary = "/opt/ffmpeg/bin/ffmpeg"
	encoder := encode.New(cfg, logging.NewNop())

	line := encoder.CommandLine("/tmp/frames", "/tmp/voice.mp3", "/tmp/out.mp4")
	if !strings.HasPrefix(line, "/opt/ffmpeg/bin/ffmpeg ") {
		t.Fatalf("unexpected command line: %s", line)
	}
}

func TestMuxRunsConfiguredBinary(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("ffmpeg"))
	encoder := encode.New(cfg, logging.NewNop())

	if err := encoder.Mux(context.Background(), t.TempDir(), "/tmp/voice.mp3", "/tmp/out.mp4"); err != nil {
		t.Fatalf("mux with stub binary: %v", err)
	}
}
