package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"slidecast/internal/config"
	"slidecast/internal/encode"
	"slidecast/internal/fileutil"
	"slidecast/internal/logging"
	"slidecast/internal/media/ffprobe"
	"slidecast/internal/project"
	"slidecast/internal/render"
	"slidecast/internal/services"
	"slidecast/internal/staging"
	"slidecast/internal/timeline"
)

type renderOptions struct {
	ProjectPath string
	ImagesDir   string
	AudioPath   string
	StickerPath string
	OutputPath  string
	KeepFrames  bool
}

// applyDefaults resolves unset asset paths relative to the project file.
func (o *renderOptions) applyDefaults() {
	projectDir := filepath.Dir(o.ProjectPath)
	if o.ImagesDir == "" {
		o.ImagesDir = filepath.Join(projectDir, "images")
	}
	if o.AudioPath == "" {
		o.AudioPath = filepath.Join(projectDir, "voiceover.mp3")
	}
	if o.StickerPath == "" {
		o.StickerPath = filepath.Join(projectDir, "sticker.png")
	}
	if o.OutputPath == "" {
		o.OutputPath = filepath.Join(projectDir, "output.mp4")
	}
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <project.json>",
		Short: "Render a project into a finished video",
		Long: `Render parses the project file, resolves each slide to an image, caption,
and spoken interval, composes one JPEG per output frame (with crossfades
at image changes), and muxes the frames with the voiceover via ffmpeg.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			opts.ProjectPath = args[0]
			opts.applyDefaults()
			return runRender(cmd.Context(), cfg, logger, cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ImagesDir, "images", "", "Directory containing slide images (default: <project dir>/images)")
	cmd.Flags().StringVar(&opts.AudioPath, "audio", "", "Voiceover audio file (default: <project dir>/voiceover.mp3)")
	cmd.Flags().StringVar(&opts.StickerPath, "sticker", "", "Overlay sticker image (default: <project dir>/sticker.png)")
	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "", "Output video path (default: <project dir>/output.mp4)")
	cmd.Flags().BoolVar(&opts.KeepFrames, "keep-frames", false, "Keep the staged frame directory after encoding")
	return cmd
}

func runRender(ctx context.Context, cfg *config.Config, logger *slog.Logger, cmd *cobra.Command, opts renderOptions) error {
	started := time.Now()

	for _, input := range []struct{ label, path string }{
		{"project", opts.ProjectPath},
		{"images directory", opts.ImagesDir},
		{"audio", opts.AudioPath},
		{"sticker", opts.StickerPath},
	} {
		if _, err := os.Stat(input.path); err != nil {
			return services.Wrap(services.ErrNotFound, "render", "check inputs",
				fmt.Sprintf("%s not found at %s", input.label, input.path), err)
		}
	}

	proj, err := project.Load(opts.ProjectPath)
	if err != nil {
		return err
	}
	entries, err := project.BuildSequence(proj)
	if err != nil {
		return err
	}

	probe, err := ffprobe.Inspect(ctx, cfg.FFprobeBinary(), opts.AudioPath)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "render", "probe audio", opts.AudioPath, err)
	}
	if !probe.HasAudioStream() {
		return services.Wrap(services.ErrValidation, "render", "probe audio",
			fmt.Sprintf("%s carries no audio stream", opts.AudioPath), nil)
	}
	duration := probe.DurationSeconds()
	if math.IsNaN(duration) || duration <= 0 {
		return services.Wrap(services.ErrValidation, "render", "probe audio",
			fmt.Sprintf("unusable audio duration %v for %s", duration, opts.AudioPath), nil)
	}

	tl, err := timeline.Build(entries, duration, cfg.Video.FPS, cfg.Video.CrossfadeSeconds)
	if err != nil {
		return err
	}
	logger.Info("render plan ready",
		logging.Int("slides", len(tl.Segments)),
		logging.Int("transitions", tl.Transitions()),
		logging.Int("frames", tl.TotalFrames),
		logging.Float64("audio_seconds", duration))

	workspace, err := staging.NewWorkspace(cfg, logger)
	if err != nil {
		return err
	}
	defer workspace.Cleanup(opts.KeepFrames)

	renderer := render.NewRenderer(cfg, logger)
	assets := render.Assets{ImagesDir: opts.ImagesDir, StickerPath: opts.StickerPath}
	progress := newRenderProgress(logger, tl.TotalFrames)
	if _, err := renderer.RenderFrames(ctx, tl, assets, workspace.FramesDir(), progress); err != nil {
		return err
	}

	encoder := encode.New(cfg, logger)
	staged := workspace.Path("output.mp4")
	if err := encoder.Mux(ctx, workspace.FramesDir(), opts.AudioPath, staged); err != nil {
		return err
	}

	if err := fileutil.MoveFile(staged, opts.OutputPath); err != nil {
		return services.Wrap(services.ErrExternalTool, "render", "publish output", opts.OutputPath, err)
	}

	var sizeLabel string
	if info, err := os.Stat(opts.OutputPath); err == nil {
		sizeLabel = humanize.Bytes(uint64(info.Size()))
	}
	logger.Info("render complete",
		logging.String("output", opts.OutputPath),
		logging.String("size", sizeLabel),
		logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", opts.OutputPath, sizeLabel)
	return nil
}

// newRenderProgress returns a per-frame progress callback: an interactive
// progress bar on a terminal, periodic log lines otherwise.
func newRenderProgress(logger *slog.Logger, totalFrames int) func(done, total int) {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar := progressbar.NewOptions(totalFrames,
			progressbar.OptionSetDescription("rendering frames"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
		return func(done, total int) {
			_ = bar.Set(done)
		}
	}

	const logEvery = 300
	return func(done, total int) {
		if done%logEvery == 0 || done == total {
			logger.Info("rendering frames", logging.Int("done", done), logging.Int("total", total))
		}
	}
}
