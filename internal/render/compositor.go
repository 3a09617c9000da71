package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"slidecast/internal/config"
	"slidecast/internal/fileutil"
	"slidecast/internal/logging"
	"slidecast/internal/timeline"
)

// FramePattern is the printf pattern for frame file names, shared with the
// ffmpeg image2 demuxer invocation.
const FramePattern = "f_%06d.jpg"

// FrameName returns the file name for a frame index.
func FrameName(index int) string {
	return fmt.Sprintf(FramePattern, index)
}

// Assets names the on-disk inputs a render run draws from.
type Assets struct {
	ImagesDir   string
	StickerPath string
}

// Renderer composes timeline segments into JPEG frames.
type Renderer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRenderer prepares a renderer against the given output geometry and
// caption style configuration.
func NewRenderer(cfg *config.Config, logger *slog.Logger) *Renderer {
	logger = logging.NewComponentLogger(logger, "render")
	return &Renderer{cfg: cfg, logger: logger}
}

// RenderFrames writes one JPEG per output frame into framesDir and returns
// the number written. Frames inside a crossfade window blend the previous
// slide's composition into the current one. progress, when non-nil, is
// invoked after every frame.
func (r *Renderer) RenderFrames(ctx context.Context, tl *timeline.Timeline, assets Assets, framesDir string, progress func(done, total int)) (int, error) {
	if err := fileutil.ClearSuffix(framesDir, ".jpg"); err != nil {
		return 0, fmt.Errorf("clear stale frames: %w", err)
	}

	sticker, err := loadSticker(assets.StickerPath, r.cfg.Video.Height, r.cfg.Sticker.HeightRatio)
	if err != nil {
		return 0, err
	}

	face, fontPath := loadFace(r.cfg.Caption.FontPaths, r.cfg.Caption.FontSize)
	if fontPath == "" {
		r.logger.Warn("no configured caption font found, using built-in bitmap face")
	} else {
		r.logger.Debug("caption font loaded", logging.String("font", fontPath))
	}
	style := captionStyle{
		face:          face,
		lineHeight:    r.cfg.Caption.LineHeight,
		bottomMargin:  r.cfg.Caption.BottomMargin,
		inset:         r.cfg.Caption.HorizontalInset,
		outlineRadius: r.cfg.Caption.OutlineRadius,
	}

	cache := newImageCache(assets.ImagesDir, r.cfg.Video.Width, r.cfg.Video.Height)
	compose := func(segment timeline.Segment) (*image.RGBA, error) {
		canvas, err := cache.base(segment.Image)
		if err != nil {
			return nil, err
		}
		drawCaption(canvas, style, segment.Caption)
		overlaySticker(canvas, sticker, r.cfg.Sticker.Margin)
		return canvas, nil
	}

	written := 0
	for i, segment := range tl.Segments {
		if segment.Frames() == 0 {
			r.logger.Debug("slide shorter than one frame, skipped",
				logging.Int("slide", segment.Index),
				logging.String("image", segment.Image))
			continue
		}
		if err := ctx.Err(); err != nil {
			return written, err
		}

		base, err := compose(segment)
		if err != nil {
			return written, err
		}
		var previous *image.RGBA
		if segment.FadeFrames > 0 && i > 0 {
			previous, err = compose(tl.Segments[i-1])
			if err != nil {
				return written, err
			}
		}

		for offset := 0; offset < segment.Frames(); offset++ {
			if err := ctx.Err(); err != nil {
				return written, err
			}
			frame := base
			if previous != nil && offset < segment.FadeFrames {
				frame = blendFrames(previous, base, timeline.BlendWeight(offset, segment.FadeFrames))
			}
			path := filepath.Join(framesDir, FrameName(segment.StartFrame+offset))
			if err := writeJPEG(path, frame, r.cfg.Video.JPEGQuality); err != nil {
				return written, err
			}
			written++
			if progress != nil {
				progress(written, tl.TotalFrames)
			}
		}
	}

	r.logger.Info("frames rendered",
		logging.Int("frames", written),
		logging.Int("segments", len(tl.Segments)))
	return written, nil
}

// blendFrames mixes over into under at the given weight: 0 yields under
// unchanged, 1 yields over.
func blendFrames(under, over *image.RGBA, weight float64) *image.RGBA {
	out := cloneRGBA(under)
	alpha := uint8(math.Round(weight * 255))
	mask := image.NewUniform(color.Alpha{A: alpha})
	draw.DrawMask(out, out.Bounds(), over, image.Point{}, mask, image.Point{}, draw.Over)
	return out
}

func writeJPEG(path string, img image.Image, quality int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := jpeg.Encode(file, img, &jpeg.Options{Quality: quality}); err != nil {
		file.Close()
		return fmt.Errorf("encode frame %s: %w", filepath.Base(path), err)
	}
	return file.Close()
}
