package render

import (
	"image"
	"image/draw"
	"os"

	xdraw "golang.org/x/image/draw"

	"slidecast/internal/services"
)

// loadSticker reads the overlay image and scales it to the configured
// share of the frame height, preserving aspect ratio.
func loadSticker(path string, frameHeight int, heightRatio float64) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "render", "open sticker", path, err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "render", "decode sticker", path, err)
	}

	targetH := int(float64(frameHeight) * heightRatio)
	if targetH < 1 {
		targetH = 1
	}
	srcBounds := src.Bounds()
	targetW := targetH
	if srcBounds.Dy() > 0 {
		targetW = int(float64(srcBounds.Dx()) * float64(targetH) / float64(srcBounds.Dy()))
	}
	if targetW < 1 {
		targetW = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), src, srcBounds, xdraw.Src, nil)
	return scaled, nil
}

// overlaySticker composites the sticker into the top-right corner with the
// given margin, honoring the sticker's alpha channel.
func overlaySticker(canvas *image.RGBA, sticker *image.RGBA, margin int) {
	bounds := canvas.Bounds()
	x := bounds.Dx() - sticker.Bounds().Dx() - margin
	target := image.Rect(x, margin, x+sticker.Bounds().Dx(), margin+sticker.Bounds().Dy())
	draw.Draw(canvas, target, sticker, image.Point{}, draw.Over)
}
