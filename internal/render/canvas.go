package render

import (
	"image"
	"os"
	"path/filepath"

	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"slidecast/internal/services"
)

// imageCache loads slide images once, scaled to fit the output geometry
// and letterboxed on black. Lookups return a fresh copy so captions and
// stickers can be burned in without poisoning the cache.
type imageCache struct {
	dir    string
	width  int
	height int
	images map[string]*image.RGBA
}

func newImageCache(dir string, width, height int) *imageCache {
	return &imageCache{dir: dir, width: width, height: height, images: make(map[string]*image.RGBA)}
}

func (c *imageCache) base(name string) (*image.RGBA, error) {
	if cached, ok := c.images[name]; ok {
		return cloneRGBA(cached), nil
	}

	path := filepath.Join(c.dir, name)
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "render", "open image", path, err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "render", "decode image", path, err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	fillBlack(canvas)

	targetW, targetH := fitWithin(src.Bounds().Dx(), src.Bounds().Dy(), c.width, c.height)
	x := (c.width - targetW) / 2
	y := (c.height - targetH) / 2
	xdraw.CatmullRom.Scale(canvas, image.Rect(x, y, x+targetW, y+targetH), src, src.Bounds(), xdraw.Over, nil)

	c.images[name] = canvas
	return cloneRGBA(canvas), nil
}

// fitWithin scales (w, h) to the largest size fitting inside (maxW, maxH)
// while preserving aspect ratio.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	imageRatio := float64(w) / float64(h)
	canvasRatio := float64(maxW) / float64(maxH)
	if imageRatio > canvasRatio {
		scaled := int(float64(maxW) / imageRatio)
		if scaled < 1 {
			scaled = 1
		}
		return maxW, scaled
	}
	scaled := int(float64(maxH) * imageRatio)
	if scaled < 1 {
		scaled = 1
	}
	return scaled, maxH
}

func fillBlack(img *image.RGBA) {
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = 0
		pix[i+1] = 0
		pix[i+2] = 0
		pix[i+3] = 0xff
	}
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
