package render

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

type captionStyle struct {
	face          font.Face
	lineHeight    int
	bottomMargin  int
	inset         int
	outlineRadius int
}

// drawCaption burns the caption onto the canvas: word-wrapped, centered,
// white fill over a black outline near the bottom edge. Empty and
// zero-width captions leave the canvas untouched.
func drawCaption(canvas *image.RGBA, style captionStyle, caption string) {
	text := strings.TrimSpace(norm.NFC.String(caption))
	if text == "" || text == "\u200b" {
		return
	}

	bounds := canvas.Bounds()
	maxWidth := bounds.Dx() - 2*style.inset
	lines := wrapLines(style.face, text, maxWidth)

	ascent := style.face.Metrics().Ascent.Ceil()
	yStart := bounds.Dy() - len(lines)*style.lineHeight - style.bottomMargin

	for i, line := range lines {
		width := font.MeasureString(style.face, line).Ceil()
		x := (bounds.Dx() - width) / 2
		y := yStart + i*style.lineHeight + ascent

		radius := style.outlineRadius
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if dx*dx+dy*dy > radius*radius {
					continue
				}
				drawString(canvas, style.face, line, x+dx, y+dy, color.Black)
			}
		}
		drawString(canvas, style.face, line, x, y, color.White)
	}
}

func drawString(dst draw.Image, face font.Face, text string, x, y int, fill color.Color) {
	drawer := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fill),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}

// wrapLines greedily packs words into lines no wider than maxWidth. A
// single word wider than the limit gets its own line rather than being
// broken mid-word.
func wrapLines(face font.Face, text string, maxWidth int) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && font.MeasureString(face, candidate).Ceil() > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
