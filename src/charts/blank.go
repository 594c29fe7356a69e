package charts

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// noData returns a transparent w x h image with the title near the top and
// a "no data" note in the middle.
func noData(w, h int, title string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if strings.TrimSpace(title) != "" {
		drawCentered(img, title, 24)
	}
	drawCentered(img, "no data", h/2)
	return img
}

// drawCentered draws text horizontally centered with its baseline at y.
func drawCentered(img *image.RGBA, text string, y int) {
	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{R: 64, G: 64, B: 64, A: 255}), Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := (img.Bounds().Dx() - tw) / 2
	if x < 0 {
		x = 0
	}
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
}
