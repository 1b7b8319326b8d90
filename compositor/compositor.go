// Package compositor draws the visible beings, animating them as the
// animation clock advances.
//
// Each render tick, Renderer.Draw picks the current frame of every being out
// of its sprite set, advancing the animation when the current frame's delay
// has passed, and hands the frame to a Compositor. Beings whose sprite sets
// are still being assembled are skipped, so a tick never waits for data.
package compositor

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Compositor paints finished frames onto the screen with their top-left
// corner at x, y.
type Compositor interface {
	Draw(img image.Image, x, y int)
}

// Canvas is a Compositor painting into an in-memory image.
type Canvas struct {
	*image.RGBA
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{RGBA: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (c *Canvas) Draw(img image.Image, x, y int) {
	b := img.Bounds()
	dst := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	xdraw.Draw(c.RGBA, dst, img, b.Min, xdraw.Over)
}

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col color.Color) {
	xdraw.Draw(c.RGBA, c.Bounds(), &image.Uniform{C: col}, image.Point{}, xdraw.Src)
}
