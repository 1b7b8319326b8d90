package imageprint

import (
	"image"
	"image/color"
	"image/gif"
	"io"
	"time"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"

	"badc0de.net/pkg/go-mana/sprite"
)

// DefaultGIFDelay is used for frames which do not say how long they last.
const DefaultGIFDelay = 100 * time.Millisecond

// gifDelay converts d to hundredths of a second, rounding up.
func gifDelay(d time.Duration) int {
	const unit = 10 * time.Millisecond
	return int((d + unit - 1) / unit)
}

// frameBounds is the smallest rectangle holding all frames at their offsets.
func frameBounds(frames sprite.FrameList) image.Rectangle {
	var r image.Rectangle
	for _, f := range frames {
		fr := f.Image.Bounds()
		fr = fr.Sub(fr.Min).Add(image.Pt(f.OffsetX, f.OffsetY))
		r = r.Union(fr)
	}
	return r
}

// AnimationGIF turns a frame list into a looping transparent GIF.
func AnimationGIF(frames sprite.FrameList) (*gif.GIF, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames to animate")
	}
	bounds := frameBounds(frames)
	origin := bounds.Min
	bounds = bounds.Sub(origin)

	g := &gif.GIF{}
	q := quantize.MedianCutQuantizer{AddTransparent: true}
	for _, f := range frames {
		// Each frame is placed on a full size transparent canvas so offsets
		// survive the encoding.
		canvas := image.NewNRGBA(bounds)
		at := image.Pt(f.OffsetX, f.OffsetY).Sub(origin)
		xdraw.Copy(canvas, at, f.Image, f.Image.Bounds(), xdraw.Src, nil)

		pal := q.Quantize(make(color.Palette, 0, 256), canvas)
		img := image.NewPaletted(bounds, pal)
		xdraw.Draw(img, bounds, canvas, image.Point{}, xdraw.Src)

		delay := f.Delay
		if delay <= 0 {
			delay = DefaultGIFDelay
		}
		g.Image = append(g.Image, img)
		g.Delay = append(g.Delay, gifDelay(delay))
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	return g, nil
}

// EncodeGIF writes frames as an animated GIF.
func EncodeGIF(w io.Writer, frames sprite.FrameList) error {
	g, err := AnimationGIF(frames)
	if err != nil {
		return err
	}
	return errors.Wrap(gif.EncodeAll(w, g), "encoding gif")
}
