package dye

import (
	"image"
	"image/color"
)

// Pixel returns the recolored version of c. Fully transparent pixels, black
// pixels and pixels whose palette channel has no gradient are returned as is.
// Alpha is never changed.
//
// Components are straight (not premultiplied) alpha, as stored in
// image.NRGBA.
func (ch Channels) Pixel(c color.NRGBA) color.NRGBA {
	if c.A == 0 || len(ch) == 0 {
		return c
	}

	var idx int
	if c.R != 0 {
		idx |= 1
	}
	if c.G != 0 {
		idx |= 2
	}
	if c.B != 0 {
		idx |= 4
	}

	var channel Channel
	var intensity int
	switch idx {
	case 1:
		channel, intensity = Red, int(c.R)
	case 2:
		channel, intensity = Green, int(c.G)
	case 3:
		channel = Yellow
		if c.R == c.G {
			intensity = int(c.R)
		}
	case 4:
		channel, intensity = Blue, int(c.B)
	case 5:
		channel = Magenta
		if c.R == c.B {
			intensity = int(c.R)
		}
	case 6:
		channel = Cyan
		if c.G == c.B {
			intensity = int(c.G)
		}
	case 7:
		channel = White
		if c.R == c.G && c.G == c.B {
			intensity = int(c.R)
		}
	default:
		return c
	}

	stops := ch[channel]
	if intensity == 0 || len(stops) == 0 {
		return c
	}

	n := len(stops)
	s := intensity * n / 255
	t := intensity * n % 255
	if t == 0 {
		hi := stops[s-1]
		return color.NRGBA{R: hi.R, G: hi.G, B: hi.B, A: c.A}
	}

	var lo Stop
	if s > 0 {
		lo = stops[s-1]
	}
	hi := stops[s]
	return color.NRGBA{
		R: lerp(lo.R, hi.R, t),
		G: lerp(lo.G, hi.G, t),
		B: lerp(lo.B, hi.B, t),
		A: c.A,
	}
}

func lerp(lo, hi uint8, t int) uint8 {
	return uint8(((255-t)*int(lo) + t*int(hi)) / 255)
}

// Dye recolors img in place. A nil or empty channel map leaves img untouched.
func Dye(img *image.NRGBA, ch Channels) {
	if img == nil || len(ch) == 0 {
		return
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i+3 < len(row); i += 4 {
			if row[i+3] == 0 {
				continue
			}
			out := ch.Pixel(color.NRGBA{R: row[i], G: row[i+1], B: row[i+2], A: row[i+3]})
			row[i], row[i+1], row[i+2] = out.R, out.G, out.B
		}
	}
}
