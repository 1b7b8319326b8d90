// Package imageprint prints sprite frames on terminal. UNSUPPORTED debug package.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"fmt"
	"image"
	ic "image/color"
	"io"

	"github.com/gookit/color"
)

// Mode selects how pixels are turned into terminal output.
type Mode int

const (
	// NoColor prints shades as characters only.
	NoColor Mode = iota
	// Color256 leaves picking the escape sequence to gookit/color, which
	// falls back to the 256 color palette on terminals without true color.
	Color256
	// TrueColor uses 24bit background escape sequences.
	TrueColor
)

// Printer writes images as ascii art, two characters per pixel.
type Printer struct {
	W    io.Writer
	Mode Mode
	// Blanks paints colored blanks instead of shade characters.
	Blanks bool
}

func (p *Printer) shade(col ic.Color) string {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		return "\x1b[0m  "
	}

	s := "  "
	if !p.Blanks {
		switch a := ((cR + cG + cB) / 3) >> 8; {
		case a < 32:
			s = ".."
		case a < 64:
			s = "--"
		case a < 128:
			s = "=="
		default:
			s = "##"
		}
	}

	nc := ic.NRGBAModel.Convert(col).(ic.NRGBA)
	switch p.Mode {
	case TrueColor:
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm%s\x1b[0m", nc.R, nc.G, nc.B, s)
	case Color256:
		return color.RGB(nc.R, nc.G, nc.B, true).Sprint(s)
	default:
		return s
	}
}

// Print draws i line by line.
func (p *Printer) Print(i image.Image) error {
	b := i.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, err := io.WriteString(p.W, p.shade(i.At(x, y))); err != nil {
				return err
			}
		}
		end := "\n"
		if p.Mode != NoColor {
			end = "\x1b[0m\n"
		}
		if _, err := io.WriteString(p.W, end); err != nil {
			return err
		}
	}
	return nil
}
