//go:build !windows

package imageprint

import (
	"image"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
	"github.com/pkg/errors"
)

// ErrNoRaster is returned when the terminal cannot show raster images.
var ErrNoRaster = errors.New("terminal does not support raster images")

// PrintRaster draws i using the kitty, iTerm2 or sixel protocols, whichever
// the terminal supports.
func PrintRaster(w io.Writer, i image.Image) error {
	var err error
	switch {
	case rasterm.IsTermKitty():
		err = rasterm.Settings{}.KittyWriteImage(w, i)
	case rasterm.IsTermItermWez():
		err = rasterm.Settings{}.ItermWriteImage(w, i)
	default:
		if capable, serr := rasterm.IsSixelCapable(); !capable || serr != nil {
			return ErrNoRaster
		}
		paletted := image.NewPaletted(i.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(paletted, i.Bounds(), i, i.Bounds().Min)
		err = rasterm.Settings{}.SixelWriteImage(w, paletted)
	}
	if err != nil {
		return errors.Wrap(err, "writing raster image")
	}
	_, err = io.WriteString(w, "\n")
	return err
}
