//go:build windows

package imageprint

import (
	"image"
	"io"

	"github.com/pkg/errors"
)

var ErrNoRaster = errors.New("raster images not supported on windows")

func PrintRaster(w io.Writer, i image.Image) error {
	return ErrNoRaster
}
