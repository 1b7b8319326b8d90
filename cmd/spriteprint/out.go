package main

import (
	"flag"
	"image"
	"os"

	"github.com/golang/glog"
	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-mana/imageprint"
)

var (
	col      = flag.Bool("col", true, "whether to use color")
	col256   = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	raster   = flag.Bool("rasterm", false, "whether to print with kitty, iterm or sixel escape codes instead of ascii art")
	blanks   = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize = flag.Bool("downsize", true, "whether to shrink images which do not fit the terminal")
)

func out(img image.Image) {
	if *downsize {
		if termSize, err := GetTermSize(); err == nil {
			if termSize.XPixel != 0 && termSize.YPixel != 0 && *raster {
				// Raster images can use the full pixel size of the window.
				img = resize.Thumbnail(termSize.XPixel/2, termSize.YPixel/2, img, resize.Lanczos3)
			} else if termSize.Cols != 0 && termSize.Rows != 0 {
				// Two characters per pixel.
				img = resize.Thumbnail(termSize.Cols/2, termSize.Rows, img, resize.Lanczos3)
			}
		}
	}

	if *raster {
		err := imageprint.PrintRaster(os.Stdout, img)
		if err == nil {
			return
		}
		glog.Warningf("falling back to ascii art: %v", err)
	}

	p := &imageprint.Printer{W: os.Stdout, Blanks: *blanks}
	switch {
	case !*col:
		p.Mode = imageprint.NoColor
	case *col256:
		p.Mode = imageprint.Color256
	default:
		p.Mode = imageprint.TrueColor
	}
	if err := p.Print(img); err != nil {
		glog.Errorf("printing: %v", err)
	}
}
