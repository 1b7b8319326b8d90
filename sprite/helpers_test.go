package sprite

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"badc0de.net/pkg/go-mana/paths"
)

const (
	cellW = 2
	cellH = 2
	cols  = 4
	rows  = 2
)

// cellColor is the pure red shade every pixel of cell i is painted with.
func cellColor(i int) color.NRGBA {
	return color.NRGBA{R: uint8(10 * (i + 1)), A: 255}
}

func sheetPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))
	for i := 0; i < cols*rows; i++ {
		x0 := (i % cols) * cellW
		y0 := (i / cols) * cellH
		for y := y0; y < y0+cellH; y++ {
			for x := x0; x < x0+cellW; x++ {
				img.SetNRGBA(x, y, cellColor(i))
			}
		}
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode sheet: %v", err)
	}
	return buf.Bytes()
}

const baseDescriptor = `<?xml version="1.0"?>
<sprite>
	<imageset name="base" src="graphics/sprites/sheet.png" width="2" height="2" offsetX="1" offsetY="-3"/>
	<action name="stand">
		<animation direction="down">
			<frame index="0"/>
		</animation>
		<animation direction="up">
			<frame index="4" delay="50"/>
		</animation>
	</action>
	<action name="walk">
		<animation direction="left">
			<sequence start="1" end="3" delay="100"/>
			<frame index="5" delay="80" offsetX="2" offsetY="1"/>
		</animation>
	</action>
	<action name="dead">
		<animation>
			<frame index="6" delay="120"/>
			<frame index="7"/>
		</animation>
		<animation direction="sideways">
			<frame index="2"/>
		</animation>
	</action>
</sprite>`

func testArchive(t *testing.T, files map[string]string) paths.Archive {
	t.Helper()
	fs := fstest.MapFS{
		"graphics/sprites/sheet.png": &fstest.MapFile{Data: sheetPNG(t)},
		"graphics/sprites/base.xml":  &fstest.MapFile{Data: []byte(baseDescriptor)},
	}
	for name, data := range files {
		fs[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return &paths.FSArchive{FS: fs}
}
