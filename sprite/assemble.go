package sprite

import (
	"bytes"
	"context"
	"image"
	_ "image/png"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"badc0de.net/pkg/go-mana/dye"
	"badc0de.net/pkg/go-mana/paths"
	"badc0de.net/pkg/go-mana/xmls"
)

// Builder assembles the Set for a request.
type Builder interface {
	Assemble(ctx context.Context, req Request) (*Set, error)
}

// Assembler is the Builder reading descriptors and sheets from an archive.
type Assembler struct {
	Archive paths.Archive
	// Dyes memoizes channel maps; if nil, every chain parses its own.
	Dyes *dye.Cache
}

func (a *Assembler) descriptor(ctx context.Context, p string) (*xmls.Sprite, error) {
	b, err := a.Archive.FetchBytes(ctx, SpritesDir+p)
	if err != nil {
		return nil, errors.Wrap(err, "fetching descriptor")
	}
	desc, err := xmls.ReadSprite(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing descriptor %q", p)
	}
	return desc, nil
}

func (a *Assembler) sheet(ctx context.Context, p string) (image.Image, error) {
	b, err := a.Archive.FetchBytes(ctx, p)
	if err != nil {
		return nil, errors.Wrap(err, "fetching sheet")
	}
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding sheet %q", p)
	}
	glog.V(2).Infof("sprite: decoded %s sheet %q: %v", format, p, img.Bounds())
	return img, nil
}

func (a *Assembler) channels(spec []string) (dye.Channels, error) {
	if a.Dyes != nil {
		return a.Dyes.Channels(spec)
	}
	return dye.ParseChannels(spec)
}

// Assemble runs the fetch chain for req: descriptor, optional base
// descriptor, sheet, then slicing and dyeing of every referenced cell.
func (a *Assembler) Assemble(ctx context.Context, req Request) (*Set, error) {
	desc, err := a.descriptor(ctx, req.Path)
	if err != nil {
		return nil, err
	}
	// An including descriptor keeps its own imageset and takes only the
	// actions of the base.
	is := desc.FirstImageset()
	if inc, ok := desc.FirstInclude(); ok {
		glog.V(1).Infof("sprite: %q includes %q", req.Path, inc)
		desc, err = a.descriptor(ctx, inc)
		if err != nil {
			return nil, errors.Wrapf(err, "following include of %q", req.Path)
		}
		if is == nil {
			is = desc.FirstImageset()
		}
	}
	if is == nil {
		return nil, errors.Errorf("descriptor %q has no imageset", req.Path)
	}
	if is.Width <= 0 || is.Height <= 0 {
		return nil, errors.Errorf("descriptor %q has bad frame size %dx%d", req.Path, is.Width, is.Height)
	}

	dyes := append([]string(nil), req.Dye...)
	if d, ok := is.SrcDye(); ok {
		dyes = append(dyes, d)
	}

	sheet, err := a.sheet(ctx, is.SrcPath())
	if err != nil {
		return nil, err
	}
	if sheet.Bounds().Dx() < is.Width {
		return nil, errors.Errorf("sheet %q is narrower than one frame", is.SrcPath())
	}

	var channels dye.Channels
	if len(dyes) > 0 {
		channels, err = a.channels(dyes)
		if err != nil {
			glog.V(1).Infof("sprite: not dyeing %q: %v", req.Path, err)
			channels = nil
		}
	}

	c := cutter{
		sheet:    sheet,
		width:    is.Width,
		height:   is.Height,
		baseX:    is.OffsetX,
		baseY:    is.OffsetY,
		channels: channels,
	}
	return c.assemble(req, desc), nil
}

type cutter struct {
	sheet         image.Image
	width, height int
	baseX, baseY  int
	channels      dye.Channels
}

func (c *cutter) assemble(req Request, desc *xmls.Sprite) *Set {
	set := &Set{
		Width:   c.width,
		Height:  c.height,
		Actions: make(map[string]map[Direction]FrameList),
	}

	for _, action := range desc.Action {
		dirs := make(map[Direction]FrameList)
		set.Actions[action.Name] = dirs
		for _, anim := range action.Animation {
			dir, err := ParseDirection(anim.Direction)
			if err != nil {
				glog.Warningf("sprite: %q action %q: %v", req.Path, action.Name, err)
			}
			var frames FrameList
			for _, step := range anim.Steps {
				switch step.Kind() {
				case xmls.StepFrame:
					idx := 0
					if step.Index != nil {
						idx = *step.Index
					}
					if req.Variant != 0 {
						idx = req.Variant
					}
					frames = append(frames, c.frame(idx, &step))
					if req.Variant != 0 {
						dirs[dir] = frames
						return set
					}
				case xmls.StepSequence:
					if req.Variant != 0 {
						glog.V(1).Infof("sprite: %q: skipping sequence while looking for variant %d", req.Path, req.Variant)
						continue
					}
					for idx := step.Start; idx <= step.End; idx++ {
						frames = append(frames, c.frame(idx, &step))
					}
				}
			}
			dirs[dir] = frames
		}
	}
	return set
}

func (c *cutter) frame(index int, step *xmls.Step) *Frame {
	return &Frame{
		Image:   c.cell(index),
		Delay:   time.Duration(step.Delay) * time.Millisecond,
		OffsetX: step.OffsetX + c.baseX,
		OffsetY: step.OffsetY + c.baseY,
	}
}

// cell cuts the index-th cell out of the sheet, counting row-major.
func (c *cutter) cell(index int) *image.NRGBA {
	b := c.sheet.Bounds()
	top := index * c.width / b.Dx() * c.height
	left := index * c.width % b.Dx()

	dst := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	sr := image.Rect(left, top, left+c.width, top+c.height).Add(b.Min)
	xdraw.Copy(dst, image.Point{}, c.sheet, sr, xdraw.Src, nil)
	dye.Dye(dst, c.channels)
	return dst
}
