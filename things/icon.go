package things

import (
	"bytes"
	"context"
	"image"
	_ "image/png"
	"strings"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"

	"badc0de.net/pkg/go-mana/dye"
)

// ItemsDir is the archive directory item image paths are relative to.
const ItemsDir = "graphics/items/"

// IconSize is the width and height of inventory icons.
const IconSize = 32

type iconKey struct {
	id  int
	dye string
}

type iconCache struct {
	mu    sync.Mutex
	icons map[iconKey]*image.NRGBA
}

// ItemIcon returns the inventory icon of item id, dyed with instanceDye (the
// dye of this particular item, may be empty) and the dye label suffix of the
// item's image. Icons are memoized.
func (t *Things) ItemIcon(ctx context.Context, id int, instanceDye string) (*image.NRGBA, error) {
	key := iconKey{id: id, dye: instanceDye}
	t.icons.mu.Lock()
	if img, ok := t.icons.icons[key]; ok {
		t.icons.mu.Unlock()
		return img, nil
	}
	t.icons.mu.Unlock()

	itm, err := t.Item(id)
	if err != nil {
		return nil, err
	}
	if itm.Image == "" {
		return nil, errors.Wrapf(ErrNoSprite, "item %d has no image", id)
	}
	if t.archive == nil {
		return nil, errors.New("things: no archive to load icons from")
	}

	p, suffix, hasSuffix := strings.Cut(itm.Image, "|")
	b, err := t.archive.FetchBytes(ctx, ItemsDir+p)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching icon of item %d", id)
	}
	src, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding icon of item %d", id)
	}

	img := image.NewNRGBA(image.Rect(0, 0, IconSize, IconSize))
	xdraw.Draw(img, img.Bounds(), src, src.Bounds().Min, xdraw.Over)

	var spec []string
	if instanceDye != "" {
		spec = append(spec, instanceDye)
	}
	if hasSuffix {
		spec = append(spec, suffix)
	}
	if len(spec) > 0 {
		if ch, err := dye.ParseChannels(spec); err != nil {
			glog.V(1).Infof("things: not dyeing icon of item %d: %v", id, err)
		} else {
			dye.Dye(img, ch)
		}
	}

	t.icons.mu.Lock()
	if t.icons.icons == nil {
		t.icons.icons = make(map[iconKey]*image.NRGBA)
	}
	if prev, ok := t.icons.icons[key]; ok {
		img = prev
	} else {
		t.icons.icons[key] = img
	}
	t.icons.mu.Unlock()
	return img, nil
}

// LoadItemIcon loads the icon of item id in the background and calls redraw
// with the id once it is ready. Failures are logged; redraw is not called.
func (t *Things) LoadItemIcon(ctx context.Context, id int, instanceDye string, redraw func(id int)) {
	go func() {
		if _, err := t.ItemIcon(ctx, id, instanceDye); err != nil {
			glog.Errorf("things: loading icon of item %d: %v", id, err)
			return
		}
		if redraw != nil {
			redraw(id)
		}
	}()
}
