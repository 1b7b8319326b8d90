package sprite

import (
	"fmt"
	"strings"

	"badc0de.net/pkg/go-mana/dye"
)

// SpritesDir is the archive directory sprite descriptor paths are relative to.
const SpritesDir = "graphics/sprites/"

// Request carries everything a fetch chain needs to assemble one Set.
type Request struct {
	// Path of the descriptor, relative to SpritesDir.
	Path string
	// Dye is the dye list applied to every frame. The imageset's own dye
	// suffix is appended during assembly.
	Dye []string
	// Variant selects a single sheet cell instead of the full table. Zero
	// means no variant.
	Variant int
}

// ParseRequest splits a "path|dye" sprite reference into a request.
func ParseRequest(ref string, variant int) Request {
	ref = strings.TrimSpace(ref)
	p, d, ok := strings.Cut(ref, "|")
	req := Request{Path: p, Variant: variant}
	if ok {
		req.Dye = []string{d}
	}
	return req
}

// Key identifies a Set in the cache.
type Key struct {
	Path    string
	Dye     string
	Variant int
}

func (r Request) Key() Key {
	return Key{Path: r.Path, Dye: dye.Key(r.Dye), Variant: r.Variant}
}

func (k Key) String() string {
	s := k.Path
	if k.Dye != "" {
		s += "|" + k.Dye
	}
	if k.Variant != 0 {
		s += fmt.Sprintf("@%d", k.Variant)
	}
	return s
}
