// Package full populates things.Things out of a data archive.
package full

import (
	"bytes"
	"context"
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-mana/paths"
	"badc0de.net/pkg/go-mana/things"
	"badc0de.net/pkg/go-mana/xmls"
)

// Files names the database files inside the archive. Any name left empty is
// skipped.
type Files struct {
	Monsters   string
	NPCs       string
	Items      string
	HairColors string
}

// DefaultFiles are the names used by the tmwAthena client data.
var DefaultFiles = Files{
	Monsters:   "monsters.xml",
	NPCs:       "npcs.xml",
	Items:      "items.xml",
	HairColors: "hair.xml",
}

// FromArchive creates a things.Things with all databases named in files read
// out of the archive a. The archive is also used for item icons.
func FromArchive(ctx context.Context, a paths.Archive, files Files) (*things.Things, error) {
	t, err := things.New()
	if err != nil {
		return nil, errors.Wrap(err, "creating thing registry")
	}
	t.AddArchive(a)

	fetch := func(name string) (*bytes.Reader, error) {
		glog.Infof("full.FromArchive(): reading %q", name)
		b, err := a.FetchBytes(ctx, name)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(b), nil
	}

	if files.Monsters != "" {
		r, err := fetch(files.Monsters)
		if err != nil {
			return nil, errors.Wrap(err, "opening monsters for add")
		}
		m, err := xmls.ReadMonsters(r)
		if err != nil {
			return nil, errors.Wrap(err, "parsing monsters for add")
		}
		t.AddMonsters(m)
	}

	if files.NPCs != "" {
		r, err := fetch(files.NPCs)
		if err != nil {
			return nil, errors.Wrap(err, "opening npcs for add")
		}
		n, err := xmls.ReadNPCs(r)
		if err != nil {
			return nil, errors.Wrap(err, "parsing npcs for add")
		}
		t.AddNPCs(n)
	}

	if files.Items != "" {
		r, err := fetch(files.Items)
		if err != nil {
			return nil, errors.Wrap(err, "opening items for add")
		}
		i, err := xmls.ReadItems(r)
		if err != nil {
			return nil, errors.Wrap(err, "parsing items for add")
		}
		t.AddItems(i)
	}

	if files.HairColors != "" {
		r, err := fetch(files.HairColors)
		if errors.Is(err, os.ErrNotExist) {
			// Older data sets have no hair colors; hair is drawn undyed.
			glog.Warningf("full.FromArchive(): no hair colors: %v", err)
		} else if err != nil {
			return nil, errors.Wrap(err, "opening hair colors for add")
		} else {
			c, err := xmls.ReadHairColors(r)
			if err != nil {
				return nil, errors.Wrap(err, "parsing hair colors for add")
			}
			t.AddHairColors(c)
		}
	}

	return t, nil
}
