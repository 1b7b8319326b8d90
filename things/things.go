// Package things keeps the databases describing what monsters, NPCs, items
// and hair look like, and resolves them into sprite requests.
package things

import (
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-mana/paths"
	"badc0de.net/pkg/go-mana/sprite"
	"badc0de.net/pkg/go-mana/xmls"
)

// ErrNoSprite is returned (wrapped) when a thing has no sprite to draw.
var ErrNoSprite = errors.New("things: no sprite")

// Default base sprites of players, relative to sprite.SpritesDir.
const (
	DefaultPlayerSpriteMale   = "player_male_base.xml"
	DefaultPlayerSpriteFemale = "player_female_base.xml"
)

type Things struct {
	archive paths.Archive

	monsters   map[int]*xmls.Monster
	npcs       map[int]*xmls.NPC
	items      map[int]*xmls.Item
	hairColors map[int]string

	playerSprites map[xmls.Gender]string

	icons iconCache
}

func New() (*Things, error) {
	return &Things{
		monsters:   make(map[int]*xmls.Monster),
		npcs:       make(map[int]*xmls.NPC),
		items:      make(map[int]*xmls.Item),
		hairColors: make(map[int]string),
		playerSprites: map[xmls.Gender]string{
			xmls.GenderMale:   DefaultPlayerSpriteMale,
			xmls.GenderFemale: DefaultPlayerSpriteFemale,
		},
	}, nil
}

// AddArchive sets the archive item icons are read from.
func (t *Things) AddArchive(a paths.Archive) error {
	t.archive = a
	return nil
}

func (t *Things) AddMonsters(m xmls.Monsters) error {
	for i := range m.Monster {
		mon := &m.Monster[i]
		t.monsters[m.Job(mon)] = mon
	}
	glog.V(1).Infof("things: added %d monsters", len(m.Monster))
	return nil
}

func (t *Things) AddNPCs(n xmls.NPCs) error {
	for i := range n.NPC {
		t.npcs[n.NPC[i].ID] = &n.NPC[i]
	}
	glog.V(1).Infof("things: added %d npcs", len(n.NPC))
	return nil
}

func (t *Things) AddItems(items xmls.Items) error {
	for i := range items.Item {
		t.items[items.Item[i].ID] = &items.Item[i]
	}
	glog.V(1).Infof("things: added %d items", len(items.Item))
	return nil
}

func (t *Things) AddHairColors(c xmls.HairColors) error {
	for _, col := range c.Color {
		t.hairColors[col.ID] = col.Value
	}
	return nil
}

// SetPlayerSprite overrides the base sprite of players of the passed gender.
func (t *Things) SetPlayerSprite(g xmls.Gender, path string) {
	t.playerSprites[g] = path
}

// PlayerSprite returns the base sprite request for players of gender g.
// Players of unknown gender are drawn as male.
func (t *Things) PlayerSprite(g xmls.Gender) sprite.Request {
	p, ok := t.playerSprites[g]
	if !ok {
		p = t.playerSprites[xmls.GenderMale]
	}
	return sprite.ParseRequest(p, 0)
}

// MonsterSprite returns the request for the first sprite of the monster with
// the passed job.
func (t *Things) MonsterSprite(job int) (sprite.Request, error) {
	mon, ok := t.monsters[job]
	if !ok {
		return sprite.Request{}, errors.Errorf("things: unknown monster %d", job)
	}
	if len(mon.Sprite) == 0 || strings.TrimSpace(mon.Sprite[0]) == "" {
		return sprite.Request{}, errors.Wrapf(ErrNoSprite, "monster %d (%s)", job, mon.Name)
	}
	return sprite.ParseRequest(mon.Sprite[0], 0), nil
}

// NPCSprite returns the request for the first sprite of the NPC with the
// passed job, including its variant.
func (t *Things) NPCSprite(job int) (sprite.Request, error) {
	npc, ok := t.npcs[job]
	if !ok {
		return sprite.Request{}, errors.Errorf("things: unknown npc %d", job)
	}
	if len(npc.Sprite) == 0 || strings.TrimSpace(npc.Sprite[0].Path) == "" {
		return sprite.Request{}, errors.Wrapf(ErrNoSprite, "npc %d", job)
	}
	s := npc.Sprite[0]
	return sprite.ParseRequest(s.Path, s.Variant), nil
}

// Item returns the item with the passed id.
func (t *Things) Item(id int) (*xmls.Item, error) {
	itm, ok := t.items[id]
	if !ok {
		return nil, errors.Errorf("things: unknown item %d", id)
	}
	return itm, nil
}

// EquipmentSprite returns the request for the sprite an item shows when worn
// by a being of gender g.
func (t *Things) EquipmentSprite(id int, g xmls.Gender) (sprite.Request, error) {
	itm, err := t.Item(id)
	if err != nil {
		return sprite.Request{}, err
	}
	p, ok := itm.SpriteFor(g)
	if !ok {
		return sprite.Request{}, errors.Wrapf(ErrNoSprite, "item %d (%s) for gender %q", id, itm.Name, g)
	}
	return sprite.ParseRequest(p, 0), nil
}

// HairSprite returns the request for hair style drawn in hair color. Hair
// styles are items of type hairsprite with id -style. Styles sharing a color
// share a cache key.
func (t *Things) HairSprite(style, color int) (sprite.Request, error) {
	if style == 0 {
		return sprite.Request{}, errors.Wrap(ErrNoSprite, "no hair style")
	}
	itm, ok := t.items[-style]
	if !ok || itm.Type != xmls.ItemTypeHairSprite {
		return sprite.Request{}, errors.Wrapf(ErrNoSprite, "unknown hair style %d", style)
	}
	p, ok := itm.SpriteFor(xmls.GenderAny)
	if !ok {
		return sprite.Request{}, errors.Wrapf(ErrNoSprite, "hair style %d", style)
	}
	req := sprite.ParseRequest(p, 0)
	if c, ok := t.hairColors[color]; ok && c != "" {
		req.Dye = []string{c}
	} else {
		glog.V(1).Infof("things: unknown hair color %d, drawing style %d undyed", color, style)
	}
	return req, nil
}
