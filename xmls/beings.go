package xmls

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type Monsters struct {
	XMLName xml.Name  `xml:"monsters"`
	Offset  int       `xml:"offset,attr,omitempty"`
	Monster []Monster `xml:"monster"`
}

type Monster struct {
	ID     int      `xml:"id,attr"`
	Name   string   `xml:"name,attr"`
	Sprite []string `xml:"sprite"`
}

// Job returns the being job id the monster is known by on the wire.
func (m *Monsters) Job(mon *Monster) int {
	return m.Offset + mon.ID
}

type NPCs struct {
	XMLName xml.Name `xml:"npcs"`
	NPC     []NPC    `xml:"npc"`
}

type NPC struct {
	ID     int         `xml:"id,attr"`
	Sprite []NPCSprite `xml:"sprite"`
}

type NPCSprite struct {
	Variant int    `xml:"variant,attr,omitempty"`
	Path    string `xml:",chardata"`
}

type Items struct {
	XMLName xml.Name `xml:"items"`
	Item    []Item   `xml:"item"`
}

type ItemType string

const (
	ItemTypeHairSprite = ItemType("hairsprite")
)

type Item struct {
	ID     int          `xml:"id,attr"`
	Name   string       `xml:"name,attr"`
	Type   ItemType     `xml:"type,attr,omitempty"`
	Image  string       `xml:"image,attr,omitempty"`
	Sprite []ItemSprite `xml:"sprite"`
}

type Gender string

const (
	GenderAny    = Gender("")
	GenderMale   = Gender("male")
	GenderFemale = Gender("female")
)

type ItemSprite struct {
	Gender Gender `xml:"gender,attr,omitempty"`
	Path   string `xml:",chardata"`
}

// SpriteFor returns the item's sprite path for the passed gender. A sprite
// without gender is preferred over gendered ones.
func (i *Item) SpriteFor(g Gender) (string, bool) {
	for _, s := range i.Sprite {
		if s.Gender == GenderAny && strings.TrimSpace(s.Path) != "" {
			return strings.TrimSpace(s.Path), true
		}
	}
	for _, s := range i.Sprite {
		if s.Gender == g && strings.TrimSpace(s.Path) != "" {
			return strings.TrimSpace(s.Path), true
		}
	}
	return "", false
}

type HairColors struct {
	XMLName xml.Name    `xml:"colors"`
	Color   []HairColor `xml:"color"`
}

type HairColor struct {
	ID    int    `xml:"id,attr"`
	Value string `xml:"value,attr"`
}

func decode(r io.Reader, what string, v interface{}) error {
	dec := xml.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return errors.Wrapf(err, "xmls: decoding %s", what)
	}
	return nil
}

func ReadMonsters(r io.Reader) (Monsters, error) {
	m := Monsters{}
	err := decode(r, "monsters", &m)
	return m, err
}

func ReadNPCs(r io.Reader) (NPCs, error) {
	n := NPCs{}
	err := decode(r, "npcs", &n)
	return n, err
}

func ReadItems(r io.Reader) (Items, error) {
	i := Items{}
	err := decode(r, "items", &i)
	return i, err
}

func ReadHairColors(r io.Reader) (HairColors, error) {
	c := HairColors{}
	err := decode(r, "hair colors", &c)
	return c, err
}
