package gameworld

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"badc0de.net/pkg/go-mana/sprite"
	"badc0de.net/pkg/go-mana/xmls"
)

// Scene size used when a scene file does not give one.
const (
	DefaultSceneWidth  = 640
	DefaultSceneHeight = 480
)

// Scene is a hand-written set of beings, used by the debug tools in place of
// a server.
type Scene struct {
	Width   int          `yaml:"width"`
	Height  int          `yaml:"height"`
	ScrollX int          `yaml:"scroll_x"`
	ScrollY int          `yaml:"scroll_y"`
	Beings  []SceneBeing `yaml:"beings"`
}

type SceneBeing struct {
	ID        BeingID        `yaml:"id"`
	Type      string         `yaml:"type"`
	Job       int            `yaml:"job"`
	Gender    string         `yaml:"gender"`
	X         int            `yaml:"x"`
	Y         int            `yaml:"y"`
	Action    string         `yaml:"action"`
	Direction string         `yaml:"direction"`
	Equipment map[string]int `yaml:"equipment"`
	Hair      struct {
		Style int `yaml:"style"`
		Color int `yaml:"color"`
	} `yaml:"hair"`
}

// LoadScene reads a YAML scene.
func LoadScene(r io.Reader) (*Scene, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading scene")
	}
	s := &Scene{}
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, errors.Wrap(err, "parsing scene")
	}
	if s.Width <= 0 {
		s.Width = DefaultSceneWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultSceneHeight
	}
	return s, nil
}

func parseBeingType(s string) (BeingType, error) {
	switch strings.ToLower(s) {
	case "", "player":
		return Player, nil
	case "npc":
		return NPC, nil
	case "monster":
		return Monster, nil
	default:
		return 0, errors.Errorf("unknown being type %q", s)
	}
}

func parseSlot(s string) (Slot, error) {
	for slot, name := range slotNames {
		if strings.EqualFold(name, s) || strings.EqualFold(strings.ReplaceAll(name, "Clothes", "_clothes"), s) {
			return slot, nil
		}
	}
	return 0, errors.Errorf("unknown equipment slot %q", s)
}

// Being converts the scene entry into a being.
func (sb *SceneBeing) Being() (*Being, error) {
	typ, err := parseBeingType(sb.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "being %d", sb.ID)
	}
	b := NewBeing(sb.ID, typ, sb.Job)
	b.X, b.Y = sb.X, sb.Y
	if sb.Action != "" {
		b.Action = sb.Action
	}
	if b.Direction, err = sprite.ParseDirection(sb.Direction); err != nil {
		return nil, errors.Wrapf(err, "being %d", sb.ID)
	}
	switch xmls.Gender(strings.ToLower(sb.Gender)) {
	case xmls.GenderFemale:
		b.Gender = xmls.GenderFemale
	default:
		b.Gender = xmls.GenderMale
	}

	for name, id := range sb.Equipment {
		slot, err := parseSlot(name)
		if err != nil {
			return nil, errors.Wrapf(err, "being %d", sb.ID)
		}
		b.Equipment.Items[slot] = id
	}
	b.Equipment.HairStyle = sb.Hair.Style
	b.Equipment.HairColor = sb.Hair.Color
	return b, nil
}

// Populate adds all beings of the scene to r.
func (s *Scene) Populate(r *Registry) error {
	for i := range s.Beings {
		b, err := s.Beings[i].Being()
		if err != nil {
			return err
		}
		if err := r.Add(b); err != nil {
			return err
		}
	}
	return nil
}
