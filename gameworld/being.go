// Package gameworld keeps the beings currently visible to the client.
package gameworld

import (
	"fmt"
	"time"

	"badc0de.net/pkg/go-mana/sprite"
	"badc0de.net/pkg/go-mana/xmls"
)

type BeingID uint32

type BeingType int

const (
	Player BeingType = iota
	NPC
	Monster
)

func (t BeingType) String() string {
	switch t {
	case Player:
		return "player"
	case NPC:
		return "npc"
	case Monster:
		return "monster"
	default:
		return fmt.Sprintf("BeingType(%d)", int(t))
	}
}

// Slot is a visible equipment slot.
type Slot int

const (
	SlotShoes Slot = iota
	SlotGloves
	SlotBottomClothes
	SlotTopClothes
	SlotHair
	SlotHat
	SlotWeapon
)

var slotNames = map[Slot]string{
	SlotShoes:         "shoes",
	SlotGloves:        "gloves",
	SlotBottomClothes: "bottomClothes",
	SlotTopClothes:    "topClothes",
	SlotHair:          "hair",
	SlotHat:           "hat",
	SlotWeapon:        "weapon",
}

func (s Slot) String() string {
	if n, ok := slotNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Slot(%d)", int(s))
}

// DrawOrder lists the slots drawn over a player, bottom layer first. Top
// clothes are drawn twice.
var DrawOrder = [8]Slot{
	SlotShoes,
	SlotGloves,
	SlotBottomClothes,
	SlotTopClothes,
	SlotTopClothes,
	SlotHair,
	SlotHat,
	SlotWeapon,
}

// Equipment is what a player visibly wears.
type Equipment struct {
	// Items maps slots to item ids. SlotHair is not used here; hair comes
	// from HairStyle and HairColor.
	Items     map[Slot]int
	HairStyle int
	HairColor int
}

// VisualState is what the animation remembers between render ticks.
type VisualState struct {
	LastAction    string
	LastDirection sprite.Direction
	LastFrame     int
	// NextFrame is the animation clock reading at which the next frame is
	// due.
	NextFrame time.Duration
}

type Being struct {
	ID     BeingID
	Type   BeingType
	Job    int
	Gender xmls.Gender

	X, Y      int
	Action    string
	Direction sprite.Direction

	Equipment Equipment
	Visual    VisualState
}

// NewBeing returns a being standing and facing down.
func NewBeing(id BeingID, typ BeingType, job int) *Being {
	return &Being{
		ID:        id,
		Type:      typ,
		Job:       job,
		Action:    "stand",
		Direction: sprite.Down,
		Equipment: Equipment{Items: make(map[Slot]int)},
	}
}
