// Package sprite turns sprite descriptors and their sheets into animation
// frame sets, and memoizes the result per request.
package sprite

import (
	"image"
	"time"

	"github.com/pkg/errors"
)

// ErrUnknownDirection is returned by ParseDirection for direction names
// outside the fixed set.
var ErrUnknownDirection = errors.New("sprite: unknown direction")

// Direction is the direction code a being faces.
type Direction int

const (
	DirectionUnknown Direction = 0
	Down             Direction = 1
	Left             Direction = 2
	Up               Direction = 4
	Right            Direction = 8
)

// ParseDirection maps a descriptor direction name to its code. An empty name
// means the default direction, Down.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "default", "down":
		return Down, nil
	case "left":
		return Left, nil
	case "up":
		return Up, nil
	case "right":
		return Right, nil
	default:
		return DirectionUnknown, errors.Wrapf(ErrUnknownDirection, "%q", s)
	}
}

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Frame is a single cell cut out of a sheet. Frames are never modified after
// they are published in a Set.
type Frame struct {
	Image   *image.NRGBA
	Delay   time.Duration
	OffsetX int
	OffsetY int
}

// FrameList is the ordered animation of one action in one direction.
type FrameList []*Frame

// Set is the complete animation table of a sprite.
type Set struct {
	// Width and Height are the dimensions of one sheet cell.
	Width, Height int

	Actions map[string]map[Direction]FrameList
}

// Frames returns the frame list for the passed action and direction, or nil.
func (s *Set) Frames(action string, dir Direction) FrameList {
	if s == nil {
		return nil
	}
	return s.Actions[action][dir]
}

// HasAction reports whether the set has any animation for action.
func (s *Set) HasAction(action string) bool {
	if s == nil {
		return false
	}
	_, ok := s.Actions[action]
	return ok
}
