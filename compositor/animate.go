package compositor

import (
	"time"

	"badc0de.net/pkg/go-mana/gameworld"
	"badc0de.net/pkg/go-mana/sprite"
)

const (
	// ActionStand is what beings fall back to when their sprite lacks the
	// action they are doing.
	ActionStand = "stand"
	// ActionDead plays once for monsters, who then disappear.
	ActionDead = "dead"

	// DeadHold is how long an undelayed first frame of a death is shown.
	DeadHold = 2 * time.Second
)

// Step is the outcome of one animation tick of a being.
type Step struct {
	State gameworld.VisualState
	// Action and Direction are what was actually animated, after falling
	// back to ActionStand and sprite.Down.
	Action    string
	Direction sprite.Direction
	Frame     *sprite.Frame
	// Remove is set when a monster finished dying; it must not be drawn
	// again.
	Remove bool
}

// Animate advances the visual state st of a being of type typ doing action
// facing dir, at animation clock reading now. It reports false if set has
// nothing to draw for the being.
func Animate(st gameworld.VisualState, typ gameworld.BeingType, action string, dir sprite.Direction, set *sprite.Set, now time.Duration) (Step, bool) {
	if !set.HasAction(action) {
		action = ActionStand
	}
	frames := set.Frames(action, dir)
	if len(frames) == 0 {
		dir = sprite.Down
		frames = set.Frames(action, dir)
	}
	step := Step{State: st, Action: action, Direction: dir}
	if len(frames) == 0 {
		return step, false
	}

	switch {
	case st.LastAction != action || st.LastDirection != dir:
		st = gameworld.VisualState{LastAction: action, LastDirection: dir}
		first := frames[0]
		switch {
		case first.Delay > 0:
			st.NextFrame = now + first.Delay
		case action == ActionDead:
			st.NextFrame = now + DeadHold
		default:
			st.NextFrame = now
		}
	case now >= st.NextFrame:
		st.LastFrame++
		if st.LastFrame >= len(frames) {
			if typ == gameworld.Monster && action == ActionDead {
				step.Remove = true
				return step, true
			}
			st.LastFrame %= len(frames)
		}
		st.NextFrame = now + frames[st.LastFrame].Delay
	default:
		if st.LastFrame < 0 || st.LastFrame >= len(frames) {
			st.LastFrame = 0
		}
	}

	step.State = st
	step.Frame = frames[st.LastFrame]
	return step, true
}
