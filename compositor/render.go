package compositor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-mana/gameworld"
	"badc0de.net/pkg/go-mana/sprite"
	"badc0de.net/pkg/go-mana/things"
)

// Renderer draws the beings of a registry.
type Renderer struct {
	Things *things.Things
	Cache  *sprite.Cache
	World  *gameworld.Registry

	reportedLock sync.Mutex
	reported     map[string]bool
}

func NewRenderer(th *things.Things, cache *sprite.Cache, world *gameworld.Registry) *Renderer {
	return &Renderer{
		Things: th,
		Cache:  cache,
		World:  world,
	}
}

// reportOnce logs a missing sprite the first time it is seen.
func (r *Renderer) reportOnce(key string, err error) {
	r.reportedLock.Lock()
	defer r.reportedLock.Unlock()
	if r.reported == nil {
		r.reported = make(map[string]bool)
	}
	if r.reported[key] {
		return
	}
	r.reported[key] = true
	glog.Errorf("compositor: %s: %v", key, err)
}

// BodyRequest returns the request for the base sprite of b.
func (r *Renderer) BodyRequest(b *gameworld.Being) (sprite.Request, error) {
	switch b.Type {
	case gameworld.Player:
		return r.Things.PlayerSprite(b.Gender), nil
	case gameworld.NPC:
		return r.Things.NPCSprite(b.Job)
	case gameworld.Monster:
		return r.Things.MonsterSprite(b.Job)
	default:
		return sprite.Request{}, fmt.Errorf("being type %v not handled", b.Type)
	}
}

// EquipmentRequest returns the request for what b wears in slot. It reports
// false for empty slots and slots without a usable sprite.
func (r *Renderer) EquipmentRequest(b *gameworld.Being, slot gameworld.Slot) (sprite.Request, bool) {
	if slot == gameworld.SlotHair {
		if b.Equipment.HairStyle == 0 {
			return sprite.Request{}, false
		}
		req, err := r.Things.HairSprite(b.Equipment.HairStyle, b.Equipment.HairColor)
		if err != nil {
			r.reportOnce(fmt.Sprintf("being %d hair %d", b.ID, b.Equipment.HairStyle), err)
			return sprite.Request{}, false
		}
		return req, true
	}

	id := b.Equipment.Items[slot]
	if id == 0 {
		return sprite.Request{}, false
	}
	req, err := r.Things.EquipmentSprite(id, b.Gender)
	if err != nil {
		r.reportOnce(fmt.Sprintf("no sprite found for being %d slot %v item %d", b.ID, slot, id), err)
		return sprite.Request{}, false
	}
	return req, true
}

// ready requests req and returns its set if it is ready.
func (r *Renderer) ready(req sprite.Request) (*sprite.Set, bool) {
	st, set := r.Cache.Request(req)
	if st != sprite.Ready {
		glog.V(2).Infof("compositor: %v is %v", req.Key(), st)
		return nil, false
	}
	return set, true
}

// Preload builds the sprite sets of every being in the registry and waits
// for them. Sets which fail to build are reported; the beings using them are
// not drawn.
func (r *Renderer) Preload(ctx context.Context) error {
	var reqs []sprite.Request
	for _, b := range r.World.Beings() {
		if req, err := r.BodyRequest(b); err == nil {
			reqs = append(reqs, req)
		}
		if b.Type != gameworld.Player {
			continue
		}
		for _, slot := range gameworld.DrawOrder {
			if req, ok := r.EquipmentRequest(b, slot); ok {
				reqs = append(reqs, req)
			}
		}
	}
	return r.Cache.Preload(ctx, reqs...)
}

// Draw draws all visible beings. Monsters which finish dying are removed
// from the registry.
func (r *Renderer) Draw(dst Compositor, scrollX, scrollY int, now time.Duration) {
	for _, b := range r.World.Beings() {
		r.DrawBeing(dst, b, scrollX, scrollY, now)
	}
}

// DrawBeing animates and draws a single being.
func (r *Renderer) DrawBeing(dst Compositor, b *gameworld.Being, scrollX, scrollY int, now time.Duration) {
	req, err := r.BodyRequest(b)
	if err != nil {
		r.reportOnce(fmt.Sprintf("%v %d job %d", b.Type, b.ID, b.Job), err)
		return
	}
	set, ok := r.ready(req)
	if !ok {
		return
	}

	step, ok := Animate(b.Visual, b.Type, b.Action, b.Direction, set, now)
	if !ok {
		r.reportOnce(fmt.Sprintf("%v %d sprite %v", b.Type, b.ID, req.Key()), fmt.Errorf("nothing to draw for %q", b.Action))
		return
	}
	if step.Remove {
		glog.V(1).Infof("compositor: %v %d finished dying", b.Type, b.ID)
		r.World.Remove(b.ID)
		return
	}
	b.Visual = step.State
	b.Action = step.Action
	b.Direction = step.Direction

	x, y := b.X-scrollX, b.Y-scrollY
	drawFrame(dst, set, step.Frame, x, y)

	if b.Type != gameworld.Player {
		return
	}
	for _, slot := range gameworld.DrawOrder {
		req, ok := r.EquipmentRequest(b, slot)
		if !ok {
			continue
		}
		eq, ok := r.ready(req)
		if !ok {
			continue
		}
		if f := equipmentFrame(eq, b); f != nil {
			drawFrame(dst, eq, f, x, y)
		}
	}
}

// equipmentFrame picks the frame of an equipment set matching what its
// wearer shows.
func equipmentFrame(set *sprite.Set, b *gameworld.Being) *sprite.Frame {
	dirs, ok := set.Actions[b.Action]
	if !ok {
		return nil
	}
	if frames := dirs[b.Direction]; len(frames) > 0 {
		if b.Visual.LastFrame >= 0 && b.Visual.LastFrame < len(frames) {
			return frames[b.Visual.LastFrame]
		}
		return frames[0]
	}
	if frames := dirs[sprite.Down]; len(frames) > 0 {
		return frames[0]
	}
	return nil
}

// drawFrame draws f of set for a being standing at x, y on screen. Sprites
// are centered horizontally and stand 16 pixels below their feet.
func drawFrame(dst Compositor, set *sprite.Set, f *sprite.Frame, x, y int) {
	left := x - set.Width/2
	top := y - set.Height + 16
	dst.Draw(f.Image, left+f.OffsetX, top+f.OffsetY)
}
