// Command spriteprint prints sprites, item icons and scenes on the terminal.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/bradfitz/iter"
	"github.com/common-nighthawk/go-figure"
	"github.com/gdamore/tcell/v2"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-mana/compositor"
	"badc0de.net/pkg/go-mana/datafiles"
	"badc0de.net/pkg/go-mana/dye"
	"badc0de.net/pkg/go-mana/gameworld"
	"badc0de.net/pkg/go-mana/imageprint"
	"badc0de.net/pkg/go-mana/paths"
	"badc0de.net/pkg/go-mana/sprite"
	"badc0de.net/pkg/go-mana/things"
	"badc0de.net/pkg/go-mana/things/full"
)

var (
	spriteRef = flag.String("sprite", "", "sprite to print, as path|dye relative to "+sprite.SpritesDir)
	variant   = flag.Int("variant", 0, "single sheet cell to use instead of the sprite's frames")
	monster   = flag.Int("monster", 0, "monster ID whose sprite to print")
	action    = flag.String("action", compositor.ActionStand, "action to print")
	direction = flag.String("direction", "down", "direction to print")
	itemID    = flag.Int("item", 0, "item ID whose icon to print")
	itemDye   = flag.String("item_dye", "", "dye of the printed item instance")
	scenePath = flag.String("scene", "", "YAML scene to render instead of a single sprite; \"demo\" for the built-in one")
	ticks     = flag.Int("ticks", 1, "number of animation ticks to print")
	tick      = flag.Duration("tick", 100*time.Millisecond, "animation clock step between ticks")
	gifPath   = flag.String("gif", "", "write the animation into this GIF file instead of printing it")
	live      = flag.Bool("live", false, "animate in a full screen terminal view until q is pressed")
	banner    = flag.Bool("banner", false, "print a banner first")
	timeout   = flag.Duration("timeout", time.Minute, "how long to wait for sprites to build")
)

// animator returns the image for a clock reading.
type animator func(now time.Duration) image.Image

// spriteAnimator animates frames of set for a single being on a canvas big
// enough for typical frame offsets.
func spriteAnimator(set *sprite.Set, act string, dir sprite.Direction) animator {
	var st gameworld.VisualState
	return func(now time.Duration) image.Image {
		canvas := compositor.NewCanvas(set.Width*2, set.Height*2)
		step, ok := compositor.Animate(st, gameworld.Player, act, dir, set, now)
		if !ok {
			return canvas
		}
		st = step.State
		f := step.Frame
		canvas.Draw(f.Image, set.Width/2+f.OffsetX, set.Height/2+f.OffsetY)
		return canvas
	}
}

func sceneAnimator(ctx context.Context, th *things.Things, cache *sprite.Cache, path string) (animator, error) {
	var r io.Reader = bytes.NewReader(datafiles.DemoScene)
	if path != full.DemoArchiveName {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	scene, err := gameworld.LoadScene(r)
	if err != nil {
		return nil, err
	}
	world := gameworld.NewRegistry()
	if err := scene.Populate(world); err != nil {
		return nil, err
	}
	renderer := compositor.NewRenderer(th, cache, world)
	if err := renderer.Preload(ctx); err != nil {
		glog.Warningf("some beings will not be drawn: %v", err)
	}
	return func(now time.Duration) image.Image {
		canvas := compositor.NewCanvas(scene.Width, scene.Height)
		renderer.Draw(canvas, scene.ScrollX, scene.ScrollY, now)
		return canvas
	}, nil
}

func playLive(ctx context.Context, anim animator) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	return imageprint.Play(ctx, s, *tick, anim)
}

func writeGIF(set *sprite.Set, dir sprite.Direction) error {
	f, err := os.Create(*gifPath)
	if err != nil {
		return err
	}
	if err := imageprint.EncodeGIF(f, set.Frames(*action, dir)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func run(ctx context.Context) error {
	archive, th, err := full.FromFlags(ctx)
	if err != nil {
		return err
	}
	if c, ok := archive.(*paths.ZipArchive); ok {
		defer c.Close()
	}
	cache := sprite.NewCache(&sprite.Assembler{Archive: archive, Dyes: &dye.Cache{}}, 0)

	waitCtx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if *itemID != 0 {
		icon, err := th.ItemIcon(waitCtx, *itemID, *itemDye)
		if err != nil {
			return err
		}
		out(icon)
		return nil
	}

	var anim animator
	switch {
	case *scenePath != "":
		if anim, err = sceneAnimator(waitCtx, th, cache, *scenePath); err != nil {
			return err
		}
	case *spriteRef != "" || *monster != 0:
		req := sprite.ParseRequest(*spriteRef, *variant)
		if *monster != 0 {
			if req, err = th.MonsterSprite(*monster); err != nil {
				return err
			}
		}
		dir, err := sprite.ParseDirection(*direction)
		if err != nil {
			return err
		}
		set, err := cache.Wait(waitCtx, req)
		if err != nil {
			return err
		}
		if *gifPath != "" {
			return writeGIF(set, dir)
		}
		anim = spriteAnimator(set, *action, dir)
	default:
		return fmt.Errorf("nothing to print: pass --sprite, --monster, --item or --scene")
	}

	if *live {
		return playLive(ctx, anim)
	}
	for i := range iter.N(*ticks) {
		if i > 0 {
			fmt.Println()
		}
		out(anim(time.Duration(i) * *tick))
	}
	return nil
}

func main() {
	full.SetupFlags()
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *banner {
		figure.NewFigure("go-mana", "", true).Print()
	}
	if err := run(context.Background()); err != nil {
		glog.Exitf("spriteprint: %v", err)
	}
}
