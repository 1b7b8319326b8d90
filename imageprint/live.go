package imageprint

import (
	"context"
	"image"
	ic "image/color"
	"time"

	"github.com/gdamore/tcell/v2"
)

// DrawScreen paints i onto s using half blocks, two pixels per cell. The top
// pixel is the foreground of '▀', the bottom one its background.
func DrawScreen(s tcell.Screen, i image.Image) {
	b := i.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := cellColor(i.At(x, y))
			bottom := tcell.ColorReset
			if y+1 < b.Max.Y {
				bottom = cellColor(i.At(x, y+1))
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			s.SetContent(x-b.Min.X, (y-b.Min.Y)/2, '▀', nil, style)
		}
	}
}

func cellColor(c ic.Color) tcell.Color {
	nc := ic.NRGBAModel.Convert(c).(ic.NRGBA)
	if nc.A == 0 {
		return tcell.ColorReset
	}
	return tcell.NewRGBColor(int32(nc.R), int32(nc.G), int32(nc.B))
}

// Play redraws s every tick with whatever render returns for the time passed
// since Play started. It returns when ctx is done or the user presses Escape,
// Ctrl-C or q.
func Play(ctx context.Context, s tcell.Screen, tick time.Duration, render func(now time.Duration) image.Image) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			switch ev := s.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					cancel()
					return
				}
			case *tcell.EventResize:
				s.Sync()
			}
		}
	}()

	t := time.NewTicker(tick)
	defer t.Stop()
	start := time.Now()
	for {
		s.Clear()
		DrawScreen(s, render(time.Since(start)))
		s.Show()

		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}
