package dye

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-mana/ttesting"
)

func TestParseChannelsSelfLabeled(t *testing.T) {
	ch, err := ParseChannels([]string{"W:#ff0000,00ff00;R:#123456"})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	ttesting.AssertEqualInt(t, "channel count", len(ch), 2)
	ttesting.AssertEqualInt(t, "W stops", len(ch[White]), 2)
	ttesting.AssertEqualInt(t, "R stops", len(ch[Red]), 1)
	if got, want := ch[Red][0], (Stop{0x12, 0x34, 0x56}); got != want {
		t.Errorf("R stop: got %+v; want %+v", got, want)
	}
}

func TestParseChannelsPositionalLabels(t *testing.T) {
	ch, err := ParseChannels([]string{"#000000,ffffff;#ff00ff", "W;M"})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if got, want := ch[White], []Stop{{0, 0, 0}, {255, 255, 255}}; fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("W: got %v; want %v", got, want)
	}
	if got, want := ch[Magenta], []Stop{{255, 0, 255}}; fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("M: got %v; want %v", got, want)
	}
}

func TestParseChannelsMissingLabels(t *testing.T) {
	_, err := ParseChannels([]string{"#ff0000,00ff00"})
	if !errors.Is(err, ErrMalformedSpec) {
		t.Errorf("got %v; want ErrMalformedSpec", err)
	}
}

func TestParseChannelsBadHex(t *testing.T) {
	_, err := ParseChannels([]string{"R:#zz0000"})
	if !errors.Is(err, ErrMalformedSpec) {
		t.Errorf("got %v; want ErrMalformedSpec", err)
	}
}

func TestParseChannelsEmpty(t *testing.T) {
	ch, err := ParseChannels([]string{"", "W"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ttesting.AssertEqualInt(t, "no channels", len(ch), 0)
}

func TestParseChannelsRoundTrip(t *testing.T) {
	for _, v := range []uint32{0x000000, 0xffffff, 0x010203, 0xabcdef, 0x7f8081, 0xff0001} {
		ch, err := ParseChannels([]string{fmt.Sprintf("B:#%06x", v)})
		if err != nil {
			t.Fatalf("%06x: %v", v, err)
		}
		got := ch[Blue][0]
		want := Stop{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
		if got != want {
			t.Errorf("%06x: got %+v; want %+v", v, got, want)
		}
	}
}

func TestPixelInterpolates(t *testing.T) {
	ch := Channels{Red: {{0, 0, 0}, {255, 0, 0}}}
	got := ch.Pixel(color.NRGBA{R: 128, A: 255})
	ttesting.AssertInRangeInt(t, "strictly between stops", int(got.R), 1, 254)
	ttesting.AssertEqualInt(t, "alpha kept", int(got.A), 255)
}

func TestPixelCyanScenario(t *testing.T) {
	ch, err := ParseChannels([]string{"C:ff0000,00ff00"})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	got := ch.Pixel(color.NRGBA{R: 0, G: 128, B: 128, A: 255})
	ttesting.AssertEqualNRGBA(t, "between red and green", got, color.NRGBA{R: 254, G: 1, B: 0, A: 255})
}

func TestPixelStopBoundary(t *testing.T) {
	stops := []Stop{{10, 20, 30}, {40, 50, 60}, {70, 80, 90}}
	ch := Channels{White: stops}
	// 85*3 == 255, so intensity 85 lands exactly on the first stop.
	for _, tc := range []struct {
		in   uint8
		want Stop
	}{
		{85, stops[0]},
		{170, stops[1]},
		{255, stops[2]},
	} {
		got := ch.Pixel(color.NRGBA{R: tc.in, G: tc.in, B: tc.in, A: 200})
		ttesting.AssertEqualNRGBA(t, fmt.Sprintf("intensity %d", tc.in), got, color.NRGBA{R: tc.want.R, G: tc.want.G, B: tc.want.B, A: 200})

		// Alpha plays no part in the lookup.
		again := ch.Pixel(color.NRGBA{R: tc.in, G: tc.in, B: tc.in, A: 10})
		ttesting.AssertEqualNRGBA(t, fmt.Sprintf("intensity %d, other alpha", tc.in), again, color.NRGBA{R: tc.want.R, G: tc.want.G, B: tc.want.B, A: 10})
	}
}

func TestPixelUntouched(t *testing.T) {
	ch := Channels{Red: {{1, 2, 3}}, Yellow: {{4, 5, 6}}}
	for _, c := range []color.NRGBA{
		{0, 0, 0, 255},    // black
		{0, 0, 0, 0},      // transparent
		{200, 0, 0, 0},    // transparent red
		{0, 100, 0, 255},  // no green channel
		{100, 50, 0, 255}, // yellow with unequal components
		{10, 10, 10, 255}, // no white channel
		{0, 30, 40, 255},  // cyan class, no channel
		{10, 0, 20, 255},  // magenta with unequal components
	} {
		ttesting.AssertEqualNRGBA(t, fmt.Sprintf("%v", c), ch.Pixel(c), c)
	}
}

func TestDyeKeepsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 128, A: 0})
	img.SetNRGBA(0, 1, color.NRGBA{G: 77, A: 99})
	img.SetNRGBA(1, 1, color.NRGBA{R: 51, A: 128})

	Dye(img, Channels{Red: {{0, 0, 255}}, Green: {{9, 9, 9}}})

	ttesting.AssertEqualNRGBA(t, "full red", img.NRGBAAt(0, 0), color.NRGBA{B: 255, A: 255})
	ttesting.AssertEqualNRGBA(t, "transparent untouched", img.NRGBAAt(1, 0), color.NRGBA{R: 128, A: 0})
	ttesting.AssertEqualInt(t, "green alpha", int(img.NRGBAAt(0, 1).A), 99)
	ttesting.AssertEqualInt(t, "red alpha", int(img.NRGBAAt(1, 1).A), 128)
}

func TestCacheMemoizes(t *testing.T) {
	var c Cache
	a, err := c.Channels([]string{"R:#ff0000"})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	b, _ := c.Channels([]string{"R:#ff0000"})
	if fmt.Sprintf("%p", a) != fmt.Sprintf("%p", b) {
		t.Errorf("got distinct maps for the same key")
	}
	if _, err := c.Channels([]string{"#ff0000"}); !errors.Is(err, ErrMalformedSpec) {
		t.Errorf("got %v; want ErrMalformedSpec", err)
	}
}
