// Package ttesting contains assertion helpers shared by the tests. Each
// assertion runs as its own subtest.
package ttesting

import (
	"image/color"
	"testing"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertInRangeInt(t *testing.T, name string, got, wantMin, wantMax int) {
	t.Run(name, func(t *testing.T) {
		if got < wantMin || got > wantMax {
			t.Errorf("got %d; want [%d,%d]", got, wantMin, wantMax)
		}
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

func AssertEqualNRGBA(t *testing.T, name string, got, want color.NRGBA) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %+v; want %+v", got, want)
		}
	})
}
