//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/sys/unix"
)

type TermSize struct {
	Rows, Cols     uint
	XPixel, YPixel uint
}

var kittySizeReply = regexp.MustCompile(`\[4;(\d+);(\d+)t`)

// askKittySize asks the terminal on f for its size in pixels with CSI 14 t.
func askKittySize(f *os.File, sz *unix.Winsize) {
	state, err := terminal.MakeRaw(int(f.Fd()))
	if err != nil {
		return
	}
	defer terminal.Restore(int(f.Fd()), state)

	fmt.Fprintf(f, "\033[14t")
	// Reply: <ESC>[4;<height>;<width>t
	reader := bufio.NewReader(f)
	if b, err := reader.ReadByte(); err != nil || b != 033 {
		return
	}
	s, err := reader.ReadString('t')
	if err != nil {
		return
	}
	m := kittySizeReply.FindStringSubmatch(s)
	if len(m) != 3 {
		return
	}
	height, errH := strconv.Atoi(m[1])
	width, errW := strconv.Atoi(m[2])
	if errH == nil && errW == nil {
		sz.Xpixel = uint16(width)
		sz.Ypixel = uint16(height)
	}
}

func GetTermSize() (TermSize, error) {
	f, err := os.OpenFile("/dev/tty", unix.O_NOCTTY|unix.O_CLOEXEC|unix.O_NDELAY|unix.O_RDWR, 0666)
	if err == nil {
		// https://sw.kovidgoyal.net/kitty/graphics-protocol/#getting-the-window-size
		defer f.Close()
		var sz *unix.Winsize
		if sz, err = unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ); err == nil {
			if sz.Xpixel == 0 && sz.Ypixel == 0 && os.Getenv("TERM") == "xterm-kitty" {
				askKittySize(f, sz)
			}
			return TermSize{Rows: uint(sz.Row), Cols: uint(sz.Col), XPixel: uint(sz.Xpixel), YPixel: uint(sz.Ypixel)}, nil
		}
	}
	var w, h int
	if w, h, err = terminal.GetSize(int(os.Stdout.Fd())); err == nil {
		return TermSize{Rows: uint(h), Cols: uint(w)}, nil
	}
	return TermSize{}, err
}
