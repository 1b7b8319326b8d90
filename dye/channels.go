package dye

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedSpec is returned (wrapped) when a dye specification cannot be
// turned into channels. Callers should render the sprite undyed.
var ErrMalformedSpec = errors.New("dye: malformed specification")

// Channel names one of the seven palette channels.
type Channel byte

const (
	Red     = Channel('R')
	Green   = Channel('G')
	Yellow  = Channel('Y')
	Blue    = Channel('B')
	Magenta = Channel('M')
	Cyan    = Channel('C')
	White   = Channel('W')
)

// Stop is one color of a gradient.
type Stop struct {
	R, G, B uint8
}

// Channels maps a palette channel to its gradient. Gradient stops are evenly
// spread over the intensity range 0..255.
type Channels map[Channel][]Stop

// ParseChannels builds the channel map for the passed dye specification.
//
// spec[0] is required; spec[1], if present, labels unlabeled segments of
// spec[0] positionally. An empty leading segment yields an empty map, which
// dyes nothing.
func ParseChannels(spec []string) (Channels, error) {
	if len(spec) == 0 {
		return nil, errors.Wrap(ErrMalformedSpec, "empty dye list")
	}
	channels := Channels{}
	primary := strings.Split(spec[0], ";")
	var labels []string
	if len(spec) > 1 && spec[1] != "" {
		labels = strings.Split(spec[1], ";")
	}

	for i, seg := range primary {
		if seg == "" {
			break
		}
		var ch Channel
		var payload string
		if len(seg) > 1 && seg[1] == ':' {
			ch = Channel(seg[0])
			payload = seg[2:]
		} else {
			if i >= len(labels) || labels[i] == "" {
				return nil, errors.Wrapf(ErrMalformedSpec, "segment %d (%q) has no channel label", i, seg)
			}
			ch = Channel(labels[i][0])
			payload = seg
		}

		stops, err := parseStops(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "segment %d (%q)", i, seg)
		}
		channels[ch] = stops
	}
	return channels, nil
}

func parseStops(payload string) ([]Stop, error) {
	payload = strings.TrimPrefix(payload, "#")
	values := strings.Split(payload, ",")
	stops := make([]Stop, 0, len(values))
	for _, v := range values {
		v = strings.TrimPrefix(strings.TrimSpace(v), "#")
		if len(v) != 6 {
			return nil, errors.Wrapf(ErrMalformedSpec, "color %q is not 6 hex digits", v)
		}
		num, err := strconv.ParseUint(v, 16, 32)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedSpec, "color %q: %v", v, err)
		}
		stops = append(stops, Stop{
			R: uint8(num >> 16 & 0xff),
			G: uint8(num >> 8 & 0xff),
			B: uint8(num & 0xff),
		})
	}
	return stops, nil
}
