// Package xmls reads the client XML data files: sprite descriptors and the
// monster, NPC, item and hair color databases.
package xmls

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Sprite is a sprite descriptor.
type Sprite struct {
	XMLName  xml.Name   `xml:"sprite"`
	Include  []Include  `xml:"include"`
	Imageset []Imageset `xml:"imageset"`
	Action   []Action   `xml:"action"`
}

// Include points at a base descriptor which describes the sprite instead.
type Include struct {
	File string `xml:"file,attr"`
}

// Imageset describes the sheet the frames are cut from.
type Imageset struct {
	Name    string `xml:"name,attr,omitempty"`
	Src     string `xml:"src,attr"`
	Width   int    `xml:"width,attr"`
	Height  int    `xml:"height,attr"`
	OffsetX int    `xml:"offsetX,attr,omitempty"`
	OffsetY int    `xml:"offsetY,attr,omitempty"`
}

// SrcPath returns the sheet path without the dye suffix.
func (i *Imageset) SrcPath() string {
	p, _, _ := strings.Cut(i.Src, "|")
	return p
}

// SrcDye returns the dye suffix of the sheet path, if any.
func (i *Imageset) SrcDye() (string, bool) {
	_, d, ok := strings.Cut(i.Src, "|")
	return d, ok
}

type Action struct {
	Name      string      `xml:"name,attr"`
	Imageset  string      `xml:"imageset,attr,omitempty"`
	Animation []Animation `xml:"animation"`
}

type Animation struct {
	Direction string `xml:"direction,attr,omitempty"`

	// Steps holds all child elements in document order. Only "frame" and
	// "sequence" are meaningful; see Step.Kind.
	Steps []Step `xml:",any"`
}

// StepKind tells frames and sequences apart.
type StepKind int

const (
	StepOther StepKind = iota
	StepFrame
	StepSequence
)

// Step is a "frame" or "sequence" element of an animation.
type Step struct {
	XMLName xml.Name

	Index   *int `xml:"index,attr"`
	Start   int  `xml:"start,attr"`
	End     int  `xml:"end,attr"`
	Delay   int  `xml:"delay,attr"`
	OffsetX int  `xml:"offsetX,attr"`
	OffsetY int  `xml:"offsetY,attr"`
}

func (s *Step) Kind() StepKind {
	switch s.XMLName.Local {
	case "frame":
		return StepFrame
	case "sequence":
		return StepSequence
	default:
		return StepOther
	}
}

// FirstInclude returns the file of the first include element, if any.
func (s *Sprite) FirstInclude() (string, bool) {
	if len(s.Include) == 0 || s.Include[0].File == "" {
		return "", false
	}
	return s.Include[0].File, true
}

// FirstImageset returns the first imageset of the descriptor, or nil.
func (s *Sprite) FirstImageset() *Imageset {
	if len(s.Imageset) == 0 {
		return nil
	}
	return &s.Imageset[0]
}

// ReadSprite parses a sprite descriptor.
func ReadSprite(r io.Reader) (*Sprite, error) {
	dec := xml.NewDecoder(r)
	s := &Sprite{}
	if err := dec.Decode(s); err != nil {
		return nil, errors.Wrap(err, "xmls: decoding sprite descriptor")
	}
	return s, nil
}
