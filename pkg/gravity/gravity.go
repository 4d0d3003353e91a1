// Package gravity implements the alignment primitive: placing a content
// size inside a container rectangle according to a per-axis gravity.
//
// Each axis is aligned independently. An axis pulled to neither edge is
// centered, an axis pulled to both edges is stretched to fill the container,
// and a clip modifier crops the result to the container on that axis.
// Positions are integer pixels; centering uses truncating division so a
// leftover odd pixel goes to the trailing side.
package gravity

import (
	"image"
	"strings"

	"gioui.org/layout"
)

// Gravity is a bit set of per-axis alignment flags.
type Gravity uint16

const (
	Left Gravity = 1 << iota
	Right
	CenterHorizontal
	ClipHorizontal
	Top
	Bottom
	CenterVertical
	ClipVertical

	// NoGravity centers on both axes.
	NoGravity Gravity = 0

	FillHorizontal = Left | Right
	FillVertical   = Top | Bottom
	Fill           = FillHorizontal | FillVertical
	Center         = CenterHorizontal | CenterVertical

	horizontalMask = Left | Right | CenterHorizontal | ClipHorizontal
	verticalMask   = Top | Bottom | CenterVertical | ClipVertical
)

// Horizontal returns the horizontal flags only.
func (g Gravity) Horizontal() Gravity { return g & horizontalMask }

// Vertical returns the vertical flags only.
func (g Gravity) Vertical() Gravity { return g & verticalMask }

// Apply returns the rectangle of size w×h placed inside container.
func Apply(g Gravity, w, h int, container image.Rectangle) image.Rectangle {
	var out image.Rectangle
	out.Min.X, out.Max.X = align(w, container.Min.X, container.Max.X,
		g&Left != 0, g&Right != 0, g&ClipHorizontal != 0)
	out.Min.Y, out.Max.Y = align(h, container.Min.Y, container.Max.Y,
		g&Top != 0, g&Bottom != 0, g&ClipVertical != 0)
	return out
}

// align places size along one axis of [start, end].
func align(size, start, end int, before, after, clip bool) (int, int) {
	var lo, hi int
	switch {
	case before && after:
		return start, end
	case before:
		lo = start
		hi = lo + size
	case after:
		hi = end
		lo = hi - size
	default:
		lo = start + (end-start-size)/2
		hi = lo + size
	}
	if clip {
		if lo < start {
			lo = start
		}
		if hi > end {
			hi = end
		}
	}
	return lo, hi
}

// FromDirection converts a Gio layout direction.
func FromDirection(d layout.Direction) Gravity {
	switch d {
	case layout.NW:
		return Top | Left
	case layout.N:
		return Top | CenterHorizontal
	case layout.NE:
		return Top | Right
	case layout.E:
		return Right | CenterVertical
	case layout.SE:
		return Bottom | Right
	case layout.S:
		return Bottom | CenterHorizontal
	case layout.SW:
		return Bottom | Left
	case layout.W:
		return Left | CenterVertical
	default:
		return Center
	}
}

// String returns the expression form accepted by Parse, e.g. "top|center_horizontal".
func (g Gravity) String() string {
	if g == NoGravity {
		return "no_gravity"
	}
	var parts []string
	h, v := g.Horizontal(), g.Vertical()
	switch {
	case h&FillHorizontal == FillHorizontal && v&FillVertical == FillVertical:
		parts = append(parts, "fill")
		h &^= FillHorizontal
		v &^= FillVertical
	case h&CenterHorizontal != 0 && h&FillHorizontal == 0 &&
		v&CenterVertical != 0 && v&FillVertical == 0:
		parts = append(parts, "center")
		h &^= CenterHorizontal
		v &^= CenterVertical
	}

	switch {
	case h&FillHorizontal == FillHorizontal:
		parts = append(parts, "fill_horizontal")
	case h&Left != 0:
		parts = append(parts, "left")
	case h&Right != 0:
		parts = append(parts, "right")
	case h&CenterHorizontal != 0:
		parts = append(parts, "center_horizontal")
	}
	switch {
	case v&FillVertical == FillVertical:
		parts = append(parts, "fill_vertical")
	case v&Top != 0:
		parts = append(parts, "top")
	case v&Bottom != 0:
		parts = append(parts, "bottom")
	case v&CenterVertical != 0:
		parts = append(parts, "center_vertical")
	}
	if g&ClipHorizontal != 0 {
		parts = append(parts, "clip_horizontal")
	}
	if g&ClipVertical != 0 {
		parts = append(parts, "clip_vertical")
	}
	return strings.Join(parts, "|")
}

// MarshalText implements encoding.TextMarshaler.
func (g Gravity) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Gravity) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
