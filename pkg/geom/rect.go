// Package geom provides the small amount of 2D geometry shared by the movement
// bounds engine and its hosts: float rectangles, clamping and rotated frames.
// Points and affine transforms come from gioui.org/f32.
package geom

import (
	"fmt"
	"image"
	"math"

	"gioui.org/f32"
)

// Rect is an axis-aligned rectangle in float coordinates.
// A well-formed Rect has Left <= Right and Top <= Bottom; a zero-width or
// zero-height Rect is valid and describes a single coordinate on that axis.
type Rect struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// R is shorthand for Rect{left, top, right, bottom}.
func R(left, top, right, bottom float32) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// FromImage converts an integer rectangle.
func FromImage(r image.Rectangle) Rect {
	return Rect{
		Left:   float32(r.Min.X),
		Top:    float32(r.Min.Y),
		Right:  float32(r.Max.X),
		Bottom: float32(r.Max.Y),
	}
}

// Image rounds the rectangle edges to the nearest pixel.
func (r Rect) Image() image.Rectangle {
	return image.Rect(Round(r.Left), Round(r.Top), Round(r.Right), Round(r.Bottom))
}

// Width returns the horizontal extent
func (r Rect) Width() float32 { return r.Right - r.Left }

// Height returns the vertical extent
func (r Rect) Height() float32 { return r.Bottom - r.Top }

// Min returns the top-left corner.
func (r Rect) Min() f32.Point { return f32.Pt(r.Left, r.Top) }

// Max returns the bottom-right corner.
func (r Rect) Max() f32.Point { return f32.Pt(r.Right, r.Bottom) }

// Center returns the middle of the rectangle.
func (r Rect) Center() f32.Point {
	return f32.Pt((r.Left+r.Right)/2, (r.Top+r.Bottom)/2)
}

// IsEmpty reports whether the rectangle is inverted on either axis.
// Zero-extent rectangles are not empty.
func (r Rect) IsEmpty() bool {
	return r.Left > r.Right || r.Top > r.Bottom
}

// Contains checks if a point is within the rectangle, edges included.
func (r Rect) Contains(p f32.Point) bool {
	return p.X >= r.Left && p.X <= r.Right &&
		p.Y >= r.Top && p.Y <= r.Bottom
}

// ContainsRect checks if o lies within r, edges included.
func (r Rect) ContainsRect(o Rect) bool {
	return o.Left >= r.Left && o.Right <= r.Right &&
		o.Top >= r.Top && o.Bottom <= r.Bottom
}

// Offset returns the rectangle moved by (dx, dy).
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{r.Left + dx, r.Top + dy, r.Right + dx, r.Bottom + dy}
}

// Union returns the smallest rectangle containing r and p.
func (r Rect) Union(p f32.Point) Rect {
	if p.X < r.Left {
		r.Left = p.X
	}
	if p.Y < r.Top {
		r.Top = p.Y
	}
	if p.X > r.Right {
		r.Right = p.X
	}
	if p.Y > r.Bottom {
		r.Bottom = p.Y
	}
	return r
}

// Canon returns the rectangle with its edges ordered.
func (r Rect) Canon() Rect {
	if r.Right < r.Left {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Bottom < r.Top {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// Corners returns the four corners clockwise from top-left.
func (r Rect) Corners() [4]f32.Point {
	return [4]f32.Point{
		f32.Pt(r.Left, r.Top),
		f32.Pt(r.Right, r.Top),
		f32.Pt(r.Right, r.Bottom),
		f32.Pt(r.Left, r.Bottom),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g]-[%g,%g]", r.Left, r.Top, r.Right, r.Bottom)
}

// Clamp restricts v to [min, max]. When min > max the result is min.
func Clamp(v, min, max float32) float32 {
	if v > max {
		v = max
	}
	if v < min {
		v = min
	}
	return v
}

// MapRect returns the bounding box of r's corners mapped through m.
// For a transform with rotation the box is larger than the mapped shape.
func MapRect(m f32.Affine2D, r Rect) Rect {
	corners := r.Corners()
	first := m.Transform(corners[0])
	out := Rect{first.X, first.Y, first.X, first.Y}
	for _, c := range corners[1:] {
		out = out.Union(m.Transform(c))
	}
	return out
}

// Round rounds to the nearest integer, halves rounding up.
func Round(v float32) int {
	return int(math.Floor(float64(v) + 0.5))
}
