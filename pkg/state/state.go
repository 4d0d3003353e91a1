// Package state holds the transform applied to content inside a viewport.
package state

import (
	"fmt"

	"gioui.org/f32"

	"github.com/OpenTraceLab/panzoom/pkg/geom"
)

// epsilon is the tolerance used by Equals.
const epsilon = 0.001

// State is the content transform: scale by Zoom about the content origin,
// rotate by Rotation degrees about the content origin, then translate so the
// content origin lands on (X, Y).
type State struct {
	X        float32 // Translation in X
	Y        float32 // Translation in Y
	Zoom     float32 // Scale factor
	Rotation float32 // Rotation in degrees, normalized to (-180, 180]
}

// New creates an identity state
func New() State {
	return State{Zoom: 1}
}

// RotationDegrees returns the current rotation in degrees.
func (s State) RotationDegrees() float32 { return s.Rotation }

// Matrix returns the transform as an affine matrix.
func (s State) Matrix() f32.Affine2D {
	return f32.Affine2D{}.
		Scale(f32.Point{}, f32.Pt(s.Zoom, s.Zoom)).
		Rotate(f32.Point{}, geom.Radians(s.Rotation)).
		Offset(f32.Pt(s.X, s.Y))
}

// Apply maps a content point to the screen.
func (s State) Apply(p f32.Point) f32.Point {
	return s.Matrix().Transform(p)
}

// ApplyInverse maps a screen point back to content coordinates.
// A zero zoom leaves the scale untouched instead of dividing by zero.
func (s State) ApplyInverse(p f32.Point) f32.Point {
	p = p.Sub(f32.Pt(s.X, s.Y))
	if s.Rotation != 0 {
		p = geom.Rotation(f32.Point{}, -s.Rotation).Transform(p)
	}
	if s.Zoom != 0 {
		p = p.Div(s.Zoom)
	}
	return p
}

// TranslateTo moves the content origin to (x, y).
func (s *State) TranslateTo(x, y float32) {
	s.X = x
	s.Y = y
}

// TranslateBy moves the content by (dx, dy).
func (s *State) TranslateBy(dx, dy float32) {
	s.X += dx
	s.Y += dy
}

// ZoomTo sets the zoom, keeping the screen point pivot fixed.
func (s *State) ZoomTo(zoom float32, pivot f32.Point) {
	if s.Zoom == 0 {
		s.Zoom = zoom
		return
	}
	s.ZoomBy(zoom/s.Zoom, pivot)
}

// ZoomBy multiplies the zoom by factor, keeping the screen point pivot fixed.
func (s *State) ZoomBy(factor float32, pivot f32.Point) {
	s.Zoom *= factor
	s.X = pivot.X + (s.X-pivot.X)*factor
	s.Y = pivot.Y + (s.Y-pivot.Y)*factor
}

// RotateTo sets the rotation, keeping the screen point pivot fixed.
func (s *State) RotateTo(degrees float32, pivot f32.Point) {
	s.RotateBy(degrees-s.Rotation, pivot)
}

// RotateBy rotates by degrees, keeping the screen point pivot fixed.
func (s *State) RotateBy(degrees float32, pivot f32.Point) {
	p := geom.Rotation(pivot, degrees).Transform(f32.Pt(s.X, s.Y))
	s.X, s.Y = p.X, p.Y
	s.Rotation = geom.NormalizeDegrees(s.Rotation + degrees)
}

// Equals reports whether both states match within a small tolerance.
func (s State) Equals(o State) bool {
	return equals(s.X, o.X) && equals(s.Y, o.Y) &&
		equals(s.Zoom, o.Zoom) && equals(s.Rotation, o.Rotation)
}

func (s State) String() string {
	return fmt.Sprintf("x=%.2f y=%.2f zoom=%.3f rotation=%.1f", s.X, s.Y, s.Zoom, s.Rotation)
}

func equals(a, b float32) bool {
	return (a-b) < epsilon && (b-a) < epsilon
}
