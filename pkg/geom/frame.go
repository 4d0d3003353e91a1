package geom

import (
	"math"

	"gioui.org/f32"
)

// Radians converts degrees to radians.
func Radians(degrees float32) float32 {
	return float32(float64(degrees) * math.Pi / 180.0)
}

// Rotation returns the transform rotating by degrees about origin.
// Positive angles turn clockwise on a y-down screen.
func Rotation(origin f32.Point, degrees float32) f32.Affine2D {
	return f32.Affine2D{}.Rotate(origin, Radians(degrees))
}

// Frame is a coordinate frame rotated by Rotation degrees about Origin.
//
// Screen points are converted into the frame by undoing the rotation, so an
// axis-aligned rectangle in frame coordinates describes a rectangle turned by
// Rotation on screen. The inverse is the rotation by the negated angle, which
// never fails to exist.
type Frame struct {
	Origin   f32.Point
	Rotation float32 // degrees
}

// Rotated reports whether the frame differs from screen orientation.
func (f Frame) Rotated() bool { return f.Rotation != 0 }

// ToFrame maps a screen point into the frame.
func (f Frame) ToFrame(p f32.Point) f32.Point {
	if f.Rotation == 0 {
		return p
	}
	return Rotation(f.Origin, -f.Rotation).Transform(p)
}

// FromFrame maps a frame point back to the screen.
func (f Frame) FromFrame(p f32.Point) f32.Point {
	if f.Rotation == 0 {
		return p
	}
	return Rotation(f.Origin, f.Rotation).Transform(p)
}

// RectToFrame returns the bounding box, in frame coordinates, of a screen rect.
func (f Frame) RectToFrame(r Rect) Rect {
	if f.Rotation == 0 {
		return r
	}
	return MapRect(Rotation(f.Origin, -f.Rotation), r)
}

// RectFromFrame returns the screen bounding box of a frame rect.
func (f Frame) RectFromFrame(r Rect) Rect {
	if f.Rotation == 0 {
		return r
	}
	return MapRect(Rotation(f.Origin, f.Rotation), r)
}

// NormalizeDegrees folds an angle into (-180, 180].
func NormalizeDegrees(degrees float32) float32 {
	d := math.Mod(float64(degrees), 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return float32(d)
}
