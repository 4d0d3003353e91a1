package state

import (
	"testing"

	"gioui.org/f32"
)

func near(a, b float32) bool { return equals(a, b) || (a-b)*(a-b) < 1e-4 }

func TestMatrixOrder(t *testing.T) {
	s := State{X: 10, Y: 20, Zoom: 2, Rotation: 90}
	// (1,0) scaled to (2,0), rotated to (0,2), translated to (10,22).
	got := s.Apply(f32.Pt(1, 0))
	if !near(got.X, 10) || !near(got.Y, 22) {
		t.Fatalf("Apply(1,0) = %v, want (10,22)", got)
	}
	if o := s.Apply(f32.Point{}); o != f32.Pt(10, 20) {
		t.Fatalf("origin maps to %v, want translation", o)
	}
}

func TestApplyInverse(t *testing.T) {
	states := []State{
		New(),
		{X: -30, Y: 12, Zoom: 0.5, Rotation: 33},
		{X: 400, Y: -7, Zoom: 3, Rotation: -170},
	}
	for _, s := range states {
		p := f32.Pt(17, -4)
		back := s.ApplyInverse(s.Apply(p))
		if !near(back.X, p.X) || !near(back.Y, p.Y) {
			t.Fatalf("%v: inverse(apply(%v)) = %v", s, p, back)
		}
	}
}

func TestApplyInverseZeroZoom(t *testing.T) {
	s := State{X: 5, Y: 5}
	if got := s.ApplyInverse(f32.Pt(6, 7)); got != f32.Pt(1, 2) {
		t.Fatalf("ApplyInverse with zero zoom = %v", got)
	}
}

func TestZoomKeepsPivot(t *testing.T) {
	s := State{X: 10, Y: 10, Zoom: 1, Rotation: 20}
	pivot := f32.Pt(60, 40)
	content := s.ApplyInverse(pivot)

	s.ZoomTo(2.5, pivot)
	if !near(s.Zoom, 2.5) {
		t.Fatalf("Zoom = %v, want 2.5", s.Zoom)
	}
	got := s.Apply(content)
	if !near(got.X, pivot.X) || !near(got.Y, pivot.Y) {
		t.Fatalf("pivot moved to %v", got)
	}
}

func TestRotateKeepsPivot(t *testing.T) {
	s := State{X: 0, Y: 0, Zoom: 2}
	pivot := f32.Pt(50, 50)
	content := s.ApplyInverse(pivot)

	s.RotateBy(200, pivot)
	if !near(s.Rotation, -160) {
		t.Fatalf("Rotation = %v, want normalized -160", s.Rotation)
	}
	got := s.Apply(content)
	if !near(got.X, pivot.X) || !near(got.Y, pivot.Y) {
		t.Fatalf("pivot moved to %v", got)
	}

	s.RotateTo(0, pivot)
	if !near(s.Rotation, 0) {
		t.Fatalf("RotateTo(0) left rotation %v", s.Rotation)
	}
}

func TestEquals(t *testing.T) {
	a := State{X: 1, Y: 2, Zoom: 1, Rotation: 3}
	b := a
	b.X += epsilon / 2
	if !a.Equals(b) {
		t.Fatalf("%v should equal %v", a, b)
	}
	b.Zoom = 1.1
	if a.Equals(b) {
		t.Fatalf("%v should differ from %v", a, b)
	}
}
