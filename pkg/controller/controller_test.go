package controller

import (
	"bytes"
	"log"
	"math"
	"strings"
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"

	"github.com/OpenTraceLab/panzoom/pkg/settings"
	"github.com/OpenTraceLab/panzoom/pkg/state"
)

const eps = 1e-3

func newController(vw, vh, cw, ch int) *Controller {
	cfg := settings.Default().SetViewport(vw, vh).SetContent(cw, ch)
	return New(cfg, nil)
}

func TestFitZoom(t *testing.T) {
	tests := []struct {
		name     string
		content  [2]int
		fit      settings.Fit
		rotation float32
		want     float32
	}{
		{"inside wide", [2]int{200, 100}, settings.FitInside, 0, 0.5},
		{"outside wide", [2]int{200, 100}, settings.FitOutside, 0, 1},
		{"inside rotated", [2]int{200, 100}, settings.FitInside, 90, 0.5},
		{"inside small", [2]int{50, 25}, settings.FitInside, 0, 2},
		{"outside rotated square", [2]int{100, 100}, settings.FitOutside, 45, float32(math.Sqrt2)},
		{"inside rotated square", [2]int{100, 100}, settings.FitInside, 45, float32(1 / math.Sqrt2)},
		{"no content", [2]int{0, 0}, settings.FitInside, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController(100, 100, tt.content[0], tt.content[1])
			c.Settings().Fit = tt.fit
			got := c.FitZoom(state.State{Zoom: 1, Rotation: tt.rotation})
			assert.InDelta(t, tt.want, got, eps)
		})
	}
}

func TestFitZoomUsesMovementArea(t *testing.T) {
	c := newController(100, 100, 200, 100)
	c.Settings().SetMovementArea(50, 50)
	assert.InDelta(t, 0.25, c.FitZoom(state.New()), eps)
}

func TestZoomLimits(t *testing.T) {
	c := newController(100, 100, 200, 100)
	st := state.New()
	if got := c.MinZoom(st); got != 0.5 {
		t.Fatalf("MinZoom = %v, want fit zoom 0.5", got)
	}
	if got := c.MaxZoom(st); got != 2 {
		t.Fatalf("MaxZoom = %v, want 2", got)
	}

	c.Settings().MinZoom = 3
	if got := c.MaxZoom(st); got != 3 {
		t.Fatalf("MaxZoom = %v, want clamped up to MinZoom 3", got)
	}

	c.Settings().MinZoom = 0
	c.Settings().SetContent(20, 10)
	// fit zoom 5, default max is twice that
	if got := c.MaxZoom(st); got != 10 {
		t.Fatalf("MaxZoom = %v, want 10", got)
	}
}

func TestResetState(t *testing.T) {
	c := newController(100, 100, 200, 100)
	st := state.State{X: 7, Y: 8, Zoom: 3, Rotation: 30}
	c.ResetState(&st)
	want := state.State{X: 0, Y: 25, Zoom: 0.5}
	if !st.Equals(want) {
		t.Fatalf("ResetState = %v, want %v", st, want)
	}
	if b := c.MovementBounds(st); !b.Contains(st.X, st.Y) {
		t.Fatalf("reset state %v outside bounds %v", st, b)
	}
}

func TestRestrictStateBounds(t *testing.T) {
	var buf bytes.Buffer
	cfg := settings.Default().SetViewport(100, 100).SetContent(200, 100)
	c := New(cfg, log.New(&buf, "", 0))

	st := state.State{X: 0, Y: 25, Zoom: 10}
	if !c.RestrictStateBounds(&st, false, false) {
		t.Fatalf("RestrictStateBounds reported no change")
	}
	assert.InDelta(t, 2, st.Zoom, eps)
	assert.InDelta(t, 0, st.X, eps)
	assert.InDelta(t, 0, st.Y, eps)
	if !strings.Contains(buf.String(), "[CONTROLLER] restricted") {
		t.Fatalf("expected restriction to be logged, got %q", buf.String())
	}

	buf.Reset()
	if c.RestrictStateBounds(&st, false, false) {
		t.Fatalf("second RestrictStateBounds changed %v", st)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected log output %q", buf.String())
	}
}

func TestRestrictStateBoundsOverzoom(t *testing.T) {
	c := newController(100, 100, 200, 100)

	st := state.State{Zoom: 10}
	c.RestrictStateBounds(&st, true, true)
	assert.InDelta(t, 4, st.Zoom, eps, "max zoom 2 times overzoom 2")

	st = state.State{Zoom: 0.01}
	c.RestrictStateBounds(&st, true, true)
	assert.InDelta(t, 0.25, st.Zoom, eps, "min zoom 0.5 over overzoom 2")

	c.RestrictStateBounds(&st, false, false)
	assert.InDelta(t, 0.5, st.Zoom, eps)
}

func TestPanOverscroll(t *testing.T) {
	c := newController(100, 100, 200, 100)
	c.Settings().Overscroll = settings.Overscroll{X: 10, Y: 10}

	st := state.New()
	c.ResetState(&st) // (0, 25), both axes locked at zoom 0.5

	if !c.RestrictedPan(&st, 30, 30) {
		t.Fatalf("RestrictedPan reported no change")
	}
	if st.X != 10 || st.Y != 35 {
		t.Fatalf("pan with overscroll = (%v, %v), want (10, 35)", st.X, st.Y)
	}

	c.RestrictStateBounds(&st, false, false)
	if st.X != 0 || st.Y != 25 {
		t.Fatalf("release = (%v, %v), want (0, 25)", st.X, st.Y)
	}
}

func TestDisabledGestures(t *testing.T) {
	c := newController(100, 100, 200, 100)
	cfg := c.Settings()
	cfg.PanEnabled = false
	cfg.ZoomEnabled = false

	st := state.New()
	c.ResetState(&st)
	before := st

	if c.RestrictedPan(&st, 5, 5) || st != before {
		t.Fatalf("pan applied while disabled: %v", st)
	}
	if c.RestrictedZoom(&st, 2, f32.Pt(50, 50)) || st != before {
		t.Fatalf("zoom applied while disabled: %v", st)
	}
	if c.RestrictedRotate(&st, 15) || st != before {
		t.Fatalf("rotation applied while disabled: %v", st)
	}
}

func TestRestrictedZoomAndRotate(t *testing.T) {
	c := newController(100, 100, 200, 100)
	c.Settings().RotationEnabled = true

	st := state.New()
	c.ResetState(&st)

	c.RestrictedZoom(&st, 100, f32.Pt(50, 50))
	assert.InDelta(t, 4, st.Zoom, eps)

	if !c.RestrictedRotate(&st, 15) {
		t.Fatalf("RestrictedRotate reported no change")
	}
	assert.InDelta(t, 15, st.Rotation, eps)
}

func TestRestrictedRotateFullTurn(t *testing.T) {
	c := newController(100, 100, 200, 100)
	c.Settings().RotationEnabled = true

	st := state.New()
	c.ResetState(&st)
	before := st

	if c.RestrictedRotate(&st, 360) {
		t.Fatalf("RestrictedRotate(360) reported a change: %v -> %v", before, st)
	}
	if !st.Equals(before) {
		t.Fatalf("state = %v, want %v", st, before)
	}
}
