package bounds

import (
	"math"
	"testing"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"

	"github.com/OpenTraceLab/panzoom/pkg/geom"
	"github.com/OpenTraceLab/panzoom/pkg/gravity"
	"github.com/OpenTraceLab/panzoom/pkg/settings"
	"github.com/OpenTraceLab/panzoom/pkg/state"
)

const eps = 1e-2

func newSettings(vw, vh, cw, ch int) *settings.Settings {
	return settings.Default().SetViewport(vw, vh).SetContent(cw, ch)
}

func assertRect(t *testing.T, want, got geom.Rect) {
	t.Helper()
	assert.InDelta(t, want.Left, got.Left, eps, "left")
	assert.InDelta(t, want.Top, got.Top, eps, "top")
	assert.InDelta(t, want.Right, got.Right, eps, "right")
	assert.InDelta(t, want.Bottom, got.Bottom, eps, "bottom")
}

func assertPoint(t *testing.T, want, got f32.Point, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, eps, msgAndArgs...)
}

// samplePoints covers inside, edge and far-outside positions.
var samplePoints = []f32.Point{
	{}, f32.Pt(-50, 0), f32.Pt(-100, 0), f32.Pt(-101, 3), f32.Pt(500, -500),
	f32.Pt(-1e4, 1e4), f32.Pt(25, 25), f32.Pt(0.5, -0.5), f32.Pt(-37.25, 80),
}

func TestSetupWideContentScrollsHorizontally(t *testing.T) {
	cfg := newSettings(100, 100, 200, 100)
	b := Setup(state.New(), cfg)

	if b.Rotation() != 0 {
		t.Fatalf("Rotation() = %v, want 0", b.Rotation())
	}
	if want := geom.R(-100, 0, 0, 0); b.Rect() != want {
		t.Fatalf("Rect() = %v, want %v", b.Rect(), want)
	}
	if b.LockedX() || !b.LockedY() {
		t.Fatalf("LockedX=%v LockedY=%v, want false true", b.LockedX(), b.LockedY())
	}
}

func TestSetupSmallContentLockedAtGravity(t *testing.T) {
	cfg := newSettings(100, 100, 50, 100)
	b := Setup(state.New(), cfg)
	if want := geom.R(25, 0, 25, 0); b.Rect() != want {
		t.Fatalf("Rect() = %v, want %v", b.Rect(), want)
	}

	cfg.Gravity = gravity.Bottom | gravity.Right
	cfg.SetContent(50, 30)
	b = Setup(state.New(), cfg)
	if want := geom.R(50, 70, 50, 70); b.Rect() != want {
		t.Fatalf("Rect() with bottom|right = %v, want %v", b.Rect(), want)
	}
}

func TestSetupUsesZoom(t *testing.T) {
	cfg := newSettings(100, 100, 50, 100)
	st := state.State{Zoom: 3}
	b := Setup(st, cfg)
	// 150x300 content inside 100x100
	assertRect(t, geom.R(-50, -200, 0, 0), b.Rect())
}

func TestSetupMovementAreaWithGravity(t *testing.T) {
	cfg := newSettings(100, 100, 100, 20).SetMovementArea(60, 40)
	cfg.Gravity = gravity.Top | gravity.Left

	if got := MovementArea(cfg); got.Min.X != 0 || got.Max.X != 60 || got.Max.Y != 40 {
		t.Fatalf("MovementArea() = %v", got)
	}
	b := Setup(state.New(), cfg)
	assertRect(t, geom.R(-40, 0, 0, 0), b.Rect())

	cfg.Gravity = gravity.Center
	cfg.SetContent(100, 100)
	b = Setup(state.New(), cfg)
	// area is (20,30)-(80,70); content edges may reach the area edges
	assertRect(t, geom.R(-20, -30, 20, 30), b.Rect())
}

func TestSetupInsideRotatedCorrectsOrigin(t *testing.T) {
	cfg := newSettings(100, 100, 200, 100)
	st := state.State{Zoom: 1, Rotation: 90}
	b := Setup(st, cfg)

	if b.Rotation() != 0 {
		t.Fatalf("inside fit must not rotate bounds, got %v", b.Rotation())
	}
	// The rotated content is 100 wide and 200 tall and its origin is its
	// top-right corner, so x is locked at 100 and y scrolls over [-100, 0].
	assertRect(t, geom.R(100, -100, 100, 0), b.Rect())

	for _, p := range samplePoints {
		q := b.Restrict(p.X, p.Y)
		st.TranslateTo(q.X, q.Y)
		box := geom.MapRect(st.Matrix(), geom.R(0, 0, 200, 100))
		assert.InDelta(t, 0, box.Left, eps, "content should fill viewport width")
		assert.LessOrEqual(t, box.Top, float32(eps))
		assert.GreaterOrEqual(t, box.Bottom, float32(100-eps))
	}
}

func TestRestrictIdempotentAndIdentityInside(t *testing.T) {
	cfgs := []*settings.Settings{
		newSettings(100, 100, 200, 100),
		newSettings(100, 100, 50, 100),
		newSettings(320, 200, 1000, 900).SetMovementArea(200, 100),
	}
	for _, cfg := range cfgs {
		b := Setup(state.State{Zoom: 1.5}, cfg)
		r := b.Rect()
		for _, p := range samplePoints {
			q := b.Restrict(p.X, p.Y)
			if qq := b.Restrict(q.X, q.Y); qq != q {
				t.Fatalf("Restrict not idempotent: %v -> %v -> %v", p, q, qq)
			}
			if !r.Contains(q) {
				t.Fatalf("Restrict(%v) = %v outside %v", p, q, r)
			}
			if r.Contains(p) && q != p {
				t.Fatalf("Restrict moved inner point %v to %v", p, q)
			}
		}
	}
}

func TestRestrictLockedAxis(t *testing.T) {
	cfg := newSettings(100, 100, 200, 100)
	b := Setup(state.New(), cfg)
	for _, p := range samplePoints {
		if got := b.Restrict(p.X, p.Y).Y; got != 0 {
			t.Fatalf("Restrict(%v).Y = %v, want locked 0", p, got)
		}
	}
}

func TestRestrictOverscroll(t *testing.T) {
	cfg := newSettings(100, 100, 200, 100)
	b := Setup(state.New(), cfg)

	cases := []struct {
		in, want f32.Point
		sx, sy   float32
	}{
		{f32.Pt(30, 30), f32.Pt(10, 5), 10, 5},
		{f32.Pt(-130, -30), f32.Pt(-110, -5), 10, 5},
		{f32.Pt(5, 2), f32.Pt(5, 2), 10, 5},
		{f32.Pt(30, 30), f32.Pt(0, 0), -10, -5},
	}
	for _, tc := range cases {
		got := b.RestrictOverscroll(tc.in.X, tc.in.Y, tc.sx, tc.sy)
		if got != tc.want {
			t.Fatalf("RestrictOverscroll(%v, %v, %v) = %v, want %v", tc.in, tc.sx, tc.sy, got, tc.want)
		}
	}
}

func outsideSetup() (*settings.Settings, state.State) {
	cfg := newSettings(100, 100, 400, 400)
	cfg.Fit = settings.FitOutside
	return cfg, state.State{Zoom: 1, Rotation: 45}
}

func TestSetupOutsideRotated(t *testing.T) {
	cfg, st := outsideSetup()
	b := Setup(st, cfg)

	assert.InDelta(t, 45, b.Rotation(), 1e-6)
	assertPoint(t, f32.Pt(50, 50), b.Pivot())

	half := float32(50 * math.Sqrt2)
	areaStart := 50 - half
	left := areaStart - (400 - 2*half)
	assertRect(t, geom.R(left, left, areaStart, areaStart), b.Rect())
}

func TestExternalBoundsIsBoxOfRotatedCorners(t *testing.T) {
	cfg, st := outsideSetup()
	b := Setup(st, cfg)
	ext := b.ExternalBounds()

	rad := 45 * math.Pi / 180
	sin, cos := math.Sincos(rad)
	piv := b.Pivot()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range b.Rect().Corners() {
		dx, dy := float64(c.X-piv.X), float64(c.Y-piv.Y)
		x := dx*cos - dy*sin + float64(piv.X)
		y := dx*sin + dy*cos + float64(piv.Y)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	assertRect(t, geom.R(float32(minX), float32(minY), float32(maxX), float32(maxY)), ext)

	if ext == b.Rect() {
		t.Fatalf("ExternalBounds returned the unrotated rect")
	}
	if ext.Width() <= b.Rect().Width() {
		t.Fatalf("box of rotated square should be wider: %v vs %v", ext, b.Rect())
	}
}

func TestRestrictOutsideKeepsAreaCovered(t *testing.T) {
	cfg, st := outsideSetup()
	b := Setup(st, cfg)
	area := geom.FromImage(MovementArea(cfg))

	for _, p := range samplePoints {
		q := b.Restrict(p.X, p.Y)
		if !b.Contains(q.X, q.Y) {
			// allow float noise at the edge
			inFrame := b.Frame().ToFrame(q)
			r := b.Rect()
			assert.InDelta(t, geom.Clamp(inFrame.X, r.Left, r.Right), inFrame.X, eps)
			assert.InDelta(t, geom.Clamp(inFrame.Y, r.Top, r.Bottom), inFrame.Y, eps)
		}

		st.TranslateTo(q.X, q.Y)
		m := st.Matrix()
		inv := m.Invert()
		for _, c := range area.Corners() {
			cp := inv.Transform(c)
			if cp.X < -eps || cp.Y < -eps || cp.X > 400+eps || cp.Y > 400+eps {
				t.Fatalf("area corner %v not covered by content at %v (content coords %v)", c, q, cp)
			}
		}
	}
}

func TestRestrictCommutesWithFrameRotation(t *testing.T) {
	rect := geom.R(-30, -10, 40, 25)
	pivot := f32.Pt(12, -7)
	for _, base := range []float32{0, 30, -75} {
		for _, delta := range []float32{15, 90, -160} {
			b1 := MovementBounds{rect: rect, frame: geom.Frame{Origin: pivot, Rotation: base}}
			b2 := MovementBounds{rect: rect, frame: geom.Frame{Origin: pivot, Rotation: base + delta}}
			turn := geom.Rotation(pivot, delta)
			for _, p := range samplePoints {
				q1 := b1.Restrict(p.X, p.Y)
				p2 := turn.Transform(p)
				q2 := b2.Restrict(p2.X, p2.Y)
				assertPoint(t, b1.Frame().ToFrame(q1), b2.Frame().ToFrame(q2),
					"base %v delta %v point %v", base, delta, p)
			}
		}
	}
}

func TestUnionMonotonic(t *testing.T) {
	cfg, st := outsideSetup()
	b := Setup(st, cfg)
	for _, p := range samplePoints {
		before := b.Rect()
		b.Union(p.X, p.Y)
		after := b.Rect()
		if !after.ContainsRect(before) {
			t.Fatalf("Union(%v) shrank %v to %v", p, before, after)
		}
		inFrame := b.Frame().ToFrame(p)
		grown := geom.R(after.Left-eps, after.Top-eps, after.Right+eps, after.Bottom+eps)
		if !grown.Contains(inFrame) {
			t.Fatalf("Union(%v) = %v does not contain frame point %v", p, after, inFrame)
		}
	}
}

func TestUnionUnrotated(t *testing.T) {
	b := Setup(state.New(), newSettings(100, 100, 200, 100))
	b.Union(10, -20)
	b.Union(-150, 5)
	if want := geom.R(-150, -20, 10, 5); b.Rect() != want {
		t.Fatalf("Rect() = %v, want %v", b.Rect(), want)
	}
	if b.ExternalBounds() != b.Rect() {
		t.Fatalf("unrotated ExternalBounds should equal Rect")
	}
}

func TestValueCopy(t *testing.T) {
	a := Setup(state.New(), newSettings(100, 100, 200, 100))
	b := a
	b.Union(1000, 1000)
	if a.Rect() == b.Rect() {
		t.Fatalf("Union on copy changed original")
	}
}

func TestOutsideWithoutRotationMatchesInside(t *testing.T) {
	cfg := newSettings(120, 80, 300, 200).SetMovementArea(100, 60)
	st := state.State{X: 3, Y: -4, Zoom: 1.25}
	inside := Setup(st, cfg)
	cfg.Fit = settings.FitOutside
	outside := Setup(st, cfg)
	assertRect(t, inside.Rect(), outside.Rect())
	if outside.Rotation() != 0 {
		t.Fatalf("Rotation() = %v, want 0", outside.Rotation())
	}
}

func TestDegenerateSizes(t *testing.T) {
	cases := []*settings.Settings{
		newSettings(100, 100, 0, 0),
		newSettings(0, 0, 10, 10),
		newSettings(0, 0, 0, 0),
	}
	for _, cfg := range cases {
		for _, fit := range []settings.Fit{settings.FitInside, settings.FitOutside} {
			cfg.Fit = fit
			b := Setup(state.State{Zoom: 1, Rotation: 30}, cfg)
			r := b.Rect()
			if r.IsEmpty() {
				t.Fatalf("%v/%v: inverted bounds %v", cfg.Viewport, cfg.Content, r)
			}
		}
	}
}

func TestSetupInitialMovement(t *testing.T) {
	cfg := newSettings(100, 100, 50, 30)
	st := state.State{X: 999, Y: 999, Zoom: 2}
	SetupInitialMovement(&st, cfg)
	if st.X != 0 || st.Y != 20 {
		t.Fatalf("initial position = (%v, %v), want (0, 20)", st.X, st.Y)
	}

	cfg.SetContent(200, 100)
	st = state.New()
	SetupInitialMovement(&st, cfg)
	if st.X != -50 || st.Y != 0 {
		t.Fatalf("initial position = (%v, %v), want (-50, 0)", st.X, st.Y)
	}
	if b := Setup(st, cfg); !b.Contains(st.X, st.Y) {
		t.Fatalf("initial position (%v, %v) outside %v", st.X, st.Y, b)
	}
}
