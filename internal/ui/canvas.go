package ui

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/OpenTraceLab/panzoom/pkg/bounds"
	"github.com/OpenTraceLab/panzoom/pkg/settings"
)

// rotateStep is the rotation applied by the R key and the rotate button.
const rotateStep = 15

// gridStep is the spacing of the content grid in content pixels.
const gridStep = 100

var (
	canvasColor   = color.NRGBA{R: 28, G: 31, B: 40, A: 255}
	areaColor     = color.NRGBA{R: 80, G: 120, B: 255, A: 40}
	contentColor  = color.NRGBA{R: 214, G: 180, B: 96, A: 220}
	gridColor     = color.NRGBA{R: 120, G: 90, B: 30, A: 160}
	boundsColor   = color.NRGBA{R: 90, G: 220, B: 120, A: 255}
	externalColor = color.NRGBA{R: 90, G: 220, B: 120, A: 90}
	originColor   = color.NRGBA{R: 240, G: 70, B: 70, A: 255}
)

// layoutCanvas handles input, draws the scene and reports whether the user
// asked to quit.
func (a *App) layoutCanvas(gtx layout.Context) (layout.Dimensions, bool) {
	size := gtx.Constraints.Max
	a.resize(size)

	quit := a.handleKeys(gtx)
	a.handlePointer(gtx)

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, a)

	paint.Fill(gtx.Ops, canvasColor)
	a.drawArea(gtx)
	a.drawContent(gtx)
	a.drawBounds(gtx)

	return layout.Dimensions{Size: size}, quit
}

func (a *App) handleKeys(gtx layout.Context) bool {
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "R"},
			key.Filter{Name: "F"},
			key.Filter{Name: "Q"},
			key.Filter{Name: "+"},
			key.Filter{Name: "-"},
			key.Filter{Name: key.NameSpace},
			key.Filter{Name: key.NameEscape},
		)
		if !ok {
			return false
		}

		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		switch ke.Name {
		case key.NameEscape, "Q":
			a.Logf("[VIEWER] quit")
			return true
		case "R":
			a.rotate()
		case "F":
			a.toggleFit()
		case key.NameSpace:
			a.reset()
		case "+":
			a.zoomAt(1.25, a.canvasCenter())
		case "-":
			a.zoomAt(0.8, a.canvasCenter())
		}
		gtx.Execute(op.InvalidateCmd{})
	}
}

func (a *App) handlePointer(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  a,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -1000, Max: 1000},
		})
		if !ok {
			return
		}

		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			if pe.Buttons.Contain(pointer.ButtonPrimary) {
				a.dragging = true
				a.lastPos = pe.Position
			}
		case pointer.Drag:
			if a.dragging {
				d := pe.Position.Sub(a.lastPos)
				a.lastPos = pe.Position
				a.ctrl.RestrictedPan(&a.st, d.X, d.Y)
			}
		case pointer.Release, pointer.Cancel:
			if a.dragging {
				a.dragging = false
				a.ctrl.RestrictStateBounds(&a.st, false, false)
			}
		case pointer.Scroll:
			if pe.Scroll.Y != 0 {
				factor := float32(math.Exp(-float64(pe.Scroll.Y) * 0.01))
				a.zoomAt(factor, pe.Position)
			}
		}
		gtx.Execute(op.InvalidateCmd{})
	}
}

func (a *App) zoomAt(factor float32, pivot f32.Point) {
	if !a.ctrl.RestrictedZoom(&a.st, factor, pivot) {
		return
	}
	if !a.dragging {
		a.ctrl.RestrictStateBounds(&a.st, false, false)
	}
}

func (a *App) rotate() {
	if !a.settings.RotationEnabled {
		a.Logf("[VIEWER] rotation is disabled in settings")
		return
	}
	a.ctrl.RestrictedRotate(&a.st, rotateStep)
	a.ctrl.RestrictStateBounds(&a.st, false, false)
	a.Logf("[VIEWER] rotation %.0f°", a.st.Rotation)
}

func (a *App) toggleFit() {
	if a.settings.Fit == settings.FitInside {
		a.settings.Fit = settings.FitOutside
	} else {
		a.settings.Fit = settings.FitInside
	}
	a.ctrl.RestrictStateBounds(&a.st, false, false)
	a.Logf("[VIEWER] fit %v", a.settings.Fit)
}

func (a *App) reset() {
	a.ctrl.ResetState(&a.st)
}

func (a *App) canvasCenter() f32.Point {
	return layout.FPt(a.settings.ViewportSize().Point()).Mul(0.5)
}

func (a *App) drawArea(gtx layout.Context) {
	area := bounds.MovementArea(a.settings)
	paint.FillShape(gtx.Ops, areaColor, clip.Rect(area).Op())
}

func (a *App) drawContent(gtx layout.Context) {
	c := a.settings.ContentSize()
	if c.IsZero() {
		return
	}

	t := op.Affine(a.st.Matrix()).Push(gtx.Ops)
	paint.FillShape(gtx.Ops, contentColor, clip.Rect{Max: c.Point()}.Op())

	width := float32(1)
	if a.st.Zoom > 0 {
		width /= a.st.Zoom
	}
	for x := gridStep; x < c.Width; x += gridStep {
		strokeLine(gtx.Ops, f32.Pt(float32(x), 0), f32.Pt(float32(x), float32(c.Height)), width, gridColor)
	}
	for y := gridStep; y < c.Height; y += gridStep {
		strokeLine(gtx.Ops, f32.Pt(0, float32(y)), f32.Pt(float32(c.Width), float32(y)), width, gridColor)
	}
	t.Pop()

	origin := a.st.Apply(f32.Point{})
	const r = 5
	center := image.Pt(int(origin.X), int(origin.Y))
	paint.FillShape(gtx.Ops, originColor, clip.Ellipse{
		Min: center.Sub(image.Pt(r, r)),
		Max: center.Add(image.Pt(r, r)),
	}.Op(gtx.Ops))
}

// drawBounds outlines the legal region for the content origin and, when it
// is rotated, the axis-aligned box around it.
func (a *App) drawBounds(gtx layout.Context) {
	b := a.ctrl.MovementBounds(a.st)
	frame := b.Frame()

	var corners [4]f32.Point
	for i, p := range b.Rect().Corners() {
		corners[i] = frame.FromFrame(p)
	}
	strokePolygon(gtx.Ops, corners[:], 2, boundsColor)

	if frame.Rotated() {
		ext := b.ExternalBounds().Corners()
		strokePolygon(gtx.Ops, ext[:], 1, externalColor)
	}
}

func strokeLine(ops *op.Ops, from, to f32.Point, width float32, col color.NRGBA) {
	var p clip.Path
	p.Begin(ops)
	p.MoveTo(from)
	p.LineTo(to)
	paint.FillShape(ops, col, clip.Stroke{Path: p.End(), Width: width}.Op())
}

func strokePolygon(ops *op.Ops, pts []f32.Point, width float32, col color.NRGBA) {
	if len(pts) == 0 {
		return
	}
	var p clip.Path
	p.Begin(ops)
	p.MoveTo(pts[0])
	for _, q := range pts[1:] {
		p.LineTo(q)
	}
	p.Close()
	paint.FillShape(ops, col, clip.Stroke{Path: p.End(), Width: width}.Op())
}
