package bounds

import (
	"fmt"
	"image"

	"gioui.org/f32"

	"github.com/OpenTraceLab/panzoom/pkg/geom"
	"github.com/OpenTraceLab/panzoom/pkg/gravity"
	"github.com/OpenTraceLab/panzoom/pkg/settings"
	"github.com/OpenTraceLab/panzoom/pkg/state"
)

// MovementBounds is the range of legal positions for the content origin.
//
// The range is the rectangle rect expressed in frame. For an unrotated frame
// rect is in screen coordinates; otherwise rect is axis-aligned in a frame
// turned by frame.Rotation degrees about frame.Origin, and describes a
// rotated rectangle on screen.
type MovementBounds struct {
	rect  geom.Rect
	frame geom.Frame
}

// Setup computes the movement bounds for st under cfg.
func Setup(st state.State, cfg *settings.Settings) MovementBounds {
	var b MovementBounds

	area := geom.FromImage(MovementArea(cfg))
	var pos geom.Rect

	if cfg.Fit == settings.FitOutside {
		// Turn the area into the content's frame rather than the content
		// into the screen's, so both stay axis-aligned rectangles.
		b.frame = geom.Frame{Origin: area.Center(), Rotation: st.Rotation}

		m := st.Matrix().Rotate(b.frame.Origin, geom.Radians(-st.Rotation))
		pos = geom.FromImage(positionWithGravity(m, cfg))

		area = b.frame.RectToFrame(area)
	} else {
		pos = geom.FromImage(positionWithGravity(st.Matrix(), cfg))
	}

	// Bounds for the top-left corner of the scaled content.
	b.rect.Left, b.rect.Right = axisRange(area.Left, area.Width(), pos.Left, pos.Width())
	b.rect.Top, b.rect.Bottom = axisRange(area.Top, area.Height(), pos.Top, pos.Height())

	// The top-left corner of a rotated content's bounding box is not its
	// origin; shift the range so it applies to the origin. Rotation was
	// factored out above for the outside fit.
	if cfg.Fit != settings.FitOutside {
		m := st.Matrix()
		box := geom.MapRect(m, contentRect(cfg))
		origin := m.Transform(f32.Point{})
		b.rect = b.rect.Offset(origin.X-box.Left, origin.Y-box.Top)
	}

	return b
}

// axisRange returns the legal interval for the leading edge of content of
// size posSize along an axis where the area spans areaSize from areaStart.
func axisRange(areaStart, areaSize, posStart, posSize float32) (float32, float32) {
	if areaSize < posSize {
		// content is bigger than the area: it may move until either of its
		// edges meets the corresponding area edge
		return areaStart - (posSize - areaSize), areaStart
	}
	// content fits: keep it where gravity put it
	return posStart, posStart
}

// Restrict clamps (x, y) to the bounds.
func (b MovementBounds) Restrict(x, y float32) f32.Point {
	return b.RestrictOverscroll(x, y, 0, 0)
}

// RestrictOverscroll clamps (x, y) to the bounds widened by the given slack
// on each axis. Negative slack counts as zero. The result is a new value on
// every call.
func (b MovementBounds) RestrictOverscroll(x, y, overscrollX, overscrollY float32) f32.Point {
	if overscrollX < 0 {
		overscrollX = 0
	}
	if overscrollY < 0 {
		overscrollY = 0
	}

	p := b.frame.ToFrame(f32.Pt(x, y))
	p.X = geom.Clamp(p.X, b.rect.Left-overscrollX, b.rect.Right+overscrollX)
	p.Y = geom.Clamp(p.Y, b.rect.Top-overscrollY, b.rect.Bottom+overscrollY)
	return b.frame.FromFrame(p)
}

// Contains reports whether (x, y) lies within the hard bounds.
func (b MovementBounds) Contains(x, y float32) bool {
	return b.rect.Contains(b.frame.ToFrame(f32.Pt(x, y)))
}

// Union grows the bounds to include the screen point (x, y). Bounds never
// shrink.
func (b *MovementBounds) Union(x, y float32) {
	b.rect = b.rect.Union(b.frame.ToFrame(f32.Pt(x, y)))
}

// ExternalBounds returns the bounds in screen coordinates. For rotated
// bounds this is the axis-aligned box around the rotated rectangle, which
// can be larger than the legal region.
func (b MovementBounds) ExternalBounds() geom.Rect {
	return b.frame.RectFromFrame(b.rect)
}

// Rect returns the bounds rectangle in the bounds' own frame.
func (b MovementBounds) Rect() geom.Rect { return b.rect }

// Rotation returns the angle, in degrees, of the frame Rect is expressed in.
func (b MovementBounds) Rotation() float32 { return b.frame.Rotation }

// Pivot returns the point the frame is rotated about.
func (b MovementBounds) Pivot() f32.Point { return b.frame.Origin }

// Frame returns the coordinate frame of Rect.
func (b MovementBounds) Frame() geom.Frame { return b.frame }

// LockedX reports whether horizontal movement is impossible.
func (b MovementBounds) LockedX() bool { return b.rect.Width() == 0 }

// LockedY reports whether vertical movement is impossible.
func (b MovementBounds) LockedY() bool { return b.rect.Height() == 0 }

func (b MovementBounds) String() string {
	if b.frame.Rotated() {
		return fmt.Sprintf("%v rotated %g° about (%g,%g)", b.rect, b.frame.Rotation, b.frame.Origin.X, b.frame.Origin.Y)
	}
	return b.rect.String()
}

// SetupInitialMovement moves st so the content sits where gravity places it
// at the current zoom and rotation.
func SetupInitialMovement(st *state.State, cfg *settings.Settings) {
	pos := positionWithGravity(st.Matrix(), cfg)
	st.TranslateTo(float32(pos.Min.X), float32(pos.Min.Y))
}

// MovementArea returns the movement area placed inside the viewport by gravity.
func MovementArea(cfg *settings.Settings) image.Rectangle {
	area := cfg.MovementAreaSize()
	return gravity.Apply(cfg.Gravity, area.Width, area.Height, viewportRect(cfg))
}

// positionWithGravity returns where gravity would place the content, sized by
// m, inside the viewport. The translation of m is ignored.
func positionWithGravity(m f32.Affine2D, cfg *settings.Settings) image.Rectangle {
	box := geom.MapRect(m, contentRect(cfg))
	w, h := geom.Round(box.Width()), geom.Round(box.Height())
	return gravity.Apply(cfg.Gravity, w, h, viewportRect(cfg))
}

func contentRect(cfg *settings.Settings) geom.Rect {
	c := cfg.ContentSize()
	return geom.R(0, 0, float32(c.Width), float32(c.Height))
}

func viewportRect(cfg *settings.Settings) image.Rectangle {
	return image.Rectangle{Max: cfg.ViewportSize().Point()}
}
