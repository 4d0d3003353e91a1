// Package controller keeps a state.State within the zoom limits and movement
// bounds described by a settings.Settings.
//
// Hosts call RestrictedPan, RestrictedZoom and RestrictedRotate while a
// gesture is running, which allows overscroll and overzoom, and
// RestrictStateBounds with both disabled once it ends.
package controller

import (
	"io"
	"log"
	"math"

	"gioui.org/f32"

	"github.com/OpenTraceLab/panzoom/pkg/bounds"
	"github.com/OpenTraceLab/panzoom/pkg/geom"
	"github.com/OpenTraceLab/panzoom/pkg/settings"
	"github.com/OpenTraceLab/panzoom/pkg/state"
)

// Controller applies settings limits to states. It holds no per-state data,
// so one Controller can serve several states sharing the same settings.
type Controller struct {
	settings *settings.Settings
	log      *log.Logger
}

// New creates a controller. A nil logger discards output.
func New(s *settings.Settings, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Controller{settings: s, log: logger}
}

// Settings returns the settings the controller reads on every call.
func (c *Controller) Settings() *settings.Settings { return c.settings }

// FitZoom returns the zoom at which the content, rotated as in st, fits the
// movement area according to the fit method. Without content or area it is 1.
func (c *Controller) FitZoom(st state.State) float32 {
	cfg := c.settings
	area := cfg.MovementAreaSize()
	content := cfg.ContentSize()
	if area.IsZero() || content.IsZero() {
		return 1
	}

	areaRect := geom.R(0, 0, float32(area.Width), float32(area.Height))
	contentRect := geom.R(0, 0, float32(content.Width), float32(content.Height))

	var zoom float32
	if cfg.Fit == settings.FitOutside {
		box := geom.MapRect(geom.Rotation(areaRect.Center(), -st.Rotation), areaRect)
		zoom = max(box.Width()/contentRect.Width(), box.Height()/contentRect.Height())
	} else {
		box := geom.MapRect(geom.Rotation(f32.Point{}, st.Rotation), contentRect)
		zoom = min(areaRect.Width()/box.Width(), areaRect.Height()/box.Height())
	}
	if zoom <= 0 || math.IsInf(float64(zoom), 0) || math.IsNaN(float64(zoom)) {
		return 1
	}
	return zoom
}

// MinZoom returns the configured minimum zoom, or the fit zoom if unset.
func (c *Controller) MinZoom(st state.State) float32 {
	if c.settings.MinZoom > 0 {
		return c.settings.MinZoom
	}
	return c.FitZoom(st)
}

// MaxZoom returns the configured maximum zoom, or twice the fit zoom (at
// least 2) if unset. It is never below MinZoom.
func (c *Controller) MaxZoom(st state.State) float32 {
	zoom := c.settings.MaxZoom
	if zoom <= 0 {
		zoom = max(c.FitZoom(st)*2, 2)
	}
	return max(zoom, c.MinZoom(st))
}

// ResetState puts st at the fit zoom with no rotation, placed by gravity.
func (c *Controller) ResetState(st *state.State) {
	*st = state.New()
	st.Zoom = c.FitZoom(*st)
	bounds.SetupInitialMovement(st, c.settings)
	c.log.Printf("[CONTROLLER] reset to %v", *st)
}

// MovementBounds returns the bounds for st.
func (c *Controller) MovementBounds(st state.State) bounds.MovementBounds {
	return bounds.Setup(st, c.settings)
}

// RestrictStateBounds clamps the zoom of st, about the center of the movement
// area, and then its position. Overzoom widens the zoom range by the
// configured factor and overscroll adds the configured slack to the position
// bounds. It reports whether st changed.
func (c *Controller) RestrictStateBounds(st *state.State, allowOverscroll, allowOverzoom bool) bool {
	prev := *st

	c.restrictZoom(st, c.areaCenter(), allowOverzoom)

	b := bounds.Setup(*st, c.settings)
	var sx, sy float32
	if allowOverscroll {
		sx, sy = c.settings.Overscroll.X, c.settings.Overscroll.Y
	}
	p := b.RestrictOverscroll(st.X, st.Y, sx, sy)
	st.TranslateTo(p.X, p.Y)

	if prev.Equals(*st) {
		// keep the caller's exact values when only float noise moved them
		*st = prev
		return false
	}
	c.log.Printf("[CONTROLLER] restricted %v -> %v", prev, *st)
	return true
}

// RestrictedPan moves st by (dx, dy) within the overscroll bounds. It does
// nothing if panning is disabled and reports whether st changed.
func (c *Controller) RestrictedPan(st *state.State, dx, dy float32) bool {
	if !c.settings.PanEnabled {
		return false
	}
	prev := *st
	b := bounds.Setup(*st, c.settings)
	p := b.RestrictOverscroll(st.X+dx, st.Y+dy, c.settings.Overscroll.X, c.settings.Overscroll.Y)
	st.TranslateTo(p.X, p.Y)
	return !prev.Equals(*st)
}

// RestrictedZoom multiplies the zoom of st by factor about pivot, allowing
// overzoom and overscroll. It does nothing if zooming is disabled.
func (c *Controller) RestrictedZoom(st *state.State, factor float32, pivot f32.Point) bool {
	if !c.settings.ZoomEnabled || factor <= 0 {
		return false
	}
	prev := *st
	st.ZoomBy(factor, pivot)
	c.restrictZoom(st, pivot, true)
	c.RestrictStateBounds(st, true, true)
	return !prev.Equals(*st)
}

// RestrictedRotate rotates st by degrees about the center of the movement
// area, allowing overzoom and overscroll. It does nothing if rotation is
// disabled.
func (c *Controller) RestrictedRotate(st *state.State, degrees float32) bool {
	if !c.settings.RotationEnabled || degrees == 0 {
		return false
	}
	prev := *st
	st.RotateBy(degrees, c.areaCenter())
	c.RestrictStateBounds(st, true, true)
	return !prev.Equals(*st)
}

func (c *Controller) restrictZoom(st *state.State, pivot f32.Point, allowOverzoom bool) {
	minZoom, maxZoom := c.MinZoom(*st), c.MaxZoom(*st)
	if allowOverzoom {
		over := c.settings.Overzoom
		if over < 1 {
			over = 1
		}
		minZoom /= over
		maxZoom *= over
	}
	if zoom := geom.Clamp(st.Zoom, minZoom, maxZoom); zoom != st.Zoom {
		st.ZoomTo(zoom, pivot)
	}
}

func (c *Controller) areaCenter() f32.Point {
	return geom.FromImage(bounds.MovementArea(c.settings)).Center()
}
