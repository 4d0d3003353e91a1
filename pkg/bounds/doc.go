// Package bounds computes and enforces the legal range of translation for
// content shown through a pan/zoom/rotate transform.
//
// # Overview
//
// A MovementBounds describes where the content origin (the translation of
// state.State) may be placed so that the content stays positioned against
// the movement area: the viewport, or a smaller area aligned inside it by
// the configured gravity.
//
// On each axis independently:
//   - content larger than the area may scroll between flush-with-start and
//     flush-with-end;
//   - content not larger than the area is locked at its gravity position.
//
// # Fit methods
//
// With settings.FitInside, bounds are computed for the axis-aligned bounding
// box of the (possibly rotated) content and then shifted so they apply to
// the content origin rather than to the box corner.
//
// With settings.FitOutside and a rotated state, the content itself is not an
// axis-aligned rectangle on screen. Instead of rotating the content, Setup
// turns the movement area into the content's own frame, computes ordinary
// rectangle bounds there, and remembers the frame. Restrict and Union move
// points into that frame before working on the rectangle, and
// ExternalBounds maps the rectangle back.
//
// # Usage
//
//	b := bounds.Setup(st, cfg)
//	p := b.RestrictOverscroll(st.X+dx, st.Y+dy, cfg.Overscroll.X, cfg.Overscroll.Y)
//	st.TranslateTo(p.X, p.Y)
//	// on gesture end
//	p = b.Restrict(st.X, st.Y)
//
// # Concurrency
//
// MovementBounds is a small value type with no shared scratch state. A value
// may be read from several goroutines; Union mutates and needs the usual
// exclusive access.
package bounds
