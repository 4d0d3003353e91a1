// Package settings describes the static configuration of a pan/zoom view:
// viewport, optional movement area, content size, gravity, fit policy and
// the limits used when restricting the transform.
package settings

import (
	"fmt"
	"image"
	"strings"

	"github.com/OpenTraceLab/panzoom/pkg/gravity"
)

// Fit selects how content is fitted against the movement area.
type Fit int

const (
	// FitInside keeps the whole (possibly rotated) content inside the area
	// when it is small enough, and lets its bounding box scroll otherwise.
	FitInside Fit = iota
	// FitOutside keeps the area covered by the content, measuring both in
	// the content's own rotated frame.
	FitOutside
)

func (f Fit) String() string {
	switch f {
	case FitInside:
		return "inside"
	case FitOutside:
		return "outside"
	default:
		return fmt.Sprintf("Fit(%d)", int(f))
	}
}

// ParseFit converts "inside" or "outside".
func ParseFit(s string) (Fit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inside", "":
		return FitInside, nil
	case "outside":
		return FitOutside, nil
	}
	return FitInside, fmt.Errorf("%w: %q", ErrInvalidFit, s)
}

// MarshalText implements encoding.TextMarshaler.
func (f Fit) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Fit) UnmarshalText(text []byte) error {
	v, err := ParseFit(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Size is a width and height in pixels.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Point returns the size as an image.Point.
func (s Size) Point() image.Point { return image.Pt(s.Width, s.Height) }

// IsZero reports whether either dimension is zero.
func (s Size) IsZero() bool { return s.Width == 0 || s.Height == 0 }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// Overscroll is the elastic slack, in pixels, allowed past the hard bounds
// while a gesture is in progress.
type Overscroll struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Settings is the configuration read by the movement bounds engine and the
// state controller.
type Settings struct {
	Viewport     Size            `yaml:"viewport"`
	MovementArea Size            `yaml:"movement_area,omitempty"` // zero: same as viewport
	Content      Size            `yaml:"content"`
	Gravity      gravity.Gravity `yaml:"gravity"`
	Fit          Fit             `yaml:"fit"`

	// Zoom limits; zero selects the fit zoom (min) or twice that (max).
	MinZoom  float32 `yaml:"min_zoom,omitempty"`
	MaxZoom  float32 `yaml:"max_zoom,omitempty"`
	Overzoom float32 `yaml:"overzoom"` // factor allowed past zoom limits during gestures

	Overscroll Overscroll `yaml:"overscroll"`

	PanEnabled      bool `yaml:"pan"`
	ZoomEnabled     bool `yaml:"zoom"`
	RotationEnabled bool `yaml:"rotation"`
}

// Default returns settings with centered gravity and the inside fit.
func Default() *Settings {
	return &Settings{
		Gravity:         gravity.Center,
		Fit:             FitInside,
		Overzoom:        2,
		PanEnabled:      true,
		ZoomEnabled:     true,
		RotationEnabled: false,
	}
}

// ViewportSize returns the viewport dimensions.
func (s *Settings) ViewportSize() Size { return s.Viewport }

// MovementAreaSize returns the movement area, defaulting to the viewport.
func (s *Settings) MovementAreaSize() Size {
	if s.MovementArea.Width == 0 && s.MovementArea.Height == 0 {
		return s.Viewport
	}
	return s.MovementArea
}

// HasMovementArea reports whether a movement area distinct from the viewport is set.
func (s *Settings) HasMovementArea() bool {
	return s.MovementArea.Width != 0 || s.MovementArea.Height != 0
}

// ContentSize returns the content dimensions.
func (s *Settings) ContentSize() Size { return s.Content }

// HasContent reports whether content has a non-zero size.
func (s *Settings) HasContent() bool { return !s.Content.IsZero() }

// HasViewport reports whether the viewport has a non-zero size.
func (s *Settings) HasViewport() bool { return !s.Viewport.IsZero() }

// SetViewport sets the viewport size
func (s *Settings) SetViewport(w, h int) *Settings {
	s.Viewport = Size{w, h}
	return s
}

// SetMovementArea sets the movement area size
func (s *Settings) SetMovementArea(w, h int) *Settings {
	s.MovementArea = Size{w, h}
	return s
}

// SetContent sets the content size
func (s *Settings) SetContent(w, h int) *Settings {
	s.Content = Size{w, h}
	return s
}

// Validate checks sizes and limits, normalizing the overzoom factor.
func (s *Settings) Validate() error {
	for _, f := range []struct {
		name string
		size Size
	}{
		{"viewport", s.Viewport},
		{"movement_area", s.MovementArea},
		{"content", s.Content},
	} {
		if f.size.Width < 0 || f.size.Height < 0 {
			return &ConfigError{Field: f.name, Message: fmt.Sprintf("negative size %s", f.size), Err: ErrInvalidSize}
		}
	}
	if s.HasMovementArea() && s.MovementArea.IsZero() {
		return &ConfigError{Field: "movement_area", Message: fmt.Sprintf("partial size %s", s.MovementArea), Err: ErrInvalidSize}
	}

	if s.Fit != FitInside && s.Fit != FitOutside {
		return &ConfigError{Field: "fit", Message: s.Fit.String(), Err: ErrInvalidFit}
	}

	if s.MinZoom < 0 || s.MaxZoom < 0 {
		return &ConfigError{Field: "zoom", Message: "zoom limits must not be negative", Err: ErrInvalidZoom}
	}
	if s.MinZoom > 0 && s.MaxZoom > 0 && s.MaxZoom < s.MinZoom {
		return &ConfigError{Field: "max_zoom", Message: fmt.Sprintf("%g is below min_zoom %g", s.MaxZoom, s.MinZoom), Err: ErrInvalidZoom}
	}

	if s.Overzoom < 1 {
		s.Overzoom = 1
	}
	if s.Overscroll.X < 0 {
		s.Overscroll.X = 0
	}
	if s.Overscroll.Y < 0 {
		s.Overscroll.Y = 0
	}
	return nil
}
