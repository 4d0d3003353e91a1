package scene

import (
	"gioui.org/f32"

	"github.com/OpenTraceLab/panzoom/pkg/bounds"
	"github.com/OpenTraceLab/panzoom/pkg/geom"
	"github.com/OpenTraceLab/panzoom/pkg/state"
)

// ProbeResult is the outcome of one probe step.
type ProbeResult struct {
	Point        f32.Point
	Restricted   f32.Point // hard bounds
	Overscrolled f32.Point // bounds widened by the scene's overscroll
	Inside       bool
}

// Result is the outcome of evaluating a scene.
type Result struct {
	Scene    string
	State    state.State // after placement
	Area     geom.Rect   // movement area in the viewport
	Bounds   bounds.MovementBounds
	External geom.Rect
	Probes   []ProbeResult
}

// Evaluate computes the movement bounds for the scene's state, then applies
// its steps in order: unions grow the bounds, probes are restricted against
// the bounds as grown so far. The scene itself is not modified.
func (sc *Scene) Evaluate() Result {
	cfg := sc.Settings
	st := sc.State
	if sc.Place {
		bounds.SetupInitialMovement(&st, cfg)
	}

	b := bounds.Setup(st, cfg)
	res := Result{
		Scene: sc.Name,
		State: st,
		Area:  geom.FromImage(bounds.MovementArea(cfg)),
	}

	for _, step := range sc.Steps {
		p := step.Point
		switch step.Kind {
		case Union:
			b.Union(p.X, p.Y)
		case Probe:
			res.Probes = append(res.Probes, ProbeResult{
				Point:        p,
				Restricted:   b.Restrict(p.X, p.Y),
				Overscrolled: b.RestrictOverscroll(p.X, p.Y, cfg.Overscroll.X, cfg.Overscroll.Y),
				Inside:       b.Contains(p.X, p.Y),
			})
		}
	}

	res.Bounds = b
	res.External = b.ExternalBounds()
	return res
}
