package scene

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"gioui.org/f32"

	"github.com/OpenTraceLab/panzoom/pkg/geom"
	"github.com/OpenTraceLab/panzoom/pkg/gravity"
	"github.com/OpenTraceLab/panzoom/pkg/settings"
	"github.com/OpenTraceLab/panzoom/pkg/state"
)

// StepKind tells how a step's point is used.
type StepKind int

const (
	// Probe restricts the point against the bounds.
	Probe StepKind = iota
	// Union grows the bounds to contain the point.
	Union
)

func (k StepKind) String() string {
	if k == Union {
		return "union"
	}
	return "probe"
}

// Step is a probe or union point, applied in file order.
type Step struct {
	Kind  StepKind
	Point f32.Point
	Pos   Pos
}

// Scene is one (scene ...) form.
type Scene struct {
	Name     string
	Settings *settings.Settings
	State    state.State
	// Place moves the state to its gravity position before evaluation.
	Place bool
	Steps []Step
	Pos   Pos
}

// Error reports an invalid form inside a scene.
type Error struct {
	Scene string
	Form  string
	Pos   Pos
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	name := e.Scene
	if name == "" {
		name = "<unnamed>"
	}
	msg := e.Msg
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg += ": " + e.Err.Error()
		}
	}
	return fmt.Sprintf("scene %q at %v: %s: %s", name, e.Pos, e.Form, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// ParseFile reads scenes from a file.
func ParseFile(path string) ([]*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	scenes, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenes, nil
}

// Parse reads every (scene ...) form from r.
func Parse(r io.Reader) ([]*Scene, error) {
	forms, err := Read(r)
	if err != nil {
		return nil, err
	}

	scenes := make([]*Scene, 0, len(forms))
	for _, form := range forms {
		list, ok := form.(*List)
		if !ok || list.Head() != "scene" {
			return nil, &Error{Form: form.String(), Pos: form.Position(), Msg: "expected (scene ...)"}
		}
		sc, err := decodeScene(list)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, sc)
	}
	return scenes, nil
}

func decodeScene(list *List) (*Scene, error) {
	sc := &Scene{
		Settings: settings.Default(),
		State:    state.New(),
		Pos:      list.Pos,
	}

	args := list.Args()
	if len(args) > 0 {
		if a, ok := args[0].(Atom); ok {
			sc.Name = a.Value
			args = args[1:]
		}
	}

	for _, arg := range args {
		form, ok := arg.(*List)
		if !ok || form.Head() == "" {
			return nil, sc.errorf(arg, "expected a (name ...) form")
		}
		if err := sc.decodeForm(form); err != nil {
			return nil, err
		}
	}

	if err := sc.Settings.Validate(); err != nil {
		return nil, &Error{Scene: sc.Name, Form: "scene", Pos: sc.Pos, Err: err}
	}
	return sc, nil
}

func (sc *Scene) decodeForm(form *List) error {
	cfg := sc.Settings
	switch form.Head() {
	case "viewport", "movement_area", "content":
		w, h, err := sc.intPair(form)
		if err != nil {
			return err
		}
		switch form.Head() {
		case "viewport":
			cfg.SetViewport(w, h)
		case "movement_area":
			cfg.SetMovementArea(w, h)
		default:
			cfg.SetContent(w, h)
		}

	case "gravity":
		s, err := sc.atom(form)
		if err != nil {
			return err
		}
		g, err := gravity.Parse(s)
		if err != nil {
			return sc.wrap(form, err)
		}
		cfg.Gravity = g

	case "fit":
		s, err := sc.atom(form)
		if err != nil {
			return err
		}
		fit, err := settings.ParseFit(s)
		if err != nil {
			return sc.wrap(form, err)
		}
		cfg.Fit = fit

	case "overscroll":
		p, err := sc.point(form)
		if err != nil {
			return err
		}
		cfg.Overscroll = settings.Overscroll{X: p.X, Y: p.Y}

	case "min_zoom", "max_zoom", "overzoom":
		v, err := sc.number(form)
		if err != nil {
			return err
		}
		switch form.Head() {
		case "min_zoom":
			cfg.MinZoom = v
		case "max_zoom":
			cfg.MaxZoom = v
		default:
			cfg.Overzoom = v
		}

	case "state":
		return sc.decodeState(form)

	case "place":
		if len(form.Args()) != 0 {
			return sc.errorf(form, "takes no arguments")
		}
		sc.Place = true

	case "probe", "union":
		p, err := sc.point(form)
		if err != nil {
			return err
		}
		kind := Probe
		if form.Head() == "union" {
			kind = Union
		}
		sc.Steps = append(sc.Steps, Step{Kind: kind, Point: p, Pos: form.Pos})

	default:
		return sc.errorf(form, "unknown form")
	}
	return nil
}

func (sc *Scene) decodeState(form *List) error {
	for _, arg := range form.Args() {
		field, ok := arg.(*List)
		if !ok {
			return sc.errorf(form, "expected (field value)")
		}
		v, err := sc.number(field)
		if err != nil {
			return err
		}
		switch field.Head() {
		case "x":
			sc.State.X = v
		case "y":
			sc.State.Y = v
		case "zoom":
			sc.State.Zoom = v
		case "rotation":
			sc.State.Rotation = geom.NormalizeDegrees(v)
		default:
			return sc.errorf(field, "unknown state field")
		}
	}
	return nil
}

func (sc *Scene) atom(form *List) (string, error) {
	args := form.Args()
	if len(args) != 1 {
		return "", sc.errorf(form, "expected 1 value, got %d", len(args))
	}
	a, ok := args[0].(Atom)
	if !ok {
		return "", sc.errorf(form, "expected a value")
	}
	return a.Value, nil
}

func (sc *Scene) number(form *List) (float32, error) {
	s, err := sc.atom(form)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, sc.errorf(form, "invalid number %q", s)
	}
	return float32(v), nil
}

func (sc *Scene) point(form *List) (f32.Point, error) {
	args := form.Args()
	if len(args) != 2 {
		return f32.Point{}, sc.errorf(form, "expected 2 numbers, got %d", len(args))
	}
	var xy [2]float32
	for i, arg := range args {
		a, ok := arg.(Atom)
		if !ok || a.Quoted {
			return f32.Point{}, sc.errorf(form, "expected a number")
		}
		v, err := strconv.ParseFloat(a.Value, 32)
		if err != nil {
			return f32.Point{}, sc.errorf(form, "invalid number %q", a.Value)
		}
		xy[i] = float32(v)
	}
	return f32.Pt(xy[0], xy[1]), nil
}

func (sc *Scene) intPair(form *List) (int, int, error) {
	args := form.Args()
	if len(args) != 2 {
		return 0, 0, sc.errorf(form, "expected width and height, got %d values", len(args))
	}
	var wh [2]int
	for i, arg := range args {
		a, ok := arg.(Atom)
		if !ok || a.Quoted {
			return 0, 0, sc.errorf(form, "expected an integer")
		}
		v, err := strconv.Atoi(a.Value)
		if err != nil {
			return 0, 0, sc.errorf(form, "invalid integer %q", a.Value)
		}
		wh[i] = v
	}
	return wh[0], wh[1], nil
}

func (sc *Scene) errorf(at Sexp, format string, args ...interface{}) error {
	return &Error{
		Scene: sc.Name,
		Form:  formName(at),
		Pos:   at.Position(),
		Msg:   fmt.Sprintf(format, args...),
	}
}

func (sc *Scene) wrap(form *List, err error) error {
	return &Error{Scene: sc.Name, Form: form.Head(), Pos: form.Pos, Err: err}
}

func formName(s Sexp) string {
	if l, ok := s.(*List); ok && l.Head() != "" {
		return l.Head()
	}
	return s.String()
}
