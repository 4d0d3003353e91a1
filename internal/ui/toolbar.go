package ui

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/panzoom/pkg/gravity"
	"github.com/OpenTraceLab/panzoom/pkg/scene"
	"github.com/OpenTraceLab/panzoom/pkg/settings"
)

type toolbarIcons struct {
	reset  *widget.Icon
	rotate *widget.Icon
	fit    *widget.Icon
	open   *widget.Icon
	save   *widget.Icon
}

func loadIcons() toolbarIcons {
	makeIcon := func(data []byte, name string) *widget.Icon {
		icon, err := widget.NewIcon(data)
		if err != nil {
			log.Printf("ui: failed to load %s icon: %v", name, err)
			return nil
		}
		return icon
	}
	return toolbarIcons{
		reset:  makeIcon(icons.ActionHome, "reset"),
		rotate: makeIcon(icons.ImageRotateRight, "rotate"),
		fit:    makeIcon(icons.ActionAspectRatio, "fit"),
		open:   makeIcon(icons.FileFolderOpen, "open"),
		save:   makeIcon(icons.ContentSave, "save"),
	}
}

// gravityDirections are the gravities offered in the toolbar menu, in
// reading order.
var gravityDirections = []layout.Direction{
	layout.NW, layout.N, layout.NE,
	layout.W, layout.Center, layout.E,
	layout.SW, layout.S, layout.SE,
}

func (a *App) buildGravityMenu() *menu.DropdownMenu {
	opts := make([]menu.MenuOption, 0, len(gravityDirections)+1)
	choices := make([]gravity.Gravity, 0, len(gravityDirections)+1)
	for _, d := range gravityDirections {
		choices = append(choices, gravity.FromDirection(d))
	}
	choices = append(choices, gravity.Fill)

	for _, g := range choices {
		g := g
		label := g.String()
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				a.setGravity(g)
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, label)
				if g == a.settings.Gravity {
					lbl.Color = th.Palette.ContrastBg
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(220)
	return drop
}

func (a *App) setGravity(g gravity.Gravity) {
	a.settings.Gravity = g
	a.ctrl.ResetState(&a.st)
	a.Logf("[VIEWER] gravity %v", g)
}

func (a *App) layoutToolbar(gtx layout.Context) layout.Dimensions {
	if a.resetBtn.Clicked(gtx) {
		a.reset()
	}
	if a.rotateBtn.Clicked(gtx) {
		a.rotate()
	}
	if a.fitBtn.Clicked(gtx) {
		a.toggleFit()
	}
	if a.openBtn.Clicked(gtx) {
		a.openFilePicker()
	}
	if a.saveBtn.Clicked(gtx) {
		a.saveSettings()
	}
	if a.gravityBtn.Clicked(gtx) {
		a.gravityMenu.ToggleVisibility(gtx)
	}

	th := a.gvTheme.Theme
	iconButton := func(btn *widget.Clickable, icon *widget.Icon, desc string) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if icon == nil {
				return material.Button(th, btn, desc).Layout(gtx)
			}
			b := material.IconButton(th, btn, icon, desc)
			b.Size = unit.Dp(20)
			b.Inset = layout.UniformInset(unit.Dp(8))
			return layout.Inset{Right: unit.Dp(4)}.Layout(gtx, b.Layout)
		})
	}

	return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			iconButton(&a.resetBtn, a.icons.reset, "Reset"),
			iconButton(&a.rotateBtn, a.icons.rotate, "Rotate"),
			iconButton(&a.fitBtn, a.icons.fit, "Fit"),
			iconButton(&a.openBtn, a.icons.open, "Open"),
			iconButton(&a.saveBtn, a.icons.save, "Save"),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				dims := material.Button(th, &a.gravityBtn, "Gravity: "+a.settings.Gravity.String()).Layout(gtx)
				a.gravityMenu.Layout(gtx, a.gvTheme)
				return dims
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Flexed(1, material.Body2(th, a.status()).Layout),
		)
	})
}

func (a *App) status() string {
	b := a.ctrl.MovementBounds(a.st)
	return fmt.Sprintf("%v  fit=%v  bounds=%v", a.st, a.settings.Fit, b)
}

func (a *App) layoutLog(gtx layout.Context) layout.Dimensions {
	lines := a.logLines()
	children := make([]layout.FlexChild, 0, len(lines))
	for _, line := range lines {
		txt := line
		children = append(children, layout.Rigid(material.Caption(a.gvTheme.Theme, txt).Layout))
	}
	return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	})
}

func (a *App) openFilePicker() {
	go func() {
		file, err := a.explorer.ChooseFile("sexp", "scene", "yaml", "yml")
		if err != nil {
			if err != explorer.ErrUserDecline {
				a.Logf("[ERROR] File picker failed: %v", err)
			}
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			a.Logf("[ERROR] Failed to read file: %v", err)
			return
		}
		a.post(func() { a.loadData(data) })
	}()
}

// loadData applies a scene file or a YAML settings file. The viewport keeps
// tracking the window.
func (a *App) loadData(data []byte) {
	viewport := a.settings.ViewportSize()

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '(' || trimmed[0] == ';') {
		scenes, err := scene.Parse(bytes.NewReader(data))
		if err != nil {
			a.Logf("[ERROR] Failed to load scene: %v", err)
			return
		}
		if len(scenes) == 0 {
			a.Logf("[ERROR] File contains no scenes")
			return
		}
		sc := scenes[0]
		*a.settings = *sc.Settings
		a.settings.SetViewport(viewport.Width, viewport.Height)
		a.st = sc.State
		a.ctrl.RestrictStateBounds(&a.st, false, false)
		a.Logf("[VIEWER] loaded scene %q (%d of %d)", sc.Name, 1, len(scenes))
		return
	}

	cfg, err := settings.Parse(data)
	if err != nil {
		a.Logf("[ERROR] Failed to load settings: %v", err)
		return
	}
	*a.settings = *cfg
	a.settings.SetViewport(viewport.Width, viewport.Height)
	a.ctrl.ResetState(&a.st)
	a.Logf("[VIEWER] loaded settings: content %v gravity %v fit %v", cfg.ContentSize(), cfg.Gravity, cfg.Fit)
}

func (a *App) saveSettings() {
	if a.opts.ConfigPath == "" {
		a.Logf("[VIEWER] no settings path configured")
		return
	}
	if err := settings.Save(a.opts.ConfigPath, a.settings); err != nil {
		a.Logf("[ERROR] Failed to save settings: %v", err)
		return
	}
	a.Logf("[VIEWER] settings saved to %s", a.opts.ConfigPath)
}
