package main

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/seeker/game"
	"github.com/pthm-cable/seeker/renderer"
	"github.com/pthm-cable/seeker/systems"
	"github.com/pthm-cable/seeker/ui"
)

const (
	arenaTop  = 48
	maxSpeed  = 64
	panelSize = 230
)

// viewer drives the game from the window loop and applies user commands.
type viewer struct {
	game     *game.Game
	arena    *renderer.Arena
	hud      *ui.HUD
	network  *ui.NetworkPanel
	perf     *ui.PerfPanel
	controls *ui.Controls

	modelPath string // -model flag, may be empty
	lastSaved string
	speed     int
}

func newViewer(g *game.Game, modelPath string, speed int) *viewer {
	cfg := g.Config()
	arenaBottom := float32(arenaTop + cfg.Arena.Height)
	return &viewer{
		game:      g,
		arena:     renderer.NewArena(0, arenaTop),
		hud:       ui.NewHUD(),
		network:   ui.NewNetworkPanel(int32(cfg.Arena.Width)-panelSize-10, arenaTop+10, panelSize, cfg.Sensors.Count),
		perf:      ui.NewPerfPanel(10, arenaTop+10, systems.NewSystemRegistry()),
		controls:  ui.NewControls(10, arenaBottom+6),
		modelPath: modelPath,
		speed:     speed,
	}
}

// Update handles input and advances the simulation.
func (v *viewer) Update() {
	v.apply(ui.KeyCommand())

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		cfg := v.game.Config()
		if x, y, ok := v.arena.ToArena(rl.GetMousePosition(), cfg.Arena.Width, cfg.Arena.Height); ok {
			v.game.SetTarget(x, y)
		}
	}

	v.game.Run(v.speed)
}

// Draw renders the arena, the HUD and the controls.
func (v *viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 2, G: 6, B: 23, A: 255})

	f := v.game.Frame()
	v.arena.Render(f)
	v.hud.Draw(f, rl.GetFPS(), v.speed)
	v.network.Draw(f)
	v.perf.Draw(v.game.PerfStats())
	v.apply(v.controls.Draw(f.Training))
	v.hud.DrawControls(int32(v.game.Config().Screen.Height), ui.Legend)

	rl.EndDrawing()
	v.game.RecordFrame()
}

func (v *viewer) apply(cmd ui.Command) {
	switch cmd {
	case ui.CmdReset:
		v.game.Reset()
		v.controls.SetStatus("episode reset")
	case ui.CmdToggleTraining:
		v.game.SetTraining(!v.game.Training())
		if v.game.Training() {
			v.controls.SetStatus("training resumed")
		} else {
			v.controls.SetStatus("training paused")
		}
	case ui.CmdSave:
		path, err := v.game.SaveModel(v.modelPath)
		if err != nil {
			v.controls.SetStatus("save failed")
			return
		}
		v.lastSaved = path
		v.controls.SetStatus("saved " + path)
	case ui.CmdLoad:
		path := v.modelPath
		if path == "" {
			path = v.lastSaved
		}
		if path == "" {
			v.controls.SetStatus("no model to load, set -model")
			return
		}
		if err := v.game.LoadModel(path); err != nil {
			v.controls.SetStatus("load failed")
			return
		}
		v.controls.SetStatus(fmt.Sprintf("loaded %s (epsilon %.2f)", path, v.game.Brain().Epsilon()))
	case ui.CmdSpeedUp:
		if v.speed < maxSpeed {
			v.speed *= 2
		}
	case ui.CmdSlowDown:
		if v.speed > 1 {
			v.speed /= 2
		}
	case ui.CmdTogglePanel:
		v.network.Visible = !v.network.Visible
	case ui.CmdTogglePerf:
		v.perf.Visible = !v.perf.Visible
	}
}
