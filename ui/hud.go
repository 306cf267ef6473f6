package ui

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/seeker/game"
	"github.com/pthm-cable/seeker/neural"
	"github.com/pthm-cable/seeker/systems"
	"github.com/pthm-cable/seeker/telemetry"
)

// HUD renders the status line above the arena.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// StatusLine formats the training status shown above the arena.
func StatusLine(f game.Frame) string {
	mode := "training"
	if !f.Training {
		mode = "paused"
	}
	return fmt.Sprintf("Episode %d | Steps %d | Reward %.2f | Epsilon %.3f | Memory %d | %s",
		f.Episode, f.EpisodeTicks, f.TotalReward, f.Epsilon, f.Memory, mode)
}

// Draw renders the HUD at the top of the screen.
func (h *HUD) Draw(f game.Frame, fps int32, speed int) {
	rl.DrawText(StatusLine(f), 10, 8, 16, rl.White)

	last := f.LastOutcome
	if last == "" || last == "none" {
		last = "-"
	}
	rl.DrawText(fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d | Last: %s", f.Tick, speed, fps, last),
		10, 28, 14, h.renderer.Theme.StatusColor)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, legend string) {
	rl.DrawText(legend, 10, screenHeight-20, 14, rl.Gray)
}

// NetworkPanel shows the current state vector and the Q value per action.
type NetworkPanel struct {
	renderer *Renderer
	inputs   []neural.IODescriptor
	outputs  []neural.IODescriptor
	x, y     int32
	width    int32
	Visible  bool
}

// NewNetworkPanel creates a panel for a network with sensorCount ray inputs.
func NewNetworkPanel(x, y, width int32, sensorCount int) *NetworkPanel {
	return &NetworkPanel{
		renderer: NewRenderer(),
		inputs:   neural.InputDescriptors(sensorCount),
		outputs:  neural.OutputDescriptors(),
		x:        x,
		y:        y,
		width:    width,
		Visible:  true,
	}
}

// Draw renders the panel.
func (p *NetworkPanel) Draw(f game.Frame) {
	if !p.Visible {
		return
	}
	r := p.renderer
	t := r.Theme
	rows := int32(len(p.inputs) + len(p.outputs) + 2)
	height := rows*(t.LineHeight+2) + t.Padding*2
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + t.Padding
	y := p.y + t.Padding
	inner := p.width - 2*t.Padding

	y = r.DrawSectionHeader(x, y, "Inputs")
	for i, d := range p.inputs {
		if i < len(f.State) {
			y = r.DrawIO(x, y, d, f.State[i], inner)
		}
	}

	y = r.DrawSectionHeader(x, y, "Q values")
	if len(f.QValues) == 0 {
		return
	}
	best := neural.Argmax(f.QValues)
	limit := 0.0
	for _, q := range f.QValues {
		limit = math.Max(limit, math.Abs(q))
	}
	for i, d := range p.outputs {
		if i >= len(f.QValues) {
			break
		}
		fill := t.BarFillPositive
		if f.QValues[i] < 0 {
			fill = t.BarFillNegative
		}
		if i == best {
			fill = t.BarFillBest
		}
		y = r.DrawCenteredBar(x, y, d.Label, float32(f.QValues[i]), float32(limit), inner, fill)
	}
}

// PerfPanel renders the per-phase tick timing.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
	Visible  bool
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32, registry *systems.SystemRegistry) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: registry,
		x:        x,
		y:        y,
	}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	if !p.Visible {
		return
	}
	t := p.renderer.Theme
	ids := p.registry.IDs()
	p.renderer.DrawPanel(p.x, p.y, 250, int32(len(ids)+2)*14+t.Padding*2+8)

	x := p.x + t.Padding
	y := p.y + t.Padding
	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s | %.0f ticks/s", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 12, rl.Yellow)
	y += 16

	for _, id := range ids {
		pct := stats.PhasePct[id]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", p.registry.GetName(id), stats.PhaseAvg[id].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
