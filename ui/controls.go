package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"
)

// Command is a user request issued from the controls bar or the keyboard.
type Command int

const (
	CmdNone Command = iota
	CmdReset
	CmdToggleTraining
	CmdSave
	CmdLoad
	CmdSpeedUp
	CmdSlowDown
	CmdTogglePanel
	CmdTogglePerf
)

// Controls renders the button bar below the arena and reports which
// command, if any, the user issued this frame.
type Controls struct {
	renderer *Renderer
	x, y     float32
	status   string
}

// NewControls creates a controls bar with its top-left corner at (x, y).
func NewControls(x, y float32) *Controls {
	return &Controls{renderer: NewRenderer(), x: x, y: y}
}

// SetStatus sets the message shown next to the buttons.
func (c *Controls) SetStatus(msg string) {
	c.status = msg
}

// TrainingLabel returns the label of the pause/resume button.
func TrainingLabel(training bool) string {
	if training {
		return "Pause Training"
	}
	return "Resume Training"
}

// Draw renders the buttons and returns the command of the button pressed, if any.
func (c *Controls) Draw(training bool) Command {
	t := c.renderer.Theme
	cmd := CmdNone

	x := c.x
	button := func(label string, w float32, issued Command) {
		if gui.Button(rl.Rectangle{X: x, Y: c.y, Width: w, Height: t.ButtonHeight}, label) {
			cmd = issued
		}
		x += w + float32(t.Padding)
	}
	button("Reset", t.ButtonWidth*0.7, CmdReset)
	button(TrainingLabel(training), t.ButtonWidth*1.3, CmdToggleTraining)
	button("Save Model", t.ButtonWidth, CmdSave)
	button("Load Model", t.ButtonWidth, CmdLoad)

	if c.status != "" {
		rl.DrawText(c.status, int32(x), int32(c.y)+8, t.FontSize+2, t.StatusColor)
	}
	return cmd
}

// KeyCommand maps keyboard shortcuts to commands.
func KeyCommand() Command {
	switch {
	case rl.IsKeyPressed(rl.KeyR):
		return CmdReset
	case rl.IsKeyPressed(rl.KeySpace):
		return CmdToggleTraining
	case rl.IsKeyPressed(rl.KeyS):
		return CmdSave
	case rl.IsKeyPressed(rl.KeyL):
		return CmdLoad
	case rl.IsKeyPressed(rl.KeyPeriod):
		return CmdSpeedUp
	case rl.IsKeyPressed(rl.KeyComma):
		return CmdSlowDown
	case rl.IsKeyPressed(rl.KeyN):
		return CmdTogglePanel
	case rl.IsKeyPressed(rl.KeyP):
		return CmdTogglePerf
	}
	return CmdNone
}

// Legend is the key help shown at the bottom of the screen.
const Legend = "Click: move target | R: reset | Space: pause training | S/L: save/load | </>: speed | N: network | P: perf"
