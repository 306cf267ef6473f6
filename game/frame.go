package game

import (
	"github.com/pthm-cable/seeker/components"
)

// Frame is a read-only copy of everything a renderer needs for one draw.
type Frame struct {
	Pose        components.Pose
	Radius      float64
	Rays        []components.Ray
	Target      components.Target
	GoalRadius  float64
	ArenaWidth  float64
	ArenaHeight float64

	Episode      int
	EpisodeTicks int
	Tick         int64
	TotalReward  float64
	LastOutcome  string
	Epsilon      float64
	Training     bool
	State        []float64
	QValues      []float64
	Memory       int
}

// RenderSink consumes frames. Implementations must not retain the slices
// beyond the call.
type RenderSink interface {
	Render(Frame)
}

// Frame captures the current state for rendering.
func (g *Game) Frame() Frame {
	pose, _, body, sensors, _ := g.robotMap.Get(g.robot)
	state := g.State()
	return Frame{
		Pose:         *pose,
		Radius:       body.Radius,
		Rays:         append([]components.Ray(nil), sensors.Rays...),
		Target:       g.Target(),
		GoalRadius:   g.cfg.Reward.GoalRadius,
		ArenaWidth:   g.cfg.Arena.Width,
		ArenaHeight:  g.cfg.Arena.Height,
		Episode:      g.ctx.Episode,
		EpisodeTicks: g.ctx.EpisodeTicks,
		Tick:         g.ctx.Tick,
		TotalReward:  g.ctx.TotalReward,
		LastOutcome:  g.ctx.LastOutcome.String(),
		Epsilon:      g.brain.Epsilon(),
		Training:     g.brain.Training(),
		State:        state,
		QValues:      g.brain.QValues(state),
		Memory:       g.brain.Memory().Len(),
	}
}

