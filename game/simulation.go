package game

import (
	"fmt"
	"math"

	"github.com/pthm-cable/seeker/components"
	"github.com/pthm-cable/seeker/replay"
	"github.com/pthm-cable/seeker/systems"
	"github.com/pthm-cable/seeker/telemetry"
)

// TickResult describes one completed tick.
type TickResult struct {
	Action   components.Action
	Reward   float64
	Progress float64
	Distance float64
	Done     bool
	Outcome  systems.Outcome
	Episode  int // episode the tick belonged to
}

// State returns the current network input for the robot.
func (g *Game) State() []float64 {
	pose, _, _, sensors, _ := g.robotMap.Get(g.robot)
	return systems.BuildState(sensors.Readings, *pose, g.Target(), g.cfg.Arena.Width)
}

// Step runs one tick with the action chosen by the agent.
func (g *Game) Step() TickResult {
	g.perfCollector.StartTick()
	g.perfCollector.StartPhase(telemetry.PhaseAct)
	state := g.State()
	action := g.brain.Act(state)
	res := g.advance(state, action)
	g.perfCollector.EndTick()
	return res
}

// StepAction runs one tick with a caller-chosen action, bypassing the policy.
// Learning and episode bookkeeping behave exactly as in Step.
func (g *Game) StepAction(action components.Action) TickResult {
	if !action.Valid() {
		panic(fmt.Sprintf("game: invalid action %d", action))
	}
	g.perfCollector.StartTick()
	res := g.advance(g.State(), action)
	g.perfCollector.EndTick()
	return res
}

// advance applies action from state and handles the consequences.
func (g *Game) advance(state []float64, action components.Action) TickResult {
	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	g.physics.Apply(g.robot, action)

	g.perfCollector.StartPhase(telemetry.PhaseSense)
	g.sensors.Update()

	pose, motion, body, sensors, robot := g.robotMap.Get(g.robot)
	target := g.Target()
	dist := systems.TargetDistance(*pose, target)
	bearing := systems.Bearing(*pose, target)

	collision := systems.BodyHitsWall(*pose, body.Radius, g.cfg.Arena.Width, g.cfg.Arena.Height) ||
		systems.NearContact(sensors.Readings, g.cfg.Sensors.NearField)

	scored := systems.ComputeReward(systems.RewardInput{
		PrevDist:   g.ctx.LastDist,
		Dist:       dist,
		CosBearing: math.Cos(bearing),
		Speed:      motion.Speed,
		Collision:  collision,
	}, g.reward)

	g.ctx.LastDist = dist
	g.ctx.Tick++
	g.ctx.EpisodeTicks++
	g.ctx.TotalReward += scored.Reward

	if g.brain.Training() {
		g.perfCollector.StartPhase(telemetry.PhaseLearn)
		next := systems.BuildState(sensors.Readings, *pose, target, g.cfg.Arena.Width)
		g.brain.Remember(replay.Transition{
			State:     state,
			Action:    action,
			Reward:    scored.Reward,
			NextState: next,
			Done:      scored.Done,
		})
		g.learn()
	}

	res := TickResult{
		Action:   action,
		Reward:   scored.Reward,
		Progress: scored.Progress,
		Distance: dist,
		Done:     scored.Done,
		Outcome:  scored.Outcome,
		Episode:  g.ctx.Episode,
	}

	if scored.Done {
		robot.Alive = false
		g.ctx.LastOutcome = scored.Outcome
		g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
		g.endEpisode(scored.Outcome)
		g.perfCollector.StartPhase(telemetry.PhaseReset)
		g.Reset()
	}
	return res
}

// learn runs one training step, inline or on the trainer.
func (g *Game) learn() {
	if g.trainer != nil {
		g.trainer.submit()
		if r, ok := g.trainer.collect(); ok {
			g.recordLoss(r.Loss)
		}
		return
	}
	if r, ok := g.brain.Replay(); ok {
		g.recordLoss(r.Loss)
	}
}

// settleLearning waits for an in-flight training step and counts its loss
// toward the current episode.
func (g *Game) settleLearning() {
	if g.trainer == nil {
		return
	}
	g.trainer.wait()
	if r, ok := g.trainer.collect(); ok {
		g.recordLoss(r.Loss)
	}
}

func (g *Game) recordLoss(loss float64) {
	g.lossSum += loss
	g.lossCount++
}

// Reset starts a new episode: the robot returns to the arena center facing
// the initial heading and the target moves to a new random position.
func (g *Game) Reset() {
	pose, motion, _, _, robot := g.robotMap.Get(g.robot)
	pose.X = g.cfg.Derived.CenterX
	pose.Y = g.cfg.Derived.CenterY
	pose.Heading = g.cfg.Robot.InitialHeading
	*motion = components.Motion{}
	robot.Alive = true

	g.randomizeTarget()
	g.sensors.Update()

	g.ctx.Episode++
	g.ctx.EpisodeTicks = 0
	g.ctx.TotalReward = 0
	g.ctx.LastDist = systems.TargetDistance(*pose, g.Target())
	g.lossSum, g.lossCount = 0, 0
}

// randomizeTarget places the target uniformly inside the margin-inset arena.
func (g *Game) randomizeTarget() {
	m := g.cfg.Arena.TargetMargin
	t := g.targetMap.Get(g.target)
	t.X = m + g.rng.Float64()*(g.cfg.Arena.Width-2*m)
	t.Y = m + g.rng.Float64()*(g.cfg.Arena.Height-2*m)
}

// SetTarget moves the target and rebases the progress reference so the
// move itself yields no progress reward.
func (g *Game) SetTarget(x, y float64) {
	t := g.targetMap.Get(g.target)
	t.X, t.Y = x, y
	g.ctx.LastDist = systems.TargetDistance(g.Pose(), *t)
}

// Run advances n ticks and returns the number of episodes finished.
func (g *Game) Run(n int) int {
	finished := 0
	for i := 0; i < n; i++ {
		if g.Step().Done {
			finished++
		}
	}
	return finished
}
