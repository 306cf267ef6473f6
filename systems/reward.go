package systems

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/seeker/config"
)

// Outcome classifies how a tick ended.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeCollision
	OutcomeGoal
)

// String returns the outcome label used in logs and CSV output.
func (o Outcome) String() string {
	switch o {
	case OutcomeCollision:
		return "collision"
	case OutcomeGoal:
		return "goal"
	}
	return "none"
}

// RewardParams holds the reward shaping constants.
type RewardParams struct {
	StepPenalty      float64
	ProgressScale    float64
	GoalReward       float64
	GoalRadius       float64
	CollisionPenalty float64
	OrientationScale float64
}

// RewardParamsFrom extracts reward parameters from config.
func RewardParamsFrom(cfg *config.Config) RewardParams {
	r := cfg.Reward
	return RewardParams{
		StepPenalty:      r.StepPenalty,
		ProgressScale:    r.ProgressScale,
		GoalReward:       r.GoalReward,
		GoalRadius:       r.GoalRadius,
		CollisionPenalty: r.CollisionPenalty,
		OrientationScale: r.OrientationScale,
	}
}

// RewardInput describes one transition for scoring.
type RewardInput struct {
	PrevDist   float64 // distance to target before the move
	Dist       float64 // distance to target after the move
	CosBearing float64 // cosine of the bearing to target after the move
	Speed      float64 // signed speed of the move; only its sign is used
	Collision  bool
}

// RewardResult is the scored transition.
type RewardResult struct {
	Reward   float64
	Progress float64 // progress term alone, before penalties and bonuses
	Done     bool
	Outcome  Outcome
}

// ComputeReward scores a transition. Collision is checked before the goal,
// so at most one terminal outcome applies per tick.
func ComputeReward(in RewardInput, p RewardParams) RewardResult {
	if !finite(in.PrevDist, in.Dist, in.CosBearing, in.Speed) {
		slog.Error("non-finite reward input", "input", fmt.Sprintf("%+v", in))
		panic(fmt.Sprintf("systems: non-finite reward input %+v", in))
	}

	var res RewardResult

	res.Progress = (in.PrevDist - in.Dist) * p.ProgressScale
	res.Reward = res.Progress
	res.Reward -= p.StepPenalty

	if in.Speed > 0 {
		res.Reward += p.OrientationScale * in.CosBearing
	} else if in.Speed < 0 {
		res.Reward -= p.OrientationScale * in.CosBearing
	}

	if in.Collision {
		res.Reward = p.CollisionPenalty
		res.Done = true
		res.Outcome = OutcomeCollision
		return res
	}

	if in.Dist < p.GoalRadius {
		res.Reward += p.GoalReward
		res.Done = true
		res.Outcome = OutcomeGoal
	}
	return res
}
