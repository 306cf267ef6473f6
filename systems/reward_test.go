package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/seeker/config"
)

func defaultRewardParams() RewardParams {
	return RewardParamsFrom(config.Default())
}

func TestRewardProgressSign(t *testing.T) {
	p := defaultRewardParams()

	closer := ComputeReward(RewardInput{PrevDist: 200, Dist: 197, CosBearing: 1, Speed: 3}, p)
	if closer.Progress <= 0 {
		t.Errorf("approaching progress = %v, want > 0", closer.Progress)
	}
	want := 3*p.ProgressScale - p.StepPenalty + p.OrientationScale
	if math.Abs(closer.Reward-want) > 1e-12 {
		t.Errorf("approaching reward = %v, want %v", closer.Reward, want)
	}

	away := ComputeReward(RewardInput{PrevDist: 200, Dist: 202, CosBearing: 1, Speed: -2}, p)
	if away.Progress >= 0 {
		t.Errorf("retreating progress = %v, want < 0", away.Progress)
	}
	want = -2*p.ProgressScale - p.StepPenalty - p.OrientationScale
	if math.Abs(away.Reward-want) > 1e-12 {
		t.Errorf("retreating reward = %v, want %v", away.Reward, want)
	}
	if closer.Done || away.Done {
		t.Error("non-terminal transition marked done")
	}
}

func TestRewardZeroSpeedSkipsOrientation(t *testing.T) {
	p := defaultRewardParams()
	res := ComputeReward(RewardInput{PrevDist: 100, Dist: 100, CosBearing: 1, Speed: 0}, p)
	if math.Abs(res.Reward+p.StepPenalty) > 1e-12 {
		t.Errorf("reward = %v, want %v", res.Reward, -p.StepPenalty)
	}
}

func TestRewardCollisionIsExact(t *testing.T) {
	p := defaultRewardParams()
	res := ComputeReward(RewardInput{PrevDist: 300, Dist: 250, CosBearing: 1, Speed: 3, Collision: true}, p)

	if res.Reward != p.CollisionPenalty {
		t.Errorf("collision reward = %v, want exactly %v", res.Reward, p.CollisionPenalty)
	}
	if !res.Done || res.Outcome != OutcomeCollision {
		t.Errorf("collision result = %+v", res)
	}
}

func TestRewardGoalBonus(t *testing.T) {
	p := defaultRewardParams()
	in := RewardInput{PrevDist: 31, Dist: 28, CosBearing: 0.5, Speed: 3}
	res := ComputeReward(in, p)

	shaped := (in.PrevDist-in.Dist)*p.ProgressScale - p.StepPenalty + p.OrientationScale*in.CosBearing
	if math.Abs(res.Reward-(shaped+p.GoalReward)) > 1e-12 {
		t.Errorf("goal reward = %v, want %v", res.Reward, shaped+p.GoalReward)
	}
	if !res.Done || res.Outcome != OutcomeGoal {
		t.Errorf("goal result = %+v", res)
	}
}

func TestRewardCollisionBeatsGoal(t *testing.T) {
	p := defaultRewardParams()
	res := ComputeReward(RewardInput{PrevDist: 31, Dist: 10, CosBearing: 1, Speed: 3, Collision: true}, p)
	if res.Outcome != OutcomeCollision || res.Reward != p.CollisionPenalty {
		t.Errorf("collision inside goal radius = %+v, want collision", res)
	}
}

func TestRewardPanicsOnNonFinite(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on NaN input")
		}
	}()
	ComputeReward(RewardInput{PrevDist: math.NaN(), Dist: 1, Speed: 1}, defaultRewardParams())
}

func TestOutcomeString(t *testing.T) {
	tests := map[Outcome]string{
		OutcomeNone:      "none",
		OutcomeCollision: "collision",
		OutcomeGoal:      "goal",
	}
	for o, want := range tests {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", o, got, want)
		}
	}
}
