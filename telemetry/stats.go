package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics over a window of episodes.
type WindowStats struct {
	FirstEpisode int   `csv:"first_episode"`
	LastEpisode  int   `csv:"last_episode"`
	EndTick      int64 `csv:"end_tick"`
	Episodes     int   `csv:"episodes"`

	Goals         int     `csv:"goals"`
	Collisions    int     `csv:"collisions"`
	GoalRate      float64 `csv:"goal_rate"`
	CollisionRate float64 `csv:"collision_rate"`

	RewardMean float64 `csv:"reward_mean"`
	RewardStd  float64 `csv:"reward_std"`

	// Episode length distribution
	TicksMean float64 `csv:"ticks_mean"`
	TicksP10  float64 `csv:"ticks_p10"`
	TicksP50  float64 `csv:"ticks_p50"`
	TicksP90  float64 `csv:"ticks_p90"`

	MeanLoss float64 `csv:"mean_loss"`
	Epsilon  float64 `csv:"epsilon"` // at the last episode of the window
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistStats calculates mean and percentiles of values.
func ComputeDistStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// ComputeMeanStd returns the mean and population standard deviation of values.
func ComputeMeanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	mean, variance := stat.PopMeanVariance(values, nil)
	return mean, math.Sqrt(variance)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("first_episode", s.FirstEpisode),
		slog.Int("last_episode", s.LastEpisode),
		slog.Int64("end_tick", s.EndTick),
		slog.Float64("goal_rate", s.GoalRate),
		slog.Float64("collision_rate", s.CollisionRate),
		slog.Float64("reward_mean", s.RewardMean),
		slog.Float64("reward_std", s.RewardStd),
		slog.Float64("ticks_p50", s.TicksP50),
		slog.Float64("mean_loss", s.MeanLoss),
		slog.Float64("epsilon", s.Epsilon),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"episodes", s.FirstEpisode,
		"to", s.LastEpisode,
		"end_tick", s.EndTick,
		"goal_rate", s.GoalRate,
		"collision_rate", s.CollisionRate,
		"reward_mean", s.RewardMean,
		"reward_std", s.RewardStd,
		"ticks_mean", s.TicksMean,
		"ticks_p10", s.TicksP10,
		"ticks_p50", s.TicksP50,
		"ticks_p90", s.TicksP90,
		"mean_loss", s.MeanLoss,
		"epsilon", s.Epsilon,
	)
}
