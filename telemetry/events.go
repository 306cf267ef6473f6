// Package telemetry provides learning progress tracking, bookmarking, and CSV output.
package telemetry

import "log/slog"

// EpisodeRecord summarizes one finished episode.
type EpisodeRecord struct {
	Episode     int     `csv:"episode"`
	Ticks       int     `csv:"ticks"`
	TotalReward float64 `csv:"total_reward"`
	Outcome     string  `csv:"outcome"`
	Epsilon     float64 `csv:"epsilon"`
	Memory      int     `csv:"memory"`
	MeanLoss    float64 `csv:"mean_loss"` // mean over training steps in the episode, 0 if none
	EndTick     int64   `csv:"end_tick"`
}

// Outcome labels used in EpisodeRecord.
const (
	OutcomeGoal      = "goal"
	OutcomeCollision = "collision"
)

// LogValue implements slog.LogValuer for structured logging.
func (r EpisodeRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("episode", r.Episode),
		slog.Int("ticks", r.Ticks),
		slog.Float64("total_reward", r.TotalReward),
		slog.String("outcome", r.Outcome),
		slog.Float64("epsilon", r.Epsilon),
		slog.Int("memory", r.Memory),
		slog.Float64("mean_loss", r.MeanLoss),
		slog.Int64("end_tick", r.EndTick),
	)
}
