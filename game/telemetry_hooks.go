package game

import (
	"log/slog"

	"github.com/pthm-cable/seeker/systems"
	"github.com/pthm-cable/seeker/telemetry"
)

// endEpisode records the finished episode and flushes the stats window when due.
func (g *Game) endEpisode(outcome systems.Outcome) {
	g.settleLearning()

	var meanLoss float64
	if g.lossCount > 0 {
		meanLoss = g.lossSum / float64(g.lossCount)
	}

	rec := telemetry.EpisodeRecord{
		Episode:     g.ctx.Episode,
		Ticks:       g.ctx.EpisodeTicks,
		TotalReward: g.ctx.TotalReward,
		Outcome:     outcome.String(),
		Epsilon:     g.brain.Epsilon(),
		Memory:      g.brain.Memory().Len(),
		MeanLoss:    meanLoss,
		EndTick:     g.ctx.Tick,
	}

	if g.opts.LogEpisodes {
		slog.Info("episode finished", "episode", rec)
	}
	if g.episodeHook != nil {
		g.episodeHook(rec)
	}
	if err := g.outputManager.WriteEpisode(rec); err != nil {
		slog.Error("failed to write episode", "error", err)
	}

	g.collector.Record(rec)
	g.flushTelemetry()
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() {
		return
	}

	stats := g.collector.Flush()
	perfStats := g.perfCollector.Stats()

	if g.statsHook != nil {
		g.statsHook(stats)
	}

	if g.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteWindow(stats); err != nil {
		slog.Error("failed to write window stats", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.EndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.opts.LogStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}
