package telemetry

// Collector accumulates episode records and produces WindowStats every
// windowEpisodes episodes.
type Collector struct {
	windowEpisodes int
	records        []EpisodeRecord
	total          int
}

// NewCollector creates a new stats collector.
func NewCollector(windowEpisodes int) *Collector {
	if windowEpisodes < 1 {
		windowEpisodes = 1
	}
	return &Collector{
		windowEpisodes: windowEpisodes,
		records:        make([]EpisodeRecord, 0, windowEpisodes),
	}
}

// Record adds a finished episode to the current window.
func (c *Collector) Record(r EpisodeRecord) {
	c.records = append(c.records, r)
	c.total++
}

// ShouldFlush returns true once the current window is complete.
func (c *Collector) ShouldFlush() bool {
	return len(c.records) >= c.windowEpisodes
}

// Pending returns the number of episodes in the current window.
func (c *Collector) Pending() int {
	return len(c.records)
}

// Total returns the number of episodes recorded since creation.
func (c *Collector) Total() int {
	return c.total
}

// Flush produces a WindowStats over the pending episodes and starts a new window.
// Flushing an empty window returns zero stats.
func (c *Collector) Flush() WindowStats {
	n := len(c.records)
	if n == 0 {
		return WindowStats{}
	}

	rewards := make([]float64, n)
	ticks := make([]float64, n)
	var goals, collisions int
	var lossSum float64
	var lossCount int
	for i, r := range c.records {
		rewards[i] = r.TotalReward
		ticks[i] = float64(r.Ticks)
		switch r.Outcome {
		case OutcomeGoal:
			goals++
		case OutcomeCollision:
			collisions++
		}
		if r.MeanLoss > 0 {
			lossSum += r.MeanLoss
			lossCount++
		}
	}

	first, last := c.records[0], c.records[n-1]
	stats := WindowStats{
		FirstEpisode:  first.Episode,
		LastEpisode:   last.Episode,
		EndTick:       last.EndTick,
		Episodes:      n,
		Goals:         goals,
		Collisions:    collisions,
		GoalRate:      float64(goals) / float64(n),
		CollisionRate: float64(collisions) / float64(n),
		Epsilon:       last.Epsilon,
	}
	stats.RewardMean, stats.RewardStd = ComputeMeanStd(rewards)
	stats.TicksMean, stats.TicksP10, stats.TicksP50, stats.TicksP90 = ComputeDistStats(ticks)
	if lossCount > 0 {
		stats.MeanLoss = lossSum / float64(lossCount)
	}

	c.records = c.records[:0]
	return stats
}
