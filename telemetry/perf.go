package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Tick phases, in the order they run.
const (
	PhaseSense     = "sense"
	PhaseAct       = "act"
	PhasePhysics   = "physics"
	PhaseLearn     = "learn"
	PhaseReset     = "reset"
	PhaseTelemetry = "telemetry"
)

var phases = [...]string{PhaseSense, PhaseAct, PhasePhysics, PhaseLearn, PhaseReset, PhaseTelemetry}

const numPhases = len(phases)

func phaseIndex(name string) int {
	for i, p := range phases {
		if p == name {
			return i
		}
	}
	return -1
}

// Phases returns the phase names in tick order.
func Phases() []string {
	return append([]string(nil), phases[:]...)
}

// tickSample is the timing of one tick. Unknown phase names are not recorded.
type tickSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector keeps per-phase timings for the most recent ticks in a ring.
// It is not safe for concurrent use; the tick goroutine owns it.
type PerfCollector struct {
	ring  []tickSample
	next  int
	count int

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      int // index into phases, -1 when no phase is open

	lastFrame     time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over the last window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 600
	}
	return &PerfCollector{ring: make([]tickSample, window), phase: -1}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	now := time.Now()
	p.cur = tickSample{}
	p.tickStart = now
	p.phaseStart = now
	p.phase = -1
}

// StartPhase closes the open phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phaseIndex(phase)
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the open phase and stores the tick.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = -1
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// RecordFrame marks the end of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the collector window.
type PerfStats struct {
	Ticks int // samples in the window

	AvgTickDuration time.Duration
	P50TickDuration time.Duration
	P95TickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average tick, in percent

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats summarizes the ticks currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		Ticks:         p.count,
		PhaseAvg:      make(map[string]time.Duration, numPhases),
		PhasePct:      make(map[string]float64, numPhases),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.count == 0 {
		return s
	}

	totals := make([]float64, p.count)
	var phaseSum [numPhases]time.Duration
	for i, smp := range p.ring[:p.count] {
		totals[i] = float64(smp.total)
		for j, d := range smp.phases {
			phaseSum[j] += d
		}
	}
	sort.Float64s(totals)

	avg := stat.Mean(totals, nil)
	s.AvgTickDuration = time.Duration(avg)
	s.P50TickDuration = time.Duration(stat.Quantile(0.5, stat.Empirical, totals, nil))
	s.P95TickDuration = time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil))
	s.MaxTickDuration = time.Duration(totals[len(totals)-1])
	if avg > 0 {
		s.TicksPerSecond = float64(time.Second) / avg
	}

	for j, name := range phases {
		if phaseSum[j] == 0 {
			continue
		}
		mean := phaseSum[j] / time.Duration(p.count)
		s.PhaseAvg[name] = mean
		if avg > 0 {
			s.PhasePct[name] = float64(mean) / avg * 100
		}
	}
	return s
}

// LogStats logs the summary via slog.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct >= 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	Ticks        int     `csv:"ticks"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	P50TickUS    int64   `csv:"p50_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	SensePct     float64 `csv:"sense_pct"`
	ActPct       float64 `csv:"act_pct"`
	PhysicsPct   float64 `csv:"physics_pct"`
	LearnPct     float64 `csv:"learn_pct"`
	ResetPct     float64 `csv:"reset_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for perf.csv. windowEnd is the tick the row belongs to.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		Ticks:        s.Ticks,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		P50TickUS:    s.P50TickDuration.Microseconds(),
		P95TickUS:    s.P95TickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		SensePct:     s.PhasePct[PhaseSense],
		ActPct:       s.PhasePct[PhaseAct],
		PhysicsPct:   s.PhasePct[PhasePhysics],
		LearnPct:     s.PhasePct[PhaseLearn],
		ResetPct:     s.PhasePct[PhaseReset],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
