package neural

import (
	"github.com/pthm-cable/seeker/components"
	"github.com/pthm-cable/seeker/config"
)

// Config holds the agent's network and learning settings.
type Config struct {
	Arch Architecture

	MemorySize       int
	BatchSize        int
	Discount         float64
	LearningRate     float64
	EpsilonStart     float64
	EpsilonDecay     float64
	EpsilonMin       float64
	EpsilonAfterLoad float64
}

// ConfigFrom derives agent settings from the simulation config.
func ConfigFrom(cfg *config.Config) Config {
	l := cfg.Learning
	return Config{
		Arch: Architecture{
			Inputs:  cfg.Derived.StateSize,
			Hidden:  append([]int(nil), cfg.Network.HiddenLayers...),
			Outputs: components.NumActions,
		},
		MemorySize:       l.MemorySize,
		BatchSize:        l.BatchSize,
		Discount:         l.Discount,
		LearningRate:     l.LearningRate,
		EpsilonStart:     l.EpsilonStart,
		EpsilonDecay:     l.EpsilonDecay,
		EpsilonMin:       l.EpsilonMin,
		EpsilonAfterLoad: l.EpsilonAfterLoad,
	}
}
