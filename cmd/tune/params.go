package main

import (
	"github.com/pthm-cable/seeker/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the parameter set searched by cmd/tune, with
// defaults taken from base.
func NewParamVector(base *config.Config) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Reward shaping
			{Name: "progress_scale", Path: "reward.progress_scale", Min: 0.01, Max: 0.5, Default: base.Reward.ProgressScale},
			{Name: "orientation_scale", Path: "reward.orientation_scale", Min: 0, Max: 0.1, Default: base.Reward.OrientationScale},
			{Name: "step_penalty", Path: "reward.step_penalty", Min: 0, Max: 0.05, Default: base.Reward.StepPenalty},
			// Learning
			{Name: "learning_rate", Path: "learning.learning_rate", Min: 0.0001, Max: 0.01, Default: base.Learning.LearningRate},
			{Name: "epsilon_decay", Path: "learning.epsilon_decay", Min: 0.98, Max: 0.9995, Default: base.Learning.EpsilonDecay},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies clamped parameter values to cfg. Order matches Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Reward.ProgressScale = c[0]
	cfg.Reward.OrientationScale = c[1]
	cfg.Reward.StepPenalty = c[2]
	cfg.Learning.LearningRate = c[3]
	cfg.Learning.EpsilonDecay = c[4]
}

// EvalRecord is one row of tune_log.csv.
type EvalRecord struct {
	Eval             int     `csv:"eval"`
	Fitness          float64 `csv:"fitness"`
	GoalRate         float64 `csv:"goal_rate"`
	Episodes         float64 `csv:"episodes"`
	ProgressScale    float64 `csv:"progress_scale"`
	OrientationScale float64 `csv:"orientation_scale"`
	StepPenalty      float64 `csv:"step_penalty"`
	LearningRate     float64 `csv:"learning_rate"`
	EpsilonDecay     float64 `csv:"epsilon_decay"`
}

// NewEvalRecord builds a log row from clamped parameter values.
func NewEvalRecord(eval int, r EvalResult, values []float64) EvalRecord {
	return EvalRecord{
		Eval:             eval,
		Fitness:          r.Fitness,
		GoalRate:         r.GoalRate,
		Episodes:         r.Episodes,
		ProgressScale:    values[0],
		OrientationScale: values[1],
		StepPenalty:      values[2],
		LearningRate:     values[3],
		EpsilonDecay:     values[4],
	}
}
