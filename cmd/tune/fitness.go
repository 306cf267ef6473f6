package main

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/seeker/config"
	"github.com/pthm-cable/seeker/game"
	"github.com/pthm-cable/seeker/telemetry"
)

// EvalResult is the outcome of one parameter vector averaged over seeds.
type EvalResult struct {
	Fitness  float64 // -GoalRate, lower is better
	GoalRate float64 // goal fraction over the last window of episodes
	Episodes float64 // mean episodes finished per run
}

// FitnessEvaluator runs headless training sessions and scores them.
type FitnessEvaluator struct {
	params     *ParamVector
	ticks      int
	seeds      []int64
	baseConfig *config.Config

	mu   sync.Mutex
	last EvalResult
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, ticks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		ticks:      ticks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// Last returns the result of the most recent Evaluate call.
func (fe *FitnessEvaluator) Last() EvalResult {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// runResult holds the outcome of one seed.
type runResult struct {
	goalRate float64
	episodes int
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Invalid configurations score 0, the worst achievable goal rate.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	res, err := fe.evaluate(context.Background(), cfg)
	if err != nil {
		res = EvalResult{}
	}

	fe.mu.Lock()
	fe.last = res
	fe.mu.Unlock()
	return res.Fitness
}

func (fe *FitnessEvaluator) evaluate(ctx context.Context, cfg *config.Config) (EvalResult, error) {
	if err := cfg.Recompute(); err != nil {
		return EvalResult{}, err
	}

	results := make([]runResult, len(fe.seeds))
	eg, ctx := errgroup.WithContext(ctx)
	for i, seed := range fe.seeds {
		eg.Go(func() error {
			r, err := fe.runSession(ctx, cfg, seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return EvalResult{}, err
	}

	var rate, episodes float64
	for _, r := range results {
		rate += r.goalRate
		episodes += float64(r.episodes)
	}
	n := float64(len(results))
	rate /= n
	return EvalResult{Fitness: -rate, GoalRate: rate, Episodes: episodes / n}, nil
}

// runSession trains one agent headless for fe.ticks ticks.
func (fe *FitnessEvaluator) runSession(ctx context.Context, cfg *config.Config, seed int64) (runResult, error) {
	g, err := game.NewGame(cfg, game.Options{Seed: seed})
	if err != nil {
		return runResult{}, err
	}
	defer g.Close()

	var outcomes []string
	g.OnEpisode(func(r telemetry.EpisodeRecord) {
		outcomes = append(outcomes, r.Outcome)
	})

	const chunk = 1000
	for done := 0; done < fe.ticks; done += chunk {
		if err := ctx.Err(); err != nil {
			return runResult{}, err
		}
		g.Run(min(chunk, fe.ticks-done))
	}

	return runResult{
		goalRate: GoalRate(outcomes, cfg.Telemetry.WindowEpisodes),
		episodes: len(outcomes),
	}, nil
}

// GoalRate returns the fraction of goal outcomes among the last window entries.
func GoalRate(outcomes []string, window int) float64 {
	if window > 0 && len(outcomes) > window {
		outcomes = outcomes[len(outcomes)-window:]
	}
	if len(outcomes) == 0 {
		return 0
	}
	goals := 0
	for _, o := range outcomes {
		if o == telemetry.OutcomeGoal {
			goals++
		}
	}
	return float64(goals) / float64(len(outcomes))
}
