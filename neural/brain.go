package neural

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/seeker/components"
	"github.com/pthm-cable/seeker/replay"
)

// Brain is the learning agent: an action-value network, its optimizer,
// the replay memory and the exploration schedule.
//
// Forward passes take a read lock on the network; a training step or a model
// swap holds the write lock for its whole duration, so readers never observe
// partially updated parameters.
type Brain struct {
	cfg Config

	mu      sync.RWMutex
	net     *QNetwork
	opt     *Adam
	epsilon float64

	memory   *replay.Memory
	training atomic.Bool
	version  atomic.Uint64

	rngMu sync.Mutex
	rng   *rand.Rand // exploration only
}

// ReplayResult reports one training step.
type ReplayResult struct {
	Loss    float64
	Epsilon float64 // after decay
	Version uint64
}

// NewBrain creates an agent with a freshly initialized network.
// rng seeds the weights and the replay memory and then drives exploration.
func NewBrain(cfg Config, rng *rand.Rand) *Brain {
	b := &Brain{
		cfg:     cfg,
		net:     NewQNetwork(cfg.Arch, rng),
		opt:     NewAdam(cfg.LearningRate),
		epsilon: cfg.EpsilonStart,
		memory:  replay.New(cfg.MemorySize, rng.Int63()),
		rng:     rng,
	}
	b.training.Store(true)
	return b
}

// QValues returns the current action values for state.
func (b *Brain) QValues(state []float64) []float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.net.Predict(state)
}

// Act chooses an action for state. While training, a uniformly random action
// is taken with probability epsilon; otherwise the highest-valued action wins,
// ties going to the lowest index. With training disabled the exploration RNG
// is never drawn.
func (b *Brain) Act(state []float64) components.Action {
	if b.training.Load() {
		eps := b.Epsilon()
		b.rngMu.Lock()
		explore := b.rng.Float64() < eps
		var a int
		if explore {
			a = b.rng.Intn(components.NumActions)
		}
		b.rngMu.Unlock()
		if explore {
			return components.Action(a)
		}
	}
	return components.Action(Argmax(b.QValues(state)))
}

// Remember stores a transition for later replay.
func (b *Brain) Remember(t replay.Transition) {
	b.memory.Store(t)
}

// Replay runs one training step on a uniformly sampled batch, then decays
// epsilon. It returns false without touching anything if memory holds fewer
// transitions than one batch.
func (b *Brain) Replay() (ReplayResult, bool) {
	batch, err := b.memory.Sample(b.cfg.BatchSize)
	if err != nil {
		return ReplayResult{}, false
	}

	n, in := len(batch), b.cfg.Arch.Inputs
	states := mat.NewDense(n, in, nil)
	next := mat.NewDense(n, in, nil)
	for i, t := range batch {
		states.SetRow(i, t.State)
		next.SetRow(i, t.NextState)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	targets := mat.DenseCopyOf(b.net.PredictBatch(states))
	nextQ := b.net.PredictBatch(next)
	for i, t := range batch {
		target := t.Reward
		if !t.Done {
			target += b.cfg.Discount * floats.Max(nextQ.RawRowView(i))
		}
		targets.Set(i, int(t.Action), target)
	}

	loss := b.net.TrainBatch(states, targets, b.opt)
	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		slog.Error("non-finite training loss", "loss", loss, "step", b.opt.Steps())
		panic(fmt.Sprintf("neural: non-finite loss %v", loss))
	}

	b.epsilon = max(b.epsilon*b.cfg.EpsilonDecay, b.cfg.EpsilonMin)

	return ReplayResult{
		Loss:    loss,
		Epsilon: b.epsilon,
		Version: b.version.Add(1),
	}, true
}

// Epsilon returns the current exploration probability.
func (b *Brain) Epsilon() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.epsilon
}

// SetEpsilon overrides the exploration probability, clamped to [0, 1].
func (b *Brain) SetEpsilon(eps float64) {
	b.mu.Lock()
	b.epsilon = math.Min(math.Max(eps, 0), 1)
	b.mu.Unlock()
}

// Training reports whether exploration and learning are enabled.
func (b *Brain) Training() bool {
	return b.training.Load()
}

// SetTraining enables or disables exploration and learning.
func (b *Brain) SetTraining(on bool) {
	b.training.Store(on)
}

// Version counts parameter changes: one per training step or model load.
func (b *Brain) Version() uint64 {
	return b.version.Load()
}

// Memory returns the replay memory.
func (b *Brain) Memory() *replay.Memory {
	return b.memory
}

// Architecture returns the network layout.
func (b *Brain) Architecture() Architecture {
	return b.cfg.Arch
}

// Save writes the current network to w.
func (b *Brain) Save(w io.Writer) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.net.Save(w)
}

// SaveFile writes the current network to path.
func (b *Brain) SaveFile(path string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.net.SaveFile(path)
}

// Load replaces the network with one decoded from r. On success the optimizer
// state is reset and epsilon drops to the after-load value. On failure the
// live network is left untouched.
func (b *Brain) Load(r io.Reader) error {
	n, err := LoadModel(r, b.cfg.Arch)
	if err != nil {
		return err
	}
	b.swap(n)
	return nil
}

// LoadFile is Load from a file path.
func (b *Brain) LoadFile(path string) error {
	n, err := LoadFile(path, b.cfg.Arch)
	if err != nil {
		return err
	}
	b.swap(n)
	return nil
}

func (b *Brain) swap(n *QNetwork) {
	b.mu.Lock()
	b.net = n
	b.opt = NewAdam(b.cfg.LearningRate)
	b.epsilon = b.cfg.EpsilonAfterLoad
	b.version.Add(1)
	b.mu.Unlock()
}
