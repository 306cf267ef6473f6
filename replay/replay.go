// Package replay provides the bounded experience memory sampled during training.
package replay

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/pthm-cable/seeker/components"
)

// ErrInsufficient is returned by Sample when fewer transitions are stored than requested.
var ErrInsufficient = errors.New("replay: not enough transitions stored")

// Transition is one recorded step. Treat stored transitions as read-only.
type Transition struct {
	State     []float64
	Action    components.Action
	Reward    float64
	NextState []float64
	Done      bool
}

// Memory is a fixed-capacity ring buffer of transitions.
// Once full, each Store overwrites the oldest entry.
// All methods are safe for concurrent use.
type Memory struct {
	mu       sync.Mutex
	buf      []Transition
	capacity int
	next     int // write cursor
	size     int
	rng      *rand.Rand
}

// New creates an empty memory holding at most capacity transitions.
// seed drives Sample.
func New(capacity int, seed int64) *Memory {
	if capacity < 1 {
		capacity = 1
	}
	return &Memory{
		buf:      make([]Transition, capacity),
		capacity: capacity,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Store appends t, evicting the oldest transition when full.
// The state slices are copied.
func (m *Memory) Store(t Transition) {
	t.State = append([]float64(nil), t.State...)
	t.NextState = append([]float64(nil), t.NextState...)

	m.mu.Lock()
	m.buf[m.next] = t
	m.next = (m.next + 1) % m.capacity
	if m.size < m.capacity {
		m.size++
	}
	m.mu.Unlock()
}

// Len returns the number of stored transitions.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.size
}

// Cap returns the maximum number of stored transitions.
func (m *Memory) Cap() int {
	return m.capacity
}

// Sample draws n transitions uniformly with replacement.
func (m *Memory) Sample(n int) ([]Transition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n <= 0 || m.size < n {
		return nil, ErrInsufficient
	}
	out := make([]Transition, n)
	for i := range out {
		out[i] = m.buf[m.rng.Intn(m.size)]
	}
	return out, nil
}

// Snapshot returns the stored transitions ordered oldest to newest.
func (m *Memory) Snapshot() []Transition {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Transition, 0, m.size)
	start := 0
	if m.size == m.capacity {
		start = m.next
	}
	for i := 0; i < m.size; i++ {
		out = append(out, m.buf[(start+i)%m.capacity])
	}
	return out
}

// Reset discards every stored transition.
func (m *Memory) Reset() {
	m.mu.Lock()
	clear(m.buf)
	m.next = 0
	m.size = 0
	m.mu.Unlock()
}
