package replay

import (
	"errors"
	"sync"
	"testing"

	"github.com/pthm-cable/seeker/components"
)

func tr(reward float64) Transition {
	return Transition{
		State:     []float64{reward},
		Action:    components.ActionForward,
		Reward:    reward,
		NextState: []float64{reward + 1},
	}
}

func TestMemoryEvictsOldestFirst(t *testing.T) {
	const capacity = 5
	m := New(capacity, 1)

	for i := 0; i < 12; i++ {
		m.Store(tr(float64(i)))
		if m.Len() > capacity {
			t.Fatalf("Len() = %d after %d stores, exceeds capacity %d", m.Len(), i+1, capacity)
		}
	}

	snap := m.Snapshot()
	if len(snap) != capacity {
		t.Fatalf("snapshot length = %d, want %d", len(snap), capacity)
	}
	// Most recent five of 0..11, oldest first
	for i, got := range snap {
		want := float64(7 + i)
		if got.Reward != want {
			t.Errorf("snapshot[%d].Reward = %v, want %v", i, got.Reward, want)
		}
	}
}

func TestMemorySnapshotBeforeFull(t *testing.T) {
	m := New(10, 1)
	for i := 0; i < 3; i++ {
		m.Store(tr(float64(i)))
	}
	snap := m.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot length = %d, want 3", len(snap))
	}
	for i, got := range snap {
		if got.Reward != float64(i) {
			t.Errorf("snapshot[%d].Reward = %v, want %d", i, got.Reward, i)
		}
	}
}

func TestMemoryStoreCopiesState(t *testing.T) {
	m := New(4, 1)
	state := []float64{1, 2, 3}
	m.Store(Transition{State: state, NextState: state})
	state[0] = 99

	if got := m.Snapshot()[0].State[0]; got != 1 {
		t.Errorf("stored state aliased caller slice: got %v", got)
	}
}

func TestMemorySampleInsufficient(t *testing.T) {
	m := New(100, 1)
	for i := 0; i < 10; i++ {
		m.Store(tr(float64(i)))
	}

	if _, err := m.Sample(11); !errors.Is(err, ErrInsufficient) {
		t.Errorf("Sample(11) error = %v, want ErrInsufficient", err)
	}

	batch, err := m.Sample(10)
	if err != nil {
		t.Fatalf("Sample(10) failed: %v", err)
	}
	if len(batch) != 10 {
		t.Errorf("batch size = %d, want 10", len(batch))
	}
}

func TestMemorySampleOnlyReturnsStored(t *testing.T) {
	m := New(8, 3)
	for i := 0; i < 20; i++ {
		m.Store(tr(float64(i)))
	}
	if _, err := m.Sample(64); err == nil {
		t.Fatal("sampling more than stored should fail")
	}

	batch, err := m.Sample(8)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range batch {
		if b.Reward < 12 {
			t.Errorf("sampled evicted transition with reward %v", b.Reward)
		}
	}
}

func TestMemorySampleDeterministic(t *testing.T) {
	a, b := New(50, 42), New(50, 42)
	for i := 0; i < 50; i++ {
		a.Store(tr(float64(i)))
		b.Store(tr(float64(i)))
	}
	sa, _ := a.Sample(16)
	sb, _ := b.Sample(16)
	for i := range sa {
		if sa[i].Reward != sb[i].Reward {
			t.Fatalf("same seed produced different samples at %d", i)
		}
	}
}

func TestMemoryReset(t *testing.T) {
	m := New(4, 1)
	for i := 0; i < 6; i++ {
		m.Store(tr(float64(i)))
	}
	m.Reset()
	if m.Len() != 0 {
		t.Errorf("Len() after Reset = %d", m.Len())
	}
	m.Store(tr(42))
	if snap := m.Snapshot(); len(snap) != 1 || snap[0].Reward != 42 {
		t.Errorf("snapshot after reset = %+v", snap)
	}
}

func TestMemoryConcurrentStoreSample(t *testing.T) {
	m := New(256, 1)
	for i := 0; i < 64; i++ {
		m.Store(tr(float64(i)))
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			m.Store(tr(float64(i)))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if _, err := m.Sample(32); err != nil {
				t.Errorf("Sample failed: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	if m.Len() != m.Cap() {
		t.Errorf("Len() = %d, want %d", m.Len(), m.Cap())
	}
}
