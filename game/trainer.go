package game

import (
	"sync"

	"github.com/pthm-cable/seeker/neural"
)

// trainer runs training steps on a background goroutine with at most one
// step in flight. submit blocks until the previous step has finished, so the
// policy used at tick k+1 has seen every update requested up to tick k-1.
type trainer struct {
	brain *neural.Brain

	work   chan struct{}
	done   chan result
	stopCh chan struct{}
	wg     sync.WaitGroup

	inFlight bool
	pending  *result // finished step not yet collected
}

type result struct {
	neural.ReplayResult
	ok bool
}

func newTrainer(brain *neural.Brain) *trainer {
	t := &trainer{
		brain:  brain,
		work:   make(chan struct{}),
		done:   make(chan result, 1),
		stopCh: make(chan struct{}),
	}
	t.wg.Add(1)
	go t.run()
	return t
}

func (t *trainer) run() {
	defer t.wg.Done()
	for {
		select {
		case <-t.stopCh:
			return
		case <-t.work:
			r, ok := t.brain.Replay()
			t.done <- result{ReplayResult: r, ok: ok}
		}
	}
}

// submit waits for any running step and starts a new one.
func (t *trainer) submit() {
	t.wait()
	t.work <- struct{}{}
	t.inFlight = true
}

// wait blocks until no step is running.
func (t *trainer) wait() {
	if !t.inFlight {
		return
	}
	r := <-t.done
	t.inFlight = false
	t.pending = &r
}

// collect returns the most recent finished step that has not been reported.
func (t *trainer) collect() (neural.ReplayResult, bool) {
	if t.pending == nil {
		return neural.ReplayResult{}, false
	}
	r := *t.pending
	t.pending = nil
	return r.ReplayResult, r.ok
}

// stop drains the running step and exits the goroutine.
func (t *trainer) stop() {
	t.wait()
	close(t.stopCh)
	t.wg.Wait()
}
