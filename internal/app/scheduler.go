package app

import "sync"

// Scheduler queues work for the next pass of the interaction loop.
// Deferring from inside a drained function lands the work on the
// following pass, never the current one.
type Scheduler struct {
	mu    sync.Mutex
	queue []func()

	// wake is invoked once per Defer so a blocked event loop notices
	// pending work. Nil means no wakeup is needed.
	wake func()
}

// NewScheduler creates a Scheduler. wake may be nil.
func NewScheduler(wake func()) *Scheduler {
	return &Scheduler{wake: wake}
}

// Defer queues fn to run on the next Drain.
func (s *Scheduler) Defer(fn func()) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	s.queue = append(s.queue, fn)
	wake := s.wake
	s.mu.Unlock()

	if wake != nil {
		wake()
	}
}

// Drain runs everything queued before the call. Functions deferred while
// draining wait for the next Drain.
func (s *Scheduler) Drain() {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, fn := range queue {
		fn()
	}
}

// Pending returns the number of queued functions.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
