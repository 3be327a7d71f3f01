package config

import (
	"context"
	"os"
	"sync"
	"time"
)

// Watcher polls the init file and reloads the manager when its
// modification time changes.
type Watcher struct {
	manager  *Manager
	interval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	lastMod time.Time

	// OnError receives reload failures; a failed reload keeps the
	// previous configuration. Nil means errors are dropped.
	OnError func(error)
}

// NewWatcher creates a Watcher for the manager's init file. interval <= 0
// selects a one second poll.
func NewWatcher(manager *Manager, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		manager:  manager,
		interval: interval,
	}
}

// Start begins polling. Calling Start on a running watcher is a no-op.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}

	if info, err := os.Stat(w.manager.path); err == nil {
		w.lastMod = info.ModTime()
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	go w.poll(ctx)
}

// Stop halts polling. Safe to call repeatedly.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *Watcher) poll(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check()
		}
	}
}

func (w *Watcher) check() {
	info, err := os.Stat(w.manager.path)
	if err != nil {
		return
	}

	w.mu.Lock()
	changed := info.ModTime().After(w.lastMod)
	if changed {
		w.lastMod = info.ModTime()
	}
	w.mu.Unlock()

	if !changed {
		return
	}

	if err := w.manager.Load(); err != nil && w.OnError != nil {
		w.OnError(err)
	}
}
