// Package notify delivers configuration change notifications.
//
// Components subscribe to be told when the user's init file is reloaded
// or an option changes at runtime; observers are invoked synchronously on
// the loop that applied the change.
package notify

import "sync"

// ChangeType classifies a configuration change.
type ChangeType int

const (
	// ChangeSet indicates one option changed value.
	ChangeSet ChangeType = iota

	// ChangeReload indicates the whole configuration was re-evaluated.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change is one configuration change event.
type Change struct {
	// Type is the kind of change.
	Type ChangeType

	// Option is the changed option name; empty for reloads.
	Option string

	// OldValue and NewValue bracket the change; nil for reloads.
	OldValue any
	NewValue any
}

// Observer is called for each change.
type Observer func(change Change)

// Subscription is an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes the subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier fans configuration changes out to observers.
type Notifier struct {
	mu        sync.RWMutex
	observers map[uint64]Observer
	nextID    uint64
}

// New creates a Notifier.
func New() *Notifier {
	return &Notifier{
		observers: make(map[uint64]Observer),
	}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// Notify delivers a change to every observer. Observers run outside the
// lock so they may subscribe or unsubscribe safely.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.observers))
	for _, obs := range n.observers {
		observers = append(observers, obs)
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

// NotifySet is a convenience for single-option changes.
func (n *Notifier) NotifySet(option string, oldValue, newValue any) {
	n.Notify(Change{Type: ChangeSet, Option: option, OldValue: oldValue, NewValue: newValue})
}

// NotifyReload is a convenience for full reloads.
func (n *Notifier) NotifyReload() {
	n.Notify(Change{Type: ChangeReload})
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}
