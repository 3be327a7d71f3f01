package notify

import "testing"

func TestSubscribeAndNotify(t *testing.T) {
	n := New()

	var got []Change
	n.Subscribe(func(c Change) { got = append(got, c) })

	n.NotifySet("walk_depth", 4, 6)
	n.NotifyReload()

	if len(got) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(got))
	}
	if got[0].Type != ChangeSet || got[0].Option != "walk_depth" {
		t.Errorf("got %+v", got[0])
	}
	if got[1].Type != ChangeReload {
		t.Errorf("got %+v", got[1])
	}
}

func TestUnsubscribe(t *testing.T) {
	n := New()

	count := 0
	sub := n.Subscribe(func(Change) { count++ })
	n.NotifyReload()
	sub.Unsubscribe()
	n.NotifyReload()

	if count != 1 {
		t.Errorf("expected 1 delivery, got %d", count)
	}
}

func TestObserverMaySubscribeDuringNotify(t *testing.T) {
	n := New()

	n.Subscribe(func(Change) {
		n.Subscribe(func(Change) {})
	})

	// Must not deadlock.
	n.NotifyReload()
}
