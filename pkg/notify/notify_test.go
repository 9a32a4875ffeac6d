package notify

import (
	"testing"
	"time"
)

func TestPushAndAutoDismiss(t *testing.T) {
	hub := NewHub()
	hub.Push(SeverityInfo, "syncing", 30*time.Millisecond)

	if got := len(hub.Active()); got != 1 {
		t.Fatalf("active = %d, want 1", got)
	}

	deadline := time.Now().Add(time.Second)
	for len(hub.Active()) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("notification was not auto-dismissed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCloseCancelsAutoDismiss(t *testing.T) {
	hub := NewHub()
	n := hub.Push(SeverityError, "sync failed", time.Hour)

	if !hub.Close(n.ID) {
		t.Fatal("Close returned false for an active notification")
	}
	if got := len(hub.Active()); got != 0 {
		t.Fatalf("active = %d after close, want 0", got)
	}
	if hub.Close(n.ID) {
		t.Fatal("Close returned true for an already-dismissed notification")
	}
}

func TestStackingOffsets(t *testing.T) {
	hub := NewHub()
	first := hub.Push(SeveritySuccess, "sale synced", time.Hour)
	hub.Push(SeverityWarning, "printer offline", time.Hour)
	hub.Push(SeverityInfo, "refreshing", time.Hour)

	active := hub.Active()
	if len(active) != 3 {
		t.Fatalf("active = %d, want 3", len(active))
	}
	for i, n := range active {
		if n.Offset != i {
			t.Errorf("offset[%d] = %d, want %d", i, n.Offset, i)
		}
	}

	// Closing the first notification compacts the stack.
	hub.Close(first.ID)
	active = hub.Active()
	if len(active) != 2 {
		t.Fatalf("active = %d after close, want 2", len(active))
	}
	if active[0].Offset != 0 || active[1].Offset != 1 {
		t.Errorf("offsets not compacted: %d, %d", active[0].Offset, active[1].Offset)
	}
}
