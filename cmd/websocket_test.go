package main

import (
	"testing"

	"imoveisBack/internal/models"
)

func TestNotifyStatusDropsWhenSaturated(t *testing.T) {
	hub := NewStatusHub()

	// Nothing drains the queue here; pushing past capacity must not block
	// the caller.
	for i := 0; i < cap(hub.notify)+5; i++ {
		hub.NotifyStatus(1, models.StatusUpdate{PropertyID: i, Status: models.StatusActive})
	}

	if len(hub.notify) != cap(hub.notify) {
		t.Fatalf("expected queue pinned at capacity %d, got %d", cap(hub.notify), len(hub.notify))
	}
}
