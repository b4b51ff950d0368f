package ws

import (
	"testing"

	"go.uber.org/zap"
)

func registeredConn(n *Notifier, sessionID string) *conn {
	c := &conn{
		sessionID: sessionID,
		send:      make(chan []byte, 8),
		logger:    n.logger,
	}
	n.add(c)
	return c
}

func TestSessionInvalidatedTwiceDoesNotPanic(t *testing.T) {
	n := NewNotifier(zap.NewNop())
	c := registeredConn(n, "sid-1")

	// A logout racing an upstream 401 publishes two invalidation events for
	// the same session; the conn is still registered until its pumps unwind.
	n.SessionInvalidated("sid-1", "logout")
	n.SessionInvalidated("sid-1", "unauthorized")

	msg, ok := <-c.send
	if !ok {
		t.Fatal("first notice should have been delivered")
	}
	if len(msg) == 0 {
		t.Fatal("notice payload empty")
	}
	if _, ok := <-c.send; ok {
		t.Fatal("channel should be closed after shutdown, delivering no second notice")
	}
}

func TestEnqueueAfterShutdownIsSilent(t *testing.T) {
	n := NewNotifier(zap.NewNop())
	c := registeredConn(n, "sid-2")

	c.shutdown()
	c.enqueue([]byte(`{"type":"session_invalidated"}`))
	c.shutdown()

	if _, ok := <-c.send; ok {
		t.Fatal("no notice should land after shutdown")
	}
}

func TestRemoveDropsEmptySessionBucket(t *testing.T) {
	n := NewNotifier(zap.NewNop())
	a := registeredConn(n, "sid-3")
	b := registeredConn(n, "sid-3")

	n.remove(a)
	n.mu.RLock()
	remaining := len(n.conns["sid-3"])
	n.mu.RUnlock()
	if remaining != 1 {
		t.Fatalf("remaining conns = %d, want 1", remaining)
	}

	n.remove(b)
	n.mu.RLock()
	_, exists := n.conns["sid-3"]
	n.mu.RUnlock()
	if exists {
		t.Fatal("empty session bucket should be deleted")
	}
}
