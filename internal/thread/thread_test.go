package thread

import (
	"testing"
	"unsafe"
)

func noopEntry(arg unsafe.Pointer) {}

func expectFatal(t *testing.T, label string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected a fatal panic, got none", label)
		}
	}()
	fn()
}

func TestSpawnReturnsJoinableHandle(t *testing.T) {
	h, err := Spawn(noopEntry, nil, make([]byte, 4096))
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if !h.Joinable() {
		t.Error("freshly spawned Handle should be joinable")
	}
}

func TestDetachClearsJoinable(t *testing.T) {
	h, err := Spawn(noopEntry, nil, make([]byte, 4096))
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	h.Detach()
	if h.Joinable() {
		t.Error("Joinable() should be false after Detach")
	}
}

func TestDoubleDetachIsFatal(t *testing.T) {
	h, err := Spawn(noopEntry, nil, make([]byte, 4096))
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	h.Detach()
	expectFatal(t, "second Detach", func() { h.Detach() })
}

func TestJoinOnZeroValueIsFatal(t *testing.T) {
	var h Handle
	expectFatal(t, "Join on zero-value Handle", func() { h.Join() })
}

func TestCloseOnJoinableHandleIsFatal(t *testing.T) {
	h, err := Spawn(noopEntry, nil, make([]byte, 4096))
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	expectFatal(t, "Close while joinable", func() { h.Close() })
}

func TestCloseAfterDetachIsSafe(t *testing.T) {
	h, err := Spawn(noopEntry, nil, make([]byte, 4096))
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	h.Detach()
	h.Close() // must not panic
}
