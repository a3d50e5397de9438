// Package sched implements the kernel's cooperative thread scheduler: a
// fixed table of thread control blocks, a fixed-capacity run queue, and an
// explicit context switch between them. There is no preemption and no
// second hardware thread — a running thread keeps the CPU until it calls
// Yield or ExitThread.
package sched

import (
	"errors"
	"unsafe"

	"mazarin-virt/internal/bitfield"
)

// State is a TCB's lifecycle state.
type State uint8

const (
	StateUnused State = iota
	StateRunnable
	StateRunning
	StateDead
)

// ErrNoSlot is returned by SpawnThread when all MaxThreads table entries are
// already in use.
var ErrNoSlot = errors.New("sched: no free thread slot")

// TCB is a thread control block: the saved register context plus the
// bookkeeping the scheduler needs to admit and reap it. Stacks are supplied
// by the caller (normally carved from the kernel heap) rather than owned by
// the TCB itself, mirroring the rest of the kernel's allocate-then-hand-off
// convention.
type TCB struct {
	ctx      Context
	state    State
	joinable bool
	stack    []byte
}

// State returns the TCB's current lifecycle state.
func (t *TCB) State() State {
	return t.state
}

// Joinable reports whether a thread.Handle still owns this TCB.
func (t *TCB) Joinable() bool {
	return t.joinable
}

// scheduler owns the fixed thread table, the run queue, and the context the
// CPU returns to when nothing is runnable.
type scheduler struct {
	tcbs    [MaxThreads]TCB
	runq    runQueue
	current int // index into tcbs, or -1 when running on the boot stack
	idle    Context
}

var sch scheduler

func init() {
	sch.current = -1
	for i := range sch.tcbs {
		sch.tcbs[i].state = StateUnused
	}
}

// SpawnThread admits fn as a new runnable thread running on stack, with arg
// passed through unchanged. It returns the index of the TCB the caller can
// later hand to thread.Handle, or ErrNoSlot if the fixed table is full.
//
// stack must be at least large enough for fn's own frame plus whatever it
// calls; the kernel does no stack overflow detection, per the allocator and
// scheduler design notes.
func SpawnThread(fn func(unsafe.Pointer), arg unsafe.Pointer, stack []byte) (int, error) {
	idx := -1
	for i := range sch.tcbs {
		if sch.tcbs[i].state == StateUnused {
			idx = i
			break
		}
	}
	if idx < 0 {
		return -1, ErrNoSlot
	}

	top := uintptr(unsafe.Pointer(&stack[len(stack)-1])) + 1
	top &^= 15 // 16-byte stack alignment per AAPCS64

	t := &sch.tcbs[idx]
	*t = TCB{
		state:    StateRunnable,
		joinable: true,
		stack:    stack,
	}
	t.ctx.SP = top
	t.ctx.PC = trampolinePC()
	t.ctx.InitialX0 = entryPC(fn)
	t.ctx.InitialX1 = uintptr(arg)

	sch.runq.push(idx)
	return idx, nil
}

// Yield places the current thread back onto the run queue as runnable and
// switches to the next runnable thread, which is the caller itself when no
// other thread is runnable. Called from the boot stack with nothing
// runnable, it returns without running any thread.
func Yield() {
	cur := sch.current
	if cur >= 0 {
		sch.tcbs[cur].state = StateRunnable
		sch.runq.push(cur)
	}
	Schedule()
}

// Schedule switches to the next runnable thread, skipping any Dead entries
// that slipped into the run queue before the reaper caught them. If none are
// left: a still-live current thread just keeps running (Schedule returns
// without switching anywhere), and only a dead or absent current thread
// falls through to the boot stack's saved context. It never returns until
// control switches back to whichever context called it, except in that
// keep-running case.
func Schedule() {
	next := -1
	for {
		idx, popped := sch.runq.pop()
		if !popped {
			break
		}
		if sch.tcbs[idx].state == StateDead {
			continue
		}
		next = idx
		break
	}

	// Switching away from the boot stack saves it into sch.idle, the
	// context a dead or absent current thread falls back to below.
	oldCtx := &sch.idle
	if sch.current >= 0 {
		oldCtx = &sch.tcbs[sch.current].ctx
	}

	if next < 0 {
		if sch.current >= 0 && sch.tcbs[sch.current].state != StateDead {
			return
		}
		sch.current = -1
		switchContext(oldCtx, &sch.idle)
		return
	}

	sch.tcbs[next].state = StateRunning
	sch.current = next
	switchContext(oldCtx, &sch.tcbs[next].ctx)
}

// ExitThread marks the current thread Dead and switches away from it for
// the last time. A Dead TCB's slot is only reclaimed once its thread.Handle
// is joined (a detached thread's slot is never reclaimed); SpawnThread will
// not reuse it before then.
func ExitThread() {
	if sch.current >= 0 {
		sch.tcbs[sch.current].state = StateDead
	}
	Schedule()
}

// Current returns the index of the currently running TCB, or -1 if control
// is on the boot stack.
func Current() int {
	return sch.current
}

// TCBAt returns the TCB at idx. Valid indices are those returned by
// SpawnThread.
func TCBAt(idx int) *TCB {
	return &sch.tcbs[idx]
}

// Reclaim returns idx's slot to the free pool. Callers (thread.Handle) must
// only call this once a TCB is StateDead.
func Reclaim(idx int) {
	sch.tcbs[idx] = TCB{state: StateUnused}
}

// RunQueueLen reports how many threads are currently waiting to run, for
// diagnostics and testing.
func RunQueueLen() int {
	return sch.runq.len()
}

// DumpThreadFlags packs every table slot's state and joinable bit into a
// single word per slot, for a diagnostic thread-table listing (a console
// command or a panic-time dump, never the scheduling hot path itself).
// Packing goes through reflection once per slot here, not once per
// schedule() decision, which is the tradeoff TCB keeps plain state/joinable
// fields instead of storing them pre-packed.
func DumpThreadFlags() [MaxThreads]uint32 {
	var out [MaxThreads]uint32
	for i := range sch.tcbs {
		packed, err := bitfield.PackThreadFlags(bitfield.ThreadFlags{
			State:    uint8(sch.tcbs[i].state),
			Joinable: sch.tcbs[i].joinable,
		})
		if err != nil {
			panic(err) // State/Joinable always fit their declared widths
		}
		out[i] = packed
	}
	return out
}

func trampolinePC() uintptr {
	return trampolineAddr()
}
