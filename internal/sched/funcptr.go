package sched

import "unsafe"

// funcval mirrors the runtime's own representation of a func value: a
// pointer to a structure whose first word is the function's entry address.
// A non-capturing func, which is all SpawnThread ever receives, has no
// fields after fn. A func value itself is one machine word pointing at such
// a structure; entryPC and threadTrampolineGo convert a Go func value to and
// from that bare word, the only form the trampoline's argument registers
// from context_asm_arm64.s can carry.
type funcval struct {
	fn uintptr
}

// entryPC returns fn's func value word: the address of the funcval whose
// first word is fn's code address. fn must not be a closure
// that captures variables; SpawnThread only ever passes top-level or
// variable-free function literals.
func entryPC(fn func(unsafe.Pointer)) uintptr {
	return (*funcval)(unsafe.Pointer(&fn)).fn
}

// threadTrampolineGo is the Go-level half of the bootstrap trampoline.
// context_asm_arm64.s's asmThreadTrampoline is the PC every freshly spawned
// thread's Context.PC points at; it loads InitialX0/InitialX1 into the
// first two argument registers and branches here, never returning itself.
// threadTrampolineGo reconstructs the callable func value from the bare
// word entryPC produced, runs it, and hands the thread off to ExitThread.
//
//go:noinline
func threadTrampolineGo(fnPC, arg uintptr) {
	fv := funcval{fn: fnPC}
	entry := *(*func(unsafe.Pointer))(unsafe.Pointer(&fv))
	entry(unsafe.Pointer(arg))
	ExitThread()
	for {
	}
}
