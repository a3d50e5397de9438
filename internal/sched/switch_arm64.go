//go:build aarch64

package sched

import "reflect"

// contextSwitch is implemented in context_asm_arm64.s. If old is nil the
// save half is skipped entirely; Schedule always passes a save slot (the
// boot stack, which has no TCB of its own, is saved into the scheduler's
// idle context). Loading new always restores
// sp and the callee-saved registers; if new.PC is asmThreadTrampoline's
// address, InitialX0/InitialX1 are also loaded before the branch, the
// signal that this is a thread's first run rather than a resume.
//
//go:noescape
func contextSwitch(old, new *Context)

func switchContext(old, new *Context) {
	contextSwitch(old, new)
}

// asmThreadTrampoline has no Go body; its address is all SpawnThread needs.
func asmThreadTrampoline()

func trampolineAddr() uintptr {
	return reflect.ValueOf(asmThreadTrampoline).Pointer()
}
