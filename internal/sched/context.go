package sched

// Context holds exactly the register state a cooperative switch must
// preserve: the stack pointer, the resume program counter, the ten
// AAPCS64 callee-saved general-purpose registers (x19-x28), the frame
// pointer (x29) and link register (x30), and the two bootstrap argument
// slots a freshly spawned thread's trampoline reads fn/arg from.
//
// The field order is load-bearing. context_asm_arm64.s indexes into this
// struct by hardcoded byte offset, not by name; reordering or resizing a
// field without updating that file silently corrupts every switch.
type Context struct {
	SP  uintptr
	PC  uintptr
	X19 uintptr
	X20 uintptr
	X21 uintptr
	X22 uintptr
	X23 uintptr
	X24 uintptr
	X25 uintptr
	X26 uintptr
	X27 uintptr
	X28 uintptr
	FP  uintptr
	LR  uintptr

	InitialX0 uintptr
	InitialX1 uintptr
}
