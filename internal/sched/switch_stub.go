//go:build !aarch64

package sched

// switchContext has no hosted equivalent: a real context switch resumes a
// different machine stack, which only makes sense under the real AArch64
// asm in context_asm_arm64.s. Hosted tests exercise run-queue admission and
// TCB bookkeeping only, never an actual switch, so this is a deliberate
// no-op rather than a faithful implementation.
func switchContext(old, new *Context) {}

// trampolineAddr has no real meaning hosted: nothing ever dereferences it,
// since switchContext above never actually jumps anywhere.
func trampolineAddr() uintptr { return 0 }
