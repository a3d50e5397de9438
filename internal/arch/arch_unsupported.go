//go:build !aarch64

// Package arch has no hosted build: every declaration in arch.go is
// backed by AArch64 assembly. Anything that imports this package
// unconditionally, instead of behind its own aarch64-tagged file, has
// made a packaging mistake; fail loudly instead of silently linking
// against nothing.
package arch

func compileError_ARCH_REQUIRES_AARCH64_TAG()

func init() {
	compileError_ARCH_REQUIRES_AARCH64_TAG()
}
