//go:build !aarch64

package main

// This kernel image only makes sense built with -tags aarch64, targeting
// QEMU's virt machine. Building it any other way is a build configuration
// mistake, not a supported cross-compilation target, so fail the build
// loudly rather than producing a binary that boots into nothing useful.
func init() {
	compileError_BUILD_WITH_AARCH64_TAG()
}
