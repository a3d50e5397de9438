//go:build aarch64

// Package arch provides the architecture-level primitives the rest of the
// kernel is built on: volatile MMIO access, byte-wise zero/copy helpers
// (Bzero, Memcpy), and the full data-memory-barrier internal/virtio
// uses around every ring publication. All of it is backed by hand-written
// AArch64 assembly in arch_asm_arm64.s; the declarations below give that
// assembly a Go-callable ABI.
package arch

import "unsafe"

// MMIORead32 performs a volatile 32-bit load from a memory-mapped register.
//
//go:noescape
func MMIORead32(addr uintptr) uint32

// MMIOWrite32 performs a volatile 32-bit store to a memory-mapped register.
//
//go:noescape
func MMIOWrite32(addr uintptr, value uint32)

// MMIOWrite16 performs a volatile 16-bit store to a memory-mapped register.
// Used for the VirtIO legacy QUEUE_NOTIFY path, whose queue index is a
// 16-bit value even though the register window is accessed 32 bits wide on
// most of the rest of the transport.
//
//go:noescape
func MMIOWrite16(addr uintptr, value uint16)

// DMB issues a full data memory barrier (`dmb sy`). Every VirtIO ring
// publication in internal/virtio is preceded and followed by one, so the
// device never observes an index bump before the ring entry it points at.
func DMB()

// Bzero zeroes n bytes starting at ptr.
//
//go:noescape
func Bzero(ptr unsafe.Pointer, n uintptr)

// Memcpy copies n bytes from src to dst. The regions must not overlap.
//
//go:noescape
func Memcpy(dst, src unsafe.Pointer, n uintptr)
