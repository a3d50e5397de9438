package virtio

import (
	"testing"
	"unsafe"

	"mazarin-virt/internal/heap"
)

// TestMain seeds the package-level heap singleton once before any test
// runs: NetDevice carves its packet buffers from internal/heap the same
// way production code does, so the tests need a live arena behind it.
func TestMain(m *testing.M) {
	arena := make([]byte, 1<<20)
	heap.SetHeap(uintptr(unsafe.Pointer(&arena[0])), uintptr(len(arena)))
	m.Run()
}
