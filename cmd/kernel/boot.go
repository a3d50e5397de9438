//go:build aarch64

package main

import (
	"unsafe"

	"mazarin-virt/internal/console"
	"mazarin-virt/internal/heap"
	"mazarin-virt/internal/kernelconfig"
	"mazarin-virt/internal/thread"
)

// workerStackSize is the stack carved for each kernel worker thread.
// There is no stack overflow detection; the stack grows down from the top
// of its heap block, so a worker that recurses or nests deeply enough
// simply corrupts that block's header and whatever heap block lies below it.
const workerStackSize = 16 * 1024

// initHeap reserves the kernel image's own footprint at the low end of
// the memory region the FDT (or the fallback) described and hands the
// rest to the allocator.
func initHeap(memBase, memSize uint64) {
	heapBase := memBase + kernelconfig.KernelImageReserve
	heapSize := memSize - kernelconfig.KernelImageReserve
	heap.SetHeap(uintptr(heapBase), uintptr(heapSize))
}

// spawnWorker carves a fresh stack out of the kernel heap and spawns fn on
// it, detaching immediately: boot-time workers run for the lifetime of
// the kernel image and are never joined.
func spawnWorker(fn func(unsafe.Pointer), label string) {
	mem, err := heap.Alloc(workerStackSize)
	if err != nil {
		console.Panic("spawnWorker: out of heap for " + label + " stack")
	}
	stack := unsafe.Slice((*byte)(mem), workerStackSize)

	h, err := thread.Spawn(fn, nil, stack)
	if err != nil {
		console.Panic("spawnWorker: " + label + ": " + "scheduler has no free thread slot")
	}
	h.Detach()
}
