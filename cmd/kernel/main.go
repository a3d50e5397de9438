//go:build aarch64

// Command kernel is the freestanding AArch64 image QEMU's virt machine
// boots: it brings up the console, scans the device tree the bootloader
// handed it, carves the heap out of whatever RAM that tree describes,
// brings up the virtio-net device if one is present, and falls into the
// scheduler's idle loop. There is no process model and no return from
// KernelMain; everything after boot runs as cooperative threads or not at
// all.
package main

import (
	"mazarin-virt/internal/console"
	"mazarin-virt/internal/fdt"
	"mazarin-virt/internal/kernelconfig"
	"mazarin-virt/internal/sched"
	"mazarin-virt/internal/virtio"
)

// KernelMain is called by the boot assembly once BSS is zeroed and the
// boot stack is live, with x0 holding the physical address of the
// flattened device tree the bootloader (or QEMU's built-in one) provided.
// The boot assembly reaches it by its linker symbol (·main·KernelMain);
// out of scope here, per the entry glue described above.
func KernelMain(fdtPtr uintptr) {
	console.PutString("mazarin-virt booting\n")

	memBase, memSize, err := fdt.GetMemory(fdtPtr)
	if err != nil {
		console.PutString("fdt: no usable /memory node, using fallback RAM window\n")
		memBase, memSize = kernelconfig.RAMBase, kernelconfig.RAMFallbackSize
	}
	console.PutString("memory: base=0x")
	console.PutHex64(memBase)
	console.PutString(" size=")
	console.PutMemSize(memSize)
	console.PutByte('\n')

	initHeap(memBase, memSize)

	mmioBase, found := findVirtioNet(fdtPtr)
	if !found {
		console.PutString("virtio: no network device found\n")
	} else if err := startNet(mmioBase); err != nil {
		console.PutString("virtio-net: init failed\n")
	} else {
		console.PutString("virtio-net: up\n")
		spawnWorker(netPollLoop, "net poll")
	}

	console.PutString("mazarin-virt: entering scheduler idle loop\n")
	dumpThreadTable()
	for {
		sched.Yield()
	}
}

// findVirtioNet locates the virtio-net MMIO window, preferring the device
// tree and falling back to a direct scan of virt's fixed MMIO transport
// bank if the DTB carries no matching node.
func findVirtioNet(fdtPtr uintptr) (uintptr, bool) {
	if base, _, err := fdt.FindVirtioDevice(fdtPtr, virtio.DeviceIDNet); err == nil {
		return uintptr(base), true
	}
	console.PutString("virtio: no network device in device tree, probing MMIO bank directly\n")
	return virtio.ProbeBank(kernelconfig.VirtioMMIOBase, kernelconfig.VirtioMMIOStride,
		kernelconfig.VirtioMMIOCount, virtio.DeviceIDNet)
}

// dumpThreadTable prints one packed state/joinable word per thread table
// slot, for diagnosing a scheduler wedged with threads that never reach
// DEAD. Logged once at the start of the idle loop so a serial capture of
// any boot always has a baseline to compare a later hang dump against.
func dumpThreadTable() {
	console.PutString("thread table:\n")
	for i, packed := range sched.DumpThreadFlags() {
		console.PutString("  [")
		console.PutUint32(uint32(i))
		console.PutString("] flags=0x")
		console.PutHex32(packed)
		console.PutByte('\n')
	}
}
