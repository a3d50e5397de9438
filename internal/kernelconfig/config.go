// Package kernelconfig centralizes the fixed addresses and sizes the rest
// of the kernel is built against, the way getLinkerSymbol and its siblings
// gave the original board-specific kernel a single place to look up
// platform facts instead of scattering magic numbers through every driver.
//
// Every value here is specific to QEMU's virt machine type. Porting to a
// different board means changing exactly this file.
package kernelconfig

const (
	// UARTBase is the PL011 UART's MMIO base address on virt.
	UARTBase = 0x0900_0000

	// HeapAlignment is the minimum alignment the allocator guarantees for
	// every block it hands out.
	HeapAlignment = 16

	// RAMBase is virt's RAM window origin. The FDT scanner's /memory node
	// is authoritative when present; this is the fallback used when it is
	// missing or malformed.
	RAMBase = 0x4000_0000

	// RAMFallbackSize is used alongside RAMBase when the FDT has no usable
	// /memory node.
	RAMFallbackSize = 128 * 1024 * 1024

	// VirtioMMIOBase and VirtioMMIOStride describe virt's bank of VirtIO
	// MMIO transport slots. virtio.ProbeBank scans this bank directly,
	// without the FDT, when FindVirtioDevice finds no matching node.
	VirtioMMIOBase   = 0x0a00_0000
	VirtioMMIOStride = 0x200
	VirtioMMIOCount  = 32

	// KernelImageReserve is set aside at the low end of RAM for the
	// kernel's own text/data/bss and boot stack before the allocator's
	// arena begins. The boot assembly that places the image there is out
	// of this module's scope; this is just where the heap is told to
	// start.
	KernelImageReserve = 16 * 1024 * 1024

	// NetQueueSize is the descriptor count used for both the rx and tx
	// virtqueues of the virtio-net device.
	NetQueueSize = 8

	// NetRXBufferSize is the payload capacity of each rx buffer.
	NetRXBufferSize = 1514
)
