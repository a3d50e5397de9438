//go:build aarch64

package main

import (
	"unsafe"

	"mazarin-virt/internal/heap"
	"mazarin-virt/internal/kernelconfig"
	"mazarin-virt/internal/sched"
	"mazarin-virt/internal/virtio"
)

var netDevice *virtio.NetDevice

// allocQueue carves size's worth of descriptor table, avail ring and used
// ring out of one freshly heap-allocated, page-aligned block, registers it
// with dev at queue index idx, and wraps it as a virtio.Queue.
func allocQueue(dev *virtio.Device, idx int, size uint16) (*virtio.Queue, error) {
	total, availOff, usedOff := virtio.ByteLayout(size)

	mem, err := heap.Alloc(uintptr(total) + virtio.PageSize) // room to round up to a page boundary
	if err != nil {
		return nil, err
	}
	addr := (uintptr(mem) + virtio.PageSize - 1) &^ (virtio.PageSize - 1)

	desc := unsafe.Slice((*virtio.Desc)(unsafe.Pointer(addr)), size)
	buf := unsafe.Slice((*byte)(unsafe.Pointer(addr)), total)

	if err := dev.SetupQueue(idx, size, uint32(addr/virtio.PageSize)); err != nil {
		return nil, err
	}
	return virtio.NewQueue(size, desc, buf[availOff:usedOff], buf[usedOff:]), nil
}

// startNet brings up the virtio-net device at mmioBase: handshake, both
// queues, and InitRX, leaving the device ready for netPollLoop to drive.
func startNet(mmioBase uintptr) error {
	dev := virtio.Open(mmioBase)
	if err := dev.Init(virtio.DeviceIDNet); err != nil {
		return err
	}

	rx, err := allocQueue(dev, virtio.RXQueueIndex, kernelconfig.NetQueueSize)
	if err != nil {
		return err
	}
	tx, err := allocQueue(dev, virtio.TXQueueIndex, kernelconfig.NetQueueSize)
	if err != nil {
		return err
	}

	nd, err := virtio.NewNetDevice(dev, rx, tx)
	if err != nil {
		return err
	}
	if err := nd.InitRX(kernelconfig.NetRXBufferSize); err != nil {
		return err
	}

	netDevice = nd
	return nil
}

// netPollLoop runs forever on its own thread, echoing every received
// packet straight back out and yielding between polls so other threads
// get the CPU between packets.
func netPollLoop(arg unsafe.Pointer) {
	for {
		if netDevice != nil {
			if pkt, ok := netDevice.Poll(); ok {
				_ = netDevice.Send(pkt)
			}
		}
		sched.Yield()
	}
}
