package virtio

import (
	"errors"
	"unsafe"

	"mazarin-virt/internal/heap"
)

// netHeaderSize is sizeof(virtio_net_hdr) without the mergeable-rx-buffers
// extension: flags(1) gso_type(1) hdr_len(2) gso_size(2) csum_start(2)
// csum_offset(2).
const netHeaderSize = 10

// Queue indices a virtio-net device always exposes in this order.
const (
	RXQueueIndex = 0
	TXQueueIndex = 1
)

var (
	ErrRXNotInitialized = errors.New("virtio: rx queue not initialized")
	ErrTXQueueFull       = errors.New("virtio: tx queue has no free descriptors")
	ErrPayloadTooLarge   = errors.New("virtio: payload larger than rx buffer")
)

// NetDevice drives a VirtIO legacy network device through its rx and tx
// queues. It polls the used rings rather than taking interrupts, matching
// the kernel's cooperative, single-hardware-thread scheduling model.
type NetDevice struct {
	dev *Device
	rx  *Queue
	tx  *Queue

	rxBufs [][]byte // one device-writable buffer per rx descriptor, indexed by head
	txBufs [][]byte // header+payload buffer per in-flight tx descriptor, indexed by head
}

// NewNetDevice wires an already-Init'd Device to its rx and tx queues.
func NewNetDevice(dev *Device, rx, tx *Queue) (*NetDevice, error) {
	rxBufs, err := allocBufSlots(int(rx.Size))
	if err != nil {
		return nil, err
	}
	txBufs, err := allocBufSlots(int(tx.Size))
	if err != nil {
		return nil, err
	}
	return &NetDevice{
		dev:    dev,
		rx:     rx,
		tx:     tx,
		rxBufs: rxBufs,
		txBufs: txBufs,
	}, nil
}

// InitRX arms every rx descriptor with a fresh device-writable buffer of
// netHeaderSize+bufSize bytes (header plus bufSize of payload), carved from the kernel heap like
// every other buffer this kernel owns, and publishes all of them to the
// device, so incoming packets have somewhere to land before Poll is ever
// called.
func (n *NetDevice) InitRX(bufSize int) error {
	for {
		head, ok := n.rx.AllocDesc()
		if !ok {
			break
		}
		buf, err := allocBuf(netHeaderSize + bufSize)
		if err != nil {
			return err
		}
		n.rxBufs[head] = buf
		n.rx.Desc[head] = Desc{
			Addr:  uint64(uintptr(unsafe.Pointer(&buf[0]))),
			Len:   uint32(len(buf)),
			Flags: descFlagWrite,
			Next:  0,
		}
		n.rx.PushAvailable(head)
	}
	n.dev.SetDriverOK()
	return nil
}

// allocBuf carves an n-byte buffer off the kernel heap. Packet buffers are
// long-lived kernel-owned memory exactly like thread stacks and virtqueue
// rings, so they come from the same allocator rather than a separate pool.
func allocBuf(n int) ([]byte, error) {
	mem, err := heap.Alloc(uintptr(n))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(mem), n), nil
}

// allocBufSlots carves the rxBufs/txBufs bookkeeping table itself off the
// kernel heap: n consecutive slice headers, uninitialized until InitRX or
// Send fills them in. Every slot that's ever read back (Poll, Send) was
// written first by AllocDesc handing out that same head, so the
// uninitialized slots in between are never dereferenced.
func allocBufSlots(n int) ([][]byte, error) {
	mem, err := heap.Alloc(uintptr(n) * unsafe.Sizeof([]byte{}))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*[]byte)(mem), n), nil
}

// Send transmits payload as a single virtio-net frame: a zeroed header
// descriptor chained to a read-only payload descriptor.
//
// Completed tx descriptor chains are never reclaimed from PopUsed once the
// device reports them done; SpawnThread-style churn on Send will
// eventually exhaust the tx free list. This mirrors the driver's own
// design notes rather than papering over them.
func (n *NetDevice) Send(payload []byte) error {
	hdrHead, ok := n.tx.AllocDesc()
	if !ok {
		return ErrTXQueueFull
	}
	payloadHead, ok := n.tx.AllocDesc()
	if !ok {
		n.tx.FreeDescChain(hdrHead)
		return ErrTXQueueFull
	}

	buf, err := allocBuf(netHeaderSize + len(payload))
	if err != nil {
		n.tx.FreeDescChain(hdrHead)
		return err
	}
	for i := 0; i < netHeaderSize; i++ {
		buf[i] = 0
	}
	copy(buf[netHeaderSize:], payload)
	n.txBufs[hdrHead] = buf

	n.tx.Desc[hdrHead] = Desc{
		Addr:  uint64(uintptr(unsafe.Pointer(&buf[0]))),
		Len:   netHeaderSize,
		Flags: descFlagNext,
		Next:  payloadHead,
	}
	n.tx.Desc[payloadHead] = Desc{
		Addr: uint64(uintptr(unsafe.Pointer(&buf[netHeaderSize]))),
		Len:  uint32(len(payload)),
	}

	n.tx.PushAvailable(hdrHead)
	n.dev.Notify(TXQueueIndex)
	return nil
}

// Poll drains at most one completed entry from the rx used ring, returning
// the packet payload (header stripped) if one is ready. The descriptor is
// immediately re-armed with the same buffer and pushed back to the device,
// so a steady stream of packets never runs rx out of buffers, regardless of
// whether the copy below succeeds.
func (n *NetDevice) Poll() (packet []byte, ok bool) {
	head, length, ok := n.rx.PopUsed()
	if !ok {
		return nil, false
	}
	buf := n.rxBufs[head]
	payloadLen := 0
	if int(length) > netHeaderSize {
		payloadLen = int(length) - netHeaderSize
	}

	n.rx.Desc[head] = Desc{
		Addr:  uint64(uintptr(unsafe.Pointer(&buf[0]))),
		Len:   uint32(len(buf)),
		Flags: descFlagWrite,
	}
	n.rx.PushAvailable(head)

	packet, err := allocBuf(payloadLen)
	if err != nil {
		return nil, false
	}
	copy(packet, buf[netHeaderSize:netHeaderSize+payloadLen])
	return packet, true
}
