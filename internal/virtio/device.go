package virtio

import "errors"

var (
	ErrBadMagic           = errors.New("virtio: bad magic value")
	ErrUnsupportedVersion = errors.New("virtio: not a legacy (version 1) device")
	ErrWrongDevice        = errors.New("virtio: device id mismatch")
	ErrNoSuchQueue        = errors.New("virtio: queue index not implemented by device")
	ErrQueueTooLarge      = errors.New("virtio: requested queue size exceeds QueueNumMax")
)

// mmio is the register-level access a Device needs. The real
// implementation (device_arm64.go) backs it with volatile loads/stores
// through internal/arch; hosted tests back it with a plain in-memory
// register file.
type mmio interface {
	Read32(off uintptr) uint32
	Write32(off uintptr, v uint32)
	Write16(off uintptr, v uint16)
}

// Device is one VirtIO legacy MMIO register window, already probed and
// walked through ACKNOWLEDGE/DRIVER but not yet DRIVER_OK.
type Device struct {
	regs mmio
}

func newDevice(regs mmio) *Device {
	return &Device{regs: regs}
}

// Init validates the device's magic value and version, resets it, and walks
// the legacy status handshake: ACKNOWLEDGE, then DRIVER. The legacy
// transport has no FEATURES_OK step (that's modern/1.0 virtio); feature
// negotiation is skipped entirely and the device's defaults are accepted.
// SetDriverOK finishes the handshake once queues are set up.
func (d *Device) Init(expectedDeviceID uint32) error {
	if d.regs.Read32(regMagicValue) != mmioMagic {
		return ErrBadMagic
	}
	if d.regs.Read32(regVersion) != legacyVersion {
		return ErrUnsupportedVersion
	}
	if d.regs.Read32(regDeviceID) != expectedDeviceID {
		return ErrWrongDevice
	}

	d.regs.Write32(regStatus, 0)
	d.regs.Write32(regStatus, statusAcknowledge)
	d.regs.Write32(regStatus, statusAcknowledge|statusDriver)

	d.regs.Write32(regGuestFeatures, 0)
	d.regs.Write32(regGuestPageSize, PageSize)
	return nil
}

// SetupQueue selects queue idx, checks size against the device's
// advertised maximum, and publishes the queue's physical page frame
// number. The queue's backing memory (descriptor table + avail + used
// rings) must already be laid out at queuePFN*PageSize per legacy layout
// rules; ByteLayout computes that layout.
func (d *Device) SetupQueue(idx int, size uint16, queuePFN uint32) error {
	d.regs.Write32(regQueueSel, uint32(idx))
	max := d.regs.Read32(regQueueNumMax)
	if max == 0 {
		return ErrNoSuchQueue
	}
	if uint32(size) > max {
		return ErrQueueTooLarge
	}
	d.regs.Write32(regQueueNum, uint32(size))
	d.regs.Write32(regQueueAlign, PageSize)
	d.regs.Write32(regQueuePFN, queuePFN)
	return nil
}

// Notify kicks the device for queue queueIdx, telling it the avail ring has
// new entries.
func (d *Device) Notify(queueIdx uint16) {
	d.regs.Write16(regQueueNotify, queueIdx)
}

// SetDriverOK sets the DRIVER_OK status bit, the final handshake step:
// from here on the device may start consuming the avail ring.
func (d *Device) SetDriverOK() {
	s := d.regs.Read32(regStatus)
	d.regs.Write32(regStatus, s|statusDriverOK)
}

// InterruptStatus and AckInterrupt expose the legacy interrupt-status
// register pair, for a polling driver that wants to distinguish "used ring
// updated" from "configuration changed" without relying on an actual IRQ.
func (d *Device) InterruptStatus() uint32 {
	return d.regs.Read32(regInterruptStat)
}

func (d *Device) AckInterrupt(bits uint32) {
	d.regs.Write32(regInterruptACK, bits)
}
