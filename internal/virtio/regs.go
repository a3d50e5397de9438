// Package virtio implements the legacy (pre-1.0) VirtIO MMIO transport
// QEMU's virt machine exposes: a bank of fixed-layout MMIO register
// windows, one per device, each driving one or more split virtqueues.
package virtio

// Legacy MMIO register offsets, all relative to a device's own window.
const (
	regMagicValue     = 0x000
	regVersion        = 0x004
	regDeviceID       = 0x008
	regVendorID       = 0x00c
	regHostFeatures   = 0x010
	regGuestFeatures  = 0x020
	regGuestPageSize  = 0x028
	regQueueSel       = 0x030
	regQueueNumMax    = 0x034
	regQueueNum       = 0x038
	regQueueAlign     = 0x03c
	regQueuePFN       = 0x040
	regQueueNotify    = 0x050
	regInterruptStat  = 0x060
	regInterruptACK   = 0x064
	regStatus         = 0x070
)

const mmioMagic = 0x74726976 // "virt" little-endian

const legacyVersion = 1

// Status register bits (legacy virtio device status byte).
const (
	statusAcknowledge = 1 << 0
	statusDriver      = 1 << 1
	statusDriverOK    = 1 << 2
)

// PageSize is the QUEUE_ALIGN / PFN granularity the legacy transport uses.
const PageSize = 4096

// DeviceID values (virtio device-id registry, the subset this kernel
// cares about).
const (
	DeviceIDNet = 1
)
