//go:build aarch64

package virtio

import "mazarin-virt/internal/arch"

// realMMIO backs the mmio interface with actual volatile MMIO loads and
// stores at base+off, the only place this package touches internal/arch.
type realMMIO struct {
	base uintptr
}

func (m realMMIO) Read32(off uintptr) uint32 {
	return arch.MMIORead32(m.base + off)
}

func (m realMMIO) Write32(off uintptr, v uint32) {
	arch.MMIOWrite32(m.base+off, v)
}

func (m realMMIO) Write16(off uintptr, v uint16) {
	arch.MMIOWrite16(m.base+off, v)
}

// Open wraps the VirtIO legacy MMIO window at base as a Device, ready for
// Init.
func Open(base uintptr) *Device {
	return newDevice(realMMIO{base: base})
}

// ProbeBank scans count fixed-stride MMIO windows starting at base for a
// live device matching deviceID, reading MAGIC_VALUE and DEVICE_ID directly
// the way the FDT scanner's own device discovery does, without consulting
// the device tree at all. QEMU's virt machine places its virtio-mmio
// transports in such a bank (kernelconfig.VirtioMMIOBase/Stride/Count);
// this is the fallback path cmd/kernel uses when the DTB carries no
// virtio-mmio node for some reason, rather than giving up on networking
// entirely.
func ProbeBank(base, stride uintptr, count int, deviceID uint32) (uintptr, bool) {
	for i := 0; i < count; i++ {
		winBase := base + uintptr(i)*stride
		regs := realMMIO{base: winBase}
		if regs.Read32(regMagicValue) != mmioMagic {
			continue
		}
		if regs.Read32(regDeviceID) != deviceID {
			continue
		}
		return winBase, true
	}
	return 0, false
}
