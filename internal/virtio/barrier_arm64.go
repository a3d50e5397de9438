//go:build aarch64

package virtio

import "mazarin-virt/internal/arch"

func dmb() {
	arch.DMB()
}
