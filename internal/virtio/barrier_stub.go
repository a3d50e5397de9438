//go:build !aarch64

package virtio

// dmb is a no-op hosted: there is no second party reading these rings
// concurrently, only the test itself.
func dmb() {}
