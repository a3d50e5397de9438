package bitfield

// ThreadFlags packs a thread control block's lifecycle state together with
// its joinable bit into a single 32-bit word, the way PageFlags packs a
// page's allocated/kernel bits. Kept separate from the TCB struct itself so
// the scheduler's hot path (state reads/writes on every schedule() call)
// never goes through reflection — only PackThreadFlags does, and it is
// called only from the scheduler's diagnostic dump (sched.DumpThreadFlags),
// not once per scheduling decision.
type ThreadFlags struct {
	// State is one of the scheduler's lifecycle states (see sched.State).
	State uint8 `bitfield:",2"`

	// Joinable indicates whether a thread.Handle still owns this TCB.
	Joinable bool `bitfield:",1"`

	// Reserved bits for future use.
	Reserved uint32 `bitfield:",29"`
}

// PackThreadFlags packs f into a 32-bit word using the generic reflective
// packer. Returns an error if a field value does not fit its declared width.
func PackThreadFlags(f ThreadFlags) (uint32, error) {
	packed, err := Pack(f, &Config{NumBits: 32})
	if err != nil {
		return 0, err
	}
	return uint32(packed), nil
}

// UnpackThreadFlags reverses PackThreadFlags. Unlike Pack, unpacking does
// not need reflection: the bit layout is fixed, so a direct shift/mask is
// both simpler and avoids paying reflection cost on every read.
func UnpackThreadFlags(packed uint32) ThreadFlags {
	return ThreadFlags{
		State:    uint8(packed & 0x3),
		Joinable: (packed>>2)&0x1 != 0,
		Reserved: (packed >> 3) & 0x1FFFFFFF,
	}
}
