package heap

import (
	"testing"
	"unsafe"
)

// newTestArena installs a fresh heap backed by a Go-owned byte slice and
// returns it so the caller can keep it alive for the duration of the test.
func newTestArena(tb testing.TB, size int) []byte {
	tb.Helper()
	buf := make([]byte, size)
	SetHeap(uintptr(unsafe.Pointer(&buf[0])), uintptr(size))
	return buf
}

func TestAllocAlignment(t *testing.T) {
	buf := newTestArena(t, 4096)
	defer runtimeKeepAlive(buf)

	for _, n := range []uintptr{1, 2, 15, 16, 17, 100, 255} {
		p, err := Alloc(n)
		if err != nil {
			t.Fatalf("Alloc(%d): %v", n, err)
		}
		if uintptr(p)%Alignment != 0 {
			t.Errorf("Alloc(%d) returned %#x, not %d-byte aligned", n, p, Alignment)
		}
	}
}

func TestAllocContainedInArena(t *testing.T) {
	buf := newTestArena(t, 4096)
	defer runtimeKeepAlive(buf)

	base := uintptr(unsafe.Pointer(&buf[0]))
	end := base + uintptr(len(buf))

	for i := 0; i < 20; i++ {
		p, err := Alloc(32)
		if err != nil {
			t.Fatalf("Alloc: %v", err)
		}
		addr := uintptr(p)
		if addr < base || addr+32 > end {
			t.Fatalf("Alloc returned %#x, outside arena [%#x, %#x)", addr, base, end)
		}
	}
}

func TestFreeAndReuseViaFreeList(t *testing.T) {
	buf := newTestArena(t, 4096)
	defer runtimeKeepAlive(buf)

	p1, err := Alloc(64)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	statsBefore := GetStats()

	if err := Free(p1); err != nil {
		t.Fatalf("Free: %v", err)
	}
	p2, err := Alloc(64)
	if err != nil {
		t.Fatalf("Alloc after Free: %v", err)
	}
	if p1 != p2 {
		t.Errorf("same-size alloc after free did not reuse the freed block: %#x vs %#x", p1, p2)
	}
	statsAfter := GetStats()
	if statsAfter.Used != statsBefore.Used {
		t.Errorf("Used after free+realloc = %d, want %d", statsAfter.Used, statsBefore.Used)
	}
}

func TestFreeDoesNotCoalesce(t *testing.T) {
	buf := newTestArena(t, 4096)
	defer runtimeKeepAlive(buf)

	p1, _ := Alloc(32)
	p2, _ := Alloc(32)
	if err := Free(p1); err != nil {
		t.Fatalf("Free p1: %v", err)
	}
	if err := Free(p2); err != nil {
		t.Fatalf("Free p2: %v", err)
	}
	// A request too big for either individual freed block must bump a new
	// block rather than silently coalescing the two adjacent free blocks.
	before := GetStats().Used
	p3, err := Alloc(96)
	if err != nil {
		t.Fatalf("Alloc(96): %v", err)
	}
	if p3 == p1 || p3 == p2 {
		t.Error("Alloc(96) was satisfied by a freed block smaller than requested; coalescing must not happen")
	}
	if GetStats().Used <= before {
		t.Error("Alloc(96) did not bump the arena; expected a fresh block since no free block is big enough")
	}
}

func TestDoubleFree(t *testing.T) {
	buf := newTestArena(t, 4096)
	defer runtimeKeepAlive(buf)

	p, _ := Alloc(16)
	if err := Free(p); err != nil {
		t.Fatalf("first Free: %v", err)
	}
	if err := Free(p); err != ErrDoubleFree {
		t.Errorf("second Free: err = %v, want ErrDoubleFree", err)
	}
}

func TestReallocShrinkIsInPlace(t *testing.T) {
	buf := newTestArena(t, 4096)
	defer runtimeKeepAlive(buf)

	p, err := Alloc(128)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	p2, err := Realloc(p, 32)
	if err != nil {
		t.Fatalf("Realloc shrink: %v", err)
	}
	if p != p2 {
		t.Error("shrinking Realloc should keep the same pointer")
	}
}

func TestReallocGrowthCopiesData(t *testing.T) {
	buf := newTestArena(t, 4096)
	defer runtimeKeepAlive(buf)

	p, err := Alloc(16)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	src := unsafe.Slice((*byte)(p), 16)
	for i := range src {
		src[i] = byte(i + 1)
	}

	grown, err := Realloc(p, 256)
	if err != nil {
		t.Fatalf("Realloc grow: %v", err)
	}
	dst := unsafe.Slice((*byte)(grown), 16)
	for i := range dst {
		if dst[i] != byte(i+1) {
			t.Fatalf("byte %d after grow-Realloc = %d, want %d", i, dst[i], i+1)
		}
	}
}

func TestOutOfMemory(t *testing.T) {
	buf := newTestArena(t, 64)
	defer runtimeKeepAlive(buf)

	if _, err := Alloc(1024); err != ErrOutOfMemory {
		t.Errorf("Alloc beyond arena size: err = %v, want ErrOutOfMemory", err)
	}
}

//go:noinline
func runtimeKeepAlive(b []byte) {}
