package heap

import "testing"

func TestNewAlignsToPowerOfTwo(t *testing.T) {
	h, err := New(200, 2048)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v := h.View()
	if v.CurrentSize != 256 {
		t.Fatalf("current size = %d, want 256 (next pow2 of 200)", v.CurrentSize)
	}
	if v.FreeBlocks != 1 {
		t.Fatalf("free blocks = %d, want 1", v.FreeBlocks)
	}
}

func TestInvalidBounds(t *testing.T) {
	if _, err := New(0, 100); err == nil {
		t.Fatal("expected error for min=0")
	}
	if _, err := New(100, 50); err == nil {
		t.Fatal("expected error for max<min")
	}
}

func TestAllocateSplitsAndTracksFree(t *testing.T) {
	h, err := New(256, 2048)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var allocated []*Block
	for {
		b, err := h.Allocate(1)
		if err != nil {
			t.Fatalf("Allocate: %v", err)
		}
		if b == nil {
			t.Fatal("unexpected nil block for size 1")
		}
		if len(b.Bytes(h)) < 32 {
			t.Fatalf("physical block size = %d, want >= 32", len(b.Bytes(h)))
		}
		allocated = append(allocated, b)

		v := h.View()
		if v.CurrentFree+sizeOfAllocated(allocated) != v.CurrentSize {
			t.Fatalf("accounting mismatch: free=%d allocated=%d size=%d", v.CurrentFree, sizeOfAllocated(allocated), v.CurrentSize)
		}
		if v.CurrentFree < 32 {
			break
		}
	}

	v := h.View()
	for _, b := range allocated {
		h.Free(b)
	}
	v = h.View()
	if v.CurrentFree != v.CurrentSize {
		t.Fatalf("after freeing all: current_free=%d != current_size=%d", v.CurrentFree, v.CurrentSize)
	}

	h.Compact()
	v = h.View()
	if v.FreeBlocks != 1 {
		t.Fatalf("after compact: free blocks = %d, want 1", v.FreeBlocks)
	}
}

func sizeOfAllocated(blocks []*Block) int {
	total := 0
	for _, b := range blocks {
		total += b.inner.size
	}
	return total
}

func TestAllocateZeroReturnsNil(t *testing.T) {
	h, _ := New(256, 256)
	b, err := h.Allocate(0)
	if err != nil || b != nil {
		t.Fatalf("Allocate(0) = %v, %v; want nil, nil", b, err)
	}
}

func TestReallocateGrowsAndPreservesData(t *testing.T) {
	h, err := New(256, 2048)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	b, err := h.Allocate(4)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	copy(b.Bytes(h), []byte{1, 2, 3, 4})

	grown, err := h.Reallocate(b, 64)
	if err != nil {
		t.Fatalf("Reallocate: %v", err)
	}
	got := grown.Bytes(h)[:4]
	want := []byte{1, 2, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("data not preserved: got %v want %v", got, want)
		}
	}
}

func TestGrowsArenaWhenExhausted(t *testing.T) {
	h, err := New(32, 1024)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// The initial 32-byte arena holds exactly one 1-byte allocation
	// (blockSize=32, nothing left to split). The next allocation must
	// grow the arena.
	if _, err := h.Allocate(1); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if _, err := h.Allocate(1); err != nil {
		t.Fatalf("Allocate after growth: %v", err)
	}

	v := h.View()
	if v.CurrentSize <= 32 {
		t.Fatalf("expected arena to have grown past 32, got %d", v.CurrentSize)
	}
}
