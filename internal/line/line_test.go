package line

import "testing"

func TestEncodeDecodeAscending(t *testing.T) {
	m := New()
	for _, l := range []int{1, 2, 2, 3, 5} {
		m.Encode(l)
	}

	want := []int{1, 2, 2, 3, 5}
	for i, w := range want {
		if got := m.Decode(i); got != w {
			t.Fatalf("Decode(%d) = %d, want %d", i, got, w)
		}
	}

	if got := m.Decode(-1); got != -1 {
		t.Fatalf("Decode(-1) = %d, want -1", got)
	}
	if got := m.Decode(99); got != -1 {
		t.Fatalf("Decode(99) = %d, want -1", got)
	}
}

func TestEncodeOutOfOrderResort(t *testing.T) {
	m := New()
	for l := 9; l >= 1; l-- {
		m.Encode(l)
	}
	m.Encode(5)

	if m.Len() != 9 {
		t.Fatalf("Len() = %d, want 9", m.Len())
	}

	// After sorting ascending, line 5 sits at index 4 (lines 1..9,
	// zero-indexed) and has been hit twice: once on the initial
	// descending pass, once on the re-encode.
	if m.entries[4].line != 5 {
		t.Fatalf("entries[4].line = %d, want 5", m.entries[4].line)
	}
	if m.entries[4].instructionCount != 2 {
		t.Fatalf("entries[4].instructionCount = %d, want 2", m.entries[4].instructionCount)
	}
}

func TestEncodeReturnsMatchingRunIndex(t *testing.T) {
	m := New()
	m.Encode(3)
	m.Encode(1)
	idx := m.Encode(1)
	if m.entries[idx].line != 1 {
		t.Fatalf("Encode returned index %d for entry with line %d, want line 1", idx, m.entries[idx].line)
	}
}
