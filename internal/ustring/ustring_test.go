package ustring

import (
	"testing"

	"github.com/houthacker/hdb/internal/heap"
)

func newHeap(t *testing.T) *heap.Heap {
	t.Helper()
	h, err := heap.New(4096, 1<<20)
	if err != nil {
		t.Fatalf("heap.New: %v", err)
	}
	return h
}

func TestCreateASCII(t *testing.T) {
	h := newHeap(t)
	s, err := Create(h, []byte("hello"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ByteLength() != 5 || s.Len() != 5 {
		t.Fatalf("byteLength=%d len=%d, want 5/5", s.ByteLength(), s.Len())
	}
	if string(s.Bytes()) != "hello" {
		t.Fatalf("Bytes() = %q, want hello", s.Bytes())
	}
}

func TestCreateMultibyte(t *testing.T) {
	h := newHeap(t)
	s, err := Create(h, []byte("i ♥ u"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ByteLength() <= s.Len() {
		t.Fatalf("byteLength=%d should exceed unit length=%d for multibyte text", s.ByteLength(), s.Len())
	}
}

func TestNCreate(t *testing.T) {
	h := newHeap(t)
	s, err := NCreate(h, []byte("hello world"), 5)
	if err != nil {
		t.Fatalf("NCreate: %v", err)
	}
	if string(s.Bytes()) != "hello" {
		t.Fatalf("Bytes() = %q, want hello", s.Bytes())
	}
}

func TestConcatenate(t *testing.T) {
	h := newHeap(t)
	a, _ := Create(h, []byte("st"))
	b, _ := Create(h, []byte("ri"))
	c, _ := Create(h, []byte("ng"))

	ab, err := Concatenate(h, a, b)
	if err != nil {
		t.Fatalf("Concatenate: %v", err)
	}
	abc, err := Concatenate(h, ab, c)
	if err != nil {
		t.Fatalf("Concatenate: %v", err)
	}
	if string(abc.Bytes()) != "string" {
		t.Fatalf("Bytes() = %q, want string", abc.Bytes())
	}
}

func TestConcatenateEmptyIsIdentity(t *testing.T) {
	h := newHeap(t)
	a, _ := Create(h, []byte("value"))
	empty, _ := Create(h, []byte(""))

	right, err := Concatenate(h, a, empty)
	if err != nil {
		t.Fatalf("Concatenate: %v", err)
	}
	if !a.Equal(right) {
		t.Fatalf("a+empty != a")
	}

	left, err := Concatenate(h, empty, a)
	if err != nil {
		t.Fatalf("Concatenate: %v", err)
	}
	if !a.Equal(left) {
		t.Fatalf("empty+a != a")
	}
}

func TestEqual(t *testing.T) {
	h := newHeap(t)
	a, _ := Create(h, []byte("abc"))
	b, _ := Create(h, []byte("abc"))
	c, _ := Create(h, []byte("abcd"))

	if !a.Equal(b) {
		t.Fatal("expected equal strings with identical bytes to be Equal")
	}
	if a.Equal(c) {
		t.Fatal("expected strings with different byte length to not be Equal")
	}
}
