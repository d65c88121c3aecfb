// Package ustring implements the VM's only object kind: a heap-resident,
// length-prefixed UTF-8 string. Every String is backed by storage taken
// from internal/heap, mirroring the C original's
// hdb_object_create-through-hdb_ustring_create allocation path.
package ustring

import (
	"unicode/utf8"

	"github.com/houthacker/hdb/internal/heap"
	"github.com/houthacker/hdb/internal/object"
	"github.com/houthacker/hdb/internal/value"
)

// String is a UTF-8 byte sequence together with its code-point count.
// Invariant: ByteLength() >= Len(); for valid UTF-8 the two are equal
// exactly when the string is pure ASCII. A String remembers the heap it was carved from
// so it can satisfy object.Object and value.Ref without every caller
// threading a *heap.Heap through each method.
type String struct {
	h          *heap.Heap
	block      *heap.Block
	byteLength int
	length     int
}

// Type implements object.Object.
func (s *String) Type() object.Type { return object.TypeString }

// Bytes returns the string's raw UTF-8 content.
func (s *String) Bytes() []byte {
	if s.block == nil {
		return nil
	}
	return s.block.Bytes(s.h)[:s.byteLength]
}

// ByteLength reports the number of bytes in the string.
func (s *String) ByteLength() int { return s.byteLength }

// String renders the string's content for disassembly and REPL output.
func (s *String) String() string { return string(s.Bytes()) }

// Len reports the number of UTF-8 code points in the string.
func (s *String) Len() int { return s.length }

// Equal implements value.Ref: two strings are equal iff their byte
// lengths match and their raw bytes match.
func (s *String) Equal(other value.Ref) bool {
	o, ok := other.(*String)
	if !ok {
		return false
	}
	if s == o {
		return true
	}
	if s.byteLength != o.byteLength {
		return false
	}

	sb, ob := s.Bytes(), o.Bytes()
	for i := range sb {
		if sb[i] != ob[i] {
			return false
		}
	}
	return true
}

// countUnits counts UTF-8 code points with unicode/utf8.RuneCount. For
// valid UTF-8 this gives the same count as the C source's rule: a byte
// starts a new code point iff its top two bits are not "10" (i.e. it is
// not a UTF-8 continuation byte). On malformed input the two differ:
// RuneCount counts each byte of an invalid sequence as one code point,
// including stray continuation bytes, which byteLengthForUnits below
// does not count.
func countUnits(b []byte) int {
	return utf8.RuneCount(b)
}

func isContinuationByte(b byte) bool {
	return b&0xc0 == 0x80
}

// byteLengthForUnits returns the number of bytes chars' first `units`
// code points occupy, mirroring the C source's byte_length() helper:
// walk forward, stopping as soon as one more code point than requested
// has started.
func byteLengthForUnits(chars []byte, units int) int {
	unitCount := 0
	for i := 0; i < len(chars); i++ {
		if !isContinuationByte(chars[i]) {
			unitCount++
			if unitCount > units {
				return i
			}
		}
	}
	return len(chars)
}

func create(h *heap.Heap, chars []byte, byteLen int) (*String, error) {
	if byteLen > len(chars) {
		byteLen = len(chars)
	}

	block, err := h.Allocate(byteLen)
	if err != nil {
		return nil, err
	}

	s := &String{
		h:          h,
		block:      block,
		byteLength: byteLen,
		length:     countUnits(chars[:byteLen]),
	}
	if block != nil {
		copy(block.Bytes(h), chars[:byteLen])
	}
	return s, nil
}

// Create wraps the given bytes in a new heap-resident String, computing
// its UTF-8 code-point count. It is the Go analogue of
// hdb_ustring_create.
func Create(h *heap.Heap, chars []byte) (*String, error) {
	return create(h, chars, len(chars))
}

// NCreate wraps the first units code points of chars in a new
// heap-resident String. It is the Go analogue of hdb_ustring_ncreate.
func NCreate(h *heap.Heap, chars []byte, units int) (*String, error) {
	return create(h, chars, byteLengthForUnits(chars, units))
}

// Concatenate returns a new String whose bytes and code-point count are
// the sums of left's and right's. Concatenating with an empty string on
// either side returns a string equal (in bytes and unit count) to the
// non-empty operand, satisfying the round-trip property in SPEC_FULL.md
// §8.
func Concatenate(h *heap.Heap, left, right *String) (*String, error) {
	merged := make([]byte, 0, left.ByteLength()+right.ByteLength())
	merged = append(merged, left.Bytes()...)
	merged = append(merged, right.Bytes()...)

	return create(h, merged, len(merged))
}
