// Package value implements the VM's tagged value type: booleans, null,
// 64-bit floats, and non-owning references to heap objects.
package value

import "strconv"

// Kind discriminates the variant held by a Value, the Go-idiomatic
// replacement for the C original's union-plus-enum-tag pair.
type Kind int

const (
	KindBool Kind = iota
	KindNull
	KindNumber
	KindObject
)

// Ref is the non-owning reference a Value carries for the Object variant.
// Ownership of the referenced object lives on the VM's object collection
// (see internal/vm), not here, per SPEC_FULL.md's "sum type, non-owning
// reference" design note.
type Ref interface {
	// Equal reports whether two object references hold equal values,
	// e.g. two strings with identical bytes.
	Equal(Ref) bool
}

// Value is the tagged sum type threaded through the compiler's constant
// pool and the VM's stack.
type Value struct {
	kind   Kind
	number float64
	boolean bool
	obj    Ref
}

// Bool constructs a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolean: b} }

// Null constructs the null value.
func Null() Value { return Value{kind: KindNull} }

// Number constructs a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, number: n} }

// Object constructs an object-reference value.
func Object(ref Ref) Value { return Value{kind: KindObject, obj: ref} }

// Kind reports the value's variant.
func (v Value) Kind() Kind { return v.kind }

// IsBool, IsNull, IsNumber and IsObject report the value's variant.
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsObject() bool { return v.kind == KindObject }

// AsBool, AsNumber and AsObject unwrap a Value of the matching Kind. They
// do not check the kind, mirroring the original's unchecked AS_* macros:
// called on a value of another kind they return that payload field's
// zero value (false, 0 or nil) rather than panicking.
func (v Value) AsBool() bool   { return v.boolean }
func (v Value) AsNumber() float64 { return v.number }
func (v Value) AsObject() Ref { return v.obj }

// stringer is satisfied by object references that know how to render
// themselves (e.g. ustring.String). Kept local rather than required by
// Ref, since not every future object kind need be printable.
type stringer interface {
	String() string
}

// String renders v the way the disassembler and REPL print results.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.boolean)
	case KindNull:
		return "null"
	case KindNumber:
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	case KindObject:
		if s, ok := v.obj.(stringer); ok {
			return s.String()
		}
		return "<object>"
	default:
		return "<invalid>"
	}
}

// Equal reports whether two values are of the same variant with an equal
// payload. Cross-type comparisons are always false, never an error —
// this is what makes scenario S4 (`1 = false`) valid and boolean, not a
// runtime error.
func Equal(left, right Value) bool {
	if left.kind != right.kind {
		return false
	}

	switch left.kind {
	case KindBool:
		return left.boolean == right.boolean
	case KindNull:
		return true
	case KindNumber:
		return left.number == right.number
	case KindObject:
		if left.obj == nil || right.obj == nil {
			return left.obj == right.obj
		}
		return left.obj.Equal(right.obj)
	default:
		return false
	}
}

// Array is a growable buffer of values. It grows through append, so its
// capacity follows Go's slice growth rather than a doubling from a fixed
// capacity of 8; the chunk's byte buffer and the line map grow the same way.
type Array struct {
	values []Value
}

// NewArray returns an empty value array.
func NewArray() *Array { return &Array{} }

// Len reports the number of values currently stored.
func (a *Array) Len() int { return len(a.values) }

// Write appends a value, returning its index in the array.
func (a *Array) Write(v Value) int {
	a.values = append(a.values, v)
	return len(a.values) - 1
}

// Get returns the value at the given index.
func (a *Array) Get(i int) Value { return a.values[i] }
