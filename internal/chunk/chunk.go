// Package chunk implements the compiled unit the compiler emits into and
// the VM executes: a dense byte buffer, a two-tier constant pool, a
// run-length source-line map, and the compile-time stack high-water
// mark.
package chunk

import (
	"encoding/binary"
	"fmt"

	"github.com/houthacker/hdb/internal/line"
	"github.com/houthacker/hdb/internal/value"
)

// OpCode is one instruction in a chunk's byte stream.
type OpCode byte

// Canonical opcode assignment, per SPEC_FULL.md §6.
const (
	OpConstant OpCode = iota
	OpConstantLong
	OpNull
	OpTrue
	OpFalse
	OpEqual
	OpNotEqual
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate
	OpReturn
)

var opcodeNames = map[OpCode]string{
	OpConstant:     "OP_CONSTANT",
	OpConstantLong: "OP_CONSTANT_LONG",
	OpNull:         "OP_NULL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpEqual:        "OP_EQUAL",
	OpNotEqual:     "OP_NOT_EQUAL",
	OpGreater:      "OP_GREATER",
	OpGreaterEqual: "OP_GREATER_EQUAL",
	OpLess:         "OP_LESS",
	OpLessEqual:    "OP_LESS_EQUAL",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLY",
	OpDivide:       "OP_DIVIDE",
	OpNot:          "OP_NOT",
	OpNegate:       "OP_NEGATE",
	OpReturn:       "OP_RETURN",
}

// Name returns the opcode's canonical mnemonic, or a placeholder for an
// unrecognized byte.
func (op OpCode) Name() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OP_UNKNOWN(%d)", byte(op))
}

// constantLongThreshold is the point at which the constant pool switches
// from the 1-byte CONSTANT index form to the 3-byte CONSTANT_LONG form.
const constantLongThreshold = 256

// Chunk is a single compiled unit: instruction stream, constant pool,
// line map, and the compiler-computed stack high-water mark.
//
// The high-water mark is kept as a plain int, not the 8-bit field the C
// original uses — SPEC_FULL.md §9 item 4 widens it to avoid silent
// overflow on deep expressions.
type Chunk struct {
	code              []byte
	constants         *value.Array
	lines             *line.Map
	stackHighWaterMark int
}

// New returns an empty chunk.
func New() *Chunk {
	return &Chunk{constants: value.NewArray(), lines: line.New()}
}

// Len reports the number of bytes currently in the instruction stream.
func (c *Chunk) Len() int { return len(c.code) }

// Code returns the raw instruction stream.
func (c *Chunk) Code() []byte { return c.code }

// At returns the byte at the given offset.
func (c *Chunk) At(offset int) byte { return c.code[offset] }

// StackHighWaterMark reports the maximum simultaneous stack depth the
// compiler computed for this chunk.
func (c *Chunk) StackHighWaterMark() int { return c.stackHighWaterMark }

// SetStackHighWaterMark records the compiler's computed high-water mark.
// Called once, at the end of compilation.
func (c *Chunk) SetStackHighWaterMark(n int) { c.stackHighWaterMark = n }

// Write appends an instruction byte, recording which source line it
// originated from.
func (c *Chunk) Write(b byte, sourceLine int) {
	c.code = append(c.code, b)
	c.lines.Encode(sourceLine)
}

// WriteOp appends an opcode byte.
func (c *Chunk) WriteOp(op OpCode, sourceLine int) {
	c.Write(byte(op), sourceLine)
}

// LineAt reports the source line the instruction at the given offset was
// emitted from, or -1 if the offset is out of range.
func (c *Chunk) LineAt(offset int) int {
	return c.lines.Decode(offset)
}

// WriteConstant appends v to the constant pool and emits the bytecode
// needed to push it later: a 1-byte CONSTANT index if the pool holds
// fewer than 256 entries at the time of the write, else a 3-byte
// CONSTANT_LONG index, written big-endian (most significant byte first).
//
// Per SPEC_FULL.md §9 item 1, the writer and reader agree on big-endian
// byte order; the C original's reader reconstructed a different byte
// order than its writer produced, which this implementation does not
// reproduce.
func (c *Chunk) WriteConstant(v value.Value, sourceLine int) {
	idx := c.constants.Write(v)

	if idx < constantLongThreshold {
		c.WriteOp(OpConstant, sourceLine)
		c.Write(byte(idx), sourceLine)
		return
	}

	c.WriteOp(OpConstantLong, sourceLine)
	b0, b1, b2 := encodeIndex24(idx)
	c.Write(b0, sourceLine)
	c.Write(b1, sourceLine)
	c.Write(b2, sourceLine)
}

// encodeIndex24 splits idx into its big-endian 3-byte representation,
// most significant byte first, matching CONSTANT_LONG's wire format.
func encodeIndex24(idx int) (byte, byte, byte) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(idx))
	return buf[1], buf[2], buf[3]
}

// decodeIndex24 reassembles a big-endian 3-byte index.
func decodeIndex24(b0, b1, b2 byte) int {
	return int(b0)<<16 | int(b1)<<8 | int(b2)
}

// ReadConstant reads the constant referenced by the CONSTANT or
// CONSTANT_LONG instruction ending at ip (ip is the offset of the byte
// immediately after the opcode). It returns the decoded value and the
// offset of the first byte past the instruction's operand.
func (c *Chunk) ReadConstant(ip int) (value.Value, int) {
	op := OpCode(c.code[ip-1])
	switch op {
	case OpConstant:
		idx := int(c.code[ip])
		return c.constants.Get(idx), ip + 1
	case OpConstantLong:
		idx := decodeIndex24(c.code[ip], c.code[ip+1], c.code[ip+2])
		return c.constants.Get(idx), ip + 3
	default:
		panic(fmt.Sprintf("chunk: ReadConstant called at non-constant opcode %s", op.Name()))
	}
}

// ConstantsLen reports the number of values in the constant pool, mainly
// useful for tests asserting the 256/257-entry CONSTANT/CONSTANT_LONG
// boundary.
func (c *Chunk) ConstantsLen() int { return c.constants.Len() }
