// Package debug implements the disassembler: a plain-text instruction
// dump matching the format spec.md §6 names, plus a JSON rendering for
// tooling that wants structured output instead of parsing text.
package debug

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/houthacker/hdb/internal/chunk"
)

// Disassemble writes every instruction in c to w in the form
// "OFFSET LINE OP_NAME [operand] [value]".
func Disassemble(w io.Writer, c *chunk.Chunk, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < c.Len(); {
		offset = disassembleInstruction(w, c, offset)
	}
}

// disassembleInstruction writes the single instruction at offset and
// returns the offset of the next instruction.
func disassembleInstruction(w io.Writer, c *chunk.Chunk, offset int) int {
	line := c.LineAt(offset)
	fmt.Fprintf(w, "%04d %4d ", offset, line)

	op := chunk.OpCode(c.At(offset))
	switch op {
	case chunk.OpConstant:
		idx := int(c.At(offset + 1))
		v, next := c.ReadConstant(offset + 1)
		fmt.Fprintf(w, "%-18s %4d '%v'\n", op.Name(), idx, v)
		return next
	case chunk.OpConstantLong:
		v, next := c.ReadConstant(offset + 1)
		fmt.Fprintf(w, "%-18s '%v'\n", op.Name(), v)
		return next
	default:
		fmt.Fprintf(w, "%s\n", op.Name())
		return offset + 1
	}
}

// Instruction is the JSON-friendly rendering of a single decoded
// instruction, for tools that want structured disassembly rather than
// the plain-text format above.
type Instruction struct {
	Offset int    `json:"offset"`
	Line   int    `json:"line"`
	Op     string `json:"op"`
	Value  string `json:"value,omitempty"`
}

// DisassembleJSON returns every instruction in c as a JSON array,
// supplementing the plain-text format with a machine-readable one.
func DisassembleJSON(c *chunk.Chunk) ([]byte, error) {
	var instrs []Instruction
	for offset := 0; offset < c.Len(); {
		op := chunk.OpCode(c.At(offset))
		instr := Instruction{Offset: offset, Line: c.LineAt(offset), Op: op.Name()}

		switch op {
		case chunk.OpConstant:
			v, next := c.ReadConstant(offset + 1)
			instr.Value = fmt.Sprintf("%v", v)
			offset = next
		case chunk.OpConstantLong:
			v, next := c.ReadConstant(offset + 1)
			instr.Value = fmt.Sprintf("%v", v)
			offset = next
		default:
			offset++
		}
		instrs = append(instrs, instr)
	}
	return json.Marshal(instrs)
}
