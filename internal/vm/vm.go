// Package vm implements the stack-based bytecode interpreter: a
// fetch-decode-execute loop over a compiled chunk, a growable value
// stack, and the owning collection of the heap objects the VM loads or
// creates while executing.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/houthacker/hdb/internal/chunk"
	"github.com/houthacker/hdb/internal/compiler"
	"github.com/houthacker/hdb/internal/config"
	"github.com/houthacker/hdb/internal/debug"
	"github.com/houthacker/hdb/internal/heap"
	"github.com/houthacker/hdb/internal/object"
	"github.com/houthacker/hdb/internal/osshim"
	"github.com/houthacker/hdb/internal/ustring"
	"github.com/houthacker/hdb/internal/value"
)

// Result reports how an Interpret call concluded.
type Result int

const (
	InterpretOK Result = iota
	InterpretCompileError
	InterpretRuntimeError
)

// stackMax is the largest number of entries the value stack may grow to
// (2^19), per SPEC_FULL.md §4.6. A request that would exceed it is
// treated as fatal, mirroring the source's SIGSEGV-then-abort behavior.
const stackMax = 1 << 19

// minStackCapacity is the stack's floor capacity regardless of heap size.
const minStackCapacity = 512

// VM is a single interpreter instance: its value stack and the
// collection of heap objects it owns. Per SPEC_FULL.md's design note,
// object tracking is an owning slice on the VM rather than an intrusive
// "next" pointer threaded through each object.
type VM struct {
	h       *heap.Heap
	stack   []value.Value
	objects []object.Object

	chunk *chunk.Chunk
	ip    int

	traceMode   string
	traceWriter io.Writer
}

// New returns a VM backed by h. The stack's initial capacity is derived
// from the heap's current size (current_size/4096, floor 512).
func New(h *heap.Heap) *VM {
	initialCap := h.View().CurrentSize / 4096
	if initialCap < minStackCapacity {
		initialCap = minStackCapacity
	}
	return &VM{h: h, stack: make([]value.Value, 0, initialCap)}
}

// SetTrace enables (or, with config.TraceOff, disables) the execution
// trace: a disassembly of each compiled chunk written to w before it
// runs. mode selects config.TraceText or config.TraceJSON; w defaults
// to os.Stderr when nil.
func (vm *VM) SetTrace(mode string, w io.Writer) {
	vm.traceMode = mode
	vm.traceWriter = w
}

func (vm *VM) traceOutput() io.Writer {
	if vm.traceWriter != nil {
		return vm.traceWriter
	}
	return os.Stderr
}

// track registers obj in the VM's owning object collection, replacing
// the source's vm.notify_new. The VM calls it for every string OP_ADD
// concatenates and for every object an OP_CONSTANT/OP_CONSTANT_LONG
// pushes. The compiler does not call it: a string constant is registered
// only when an instruction that loads it runs, once per load.
func (vm *VM) track(obj object.Object) {
	vm.objects = append(vm.objects, obj)
}

// ensureCapacity grows the stack's backing array, if needed, to hold at
// least n entries, doubling capacity each step starting from its
// current capacity. Exceeding stackMax is fatal.
func (vm *VM) ensureCapacity(n int) {
	newCap := cap(vm.stack)
	if newCap == 0 {
		newCap = minStackCapacity
	}
	for newCap < n {
		newCap *= 2
	}
	if newCap > stackMax {
		osshim.Abort(fmt.Sprintf("vm: requested stack capacity %d exceeds max %d", n, stackMax))
	}
	if newCap > cap(vm.stack) {
		grown := make([]value.Value, len(vm.stack), newCap)
		copy(grown, vm.stack)
		vm.stack = grown
	}
}

func (vm *VM) push(v value.Value) { vm.stack = append(vm.stack, v) }

func (vm *VM) pop() value.Value {
	n := len(vm.stack)
	v := vm.stack[n-1]
	vm.stack = vm.stack[:n-1]
	return v
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[len(vm.stack)-1-distance]
}

func (vm *VM) resetStack() { vm.stack = vm.stack[:0] }

// Interpret compiles source into a fresh chunk and, on success, runs it.
// It returns the top-of-stack value left by OP_RETURN on success.
func (vm *VM) Interpret(source string) (value.Value, Result) {
	c, err := compiler.Compile(source, vm.h)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return value.Null(), InterpretCompileError
	}

	vm.chunk = c
	vm.ip = 0
	vm.ensureCapacity(c.StackHighWaterMark())
	vm.trace()

	return vm.run()
}

// trace writes a disassembly of the current chunk to the trace writer,
// in the mode SetTrace last selected. It is a no-op when tracing is off.
func (vm *VM) trace() {
	switch vm.traceMode {
	case config.TraceText:
		debug.Disassemble(vm.traceOutput(), vm.chunk, "trace")
	case config.TraceJSON:
		b, err := debug.DisassembleJSON(vm.chunk)
		if err != nil {
			fmt.Fprintf(vm.traceOutput(), "trace: %v\n", err)
			return
		}
		vm.traceOutput().Write(append(b, '\n'))
	}
}

func (vm *VM) run() (value.Value, Result) {
	for {
		op := chunk.OpCode(vm.chunk.Code()[vm.ip])
		vm.ip++

		switch op {
		case chunk.OpConstant, chunk.OpConstantLong:
			v, next := vm.chunk.ReadConstant(vm.ip)
			vm.ip = next
			vm.push(v)
			if v.IsObject() {
				if obj, ok := v.AsObject().(object.Object); ok {
					vm.track(obj)
				}
			}

		case chunk.OpNull:
			vm.push(value.Null())
		case chunk.OpTrue:
			vm.push(value.Bool(true))
		case chunk.OpFalse:
			vm.push(value.Bool(false))

		case chunk.OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case chunk.OpNotEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(!value.Equal(a, b)))

		case chunk.OpGreater, chunk.OpGreaterEqual, chunk.OpLess, chunk.OpLessEqual:
			if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
				return vm.runtimeError("Operands must be numbers.")
			}
			b, a := vm.pop().AsNumber(), vm.pop().AsNumber()
			var result bool
			switch op {
			case chunk.OpGreater:
				result = a > b
			case chunk.OpGreaterEqual:
				result = a >= b
			case chunk.OpLess:
				result = a < b
			case chunk.OpLessEqual:
				result = a <= b
			}
			vm.push(value.Bool(result))

		case chunk.OpAdd:
			if res, err := vm.add(); err != nil {
				return vm.runtimeError(err.Error())
			} else {
				vm.push(res)
			}

		case chunk.OpSubtract, chunk.OpMultiply, chunk.OpDivide:
			if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
				return vm.runtimeError("Operands must be numbers.")
			}
			b, a := vm.pop().AsNumber(), vm.pop().AsNumber()
			switch op {
			case chunk.OpSubtract:
				vm.push(value.Number(a - b))
			case chunk.OpMultiply:
				vm.push(value.Number(a * b))
			case chunk.OpDivide:
				vm.push(value.Number(a / b))
			}

		case chunk.OpNot:
			if !vm.peek(0).IsBool() {
				return vm.runtimeError("Operand must be a boolean.")
			}
			v := vm.pop()
			vm.push(value.Bool(!v.AsBool()))

		case chunk.OpNegate:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			v := vm.pop()
			vm.push(value.Number(-v.AsNumber()))

		case chunk.OpReturn:
			return vm.pop(), InterpretOK

		default:
			return vm.runtimeError(fmt.Sprintf("unknown opcode %d", op))
		}
	}
}

// add implements OP_ADD's two valid forms: numeric addition and string
// concatenation. Any other operand combination is a type error.
func (vm *VM) add() (value.Value, error) {
	if vm.peek(0).IsNumber() && vm.peek(1).IsNumber() {
		b, a := vm.pop().AsNumber(), vm.pop().AsNumber()
		return value.Number(a + b), nil
	}

	bothStrings := func() (*ustring.String, *ustring.String, bool) {
		bv, av := vm.peek(0), vm.peek(1)
		if !bv.IsObject() || !av.IsObject() {
			return nil, nil, false
		}
		bs, ok1 := bv.AsObject().(*ustring.String)
		as, ok2 := av.AsObject().(*ustring.String)
		return as, bs, ok1 && ok2
	}

	if as, bs, ok := bothStrings(); ok {
		vm.pop()
		vm.pop()
		result, err := ustring.Concatenate(vm.h, as, bs)
		if err != nil {
			return value.Value{}, err
		}
		vm.track(result)
		return value.Object(result), nil
	}

	return value.Value{}, fmt.Errorf("Operands must be two numbers or two strings.")
}

// runtimeError reports a formatted message to stderr with the source
// line of the instruction that triggered it, resets the stack, and
// returns InterpretRuntimeError.
func (vm *VM) runtimeError(message string) (value.Value, Result) {
	line := vm.chunk.LineAt(vm.ip - 1)
	fmt.Fprintf(os.Stderr, "[line %d] %s\n", line, message)
	vm.resetStack()
	return value.Null(), InterpretRuntimeError
}
