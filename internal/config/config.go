// Package config carries the small, fixed set of tunables the VM and
// heap need at construction time. It is kept as a typed struct rather
// than an options map, since that set never grows at runtime.
package config

import (
	"flag"
	"os"
	"strconv"
)

// Defaults mirror spec.md's literal hdb_vm_init(256, 512) call, scaled
// to byte counts, and the stack's 2^19-entry ceiling from §4.6.
const (
	DefaultHeapMin  = 256 * 1024
	DefaultHeapMax  = 512 * 1024 * 1024
	DefaultStackMax = 1 << 19
)

// Trace mode values for Config.Trace. TraceOff disables tracing;
// TraceText writes the plain-text disassembly before execution;
// TraceJSON writes the JSON disassembly instead.
const (
	TraceOff  = ""
	TraceText = "text"
	TraceJSON = "json"
)

// Config bundles the heap bounds, stack ceiling and trace mode cmd/hdb
// parses. cmd/hdb passes HeapMin and HeapMax to heap.New and Trace to
// vm.SetTrace; StackMax is not read by the VM, whose stack ceiling is
// fixed at 2^19 entries.
type Config struct {
	HeapMin  int
	HeapMax  int
	StackMax int
	Trace    string
}

// Default returns the built-in configuration: the same values
// RegisterFlags installs as flag defaults, with tracing off.
func Default() Config {
	return Config{
		HeapMin:  DefaultHeapMin,
		HeapMax:  DefaultHeapMax,
		StackMax: DefaultStackMax,
	}
}

// RegisterFlags binds c's fields to fs, so cmd/hdb can parse
// -heap-min, -heap-max, -stack-max and -trace from argv. -trace on its
// own enables the plain-text disassembly trace; -trace=json switches to
// the JSON disassembly instead.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.HeapMin, "heap-min", DefaultHeapMin, "minimum heap size in bytes")
	fs.IntVar(&c.HeapMax, "heap-max", DefaultHeapMax, "maximum heap size in bytes")
	fs.IntVar(&c.StackMax, "stack-max", DefaultStackMax, "maximum value-stack entries (not read by the VM; its ceiling is fixed at 2^19)")
	fs.Var((*traceFlag)(&c.Trace), "trace", "enable execution trace output (text, or json)")
}

// traceFlag lets -trace be used bare (text mode) or as -trace=json,
// by implementing the boolean flag interface flag.FlagSet looks for.
type traceFlag string

func (t *traceFlag) String() string {
	if t == nil {
		return ""
	}
	return string(*t)
}

func (t *traceFlag) Set(v string) error {
	switch v {
	case "", "true":
		*t = TraceText
	case "false":
		*t = TraceOff
	default:
		*t = traceFlag(v)
	}
	return nil
}

func (t *traceFlag) IsBoolFlag() bool { return true }

// ApplyEnv overrides any field left at its flag.FlagSet default with the
// value of the matching HDB_* environment variable, if set and
// well-formed. This is the config package's only nod to envconfig-style
// loading; see DESIGN.md for why a full tag-driven library was not
// warranted for four fields.
func (c *Config) ApplyEnv() {
	if v, ok := intEnv("HDB_HEAP_MIN"); ok && c.HeapMin == DefaultHeapMin {
		c.HeapMin = v
	}
	if v, ok := intEnv("HDB_HEAP_MAX"); ok && c.HeapMax == DefaultHeapMax {
		c.HeapMax = v
	}
	if v, ok := intEnv("HDB_STACK_MAX"); ok && c.StackMax == DefaultStackMax {
		c.StackMax = v
	}
	if v, ok := os.LookupEnv("HDB_TRACE"); ok && c.Trace == TraceOff {
		var t traceFlag
		_ = t.Set(v)
		c.Trace = string(t)
	}
}

func intEnv(name string) (int, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
