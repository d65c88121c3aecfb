package config

import (
	"flag"
	"os"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.HeapMin != DefaultHeapMin || c.HeapMax != DefaultHeapMax || c.StackMax != DefaultStackMax {
		t.Fatalf("Default() = %+v", c)
	}
	if c.Trace != TraceOff {
		t.Fatal("Trace should default to off")
	}
}

func TestRegisterFlagsParsesArgs(t *testing.T) {
	c := Config{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse([]string{"-heap-min=1024", "-trace"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.HeapMin != 1024 {
		t.Fatalf("HeapMin = %d, want 1024", c.HeapMin)
	}
	if c.Trace != TraceText {
		t.Fatalf("Trace = %q, want %q", c.Trace, TraceText)
	}
}

func TestRegisterFlagsParsesJSONTraceMode(t *testing.T) {
	c := Config{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse([]string{"-trace=json"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Trace != TraceJSON {
		t.Fatalf("Trace = %q, want %q", c.Trace, TraceJSON)
	}
}

func TestApplyEnvOverridesFields(t *testing.T) {
	os.Setenv("HDB_HEAP_MIN", "2048")
	defer os.Unsetenv("HDB_HEAP_MIN")

	c := Default()
	c.ApplyEnv()
	if c.HeapMin != 2048 {
		t.Fatalf("HeapMin = %d, want 2048", c.HeapMin)
	}
}

func TestApplyEnvOverridesTrace(t *testing.T) {
	os.Setenv("HDB_TRACE", "json")
	defer os.Unsetenv("HDB_TRACE")

	c := Default()
	c.ApplyEnv()
	if c.Trace != TraceJSON {
		t.Fatalf("Trace = %q, want %q", c.Trace, TraceJSON)
	}
}
