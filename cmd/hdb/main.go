// Command hdb is the REPL and single-file driver for the expression
// language: hdb with no arguments reads one line at a time from
// standard input and prints each result; hdb <path> reads a file and
// interprets it once.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/houthacker/hdb/internal/config"
	"github.com/houthacker/hdb/internal/heap"
	"github.com/houthacker/hdb/internal/vm"
)

// Exit codes, matching spec.md §6 exactly.
const (
	exitOK           = 0
	exitUsage        = 64
	exitCompileError = 65
	exitRuntimeError = 70
	exitFileError    = 74
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, stdin io.Reader, stdout io.Writer) int {
	var cfg config.Config
	fs := flag.NewFlagSet("hdb", flag.ContinueOnError)
	fs.SetOutput(stdout)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	cfg.ApplyEnv()

	positional := fs.Args()
	if len(positional) > 1 {
		fmt.Fprintln(os.Stderr, "usage: hdb [path]")
		return exitUsage
	}

	h, err := heap.New(cfg.HeapMin, cfg.HeapMax)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hdb: %v\n", err)
		return exitRuntimeError
	}
	machine := vm.New(h)
	if cfg.Trace != config.TraceOff {
		machine.SetTrace(cfg.Trace, os.Stderr)
	}

	if len(positional) == 1 {
		return runFile(machine, positional[0], stdout)
	}
	return repl(machine, stdin, stdout)
}

func repl(machine *vm.VM, stdin io.Reader, stdout io.Writer) int {
	scanner := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stdout, "> ")
		if !scanner.Scan() {
			return exitOK
		}

		line := scanner.Text()
		v, result := machine.Interpret(line)
		switch result {
		case vm.InterpretOK:
			fmt.Fprintln(stdout, v.String())
		case vm.InterpretCompileError, vm.InterpretRuntimeError:
			// Diagnostics are already written to stderr by the
			// compiler/VM; the REPL just keeps reading lines.
		}
	}
}

func runFile(machine *vm.VM, path string, stdout io.Writer) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hdb: could not read file %q: %v\n", path, err)
		return exitFileError
	}

	v, result := machine.Interpret(string(source))
	switch result {
	case vm.InterpretOK:
		fmt.Fprintln(stdout, v.String())
		return exitOK
	case vm.InterpretCompileError:
		return exitCompileError
	case vm.InterpretRuntimeError:
		return exitRuntimeError
	default:
		return exitRuntimeError
	}
}
