package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunFileInterpretsAndPrintsResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expr.hdb")
	if err := os.WriteFile(path, []byte("1.337 + 0.663"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stdout bytes.Buffer
	code := run([]string{path}, strings.NewReader(""), &stdout)
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d", code, exitOK)
	}
	if strings.TrimSpace(stdout.String()) != "2" {
		t.Fatalf("stdout = %q, want 2", stdout.String())
	}
}

func TestRunFileMissingFileIsFileError(t *testing.T) {
	var stdout bytes.Buffer
	code := run([]string{"/nonexistent/path.hdb"}, strings.NewReader(""), &stdout)
	if code != exitFileError {
		t.Fatalf("exit code = %d, want %d", code, exitFileError)
	}
}

func TestRunTooManyArgsIsUsageError(t *testing.T) {
	var stdout bytes.Buffer
	code := run([]string{"a", "b"}, strings.NewReader(""), &stdout)
	if code != exitUsage {
		t.Fatalf("exit code = %d, want %d", code, exitUsage)
	}
}

func TestRunFileTraceWritesDisassemblyToStderr(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expr.hdb")
	if err := os.WriteFile(path, []byte("1 + 2"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	stderr := captureStderr(t, func() {
		var stdout bytes.Buffer
		code := run([]string{"-trace", path}, strings.NewReader(""), &stdout)
		if code != exitOK {
			t.Fatalf("exit code = %d, want %d", code, exitOK)
		}
	})
	if !strings.Contains(stderr, "OP_ADD") {
		t.Fatalf("stderr = %q, want to contain OP_ADD", stderr)
	}
}

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestReplReadsLinesUntilEOF(t *testing.T) {
	var stdout bytes.Buffer
	code := run(nil, strings.NewReader("1+1\n'a'+'b'\n"), &stdout)
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d", code, exitOK)
	}
	if !strings.Contains(stdout.String(), "2") {
		t.Fatalf("stdout = %q, want to contain 2", stdout.String())
	}
}
