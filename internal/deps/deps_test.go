package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeStub(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

func clearJavaEnv(t *testing.T) {
	t.Helper()
	for _, name := range javaHomeVars {
		t.Setenv(name, "")
	}
}

func TestCheckBinaries(t *testing.T) {
	present := filepath.Join(t.TempDir(), "present")
	writeStub(t, present)
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  ", Optional: true},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Detail != "" || results[0].Path != present {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" || results[1].Path != "" {
		t.Fatalf("expected missing binary to be unavailable with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Available || results[2].Detail != "command not configured" || !results[2].Optional {
		t.Fatalf("unexpected blank command status: %#v", results[2])
	}
}

func TestCheckBinariesTriesCandidatesBeforePath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not executables on windows")
	}
	dir := t.TempDir()
	notExecutable := filepath.Join(dir, "plain", "tool")
	if err := os.MkdirAll(filepath.Dir(notExecutable), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(notExecutable, []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	candidate := filepath.Join(dir, "candidate", "tool")
	writeStub(t, candidate)
	onPath := filepath.Join(dir, "path", "tool")
	writeStub(t, onPath)
	t.Setenv("PATH", filepath.Dir(onPath))

	status := CheckBinaries([]Requirement{{
		Name:       "Tool",
		Command:    "tool",
		Candidates: []string{filepath.Join(dir, "missing", "tool"), notExecutable, candidate},
	}})[0]
	if status.Path != candidate {
		t.Fatalf("expected executable candidate %q, got %#v", candidate, status)
	}
	if !status.Available || status.Command != "tool" {
		t.Fatalf("unexpected status: %#v", status)
	}

	status = CheckBinaries([]Requirement{{Name: "Tool", Command: "tool", Candidates: []string{filepath.Join(dir, "missing", "tool")}}})[0]
	if !status.Available || status.Path != onPath {
		t.Fatalf("expected PATH fallback %q, got %#v", onPath, status)
	}
}

func TestCheckJavaPrefersBundledJRE(t *testing.T) {
	clearJavaEnv(t)
	pentaho := t.TempDir()
	bundled := filepath.Join(pentaho, "jre", "bin", executableName("java"))
	writeStub(t, bundled)

	home := t.TempDir()
	writeStub(t, filepath.Join(home, "bin", executableName("java")))
	t.Setenv("JAVA_HOME", home)

	status := CheckJava(pentaho)
	if !status.Available || status.Path != bundled {
		t.Fatalf("expected bundled JRE %q, got %#v", bundled, status)
	}
	if !status.Optional {
		t.Fatal("java must be reported as optional")
	}
}

func TestCheckJavaUsesPentahoJavaHome(t *testing.T) {
	clearJavaEnv(t)
	home := t.TempDir()
	java := filepath.Join(home, "bin", executableName("java"))
	writeStub(t, java)
	t.Setenv("PENTAHO_JAVA_HOME", home)

	status := CheckJava(t.TempDir())
	if !status.Available || status.Path != java {
		t.Fatalf("expected %q, got %#v", java, status)
	}
}

func TestCheckJavaPathFallback(t *testing.T) {
	clearJavaEnv(t)
	binDir := t.TempDir()
	java := filepath.Join(binDir, executableName("java"))
	writeStub(t, java)
	t.Setenv("PATH", binDir)

	status := CheckJava("")
	if !status.Available || status.Path != java {
		t.Fatalf("expected PATH java %q, got %#v", java, status)
	}
}

func TestCheckJavaNotFound(t *testing.T) {
	clearJavaEnv(t)
	t.Setenv("PATH", "")

	status := CheckJava(t.TempDir())
	if status.Available {
		t.Fatal("expected java resolution to fail")
	}
	if status.Detail == "" || status.Command != executableName("java") {
		t.Fatalf("expected detail message when java is unavailable, got %#v", status)
	}
}
