package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindStateDirInStart(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, StateDirName)
	if err := os.Mkdir(state, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok := FindStateDir(dir)
	if !ok {
		t.Fatal("expected to find state dir")
	}
	if got != state {
		t.Errorf("got %q, want %q", got, state)
	}
}

func TestFindStateDirWalksUp(t *testing.T) {
	root := t.TempDir()
	state := filepath.Join(root, StateDirName)
	nested := filepath.Join(root, "src", "deeply", "nested")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(state, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok := FindStateDir(nested)
	if !ok {
		t.Fatal("expected to find state dir from nested start")
	}
	if got != state {
		t.Errorf("got %q, want %q", got, state)
	}
}

func TestFindStateDirMissing(t *testing.T) {
	if _, ok := FindStateDir(t.TempDir()); ok {
		t.Error("expected no state dir in bare temp dir")
	}
}

func TestFindStateDirIgnoresRegularFile(t *testing.T) {
	dir := t.TempDir()
	// A file named .chainlink is not a state directory.
	if err := os.WriteFile(filepath.Join(dir, StateDirName), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := FindStateDir(dir); ok {
		t.Error("regular file should not count as state dir")
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x"), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "internal", "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(sub, "thing.go")
	if err := os.WriteFile(file, []byte("package pkg"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := FindProjectRoot(file, "Cargo.toml", "go.mod")
	if got != root {
		t.Errorf("got %q, want %q", got, root)
	}
}

func TestFindProjectRootNoMarker(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "orphan.py")
	if err := os.WriteFile(file, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := FindProjectRoot(file, "Cargo.toml.nonexistent-marker"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
