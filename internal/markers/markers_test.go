package markers

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFSStoreTouchAndAge(t *testing.T) {
	s := NewFSStore(filepath.Join(t.TempDir(), ".cache"))

	if _, ok := s.Age("k"); ok {
		t.Fatal("Age should report absent before Touch")
	}
	if err := s.Touch("k"); err != nil {
		t.Fatalf("Touch: %v", err)
	}
	age, ok := s.Age("k")
	if !ok {
		t.Fatal("Age should report present after Touch")
	}
	if age < 0 || age > time.Minute {
		t.Errorf("age = %v, want small positive duration", age)
	}
}

func TestFSStoreCreatesCacheDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state", ".cache")
	s := NewFSStore(dir)

	if err := s.Touch("guard-full-sent"); err != nil {
		t.Fatalf("Touch: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "guard-full-sent")); err != nil {
		t.Errorf("marker file missing: %v", err)
	}
}

func TestFSStoreEmptyDirFailsSoft(t *testing.T) {
	s := NewFSStore("")
	if err := s.Touch("k"); err == nil {
		t.Error("Touch on empty dir should error")
	}
	if _, ok := s.Age("k"); ok {
		t.Error("Age on empty dir should report absent")
	}
}

func TestFSStoreRetouchResetsAge(t *testing.T) {
	dir := t.TempDir()
	s := NewFSStore(dir)
	if err := s.Touch("k"); err != nil {
		t.Fatal(err)
	}
	// Backdate the marker, then retouch.
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(filepath.Join(dir, "k"), old, old); err != nil {
		t.Fatal(err)
	}
	age, _ := s.Age("k")
	if age < 59*time.Minute {
		t.Fatalf("backdated age = %v, want ~1h", age)
	}
	if err := s.Touch("k"); err != nil {
		t.Fatal(err)
	}
	age, _ = s.Age("k")
	if age > time.Minute {
		t.Errorf("retouched age = %v, want fresh", age)
	}
}

func TestMemStoreDebounceWindows(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := NewMemStore(clock)

	s.Touch("k")
	now = now.Add(2 * time.Second)
	s.Touch("k")
	now = now.Add(2 * time.Second)

	age, ok := s.Age("k")
	if !ok || age >= 10*time.Second {
		t.Errorf("age = %v, want < 10s (throttled)", age)
	}

	now = now.Add(15 * time.Second)
	age, _ = s.Age("k")
	if age < 10*time.Second {
		t.Errorf("age = %v, want >= 10s (not throttled)", age)
	}
}

func TestMemStoreAbsentKey(t *testing.T) {
	s := NewMemStore(nil)
	if _, ok := s.Age("never"); ok {
		t.Error("absent key should report !ok")
	}
}
