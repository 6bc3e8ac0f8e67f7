// Package markers is a filesystem-backed timestamp store used for debouncing
// and staleness checks. One file per key; the file's mtime is the marker time.
//
// Every failure mode degrades toward "re-run the action": a missing or
// unreadable marker reads as absent, and a failed Touch is silent. Skipping a
// needed action is worse than repeating a harmless one.
package markers

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// Well-known marker keys.
const (
	// GuardFullSent records when the full prompt guard was last injected.
	GuardFullSent = "guard-full-sent"
	// LastEditTime throttles linting during rapid-fire edits.
	LastEditTime = "last-edit-time"
	// LastTestRun is touched by the workflow when tests pass; edits after it
	// trigger a test reminder.
	LastTestRun = "last_test_run"
)

// Store records and reads per-key timestamps.
type Store interface {
	// Touch sets the key's timestamp to now, creating it if needed.
	Touch(key string) error
	// Age returns how long ago the key was touched. ok is false when the key
	// has never been touched (or cannot be read).
	Age(key string) (age time.Duration, ok bool)
}

// FSStore keeps one file per key under a cache directory.
type FSStore struct {
	dir string
}

// NewFSStore returns a store rooted at the given cache directory. The
// directory is created lazily on first Touch.
func NewFSStore(dir string) *FSStore {
	return &FSStore{dir: dir}
}

// Touch writes the key's file with the current wall-clock time. Errors are
// returned for callers that care, but callers are expected to ignore them.
func (s *FSStore) Touch(key string) error {
	if s.dir == "" {
		return os.ErrInvalid
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	// The content is informational; the mtime is what Age reads.
	stamp := strconv.FormatInt(time.Now().Unix(), 10)
	return os.WriteFile(filepath.Join(s.dir, key), []byte(stamp), 0o644)
}

// Age reads the key file's mtime relative to now.
func (s *FSStore) Age(key string) (time.Duration, bool) {
	if s.dir == "" {
		return 0, false
	}
	info, err := os.Stat(filepath.Join(s.dir, key))
	if err != nil {
		return 0, false
	}
	return time.Since(info.ModTime()), true
}

// MemStore is an in-memory Store for tests, with an injectable clock.
type MemStore struct {
	mu    sync.Mutex
	now   func() time.Time
	times map[string]time.Time
}

// NewMemStore returns a MemStore using the given clock, or time.Now when nil.
func NewMemStore(now func() time.Time) *MemStore {
	if now == nil {
		now = time.Now
	}
	return &MemStore{now: now, times: make(map[string]time.Time)}
}

func (s *MemStore) Touch(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.times[key] = s.now()
	return nil
}

func (s *MemStore) Age(key string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.times[key]
	if !ok {
		return 0, false
	}
	return s.now().Sub(t), true
}
