package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func startWatcher(t *testing.T, dir string, opts ...Option) *atomic.Int32 {
	t.Helper()
	var calls atomic.Int32
	w, err := New([]string{dir}, func() { calls.Add(1) }, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
	return &calls
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestDebouncedCallback(t *testing.T) {
	dir := t.TempDir()
	calls := startWatcher(t, dir, WithDebounce(50*time.Millisecond))

	path := filepath.Join(dir, "store.json")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	waitFor(t, func() bool { return calls.Load() >= 1 })

	time.Sleep(150 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Fatalf("burst produced %d callbacks, want 1", n)
	}
}

func TestFilterIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	calls := startWatcher(t, dir, WithDebounce(20*time.Millisecond), WithFilter(Files("store.json")))

	if err := os.WriteFile(filepath.Join(dir, "chikita.log"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)
	if calls.Load() != 0 {
		t.Fatal("unrelated file triggered the callback")
	}

	if err := os.WriteFile(filepath.Join(dir, "store.json"), []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return calls.Load() == 1 })
}

func TestFiles(t *testing.T) {
	match := Files("/data/store.db", "store.db-wal")
	if !match("/other/dir/store.db") || !match("store.db-wal") || match("store.json") {
		t.Fatal("Files matched the wrong names")
	}
}

func TestNewMissingPath(t *testing.T) {
	if _, err := New([]string{filepath.Join(t.TempDir(), "missing")}, func() {}); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestForStoreWatchesStoreAndWAL(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	w, err := ForStore(filepath.Join(dir, "store.db"), func() { calls.Add(1) }, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})

	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)
	if calls.Load() != 0 {
		t.Fatal("config write triggered a reload")
	}

	if err := os.WriteFile(filepath.Join(dir, "store.db-wal"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return calls.Load() == 1 })
}
