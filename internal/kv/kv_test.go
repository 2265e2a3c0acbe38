package kv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/twiced-technology-gmbh/chikita/internal/logx"
)

func openAll(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	stores := map[string]Store{}
	for _, d := range Drivers() {
		path := filepath.Join(dir, "store-"+d)
		s, err := Open(d, path, logx.Nop())
		if err != nil {
			t.Fatalf("Open(%s): %v", d, err)
		}
		t.Cleanup(func() { _ = s.Close() })
		stores[d] = s
	}
	return stores
}

func TestStoreGetSet(t *testing.T) {
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get("minTasks"); err != nil || ok {
				t.Fatalf("Get on empty store = ok:%v err:%v", ok, err)
			}
			if err := s.Set("minTasks", `[{"id":1}]`); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set("other", "x"); err != nil {
				t.Fatalf("Set other: %v", err)
			}
			if err := s.Set("minTasks", "[]"); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			v, ok, err := s.Get("minTasks")
			if err != nil || !ok || v != "[]" {
				t.Fatalf("Get = %q, %v, %v", v, ok, err)
			}
			v, ok, err = s.Get("other")
			if err != nil || !ok || v != "x" {
				t.Fatalf("Get other = %q, %v, %v", v, ok, err)
			}
		})
	}
}

func TestClosedStore(t *testing.T) {
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
			if err := s.Set("k", "v"); !errors.Is(err, ErrClosed) {
				t.Fatalf("Set after close = %v", err)
			}
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("redis", "x", logx.Nop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestFilePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	a, err := OpenFile(path, logx.Nop())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	b, err := OpenFile(path, logx.Nop())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	if err := a.Set("minTasks", "[1]"); err != nil {
		t.Fatalf("Set a: %v", err)
	}
	if err := b.Set("theme", "dark"); err != nil {
		t.Fatalf("Set b: %v", err)
	}

	v, ok, err := a.Get("theme")
	if err != nil || !ok || v != "dark" {
		t.Fatalf("a sees theme = %q %v %v", v, ok, err)
	}
	v, ok, err = b.Get("minTasks")
	if err != nil || !ok || v != "[1]" {
		t.Fatalf("b sees minTasks = %q %v %v", v, ok, err)
	}
}

func TestFileCorruptContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := OpenFile(path, logx.Nop())
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if _, _, err := s.Get("minTasks"); err == nil {
		t.Fatal("expected parse error from corrupt file")
	}
	if err := s.Set("minTasks", "[]"); err != nil {
		t.Fatalf("Set over corrupt file: %v", err)
	}
	if v, ok, err := s.Get("minTasks"); err != nil || !ok || v != "[]" {
		t.Fatalf("Get after repair = %q %v %v", v, ok, err)
	}
}

func TestSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	s, err := OpenSQLite(path, logx.Nop())
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Set("minTasks", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = OpenSQLite(path, logx.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if v, ok, err := s.Get("minTasks"); err != nil || !ok || v != "[]" {
		t.Fatalf("Get after reopen = %q %v %v", v, ok, err)
	}
}

func TestMemorySetErr(t *testing.T) {
	m := NewMemory()
	m.SetErr = errors.New("disk full")
	if err := m.Set("k", "v"); err == nil {
		t.Fatal("expected injected error")
	}
	if _, ok, _ := m.Get("k"); ok {
		t.Fatal("failed Set must not store the value")
	}
}
