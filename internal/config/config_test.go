package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInitAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chikita")
	created, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dir() != created.Dir() {
		t.Fatalf("Dir = %q, want %q", cfg.Dir(), created.Dir())
	}
	if cfg.StorePath() != filepath.Join(cfg.Dir(), DefaultStoreFile) {
		t.Fatalf("StorePath = %q", cfg.StorePath())
	}
	if cfg.StoreKey() != "minTasks" {
		t.Fatalf("StoreKey = %q", cfg.StoreKey())
	}

	tc := cfg.TimerSettings()
	if tc.Default != 25*time.Minute || tc.AlarmInterval != 1500*time.Millisecond || tc.MaxAlarmRepeats != 20 {
		t.Fatalf("TimerSettings = %+v", tc)
	}
	if len(tc.Presets) != 2 || tc.Presets[1] != time.Hour {
		t.Fatalf("Presets = %v", tc.Presets)
	}

	start, end := cfg.DefaultRange()
	if start != 540 || end != 600 {
		t.Fatalf("DefaultRange = %d..%d", start, end)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Store.Driver = "redis" }},
		{"empty key", func(c *Config) { c.Store.Key = " " }},
		{"bad timer default", func(c *Config) { c.Timer.Default = "soon" }},
		{"zero alarm repeats", func(c *Config) { c.Timer.AlarmMaxRepeats = 0 }},
		{"bad preset", func(c *Config) { c.Timer.Presets = []string{"25m", "xyz"} }},
		{"tiny preset", func(c *Config) { c.Timer.Presets = []string{"10s"} }},
		{"odd minute step", func(c *Config) { c.Planner.MinuteStep = 7 }},
		{"bad default start", func(c *Config) { c.Planner.DefaultStart = "25:00" }},
		{"end before start", func(c *Config) { c.Planner.DefaultEnd = "08:00" }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"old version", func(c *Config) { c.Version = 1 }},
	}
	if err := NewDefault().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestMigrateFromV1(t *testing.T) {
	dir := t.TempDir()
	v1 := `version: 1
store:
  driver: sqlite
  path: ""
  key: minTasks
timer:
  default: 50m
  alarm_interval: 2s
  alarm_max_repeats: 5
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(v1), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Fatalf("Version = %d", cfg.Version)
	}
	if len(cfg.Timer.Presets) != 2 || cfg.Log.Level != "info" || cfg.Planner.MinuteStep != 15 {
		t.Fatalf("migration defaults missing: %+v", cfg)
	}
	if cfg.TimerSettings().Default != 50*time.Minute {
		t.Fatal("migration overwrote the timer default")
	}
	if cfg.StorePath() != filepath.Join(dir, DefaultSQLiteFile) {
		t.Fatalf("StorePath = %q", cfg.StorePath())
	}

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "version: 3") {
		t.Fatalf("migrated config not persisted:\n%s", data)
	}
}

func TestMigrateRejectsNewer(t *testing.T) {
	cfg := NewDefault()
	cfg.Version = CurrentVersion + 1
	if err := migrate(cfg); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	if _, err := Init(filepath.Join(root, DefaultDir)); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}

	got, err := FindDir(nested)
	if err != nil {
		t.Fatalf("FindDir: %v", err)
	}
	want, _ := filepath.Abs(filepath.Join(root, DefaultDir))
	if got != want {
		t.Fatalf("FindDir = %q, want %q", got, want)
	}

	inside, err := FindDir(want)
	if err != nil || inside != want {
		t.Fatalf("FindDir(inside) = %q, %v", inside, err)
	}
}

func TestResolveCreatesUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("AppData", home)

	work := t.TempDir()
	cfg, err := Resolve(work)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := os.Stat(cfg.ConfigPath()); err != nil {
		t.Fatalf("config not created: %v", err)
	}
	if !strings.HasPrefix(cfg.Dir(), home) {
		t.Fatalf("Dir = %q, want under %q", cfg.Dir(), home)
	}
}

func TestPathsAndLogging(t *testing.T) {
	cfg := NewDefault()
	cfg.SetDir("/data/chikita")
	cfg.Log.File = ""
	if cfg.LogPath() != "" {
		t.Fatalf("LogPath = %q, want disabled", cfg.LogPath())
	}
	lc := cfg.LoggerConfig("debug", true)
	if lc.Level != "debug" || !lc.Console || lc.File != "" {
		t.Fatalf("LoggerConfig = %+v", lc)
	}

	cfg.Store.Path = "/var/lib/chikita/tasks.json"
	if cfg.StorePath() != "/var/lib/chikita/tasks.json" {
		t.Fatalf("absolute StorePath = %q", cfg.StorePath())
	}
	cfg.Store.Driver = "memory"
	if cfg.StorePath() != "" {
		t.Fatal("memory driver should have no path")
	}
}
