package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/chikita/internal/clock"
	"github.com/twiced-technology-gmbh/chikita/internal/kv"
	"github.com/twiced-technology-gmbh/chikita/internal/logx"
	"github.com/twiced-technology-gmbh/chikita/internal/timer"
)

const fileMode = 0o600

// Sentinel errors.
var (
	ErrNotFound = errors.New("no chikita config found (run 'chikita init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents config.yml.
type Config struct {
	Version int           `yaml:"version"`
	Store   StoreConfig   `yaml:"store"`
	Timer   TimerConfig   `yaml:"timer"`
	Planner PlannerConfig `yaml:"planner"`
	Log     LogConfig     `yaml:"log"`

	// dir is the absolute path to the data directory (not serialized).
	dir string `yaml:"-"`
}

// StoreConfig selects the key-value backend holding the task list.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"` // relative paths resolve against the data directory
	Key    string `yaml:"key"`
}

// TimerConfig holds the focus timer settings. Durations are Go duration strings.
type TimerConfig struct {
	Default         string   `yaml:"default"`
	AlarmInterval   string   `yaml:"alarm_interval"`
	AlarmMaxRepeats int      `yaml:"alarm_max_repeats"`
	Presets         []string `yaml:"presets,omitempty"`
}

// PlannerConfig holds the task form defaults.
type PlannerConfig struct {
	MinuteStep   int    `yaml:"minute_step"`
	DefaultStart string `yaml:"default_start"`
	DefaultEnd   string `yaml:"default_end"`
}

// LogConfig holds the log file settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"` // empty disables file logging
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version: CurrentVersion,
		Store: StoreConfig{
			Driver: DefaultStoreDriver,
			Path:   DefaultStoreFile,
			Key:    DefaultStoreKey,
		},
		Timer: TimerConfig{
			Default:         DefaultTimer,
			AlarmInterval:   DefaultAlarmInterval,
			AlarmMaxRepeats: DefaultAlarmRepeats,
			Presets:         append([]string{}, DefaultPresets...),
		},
		Planner: PlannerConfig{
			MinuteStep:   DefaultMinuteStep,
			DefaultStart: DefaultTaskStart,
			DefaultEnd:   DefaultTaskEnd,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
			File:  DefaultLogFile,
		},
	}
}

// Dir returns the absolute path to the data directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the data directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// StorePath returns the absolute path of the store file. The memory driver
// has no path.
func (c *Config) StorePath() string {
	if c.Store.Driver == kv.DriverMemory {
		return ""
	}
	p := c.Store.Path
	if p == "" {
		p = DefaultStoreFile
		if c.Store.Driver == kv.DriverSQLite {
			p = DefaultSQLiteFile
		}
	}
	return c.resolve(p)
}

// StoreKey returns the key holding the task list.
func (c *Config) StoreKey() string {
	if c.Store.Key == "" {
		return DefaultStoreKey
	}
	return c.Store.Key
}

// LockFile is the lock taken by every process that rewrites the task store.
const LockFile = ".lock"

// LockPath returns the data directory lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.dir, LockFile)
}

// LogPath returns the absolute log file path, or "" when file logging is off.
func (c *Config) LogPath() string {
	if strings.TrimSpace(c.Log.File) == "" {
		return ""
	}
	return c.resolve(c.Log.File)
}

// LoggerConfig returns the logger settings. console enables the stderr sink.
func (c *Config) LoggerConfig(level string, console bool) logx.Config {
	if level == "" {
		level = c.Log.Level
	}
	return logx.Config{Level: level, Console: console, File: c.LogPath()}
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, p)
}

// TimerSettings converts the timer section into engine settings. Invalid
// values were rejected by Validate; unparsable ones fall back to defaults.
func (c *Config) TimerSettings() timer.Config {
	tc := timer.DefaultConfig()
	if d, err := timer.ParseDuration(c.Timer.Default); err == nil {
		tc.Default = d
	}
	if d, err := timer.ParseDuration(c.Timer.AlarmInterval); err == nil {
		tc.AlarmInterval = d
	}
	if c.Timer.AlarmMaxRepeats > 0 {
		tc.MaxAlarmRepeats = c.Timer.AlarmMaxRepeats
	}
	if len(c.Timer.Presets) > 0 {
		tc.Presets = tc.Presets[:0:0]
		for _, p := range c.Timer.Presets {
			if d, err := timer.ParseDuration(p); err == nil {
				tc.Presets = append(tc.Presets, d)
			}
		}
	}
	return tc
}

// MinuteStep returns the planner's minute granularity.
func (c *Config) MinuteStep() int {
	if c.Planner.MinuteStep <= 0 {
		return DefaultMinuteStep
	}
	return c.Planner.MinuteStep
}

// DefaultRange returns the form's prefilled start and end minutes.
func (c *Config) DefaultRange() (start, end int) {
	start, err := clock.Parse(c.Planner.DefaultStart)
	if err != nil {
		start, _ = clock.Parse(DefaultTaskStart)
	}
	end, err = clock.Parse(c.Planner.DefaultEnd)
	if err != nil || end <= start {
		end = min(start+clock.MinutesPerHour, clock.EndOfDay)
	}
	return start, end
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateTimer(); err != nil {
		return err
	}
	if err := c.validatePlanner(); err != nil {
		return err
	}
	if _, err := logx.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	return nil
}

func (c *Config) validateStore() error {
	if !slices.Contains(kv.Drivers(), c.Store.Driver) {
		return fmt.Errorf("%w: store.driver %q must be one of %s",
			ErrInvalid, c.Store.Driver, strings.Join(kv.Drivers(), ", "))
	}
	if strings.TrimSpace(c.Store.Key) == "" {
		return fmt.Errorf("%w: store.key is required", ErrInvalid)
	}
	return nil
}

func (c *Config) validateTimer() error {
	tc := timer.DefaultConfig()
	var err error
	if tc.Default, err = timer.ParseDuration(c.Timer.Default); err != nil {
		return fmt.Errorf("%w: timer.default: %w", ErrInvalid, err)
	}
	if tc.AlarmInterval, err = timer.ParseDuration(c.Timer.AlarmInterval); err != nil {
		return fmt.Errorf("%w: timer.alarm_interval: %w", ErrInvalid, err)
	}
	tc.MaxAlarmRepeats = c.Timer.AlarmMaxRepeats
	tc.Presets = make([]time.Duration, len(c.Timer.Presets))
	for i, p := range c.Timer.Presets {
		if tc.Presets[i], err = timer.ParseDuration(p); err != nil {
			return fmt.Errorf("%w: timer.presets[%d]: %w", ErrInvalid, i, err)
		}
	}
	if err := tc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func (c *Config) validatePlanner() error {
	const maxStep = 60
	if c.Planner.MinuteStep < 1 || c.Planner.MinuteStep > maxStep || maxStep%c.Planner.MinuteStep != 0 {
		return fmt.Errorf("%w: planner.minute_step must divide 60, got %d", ErrInvalid, c.Planner.MinuteStep)
	}
	start, err := clock.Parse(c.Planner.DefaultStart)
	if err != nil {
		return fmt.Errorf("%w: planner.default_start: %w", ErrInvalid, err)
	}
	end, err := clock.Parse(c.Planner.DefaultEnd)
	if err != nil {
		return fmt.Errorf("%w: planner.default_end: %w", ErrInvalid, err)
	}
	if end <= start {
		return fmt.Errorf("%w: planner.default_end must be after default_start", ErrInvalid)
	}
	return nil
}

// Init creates a data directory with a default config file.
func Init(dir string) (*Config, error) {
	const dirMode = 0o750

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault()
	cfg.SetDir(absDir)

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given data directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.dir = absDir

	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindDir walks upward from startDir looking for a chikita directory
// containing config.yml. Returns the absolute path to that directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the data directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// UserDir returns the per-user data directory (~/.config/chikita on Linux).
func UserDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(base, DefaultDir), nil
}

// Resolve loads the config for startDir: the nearest chikita directory
// above it, else the per-user directory, which is created on first use.
func Resolve(startDir string) (*Config, error) {
	dir, err := FindDir(startDir)
	if err == nil {
		return Load(dir)
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	dir, err = UserDir()
	if err != nil {
		return nil, err
	}
	cfg, err := Load(dir)
	if errors.Is(err, ErrNotFound) {
		return Init(dir)
	}
	return cfg, err
}

// ParseTimerDuration validates a timer duration string for config set.
func ParseTimerDuration(s string) (time.Duration, error) {
	d, err := timer.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", s)
	}
	return d, nil
}
