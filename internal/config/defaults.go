// Package config handles chikita configuration.
package config

const (
	// DefaultDir is the data directory name looked up from the working directory.
	DefaultDir = "chikita"
	// ConfigFileName is the name of the config file within the data directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 3

	// DefaultStoreDriver is the key-value backend for new configs.
	DefaultStoreDriver = "file"
	// DefaultStoreFile is the store file name, relative to the data directory.
	DefaultStoreFile = "store.json"
	// DefaultSQLiteFile is used when the driver is switched to sqlite without a path.
	DefaultSQLiteFile = "store.db"
	// DefaultStoreKey is the key holding the task list.
	DefaultStoreKey = "minTasks"

	// DefaultTimer is the focus duration restored by reset.
	DefaultTimer = "25m"
	// DefaultAlarmInterval is the delay between alarm repeats.
	DefaultAlarmInterval = "1.5s"
	// DefaultAlarmRepeats is how often the alarm repeats before stopping itself.
	DefaultAlarmRepeats = 20

	// DefaultMinuteStep is the planner's minute granularity.
	DefaultMinuteStep = 15
	// DefaultTaskStart and DefaultTaskEnd prefill the add form.
	DefaultTaskStart = "09:00"
	DefaultTaskEnd   = "10:00"

	// DefaultLogLevel is the minimum level written to the log file.
	DefaultLogLevel = "info"
	// DefaultLogFile is the log file name, relative to the data directory.
	DefaultLogFile = "chikita.log"
)

// DefaultPresets are the timer's quick-pick durations.
var DefaultPresets = []string{"25m", "1h"}
