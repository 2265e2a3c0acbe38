package schedule

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	activityFileName = "activity.jsonl"
	activityFileMode = 0o600
	maxActivity      = 10000 // oldest entries are dropped past this
)

// Activity is one line of the mutation history.
type Activity struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	TaskID    int64     `json:"task_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// ActivityPath returns the history file inside dir.
func ActivityPath(dir string) string {
	return filepath.Join(dir, activityFileName)
}

// AppendActivity appends an entry to the history in dir.
func AppendActivity(dir string, entry Activity) error {
	path := ActivityPath(dir)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, activityFileMode) //nolint:gosec // path inside data dir
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling activity: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing activity: %w", err)
	}

	_ = truncateActivity(path)
	return nil
}

// RecordActivity appends an entry stamped now. History is best-effort and
// never fails the mutation it describes.
func RecordActivity(dir, action string, id int64, detail string) {
	_ = AppendActivity(dir, Activity{
		Timestamp: time.Now(),
		Action:    action,
		TaskID:    id,
		Detail:    detail,
	})
}

// ReadActivity returns the last limit entries (all when limit <= 0), oldest
// first. Unparsable lines are skipped. A missing file is an empty history.
func ReadActivity(dir string, limit int) ([]Activity, error) {
	f, err := os.Open(ActivityPath(dir)) //nolint:gosec // path inside data dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	var entries []Activity
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var a Activity
		if err := json.Unmarshal(scanner.Bytes(), &a); err != nil {
			continue
		}
		entries = append(entries, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading activity log: %w", err)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

func truncateActivity(path string) error {
	f, err := os.Open(path) //nolint:gosec // path inside data dir
	if err != nil {
		return err
	}
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = f.Close()
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(lines) <= maxActivity {
		return nil
	}

	lines = lines[len(lines)-maxActivity:]
	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(buf.String()), activityFileMode)
}
