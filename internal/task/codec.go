package task

import (
	"encoding/json"
	"fmt"
)

// Encode serializes tasks as the JSON array kept under the store key.
// A nil slice encodes as [] rather than null.
func Encode(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encoding tasks: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored task array. Only a value that is not a JSON array
// is an error. Elements are decoded one at a time; an element that does not
// decode as a Task is skipped and reported in skipped. Decoded records are
// not validated; see Sanitize.
func Decode(raw string) (tasks []Task, skipped []error, err error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return nil, nil, fmt.Errorf("decoding tasks: %w", err)
	}
	tasks = make([]Task, 0, len(elems))
	for i, elem := range elems {
		var t Task
		if err := json.Unmarshal(elem, &t); err != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, skipped, nil
}

// Sanitize drops records that break task invariants or repeat an earlier ID.
// It returns the kept tasks in their original order and one error per
// dropped record.
func Sanitize(tasks []Task) ([]Task, []error) {
	kept := make([]Task, 0, len(tasks))
	seen := make(map[int64]bool, len(tasks))
	var problems []error
	for i, t := range tasks {
		if err := Validate(t); err != nil {
			problems = append(problems, fmt.Errorf("record %d (id %d): %w", i, t.ID, err))
			continue
		}
		if seen[t.ID] {
			problems = append(problems, fmt.Errorf("record %d: duplicate id %d", i, t.ID))
			continue
		}
		seen[t.ID] = true
		kept = append(kept, t)
	}
	return kept, problems
}
