package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/twiced-technology-gmbh/chikita/internal/clierr"
	"github.com/twiced-technology-gmbh/chikita/internal/schedule"
	"github.com/twiced-technology-gmbh/chikita/internal/task"
)

func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc
}

// JSON writes data as indented JSON to the given writer.
func JSON(w io.Writer, data any) error {
	if err := newEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes a structured error to the given writer as JSON.
func JSONError(w io.Writer, code, msg string, details map[string]any) {
	_ = newEncoder(w).Encode(ErrorResponse{Error: msg, Code: code, Details: details}) // best-effort
}

// ErrorEnvelope writes err as a JSON error envelope and returns the process
// exit code for it. Errors without a code are reported as INTERNAL_ERROR.
func ErrorEnvelope(w io.Writer, err error) int {
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		JSONError(w, cliErr.Code, cliErr.Message, cliErr.Details)
		return cliErr.ExitCode()
	}
	internal := clierr.New(clierr.InternalError, err.Error())
	JSONError(w, internal.Code, internal.Message, nil)
	return internal.ExitCode()
}

// BatchResult represents the outcome of a single operation within a batch.
type BatchResult struct {
	ID    int64  `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

// Schedule is the JSON shape of the schedule overview.
type Schedule struct {
	Summary  schedule.Overview `json:"summary"`
	Timeline []task.Task       `json:"timeline"`
	Groups   []schedule.Group  `json:"groups"`
}
