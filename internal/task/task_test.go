package task

import (
	"strings"
	"testing"

	"github.com/twiced-technology-gmbh/chikita/internal/clierr"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"high", High},
		{"HARD", High},
		{"Medium", Medium},
		{"med", Medium},
		{"low", Low},
		{"easy", Low},
		{"none", None},
		{"", None},
	}
	for _, tt := range tests {
		got, err := ParsePriority(tt.in)
		if err != nil {
			t.Errorf("ParsePriority(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	_, err := ParsePriority("urgent")
	if !clierr.HasCode(err, clierr.InvalidPriority) {
		t.Fatalf("expected INVALID_PRIORITY, got %v", err)
	}
}

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
		prio       Priority
		code       string
	}{
		{"valid", "Write report", 540, 630, High, ""},
		{"full day", "Sleep", 0, 1440, None, ""},
		{"empty text", "", 540, 630, High, clierr.EmptyText},
		{"blank text", "   ", 540, 630, High, clierr.EmptyText},
		{"zero length", "x", 540, 540, Low, clierr.InvalidRange},
		{"negative length", "x", 600, 540, Low, clierr.InvalidRange},
		{"before midnight", "x", -15, 30, Low, clierr.InvalidRange},
		{"past midnight", "x", 1400, 1455, Low, clierr.InvalidRange},
		{"bad priority", "x", 0, 15, Priority("urgent"), clierr.InvalidPriority},
		{"text checked first", "", 600, 540, Priority("urgent"), clierr.EmptyText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFields(tt.text, tt.start, tt.end, tt.prio)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !clierr.HasCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestPaletteIndex(t *testing.T) {
	if got := PaletteIndex(13); got != 0 {
		t.Fatalf("PaletteIndex(13) = %d", got)
	}
	if got := PaletteIndex(1700000000001); got != int(1700000000001%13) {
		t.Fatalf("PaletteIndex = %d", got)
	}
	if got := PaletteIndex(-1); got < 0 || got >= PaletteSize() {
		t.Fatalf("PaletteIndex(-1) = %d out of range", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := []Task{
		{ID: 1700000000000, Text: "Write report", Start: 540, End: 630, Priority: High},
		{ID: 1700000000001, Text: "Lunch", Start: 720, End: 780, Priority: None, Completed: true},
		{ID: 1700000000002, Text: "Walk", Start: 720, End: 750, Priority: Low},
	}
	raw, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, skipped, err := Decode(raw)
	if err != nil || len(skipped) != 0 {
		t.Fatalf("Decode: %v, skipped %v", err, skipped)
	}
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("task %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestEncodeNoneAsNull(t *testing.T) {
	raw, err := Encode([]Task{{ID: 1, Text: "a", Start: 0, End: 15}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(raw, `"priority":null`) {
		t.Fatalf("expected null priority, got %s", raw)
	}
	empty, err := Encode(nil)
	if err != nil || empty != "[]" {
		t.Fatalf("Encode(nil) = %q, %v", empty, err)
	}
}

func TestDecodeNullPriorityRecords(t *testing.T) {
	raw := `[{"id":1718000000000,"text":"Gym","start":360,"end":420,"priority":"medium","completed":false},
	{"id":1718000000001,"text":"Read","start":1320,"end":1380,"priority":null,"completed":true}]`
	tasks, _, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tasks[0].Priority != Medium || tasks[1].Priority != None || !tasks[1].Completed {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, raw := range []string{"", "{", `{"id":1}`, "null garbage"} {
		if _, _, err := Decode(raw); err == nil {
			t.Errorf("Decode(%q) should fail", raw)
		}
	}
}

func TestDecodeSkipsBadElements(t *testing.T) {
	raw := `[{"id":1,"text":"a","start":0,"end":30,"priority":"low"},
	{"id":2,"text":"b","start":0,"end":30,"priority":"urgent"},
	{"id":3,"text":"c","start":"nine","end":30},
	7,
	{"id":4,"text":"d","start":30,"end":60,"priority":"high","completed":true}]`
	tasks, skipped, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != 1 || tasks[1].ID != 4 || !tasks[1].Completed {
		t.Fatalf("tasks = %+v", tasks)
	}
	if len(skipped) != 3 {
		t.Fatalf("skipped = %v", skipped)
	}
}

func TestSanitize(t *testing.T) {
	in := []Task{
		{ID: 1, Text: "ok", Start: 0, End: 30},
		{ID: 2, Text: "", Start: 0, End: 30},
		{ID: 3, Text: "backwards", Start: 60, End: 30},
		{ID: 1, Text: "dup", Start: 0, End: 30},
		{ID: 4, Text: "ok too", Start: 30, End: 60},
	}
	kept, problems := Sanitize(in)
	if len(kept) != 2 || kept[0].ID != 1 || kept[1].ID != 4 {
		t.Fatalf("kept = %+v", kept)
	}
	if len(problems) != 3 {
		t.Fatalf("problems = %v", problems)
	}
}
