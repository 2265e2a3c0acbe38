package schedule

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/twiced-technology-gmbh/chikita/internal/task"
)

func seeded(t *testing.T) *Store {
	t.Helper()
	s, _ := newTestStore(t)
	mustAdd(t, s, "Write report", 540, 630, task.High)
	mustAdd(t, s, "Gym", 360, 420, task.Medium)
	mustAdd(t, s, "Lunch", 720, 780, task.None)
	mustAdd(t, s, "Read", 1320, 1380, task.Low)
	mustAdd(t, s, "Standup", 555, 570, task.Low)
	return s
}

func TestGroups(t *testing.T) {
	s := seeded(t)
	groups := s.Groups()

	want := []struct {
		p     task.Priority
		texts []string
	}{
		{task.High, []string{"Write report"}},
		{task.Medium, []string{"Gym"}},
		{task.Low, []string{"Standup", "Read"}},
		{task.None, []string{"Lunch"}},
	}
	if len(groups) != len(want) {
		t.Fatalf("got %d groups, want %d", len(groups), len(want))
	}
	for i, w := range want {
		g := groups[i]
		if g.Priority != w.p {
			t.Fatalf("group %d priority = %q, want %q", i, g.Priority, w.p)
		}
		var texts []string
		for _, tk := range g.Tasks {
			texts = append(texts, tk.Text)
		}
		if strings.Join(texts, ",") != strings.Join(w.texts, ",") {
			t.Errorf("group %q = %v, want %v", w.p, texts, w.texts)
		}
	}
}

func TestGroupsAlwaysHasThreeLevels(t *testing.T) {
	s, _ := newTestStore(t)
	groups := s.Groups()
	if len(groups) != 3 {
		t.Fatalf("empty store groups = %d, want 3", len(groups))
	}
	for _, g := range groups {
		if len(g.Tasks) != 0 {
			t.Fatalf("group %q not empty", g.Priority)
		}
	}
}

func TestHourMarkerUsesInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)
	mustAdd(t, s, "later in the hour", 570, 600, task.Low)
	mustAdd(t, s, "top of the hour", 540, 570, task.High)

	p, ok := s.HourMarker(9)
	if !ok || p != task.Low {
		t.Fatalf("HourMarker(9) = %q, %v; want low", p, ok)
	}
	if _, ok := s.HourMarker(10); ok {
		t.Fatal("HourMarker(10) should be empty")
	}
}

func TestFilter(t *testing.T) {
	s := seeded(t)
	done := true
	pending := false
	lunch := s.ByPriority(task.None)[0]
	if _, err := s.Toggle(lunch.ID); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{"all", FilterOptions{}, []string{"Write report", "Gym", "Lunch", "Read", "Standup"}},
		{"low", FilterOptions{Priorities: []task.Priority{task.Low}}, []string{"Read", "Standup"}},
		{"high or none", FilterOptions{Priorities: []task.Priority{task.High, task.None}}, []string{"Write report", "Lunch"}},
		{"completed", FilterOptions{Completed: &done}, []string{"Lunch"}},
		{"pending low", FilterOptions{Completed: &pending, Priorities: []task.Priority{task.Low}}, []string{"Read", "Standup"}},
		{"search", FilterOptions{Search: "RE"}, []string{"Write report", "Read"}},
		{"morning window", FilterOptions{From: 540, To: 600}, []string{"Write report", "Standup"}},
		{"half-open window", FilterOptions{From: 400, To: 540}, []string{"Gym"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, tk := range Filter(s.List(), tt.opts) {
				got = append(got, tk.Text)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortBy(t *testing.T) {
	s := seeded(t)
	tests := []struct {
		field   string
		reverse bool
		want    string
	}{
		{"start", false, "Gym,Write report,Standup,Lunch,Read"},
		{"start", true, "Read,Lunch,Standup,Write report,Gym"},
		{"end", false, "Gym,Standup,Write report,Lunch,Read"},
		{"priority", false, "Write report,Gym,Standup,Read,Lunch"},
		{"text", false, "Gym,Lunch,Read,Standup,Write report"},
		{"id", false, "Write report,Gym,Lunch,Read,Standup"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.field, tt.reverse), func(t *testing.T) {
			list := s.List()
			SortBy(list, tt.field, tt.reverse)
			var got []string
			for _, tk := range list {
				got = append(got, tk.Text)
			}
			if strings.Join(got, ",") != tt.want {
				t.Fatalf("got %v, want %s", got, tt.want)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	s := seeded(t)
	read := s.ByPriority(task.Low)[1]
	if _, err := s.Toggle(read.ID); err != nil {
		t.Fatal(err)
	}

	ov := s.Summary()
	if ov.Total != 5 || ov.Completed != 1 || ov.Pending != 4 {
		t.Fatalf("counts = %+v", ov)
	}
	if ov.PlannedMinutes != 90+60+60+60+15 {
		t.Fatalf("PlannedMinutes = %d", ov.PlannedMinutes)
	}
	if ov.FirstStart != 360 || ov.LastEnd != 1380 {
		t.Fatalf("span = %d..%d", ov.FirstStart, ov.LastEnd)
	}
	wantOrder := []task.Priority{task.High, task.Medium, task.Low, task.None}
	for i, pc := range ov.Priorities {
		if pc.Priority != wantOrder[i] {
			t.Fatalf("priority %d = %q", i, pc.Priority)
		}
	}
	if low := ov.Priorities[2]; low.Count != 2 || low.Completed != 1 {
		t.Fatalf("low = %+v", low)
	}
}

func TestSummaryEmpty(t *testing.T) {
	ov := Summarize(nil)
	if ov.Total != 0 || ov.PlannedMinutes != 0 || len(ov.Priorities) != 4 {
		t.Fatalf("empty overview = %+v", ov)
	}
}

func TestActivityAppendAndRead(t *testing.T) {
	dir := t.TempDir()

	entries, err := ReadActivity(dir, 0)
	if err != nil || len(entries) != 0 {
		t.Fatalf("missing log = %v, %v", entries, err)
	}

	RecordActivity(dir, "add", 1, "Write report")
	RecordActivity(dir, "toggle", 1, "")
	RecordActivity(dir, "delete", 1, "Write report")

	entries, err = ReadActivity(dir, 0)
	if err != nil {
		t.Fatalf("ReadActivity: %v", err)
	}
	if len(entries) != 3 || entries[0].Action != "add" || entries[2].Action != "delete" {
		t.Fatalf("entries = %+v", entries)
	}

	last, err := ReadActivity(dir, 2)
	if err != nil || len(last) != 2 || last[0].Action != "toggle" {
		t.Fatalf("limited = %+v, %v", last, err)
	}
}

func TestActivitySkipsGarbage(t *testing.T) {
	dir := t.TempDir()
	content := `{"timestamp":"2026-01-02T09:00:00Z","action":"add","task_id":7}` + "\nnot json\n"
	if err := os.WriteFile(ActivityPath(dir), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	entries, err := ReadActivity(dir, 0)
	if err != nil || len(entries) != 1 || entries[0].TaskID != 7 {
		t.Fatalf("entries = %+v, %v", entries, err)
	}
}

func TestActivityIsCapped(t *testing.T) {
	dir := t.TempDir()
	var buf strings.Builder
	for i := range maxActivity {
		fmt.Fprintf(&buf, `{"timestamp":"2026-01-02T09:00:00Z","action":"add","task_id":%d}`+"\n", i+1)
	}
	if err := os.WriteFile(ActivityPath(dir), []byte(buf.String()), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := AppendActivity(dir, Activity{Action: "delete", TaskID: 99999}); err != nil {
		t.Fatalf("AppendActivity: %v", err)
	}
	entries, err := ReadActivity(dir, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != maxActivity {
		t.Fatalf("len = %d, want %d", len(entries), maxActivity)
	}
	if entries[0].TaskID != 2 || entries[len(entries)-1].TaskID != 99999 {
		t.Fatalf("wrong window: first %d last %d", entries[0].TaskID, entries[len(entries)-1].TaskID)
	}
}
