package schedule

import (
	"slices"
	"testing"

	"github.com/twiced-technology-gmbh/chikita/internal/clierr"
)

func TestParseIDs(t *testing.T) {
	tests := []struct {
		in   string
		want []int64
	}{
		{"42", []int64{42}},
		{"1,2,3", []int64{1, 2, 3}},
		{" 3, 1 ,3,", []int64{3, 1}},
		{"#1700000000000", []int64{1700000000000}},
	}
	for _, tt := range tests {
		got, err := ParseIDs(tt.in)
		if err != nil {
			t.Errorf("ParseIDs(%q) error: %v", tt.in, err)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("ParseIDs(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseIDsRejects(t *testing.T) {
	for _, in := range []string{"", ",", "abc", "1,x", "-4", "0"} {
		if _, err := ParseIDs(in); !clierr.HasCode(err, clierr.InvalidTaskID) {
			t.Errorf("ParseIDs(%q) = %v, want INVALID_TASK_ID", in, err)
		}
	}
}
