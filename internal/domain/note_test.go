package domain

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "deduplicates preserving order",
			in:   []string{"work", "ideas", "work", "ideas"},
			want: []string{"work", "ideas"},
		},
		{
			name: "trims whitespace",
			in:   []string{" work ", "work"},
			want: []string{"work"},
		},
		{
			name: "drops empty entries",
			in:   []string{"", "  ", "work"},
			want: []string{"work"},
		},
		{
			name: "empty input",
			in:   []string{},
			want: []string{},
		},
		{
			name: "nil input",
			in:   nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPatchIsEmpty(t *testing.T) {
	if !(NotePatch{}).IsEmpty() {
		t.Error("zero NotePatch should be empty")
	}
	title := "updated"
	if (NotePatch{Title: &title}).IsEmpty() {
		t.Error("NotePatch with title should not be empty")
	}
	if (NotePatch{Tags: []string{}}).IsEmpty() {
		t.Error("NotePatch with non-nil tags should not be empty")
	}

	if !(UserPatch{}).IsEmpty() {
		t.Error("zero UserPatch should be empty")
	}
	if !(CategoryPatch{}).IsEmpty() {
		t.Error("zero CategoryPatch should be empty")
	}
	if !(TagPatch{}).IsEmpty() {
		t.Error("zero TagPatch should be empty")
	}
}
