package model

import "testing"

func TestThought_DueDateHasTime(t *testing.T) {
	tests := []struct {
		dueDate string
		hasDate bool
		hasTime bool
	}{
		{"", false, false},
		{"2026-10-19", true, false},
		{"2026-10-19T15:00:00", true, true},
	}

	for _, tt := range tests {
		thought := Thought{Name: "x", DueDate: tt.dueDate}

		if thought.HasDueDate() != tt.hasDate {
			t.Errorf("HasDueDate(%q), expected: %v, got: %v", tt.dueDate, tt.hasDate, thought.HasDueDate())
		}

		if thought.DueDateHasTime() != tt.hasTime {
			t.Errorf("DueDateHasTime(%q), expected: %v, got: %v", tt.dueDate, tt.hasTime, thought.DueDateHasTime())
		}
	}
}
