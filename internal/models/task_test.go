package models

import (
	"testing"
	"time"
)

func TestParseDeadline(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string // RFC3339, "" means nil
	}{
		{"empty", "", ""},
		{"datetime-local", "2026-03-14T09:30", "2026-03-14T09:30:00Z"},
		{"datetime-local with seconds", "2026-03-14T09:30:15", "2026-03-14T09:30:15Z"},
		{"rfc3339", "2026-03-14T09:30:00+02:00", "2026-03-14T07:30:00Z"},
		{"garbage", "next tuesday", ""},
		{"date only", "2026-03-14", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDeadline(tt.raw)
			if tt.want == "" {
				if got != nil {
					t.Errorf("ParseDeadline(%q) = %v; want nil", tt.raw, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseDeadline(%q) = nil; want %s", tt.raw, tt.want)
			}
			if got.Format(time.RFC3339) != tt.want {
				t.Errorf("ParseDeadline(%q) = %s; want %s", tt.raw, got.Format(time.RFC3339), tt.want)
			}
		})
	}
}

func TestTaskDue(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	deadline := func(d time.Duration) *time.Time {
		at := now.Add(d)
		return &at
	}

	tests := []struct {
		name     string
		deadline *time.Time
		want     DueState
	}{
		{"no deadline", nil, DueNone},
		{"past", deadline(-time.Hour), DueOverdue},
		{"inside lookahead", deadline(24 * time.Hour), DueSoon},
		{"at lookahead boundary", deadline(48 * time.Hour), DueSoon},
		{"beyond lookahead", deadline(72 * time.Hour), DueUpcoming},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{Deadline: tt.deadline}
			if got := task.Due(now); got != tt.want {
				t.Errorf("Due() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestValidTaskStatus(t *testing.T) {
	for _, status := range Statuses() {
		if !ValidTaskStatus(status) {
			t.Errorf("ValidTaskStatus(%q) = false; want true", status)
		}
	}
	for _, status := range []string{"", "archived", "Done", "in_progress"} {
		if ValidTaskStatus(status) {
			t.Errorf("ValidTaskStatus(%q) = true; want false", status)
		}
	}
}

func TestValidTaskPriority(t *testing.T) {
	for _, priority := range []string{PriorityLow, PriorityMedium, PriorityHigh} {
		if !ValidTaskPriority(priority) {
			t.Errorf("ValidTaskPriority(%q) = false; want true", priority)
		}
	}
	for _, priority := range []string{"", "low", "Urgent"} {
		if ValidTaskPriority(priority) {
			t.Errorf("ValidTaskPriority(%q) = true; want false", priority)
		}
	}
}
