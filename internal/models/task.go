package models

import "time"

const (
	StatusBacklog    = "backlog"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
	StatusDone       = "done"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Statuses lists the board columns in display order.
func Statuses() []string {
	return []string{StatusBacklog, StatusInProgress, StatusReview, StatusDone}
}

func ValidTaskStatus(status string) bool {
	return status == StatusBacklog ||
		status == StatusInProgress ||
		status == StatusReview ||
		status == StatusDone
}

func ValidTaskPriority(priority string) bool {
	return priority == PriorityLow ||
		priority == PriorityMedium ||
		priority == PriorityHigh
}

type Task struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"-"`
	Title              string     `json:"title"`
	Priority           string     `json:"priority"`
	Status             string     `json:"status"`
	Assignee           string     `json:"assignee"`
	Starred            bool       `json:"starred"`
	CreatedAt          time.Time  `json:"createdAt"`
	AssignedAt         time.Time  `json:"assignedAt"`
	AssignedAtDisplay  string     `json:"assignedAtDisplay"`
	Deadline           *time.Time `json:"deadline"`
	CompletedAt        *time.Time `json:"completedAt"`
	CompletedAtDisplay string     `json:"completedAtDisplay,omitempty"`
}

const displayTimeLayout = "Jan 2, 2006, 3:04 PM MST"

// DisplayTime renders a timestamp in the fixed display zone
// shown on task cards, independent of the server's local zone.
func DisplayTime(t time.Time) string {
	return t.UTC().Format(displayTimeLayout)
}

// Deadline inputs arrive either from a datetime-local form
// field or as a full timestamp.
var deadlineLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDeadline normalizes a raw deadline input into a canonical
// timestamp. Absent or unparseable input yields nil.
func ParseDeadline(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range deadlineLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

type DueState string

const (
	DueNone     DueState = "none"
	DueOverdue  DueState = "overdue"
	DueSoon     DueState = "due-soon"
	DueUpcoming DueState = "upcoming"
)

const dueSoonWindow = 48 * time.Hour

// Due classifies the task's deadline against now.
func (t *Task) Due(now time.Time) DueState {
	if t.Deadline == nil {
		return DueNone
	}
	switch {
	case t.Deadline.Before(now):
		return DueOverdue
	case t.Deadline.Sub(now) <= dueSoonWindow:
		return DueSoon
	default:
		return DueUpcoming
	}
}
