package board

import (
	"sort"
	"time"

	"github.com/thenamakop/taskboard/internal/models"
)

const (
	pinnedLimit = 6
	recentLimit = 5
)

// View is everything the presentation layer needs to draw the board.
// It is recomputed from scratch after every mutation; rendering is a
// pure function of task state.
type View struct {
	Columns map[string]int
	Summary []SummarySegment
	Pinned  []models.Task
	Recent  []models.Task
	Overdue int
	DueSoon int
}

// SummarySegment is one slice of the four-segment proportional
// status widget.
type SummarySegment struct {
	Status  string
	Count   int
	Percent int
}

func BuildView(tasks []models.Task, now time.Time) View {
	overdue, dueSoon := DueCounts(tasks, now)
	return View{
		Columns: ColumnCounts(tasks),
		Summary: Summary(tasks),
		Pinned:  Pinned(tasks),
		Recent:  RecentActivity(tasks),
		Overdue: overdue,
		DueSoon: dueSoon,
	}
}

// ColumnCounts tallies tasks per status column. Every column is
// present in the result, zero or not.
func ColumnCounts(tasks []models.Task) map[string]int {
	counts := make(map[string]int, 4)
	for _, status := range models.Statuses() {
		counts[status] = 0
	}
	for i := range tasks {
		counts[tasks[i].Status]++
	}
	return counts
}

// Summary builds the proportional four-segment widget. Each of the
// first three segments gets the floor of its share in whole percent;
// the rounding residual goes to the done segment so the total is
// always exactly 100. With no tasks at all, done carries the full
// 100 by convention.
func Summary(tasks []models.Task) []SummarySegment {
	counts := ColumnCounts(tasks)
	statuses := models.Statuses()
	total := len(tasks)

	segments := make([]SummarySegment, 0, len(statuses))
	if total == 0 {
		for _, status := range statuses {
			percent := 0
			if status == models.StatusDone {
				percent = 100
			}
			segments = append(segments, SummarySegment{Status: status, Percent: percent})
		}
		return segments
	}

	used := 0
	for _, status := range statuses {
		if status == models.StatusDone {
			continue
		}
		percent := counts[status] * 100 / total
		used += percent
		segments = append(segments, SummarySegment{
			Status:  status,
			Count:   counts[status],
			Percent: percent,
		})
	}
	segments = append(segments, SummarySegment{
		Status:  models.StatusDone,
		Count:   counts[models.StatusDone],
		Percent: 100 - used,
	})
	return segments
}

// Pinned returns the first starred tasks in list order, capped at
// the pinned-list size.
func Pinned(tasks []models.Task) []models.Task {
	pinned := make([]models.Task, 0, pinnedLimit)
	for i := range tasks {
		if !tasks[i].Starred {
			continue
		}
		pinned = append(pinned, tasks[i])
		if len(pinned) == pinnedLimit {
			break
		}
	}
	return pinned
}

// RecentActivity returns the most recently created tasks, newest
// first, for the activity feed.
func RecentActivity(tasks []models.Task) []models.Task {
	recent := make([]models.Task, len(tasks))
	copy(recent, tasks)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	return recent
}

// DueCounts tallies tasks whose deadline has passed or falls inside
// the due-soon lookahead window.
func DueCounts(tasks []models.Task, now time.Time) (overdue, dueSoon int) {
	for i := range tasks {
		switch tasks[i].Due(now) {
		case models.DueOverdue:
			overdue++
		case models.DueSoon:
			dueSoon++
		}
	}
	return overdue, dueSoon
}
