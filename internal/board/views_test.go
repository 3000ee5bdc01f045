package board

import (
	"fmt"
	"testing"
	"time"

	"github.com/thenamakop/taskboard/internal/models"
)

// tasksWithCounts builds a board with the given number of tasks per
// column, newest first.
func tasksWithCounts(backlog, inProgress, review, done int) []models.Task {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	var tasks []models.Task
	add := func(status string, n int) {
		for i := 0; i < n; i++ {
			tasks = append(tasks, models.Task{
				ID:        fmt.Sprintf("%s-%d", status, i),
				Status:    status,
				CreatedAt: base.Add(-time.Duration(len(tasks)) * time.Minute),
			})
		}
	}
	add(models.StatusBacklog, backlog)
	add(models.StatusInProgress, inProgress)
	add(models.StatusReview, review)
	add(models.StatusDone, done)
	return tasks
}

func TestSummaryAlwaysTotalsOneHundred(t *testing.T) {
	tests := []struct {
		name                           string
		backlog, inProgress, review, done int
	}{
		{"all zero", 0, 0, 0, 0},
		{"single done", 0, 0, 0, 1},
		{"single backlog", 1, 0, 0, 0},
		{"even split", 1, 1, 1, 1},
		{"thirds", 1, 1, 1, 0},
		{"residual to done", 3, 3, 2, 0},
		{"large", 17, 29, 5, 49},
		{"sevenths", 2, 2, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := Summary(tasksWithCounts(tt.backlog, tt.inProgress, tt.review, tt.done))
			if len(segments) != 4 {
				t.Fatalf("segment count = %d; want 4", len(segments))
			}
			total := 0
			for _, segment := range segments {
				if segment.Percent < 0 {
					t.Errorf("segment %s percent = %d; want >= 0", segment.Status, segment.Percent)
				}
				total += segment.Percent
			}
			if total != 100 {
				t.Errorf("summary total = %d; want exactly 100", total)
			}
		})
	}
}

func TestSummaryEmptyBoardConvention(t *testing.T) {
	segments := Summary(nil)
	for _, segment := range segments {
		want := 0
		if segment.Status == models.StatusDone {
			want = 100
		}
		if segment.Percent != want {
			t.Errorf("%s percent = %d; want %d", segment.Status, segment.Percent, want)
		}
	}
}

func TestColumnCountsCoversEveryColumn(t *testing.T) {
	counts := ColumnCounts(tasksWithCounts(2, 0, 1, 0))
	for _, status := range models.Statuses() {
		if _, ok := counts[status]; !ok {
			t.Errorf("column %q missing from counts", status)
		}
	}
	if counts[models.StatusBacklog] != 2 {
		t.Errorf("backlog count = %d; want 2", counts[models.StatusBacklog])
	}
	if counts[models.StatusInProgress] != 0 {
		t.Errorf("in-progress count = %d; want 0", counts[models.StatusInProgress])
	}
}

func TestPinnedCapsAtSixInListOrder(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	var tasks []models.Task
	for i := 0; i < 10; i++ {
		tasks = append(tasks, models.Task{
			ID:        fmt.Sprintf("t%d", i),
			Starred:   i%2 == 0, // t0, t2, t4, t6, t8
			CreatedAt: base,
		})
	}
	tasks = append(tasks, models.Task{ID: "t10", Starred: true, CreatedAt: base})

	pinned := Pinned(tasks)
	if len(pinned) != 6 {
		t.Fatalf("pinned len = %d; want 6", len(pinned))
	}
	wantIDs := []string{"t0", "t2", "t4", "t6", "t8", "t10"}
	for i, want := range wantIDs {
		if pinned[i].ID != want {
			t.Errorf("pinned[%d] = %q; want %q", i, pinned[i].ID, want)
		}
	}
}

func TestRecentActivityNewestFirstCapsAtFive(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	var tasks []models.Task
	// Deliberately shuffled creation order in the list.
	for _, i := range []int{3, 0, 6, 1, 5, 2, 4} {
		tasks = append(tasks, models.Task{
			ID:        fmt.Sprintf("t%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	recent := RecentActivity(tasks)
	if len(recent) != 5 {
		t.Fatalf("recent len = %d; want 5", len(recent))
	}
	wantIDs := []string{"t6", "t5", "t4", "t3", "t2"}
	for i, want := range wantIDs {
		if recent[i].ID != want {
			t.Errorf("recent[%d] = %q; want %q", i, recent[i].ID, want)
		}
	}
}

func TestDueCounts(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	deadline := func(d time.Duration) *time.Time {
		at := now.Add(d)
		return &at
	}
	tasks := []models.Task{
		{ID: "late", Deadline: deadline(-time.Hour)},
		{ID: "soon", Deadline: deadline(12 * time.Hour)},
		{ID: "later", Deadline: deadline(100 * time.Hour)},
		{ID: "never"},
	}

	overdue, dueSoon := DueCounts(tasks, now)
	if overdue != 1 {
		t.Errorf("overdue = %d; want 1", overdue)
	}
	if dueSoon != 1 {
		t.Errorf("dueSoon = %d; want 1", dueSoon)
	}
}
