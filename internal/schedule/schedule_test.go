package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontrack-app/ontrack/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func due(id int64, iso string) models.Task {
	return models.Task{ID: id, Title: "t", DueDate: iso}
}

func TestTierBoundaries(t *testing.T) {
	tests := []struct {
		count int
		want  Tier
	}{
		{0, TierNone},
		{1, TierLight},
		{2, TierMedium},
		{3, TierStrong},
		{4, TierStrong},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.count), "count=%d", tt.count)
	}
}

func TestMonthGridShape(t *testing.T) {
	// March 2024 starts on a Friday and has 31 days:
	// 5 leading blanks + 31 days + 6 trailing blanks = 6 full weeks.
	m := MonthGrid(date(2024, time.March, 15), nil)

	assert.Equal(t, 2024, m.Year)
	assert.Equal(t, time.March, m.Month)
	require.Len(t, m.Weeks, 6)

	for i := 0; i < 5; i++ {
		assert.Zero(t, m.Weeks[0][i].Day, "leading pad %d", i)
	}
	assert.Equal(t, 1, m.Weeks[0][5].Day)
	assert.Equal(t, 31, m.Weeks[5][0].Day)
	assert.Zero(t, m.Weeks[5][6].Day, "trailing pad")
}

func TestMonthGridCountsOnlyDisplayedMonth(t *testing.T) {
	tasks := []models.Task{
		due(1, "2024-03-15"),
		due(2, "2024-03-15"),
		due(3, "2024-03-01"),
		due(4, "2024-02-29"), // previous month, never counted here
		due(5, "2025-03-15"), // same month number, different year
		{ID: 6, Title: "no due date"},
	}
	m := MonthGrid(date(2024, time.March, 1), tasks)

	var march1, march15 Cell
	for _, week := range m.Weeks {
		for _, c := range week {
			switch c.Day {
			case 1:
				march1 = c
			case 15:
				march15 = c
			}
		}
	}

	assert.Equal(t, 1, march1.Count)
	assert.Equal(t, TierLight, march1.Tier)
	assert.Equal(t, 2, march15.Count)
	assert.Equal(t, TierMedium, march15.Tier)
}

func TestWeekOfStartsOnSunday(t *testing.T) {
	// 2024-03-15 is a Friday; its week runs 03-10 (Sun) through 03-16 (Sat).
	w := WeekOf(date(2024, time.March, 15))

	assert.Equal(t, "2024-03-10", ISODate(w.Start()))
	assert.Equal(t, "2024-03-16", ISODate(w.End()))
	assert.Equal(t, time.Sunday, w.Start().Weekday())
	assert.Equal(t, time.Saturday, w.End().Weekday())

	// a Sunday is its own week start
	w = WeekOf(date(2024, time.March, 10))
	assert.Equal(t, "2024-03-10", ISODate(w.Start()))
}

func TestBucketWeek(t *testing.T) {
	w := WeekOf(date(2024, time.March, 15))
	tasks := []models.Task{
		due(1, "2024-03-10"), // Sunday, first bucket
		due(2, "2024-03-15"),
		due(3, "2024-03-17"), // next week, excluded
		{ID: 4, Title: "undated"},
	}

	buckets := BucketWeek(w, tasks)

	require.Len(t, buckets[0], 1)
	assert.EqualValues(t, 1, buckets[0][0].ID)
	require.Len(t, buckets[5], 1)
	assert.EqualValues(t, 2, buckets[5][0].ID)

	total := 0
	for _, b := range buckets {
		total += len(b)
	}
	assert.Equal(t, 2, total)
}

func TestBucketByColumn(t *testing.T) {
	cols := []models.Column{
		{ID: "col-1", Title: "Math"},
		{ID: "col-2", Title: "History"},
	}
	tasks := []models.Task{
		{ID: 1, Status: "col-1"},
		{ID: 2, Status: "col-1"},
		{ID: 3, Status: "col-2"},
		{ID: 4, Status: ""},        // never sorted
		{ID: 5, Status: "col-del"}, // orphaned by a deleted tab
	}

	byColumn, unsorted := BucketByColumn(tasks, cols)

	assert.Len(t, byColumn["col-1"], 2)
	assert.Len(t, byColumn["col-2"], 1)
	require.Len(t, unsorted, 2)
	assert.EqualValues(t, 4, unsorted[0].ID)
	assert.EqualValues(t, 5, unsorted[1].ID)
}

func TestBucketByDay(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Day: "Monday"},
		{ID: 2, Day: "Monday"},
		{ID: 3, Day: "Saturday"},
		{ID: 4},
	}

	byDay := BucketByDay(tasks)

	assert.Len(t, byDay["Monday"], 2)
	assert.Len(t, byDay["Saturday"], 1)
	assert.NotContains(t, byDay, "")
}

func TestSameDayIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2024, time.March, 15, 0, 1, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 15, 23, 59, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, b.AddDate(0, 0, 1)))
}
