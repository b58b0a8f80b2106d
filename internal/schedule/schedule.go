// Package schedule contains the pure projections of the task collection onto
// calendar shapes: the month density grid, the Sunday-to-Saturday week, and
// the per-tab and per-weekday buckets. Nothing in here writes anywhere.
package schedule

import (
	"time"

	"github.com/ontrack-app/ontrack/internal/models"
)

const dateLayout = "2006-01-02"

// ISODate formats a time as "YYYY-MM-DD" in its own location.
func ISODate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseISODate parses a "YYYY-MM-DD" string.
func ParseISODate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// SameDay reports whether a and b fall on the same calendar day,
// ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Tier is the month-view density bucket for a single day.
type Tier int

const (
	TierNone   Tier = iota // no due tasks
	TierLight              // exactly 1
	TierMedium             // exactly 2
	TierStrong             // 3 or more
)

// TierFor maps a task count onto its density tier. The scale is three fixed
// steps, not continuous.
func TierFor(count int) Tier {
	switch {
	case count <= 0:
		return TierNone
	case count == 1:
		return TierLight
	case count == 2:
		return TierMedium
	default:
		return TierStrong
	}
}

// Cell is one day slot in the month grid. Day is 0 for the blank padding
// cells that square off the leading and trailing weeks.
type Cell struct {
	Day   int
	Date  time.Time
	Count int
	Tier  Tier
}

// Month is a row-major grid of full 7-column weeks covering one month.
type Month struct {
	Year  int
	Month time.Month
	Weeks [][7]Cell
}

// MonthGrid builds the month containing ref. Each real day carries the count
// of tasks due on exactly that date; tasks due in other months are never
// counted, even if their week rows would overlap the display.
func MonthGrid(ref time.Time, tasks []models.Task) Month {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	year, month := first.Year(), first.Month()
	daysInMonth := first.AddDate(0, 1, -1).Day()
	firstWeekday := int(first.Weekday()) // 0=Sunday

	counts := make(map[string]int)
	for _, t := range tasks {
		if t.DueDate == "" {
			continue
		}
		d, err := ParseISODate(t.DueDate)
		if err != nil {
			continue
		}
		if d.Year() == year && d.Month() == month {
			counts[t.DueDate]++
		}
	}

	var cells []Cell
	for i := 0; i < firstWeekday; i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, ref.Location())
		count := counts[ISODate(date)]
		cells = append(cells, Cell{Day: day, Date: date, Count: count, Tier: TierFor(count)})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Cell{})
	}

	m := Month{Year: year, Month: month}
	for i := 0; i < len(cells); i += 7 {
		var week [7]Cell
		copy(week[:], cells[i:i+7])
		m.Weeks = append(m.Weeks, week)
	}
	return m
}

// Week is the Sunday-through-Saturday span containing a reference date.
type Week struct {
	Days [7]time.Time
}

// WeekOf computes the week containing ref: back up to Sunday at zero time of
// day, then the 7 consecutive calendar dates.
func WeekOf(ref time.Time) Week {
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	start = start.AddDate(0, 0, -int(start.Weekday()))

	var w Week
	for i := 0; i < 7; i++ {
		w.Days[i] = start.AddDate(0, 0, i)
	}
	return w
}

// Start returns the week's Sunday.
func (w Week) Start() time.Time { return w.Days[0] }

// End returns the week's Saturday.
func (w Week) End() time.Time { return w.Days[6] }

// BucketWeek distributes tasks into the week's 7 day buckets by exact
// due-date match. Tasks without a due date, or due outside the week, appear
// nowhere.
func BucketWeek(w Week, tasks []models.Task) [7][]models.Task {
	index := make(map[string]int, 7)
	for i, d := range w.Days {
		index[ISODate(d)] = i
	}

	var buckets [7][]models.Task
	for _, t := range tasks {
		if t.DueDate == "" {
			continue
		}
		if i, ok := index[t.DueDate]; ok {
			buckets[i] = append(buckets[i], t)
		}
	}
	return buckets
}

// BucketByColumn groups tasks under the tab whose ID matches their status.
// Tasks whose status matches no existing tab land in the unsorted bucket,
// which is also where tasks orphaned by tab deletion surface.
func BucketByColumn(tasks []models.Task, cols []models.Column) (byColumn map[string][]models.Task, unsorted []models.Task) {
	known := make(map[string]bool, len(cols))
	for _, c := range cols {
		known[c.ID] = true
	}

	byColumn = make(map[string][]models.Task, len(cols))
	for _, t := range tasks {
		if t.Status != "" && known[t.Status] {
			byColumn[t.Status] = append(byColumn[t.Status], t)
		} else {
			unsorted = append(unsorted, t)
		}
	}
	return byColumn, unsorted
}

// BucketByDay groups tasks by their assigned weekday name. The assignment is
// independent of the due date. Tasks with no day assignment are omitted.
func BucketByDay(tasks []models.Task) map[string][]models.Task {
	byDay := make(map[string][]models.Task, len(models.Weekdays))
	for _, t := range tasks {
		if t.Day != "" {
			byDay[t.Day] = append(byDay[t.Day], t)
		}
	}
	return byDay
}
