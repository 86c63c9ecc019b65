package workload

import "time"

// Week offsets accepted by WeekRange and used throughout the analysis.
const (
	CurrentWeek  = 0
	NextWeek     = 1
	NextNextWeek = 2

	// WeekCount is the number of week windows in one analysis run.
	WeekCount = 3
)

// Window is a Monday..Sunday date range. End is always Start plus six days.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the window, bounds inclusive.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// WeekRange resolves the Monday and Sunday bounding the week that is
// offset weeks away from the week containing base (0=current week,
// 1=next week, 2=next-next week).
//
// The weekday of base is taken with Monday=0..Sunday=6; subtracting it
// yields the current week's Monday, and each offset adds seven days.
func WeekRange(base time.Time, offset int) Window {
	day := Day(base)
	weekday := (int(day.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	monday := day.AddDate(0, 0, -weekday+7*offset)
	return Window{Start: monday, End: monday.AddDate(0, 0, 6)}
}

// Day truncates t to a calendar date at midnight UTC. All dates flowing
// through the calculator are normalised this way so map lookups and range
// comparisons are exact.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
