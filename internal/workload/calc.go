package workload

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"
)

// ChangeRateSentinel is persisted as the change rate when the previous
// week's total is zero but the current week's is not. The true ratio is
// unbounded; a finite placeholder keeps serialized output representable.
const ChangeRateSentinel = 0.0

// ErrNoRows is returned by Analyze when the input table has no members.
var ErrNoRows = errors.New("workload: input has no member rows")

// MemberHours is one member's raw allocation: daily hours keyed by
// calendar date (midnight UTC, see Day).
type MemberHours struct {
	Member string
	Hours  map[time.Time]float64
}

// Input is the typed table the calculator consumes. Dates lists the
// parsed date columns of the source table in order; it is used only for
// the per-window matched-day counts in DateInfo.
type Input struct {
	Rows  []MemberHours
	Dates []time.Time
}

// Params is the configuration snapshot for one analysis run. It is
// treated as read-only for the duration of the run.
type Params struct {
	// StandardHours is the standard work week in hours.
	StandardHours float64

	// OtherTasksHours is the flat weekly overhead applied to everyone.
	OtherTasksHours float64

	// PrimaryHours is the extra weekly overhead applied to members in
	// PrimaryMembers.
	PrimaryHours float64

	// PrimaryMembers holds the identifiers carrying primary responsibility.
	PrimaryMembers map[string]bool

	Thresholds Thresholds
}

// Validate rejects parameter sets that would produce silently-wrong
// saturation numbers.
func (p Params) Validate() error {
	if p.StandardHours <= 0 || p.StandardHours > 168 {
		return fmt.Errorf("standard hours must be in (0, 168], got %v", p.StandardHours)
	}
	if p.OtherTasksHours < 0 {
		return fmt.Errorf("other-tasks hours must be non-negative, got %v", p.OtherTasksHours)
	}
	if p.PrimaryHours < 0 {
		return fmt.Errorf("primary-responsibility hours must be non-negative, got %v", p.PrimaryHours)
	}
	return p.Thresholds.Validate()
}

// WeekMetrics is one member's derived numbers for one week window.
// Change and ChangeRatePct are zero for the current week; for the two
// later weeks they compare against the immediately preceding week.
type WeekMetrics struct {
	ProjectHours  float64 `json:"project_hours"`
	OverheadHours float64 `json:"overhead_hours"`
	TotalHours    float64 `json:"total_hours"`
	SaturationPct float64 `json:"saturation_pct"`
	Status        Status  `json:"status"`
	Change        float64 `json:"change"`
	ChangeRatePct float64 `json:"change_rate_pct"`
}

// MemberResult is the full three-week row for one member.
type MemberResult struct {
	Member  string                 `json:"member"`
	Primary bool                   `json:"primary"`
	Weeks   [WeekCount]WeekMetrics `json:"weeks"`
}

// WindowInfo is one resolved week window plus how many of the table's
// date columns fell inside it.
type WindowInfo struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`   // YYYY-MM-DD
	Days  int    `json:"days"`
}

// DateInfo records the base date and the three resolved windows.
type DateInfo struct {
	BaseDate     string     `json:"base_date"` // YYYY-MM-DD
	CurrentWeek  WindowInfo `json:"current_week"`
	NextWeek     WindowInfo `json:"next_week"`
	NextNextWeek WindowInfo `json:"next_next_week"`
}

// Analysis is the result of one run: one row per member, sorted
// descending by next-week saturation, plus the resolved date windows.
type Analysis struct {
	DateInfo DateInfo       `json:"date_info"`
	Rows     []MemberResult `json:"rows"`
}

// Analyze computes the three-week saturation analysis for every row in
// the input. base is the reference date; callers wanting "today" resolve
// it before the call so the calculator stays clock-free.
//
// Rows are produced in input order, then stable-sorted descending by
// next-week saturation so equal members keep their source ordering.
func Analyze(in Input, p Params, base time.Time) (*Analysis, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("workload: invalid params: %w", err)
	}
	if len(in.Rows) == 0 {
		return nil, ErrNoRows
	}

	var windows [WeekCount]Window
	for offset := range windows {
		windows[offset] = WeekRange(base, offset)
	}

	rows := make([]MemberResult, 0, len(in.Rows))
	for _, m := range in.Rows {
		rows = append(rows, analyzeMember(m, p, windows))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Weeks[NextWeek].SaturationPct > rows[j].Weeks[NextWeek].SaturationPct
	})

	info := dateInfo(base, windows, in.Dates)
	slog.Info("workload: analysis complete",
		"members", len(rows),
		"base_date", info.BaseDate,
		"current_week_days", info.CurrentWeek.Days,
	)

	return &Analysis{DateInfo: info, Rows: rows}, nil
}

// analyzeMember derives the three WeekMetrics for one member.
func analyzeMember(m MemberHours, p Params, windows [WeekCount]Window) MemberResult {
	primary := p.PrimaryMembers[m.Member]
	overhead := p.OtherTasksHours
	if primary {
		overhead += p.PrimaryHours
	}

	res := MemberResult{Member: m.Member, Primary: primary}

	// Unrounded totals per week; change math chains on these, not on the
	// rounded display values.
	var totals [WeekCount]float64

	for offset, win := range windows {
		var project float64
		for d, h := range m.Hours {
			if win.Contains(d) {
				project += h
			}
		}
		total := project + overhead
		saturation := total / p.StandardHours * 100
		totals[offset] = total

		res.Weeks[offset] = WeekMetrics{
			ProjectHours:  project,
			OverheadHours: overhead,
			TotalHours:    total,
			SaturationPct: round1(saturation),
			Status:        Classify(saturation, p.Thresholds),
		}
	}

	for offset := NextWeek; offset <= NextNextWeek; offset++ {
		change, rate := weekChange(totals[offset-1], totals[offset])
		res.Weeks[offset].Change = round1(change)
		res.Weeks[offset].ChangeRatePct = round1(rate)
	}

	return res
}

// weekChange returns the hour delta and percentage change between two
// consecutive weeks. With a zero previous total the delta is the current
// total itself and the rate is 0 when the current total is also zero,
// otherwise ChangeRateSentinel (the true rate being unbounded).
func weekChange(prev, cur float64) (change, ratePct float64) {
	if prev > 0 {
		return cur - prev, (cur - prev) / prev * 100
	}
	if cur == 0 {
		return cur, 0
	}
	return cur, ChangeRateSentinel
}

func dateInfo(base time.Time, windows [WeekCount]Window, dates []time.Time) DateInfo {
	infos := [WeekCount]WindowInfo{}
	for offset, win := range windows {
		days := 0
		for _, d := range dates {
			if win.Contains(d) {
				days++
			}
		}
		infos[offset] = WindowInfo{
			Start: win.Start.Format(time.DateOnly),
			End:   win.End.Format(time.DateOnly),
			Days:  days,
		}
	}
	return DateInfo{
		BaseDate:     Day(base).Format(time.DateOnly),
		CurrentWeek:  infos[CurrentWeek],
		NextWeek:     infos[NextWeek],
		NextNextWeek: infos[NextNextWeek],
	}
}

// round1 rounds v to one decimal place for display and persistence.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
