package workload

import (
	"errors"
	"math"
	"testing"
	"time"
)

// almostEqual returns true if a and b are within epsilon of each other.
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// baseMonday is a known Monday used throughout these tests.
var baseMonday = date(2025, time.November, 17)

func testParams() Params {
	return Params{
		StandardHours:   40,
		OtherTasksHours: 1.5,
		Thresholds:      defaultThresholds,
	}
}

func hoursFor(days ...time.Time) map[time.Time]float64 {
	h := make(map[time.Time]float64, len(days))
	for _, d := range days {
		h[d] = 8
	}
	return h
}

func TestAnalyze_FullCurrentWeek(t *testing.T) {
	// Eight hours Monday through Friday of the current week:
	// project 40h + overhead 1.5h = 41.5h -> 103.75% -> 103.8, normal.
	in := Input{
		Rows: []MemberHours{{
			Member: "A",
			Hours: hoursFor(
				date(2025, time.November, 17),
				date(2025, time.November, 18),
				date(2025, time.November, 19),
				date(2025, time.November, 20),
				date(2025, time.November, 21),
			),
		}},
	}

	a, err := Analyze(in, testParams(), baseMonday)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(a.Rows) != 1 {
		t.Fatalf("rows: got %d, want 1", len(a.Rows))
	}

	cur := a.Rows[0].Weeks[CurrentWeek]
	if !almostEqual(cur.ProjectHours, 40, 1e-9) {
		t.Errorf("project hours: got %v, want 40", cur.ProjectHours)
	}
	if !almostEqual(cur.OverheadHours, 1.5, 1e-9) {
		t.Errorf("overhead hours: got %v, want 1.5", cur.OverheadHours)
	}
	if !almostEqual(cur.TotalHours, 41.5, 1e-9) {
		t.Errorf("total hours: got %v, want 41.5", cur.TotalHours)
	}
	if cur.SaturationPct != 103.8 {
		t.Errorf("saturation: got %v, want 103.8", cur.SaturationPct)
	}
	if cur.Status != StatusNormal {
		t.Errorf("status: got %q, want %q", cur.Status, StatusNormal)
	}
}

func TestAnalyze_OverheadAloneIsNotIdle(t *testing.T) {
	// A member with no entries anywhere still carries the flat overhead:
	// (0+1.5)/40*100 = 3.75 -> 3.8, under_saturated in all three weeks.
	in := Input{Rows: []MemberHours{{Member: "B", Hours: nil}}}

	a, err := Analyze(in, testParams(), baseMonday)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	for offset := 0; offset < WeekCount; offset++ {
		wm := a.Rows[0].Weeks[offset]
		if wm.SaturationPct != 3.8 {
			t.Errorf("week %d saturation: got %v, want 3.8", offset, wm.SaturationPct)
		}
		if wm.Status != StatusUnderSaturated {
			t.Errorf("week %d status: got %q, want %q", offset, wm.Status, StatusUnderSaturated)
		}
	}
}

func TestAnalyze_ChangeRateSentinel(t *testing.T) {
	// No overhead at all: current week total 0, next week total 20.
	// The delta is the whole 20h and the rate is the finite sentinel.
	p := testParams()
	p.OtherTasksHours = 0

	in := Input{
		Rows: []MemberHours{{
			Member: "C",
			Hours: map[time.Time]float64{
				date(2025, time.November, 24): 10,
				date(2025, time.November, 25): 10,
			},
		}},
	}

	a, err := Analyze(in, p, baseMonday)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	row := a.Rows[0]

	if row.Weeks[CurrentWeek].Status != StatusIdle {
		t.Errorf("current status: got %q, want idle", row.Weeks[CurrentWeek].Status)
	}
	next := row.Weeks[NextWeek]
	if next.Change != 20 {
		t.Errorf("change: got %v, want 20", next.Change)
	}
	if next.ChangeRatePct != ChangeRateSentinel {
		t.Errorf("change rate: got %v, want sentinel %v", next.ChangeRatePct, ChangeRateSentinel)
	}

	// Next-next week drops back to zero from a nonzero week: -100%.
	nn := row.Weeks[NextNextWeek]
	if nn.Change != -20 {
		t.Errorf("next-next change: got %v, want -20", nn.Change)
	}
	if nn.ChangeRatePct != -100 {
		t.Errorf("next-next change rate: got %v, want -100", nn.ChangeRatePct)
	}
}

func TestAnalyze_ZeroToZeroChangeRate(t *testing.T) {
	p := testParams()
	p.OtherTasksHours = 0
	in := Input{Rows: []MemberHours{{Member: "Z"}}}

	a, err := Analyze(in, p, baseMonday)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	for offset := NextWeek; offset <= NextNextWeek; offset++ {
		wm := a.Rows[0].Weeks[offset]
		if wm.Change != 0 || wm.ChangeRatePct != 0 {
			t.Errorf("week %d: got change=%v rate=%v, want 0/0", offset, wm.Change, wm.ChangeRatePct)
		}
	}
}

func TestAnalyze_PrimaryOverhead(t *testing.T) {
	p := testParams()
	p.PrimaryHours = 20
	p.PrimaryMembers = map[string]bool{"lead": true}

	in := Input{Rows: []MemberHours{
		{Member: "lead"},
		{Member: "ic"},
	}}

	a, err := Analyze(in, p, baseMonday)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	byName := map[string]MemberResult{}
	for _, r := range a.Rows {
		byName[r.Member] = r
	}

	lead, ic := byName["lead"], byName["ic"]
	if !lead.Primary {
		t.Error("lead should be flagged primary")
	}
	if ic.Primary {
		t.Error("ic should not be flagged primary")
	}
	for offset := 0; offset < WeekCount; offset++ {
		if got := lead.Weeks[offset].OverheadHours; !almostEqual(got, 21.5, 1e-9) {
			t.Errorf("lead week %d overhead: got %v, want 21.5", offset, got)
		}
		if got := ic.Weeks[offset].OverheadHours; !almostEqual(got, 1.5, 1e-9) {
			t.Errorf("ic week %d overhead: got %v, want 1.5", offset, got)
		}
	}
}

func TestAnalyze_SortsByNextWeekSaturation(t *testing.T) {
	p := testParams()
	p.OtherTasksHours = 0
	nextMonday := date(2025, time.November, 24)

	in := Input{Rows: []MemberHours{
		{Member: "low", Hours: map[time.Time]float64{nextMonday: 4}},
		{Member: "tie-1", Hours: map[time.Time]float64{nextMonday: 8}},
		{Member: "high", Hours: map[time.Time]float64{nextMonday: 16}},
		{Member: "tie-2", Hours: map[time.Time]float64{nextMonday: 8}},
	}}

	a, err := Analyze(in, p, baseMonday)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	var order []string
	for _, r := range a.Rows {
		order = append(order, r.Member)
	}
	want := []string{"high", "tie-1", "tie-2", "low"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order: got %v, want %v", order, want)
		}
	}

	// Strictly non-increasing next-week saturation.
	for i := 1; i < len(a.Rows); i++ {
		if a.Rows[i].Weeks[NextWeek].SaturationPct > a.Rows[i-1].Weeks[NextWeek].SaturationPct {
			t.Fatalf("row %d breaks descending order", i)
		}
	}
}

func TestAnalyze_DatesOutsideAllWindowsIgnored(t *testing.T) {
	in := Input{Rows: []MemberHours{{
		Member: "far",
		Hours: map[time.Time]float64{
			date(2025, time.October, 1): 8, // weeks before the base date
			date(2026, time.March, 2):   8, // long after the third window
		},
	}}}

	a, err := Analyze(in, testParams(), baseMonday)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	for offset := 0; offset < WeekCount; offset++ {
		if got := a.Rows[0].Weeks[offset].ProjectHours; got != 0 {
			t.Errorf("week %d project hours: got %v, want 0", offset, got)
		}
	}
}

func TestAnalyze_DateInfo(t *testing.T) {
	in := Input{
		Rows: []MemberHours{{Member: "A"}},
		Dates: []time.Time{
			date(2025, time.November, 17),
			date(2025, time.November, 18),
			date(2025, time.November, 24),
			date(2025, time.December, 25), // outside all three windows
		},
	}

	a, err := Analyze(in, testParams(), date(2025, time.November, 19))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	info := a.DateInfo
	if info.BaseDate != "2025-11-19" {
		t.Errorf("base date: got %q", info.BaseDate)
	}
	if info.CurrentWeek.Start != "2025-11-17" || info.CurrentWeek.End != "2025-11-23" {
		t.Errorf("current week: got %s..%s", info.CurrentWeek.Start, info.CurrentWeek.End)
	}
	if info.CurrentWeek.Days != 2 {
		t.Errorf("current week days: got %d, want 2", info.CurrentWeek.Days)
	}
	if info.NextWeek.Days != 1 {
		t.Errorf("next week days: got %d, want 1", info.NextWeek.Days)
	}
	if info.NextNextWeek.Days != 0 {
		t.Errorf("next-next week days: got %d, want 0", info.NextNextWeek.Days)
	}
}

func TestAnalyze_RejectsEmptyInput(t *testing.T) {
	_, err := Analyze(Input{}, testParams(), baseMonday)
	if !errors.Is(err, ErrNoRows) {
		t.Errorf("got %v, want ErrNoRows", err)
	}
}

func TestAnalyze_RejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Params)
	}{
		{"zero standard hours", func(p *Params) { p.StandardHours = 0 }},
		{"standard hours over a week", func(p *Params) { p.StandardHours = 169 }},
		{"negative overhead", func(p *Params) { p.OtherTasksHours = -1 }},
		{"unordered thresholds", func(p *Params) { p.Thresholds = Thresholds{110, 90, 90, 110} }},
	}

	in := Input{Rows: []MemberHours{{Member: "A"}}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.edit(&p)
			if _, err := Analyze(in, p, baseMonday); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestAnalyze_MonotoneInProjectHours(t *testing.T) {
	// Adding project hours while holding everything else fixed never
	// lowers saturation or demotes the status bucket.
	p := testParams()
	rank := map[Status]int{
		StatusIdle: 0, StatusUnderSaturated: 1, StatusNormal: 2, StatusOverloaded: 3,
	}

	prevSat := -1.0
	prevRank := -1
	for h := 0.0; h <= 24; h += 2 {
		in := Input{Rows: []MemberHours{{
			Member: "m",
			Hours:  map[time.Time]float64{baseMonday: h},
		}}}
		a, err := Analyze(in, p, baseMonday)
		if err != nil {
			t.Fatalf("Analyze(%v): %v", h, err)
		}
		wm := a.Rows[0].Weeks[CurrentWeek]
		if wm.SaturationPct < prevSat {
			t.Fatalf("saturation decreased at %vh: %v < %v", h, wm.SaturationPct, prevSat)
		}
		if rank[wm.Status] < prevRank {
			t.Fatalf("status demoted at %vh: %q", h, wm.Status)
		}
		prevSat, prevRank = wm.SaturationPct, rank[wm.Status]
	}
}
