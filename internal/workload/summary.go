package workload

// WeekSummary is the aggregate for one week offset across all members.
type WeekSummary struct {
	AvgSaturationPct float64 `json:"avg_saturation_pct"`
	Idle             int     `json:"idle"`
	UnderSaturated   int     `json:"under_saturated"`
	Normal           int     `json:"normal"`
	Overloaded       int     `json:"overloaded"`
}

// Summary is the per-run aggregate: mean saturation and status bucket
// counts for each of the three weeks.
type Summary struct {
	TotalMembers int         `json:"total_members"`
	CurrentWeek  WeekSummary `json:"current_week"`
	NextWeek     WeekSummary `json:"next_week"`
	NextNextWeek WeekSummary `json:"next_next_week"`
}

// Summarize aggregates the finished rows. Pure; returns a zero Summary
// for an empty slice.
func Summarize(rows []MemberResult) Summary {
	s := Summary{TotalMembers: len(rows)}
	weeks := [WeekCount]*WeekSummary{&s.CurrentWeek, &s.NextWeek, &s.NextNextWeek}

	for offset, ws := range weeks {
		var total float64
		for _, r := range rows {
			wm := r.Weeks[offset]
			total += wm.SaturationPct
			switch wm.Status {
			case StatusIdle:
				ws.Idle++
			case StatusUnderSaturated:
				ws.UnderSaturated++
			case StatusNormal:
				ws.Normal++
			case StatusOverloaded:
				ws.Overloaded++
			}
		}
		if len(rows) > 0 {
			ws.AvgSaturationPct = round1(total / float64(len(rows)))
		}
	}
	return s
}
