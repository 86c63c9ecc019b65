package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/crewload/crewload/internal/workload"
)

// renderAnalysis prints the per-member table followed by the summary.
func renderAnalysis(w io.Writer, a *workload.Analysis, sum workload.Summary) {
	info := a.DateInfo
	fmt.Fprintf(w, "base date %s | current %s..%s | next %s..%s | next-next %s..%s\n\n",
		info.BaseDate,
		info.CurrentWeek.Start, info.CurrentWeek.End,
		info.NextWeek.Start, info.NextWeek.End,
		info.NextNextWeek.Start, info.NextNextWeek.End,
	)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MEMBER\tPRIMARY\tCUR SAT%\tCUR STATUS\tNEXT SAT%\tNEXT STATUS\tΔ NEXT\tNEXT2 SAT%\tNEXT2 STATUS\tΔ NEXT2")
	for _, r := range a.Rows {
		cur, next, next2 := r.Weeks[workload.CurrentWeek], r.Weeks[workload.NextWeek], r.Weeks[workload.NextNextWeek]
		primary := ""
		if r.Primary {
			primary = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\t%.1f\t%s\t%+.1f\t%.1f\t%s\t%+.1f\n",
			r.Member, primary,
			cur.SaturationPct, cur.Status,
			next.SaturationPct, next.Status, next.Change,
			next2.SaturationPct, next2.Status, next2.Change,
		)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d members | avg saturation cur %.1f%% next %.1f%% next2 %.1f%%\n",
		sum.TotalMembers,
		sum.CurrentWeek.AvgSaturationPct,
		sum.NextWeek.AvgSaturationPct,
		sum.NextNextWeek.AvgSaturationPct,
	)
	renderWeekSummary(w, "current", sum.CurrentWeek)
	renderWeekSummary(w, "next", sum.NextWeek)
	renderWeekSummary(w, "next-next", sum.NextNextWeek)
}

func renderWeekSummary(w io.Writer, label string, ws workload.WeekSummary) {
	fmt.Fprintf(w, "  %-9s idle %d | under %d | normal %d | overloaded %d\n",
		label, ws.Idle, ws.UnderSaturated, ws.Normal, ws.Overloaded)
}
