// Package workload computes three-week-ahead saturation metrics from
// per-member daily hour allocations.
//
// week.go provides the pure WeekRange function that resolves a base date
// and a week offset (0=current, 1=next, 2=next-next) to a Monday..Sunday
// window.
//
// status.go provides the Classify function that maps a saturation
// percentage to one of four statuses using the configured thresholds.
//
// calc.go provides Analyze, the batch calculation over a whole input
// table: per-member project hours inside each window, flat weekly
// overhead, saturation, status, and week-over-week change. The base date
// is passed explicitly so callers (and tests) control the clock.
//
// summary.go aggregates the finished rows into per-week status counts and
// mean saturation.
package workload
