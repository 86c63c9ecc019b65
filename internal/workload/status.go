package workload

import "fmt"

// Status is the saturation bucket assigned to a member for one week.
type Status string

// Status constants returned by Classify.
const (
	StatusIdle           Status = "idle"
	StatusUnderSaturated Status = "under_saturated"
	StatusNormal         Status = "normal"
	StatusOverloaded     Status = "overloaded"
)

// Thresholds are the configured saturation boundaries, as percentages.
//
// Classify consults only UnderSaturatedMax and NormalMax. NormalMin and
// OverSaturatedMin are accepted and order-validated because the settings
// surface exposes all four knobs, but the classification model has never
// consulted them; changing that would move members between buckets at the
// boundaries, so the behaviour is kept as-is.
type Thresholds struct {
	UnderSaturatedMax float64
	NormalMin         float64
	NormalMax         float64
	OverSaturatedMin  float64
}

// Validate checks that all thresholds are non-negative and monotonically
// non-decreasing in the order under_saturated_max <= normal_min <=
// normal_max <= over_saturated_min.
func (t Thresholds) Validate() error {
	if t.UnderSaturatedMax < 0 || t.NormalMin < 0 || t.NormalMax < 0 || t.OverSaturatedMin < 0 {
		return fmt.Errorf("thresholds must be non-negative")
	}
	if !(t.UnderSaturatedMax <= t.NormalMin && t.NormalMin <= t.NormalMax && t.NormalMax <= t.OverSaturatedMin) {
		return fmt.Errorf("thresholds must satisfy under_saturated_max <= normal_min <= normal_max <= over_saturated_min")
	}
	return nil
}

// Classify maps a saturation percentage to a status.
//
//	saturation == 0                          -> idle
//	0 < saturation < UnderSaturatedMax       -> under_saturated
//	UnderSaturatedMax <= s <= NormalMax      -> normal
//	saturation > NormalMax                   -> overloaded
//
// The mapping is exhaustive and non-overlapping for every real value.
func Classify(saturation float64, t Thresholds) Status {
	switch {
	case saturation == 0:
		return StatusIdle
	case saturation < t.UnderSaturatedMax:
		return StatusUnderSaturated
	case saturation <= t.NormalMax:
		return StatusNormal
	default:
		return StatusOverloaded
	}
}
