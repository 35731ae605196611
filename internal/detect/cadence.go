package detect

import "math"

// Cadence is the inferred billing frequency class of a recurring charge.
type Cadence string

const (
	CadenceMonthly Cadence = "monthly"
	CadenceYearly  Cadence = "yearly"

	// CadenceWeekly is an opt-in extension (Config.Weekly); the primary
	// product contract covers monthly and yearly only.
	CadenceWeekly Cadence = "weekly"
)

// Day-gap windows for each cadence class. A median gap inside a window
// classifies the group; anything outside every window is not a detectable
// subscription.
const (
	monthlyMinDays = 25
	monthlyMaxDays = 35

	yearlyMinDays = 350
	yearlyMaxDays = 380

	weeklyMinDays = 6
	weeklyMaxDays = 8
)

func cadenceWindow(c Cadence) (min, max int) {
	switch c {
	case CadenceMonthly:
		return monthlyMinDays, monthlyMaxDays
	case CadenceYearly:
		return yearlyMinDays, yearlyMaxDays
	case CadenceWeekly:
		return weeklyMinDays, weeklyMaxDays
	}
	return 0, 0
}

// classifyCadence infers a cadence from the median of the day gaps. At least
// two gaps (three transactions) are required. The boolean is false when the
// median falls outside every window.
func classifyCadence(gaps []int, weekly bool) (Cadence, bool) {
	if len(gaps) < 2 {
		return "", false
	}
	floats := make([]float64, len(gaps))
	for i, g := range gaps {
		floats[i] = float64(g)
	}
	m := median(floats)
	switch {
	case m >= monthlyMinDays && m <= monthlyMaxDays:
		return CadenceMonthly, true
	case m >= yearlyMinDays && m <= yearlyMaxDays:
		return CadenceYearly, true
	case weekly && m >= weeklyMinDays && m <= weeklyMaxDays:
		return CadenceWeekly, true
	}
	return "", false
}

// spacingOK is the cadence-spacing guard: most gaps must land inside the
// cadence window, tolerating one skipped or delayed charge without rejecting
// an otherwise regular series. The threshold is the larger of two gaps and
// 66% of all gaps.
func spacingOK(gaps []int, c Cadence) bool {
	if len(gaps) < 2 {
		return false
	}
	min, max := cadenceWindow(c)
	inRange := 0
	for _, g := range gaps {
		if g >= min && g <= max {
			inRange++
		}
	}
	need := int(math.Ceil(float64(len(gaps)) * 0.66))
	if need < 2 {
		need = 2
	}
	return inRange >= need
}

// amountsConsistent checks every amount against the group median. The whole
// group fails when any member falls outside tolerance; outliers are not
// trimmed, so coincidental amount collisions cannot sneak a loose group
// through.
func amountsConsistent(amounts []float64, toleranceAbs, tolerancePct float64) bool {
	anchor := median(amounts)
	pctBound := math.Abs(anchor) * tolerancePct
	if pctBound < 1 {
		pctBound = 1
	}
	for _, a := range amounts {
		diff := math.Abs(a - anchor)
		if diff > toleranceAbs && diff > pctBound {
			return false
		}
	}
	return true
}
