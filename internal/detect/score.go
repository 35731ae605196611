package detect

import "math"

// Confidence is the tri-level trust label attached to a candidate.
type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceMed  Confidence = "med"
	ConfidenceLow  Confidence = "low"
)

// ScoringModel selects how occurrence count, cadence, and amount variance
// combine into a confidence label.
type ScoringModel string

const (
	// ScoringAdditive sums three independent signals and maps the clipped
	// score onto high/med/low. Primary model.
	ScoringAdditive ScoringModel = "additive"

	// ScoringTiers grades on occurrence count alone, downgrading to low when
	// no category is known. Alternative model kept behind configuration.
	ScoringTiers ScoringModel = "tiers"
)

// Additive signal weights and thresholds.
const (
	cadenceWeight    = 0.5
	stabilityWeight  = 0.3
	occurrenceWeight = 0.2

	stabilityMaxRelDev = 0.15
	occurrenceBonusMin = 5

	highScoreFloor = 0.8
	medScoreFloor  = 0.5
)

// scoreAdditive computes the additive confidence score in [0,1]:
// cadence resolved +0.5, amount stability +0.3, occurrences >= 5 +0.2.
// Amount stability means the mean absolute deviation stays below 15% of the
// mean amount.
func scoreAdditive(cadenceResolved bool, amounts []float64, occurrences int) float64 {
	score := 0.0
	if cadenceResolved {
		score += cadenceWeight
	}
	if amountStable(amounts) {
		score += stabilityWeight
	}
	if occurrences >= occurrenceBonusMin {
		score += occurrenceWeight
	}
	if score > 1 {
		score = 1
	}
	return score
}

func amountStable(amounts []float64) bool {
	if len(amounts) == 0 {
		return false
	}
	var sum float64
	for _, a := range amounts {
		sum += a
	}
	mean := sum / float64(len(amounts))

	var dev float64
	for _, a := range amounts {
		dev += math.Abs(a - mean)
	}
	dev /= float64(len(amounts))

	base := mean
	if base < 1 {
		base = 1
	}
	return dev/base < stabilityMaxRelDev
}

func confidenceFromScore(score float64) Confidence {
	switch {
	case score >= highScoreFloor:
		return ConfidenceHigh
	case score >= medScoreFloor:
		return ConfidenceMed
	}
	return ConfidenceLow
}

// confidenceTiers grades purely on occurrences: >=5 high, >=4 med, else low.
// Without a known category the label is capped at low, since an uncategorized
// group has not been corroborated by curation.
func confidenceTiers(occurrences int, hasCategory bool) Confidence {
	if !hasCategory {
		return ConfidenceLow
	}
	switch {
	case occurrences >= 5:
		return ConfidenceHigh
	case occurrences >= 4:
		return ConfidenceMed
	}
	return ConfidenceLow
}
