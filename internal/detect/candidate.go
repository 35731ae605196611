package detect

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"
)

// Status records where a subscription sits in the human review flow. The
// detector emits "suggested" (or "ignored" when a curation rule forces it);
// only the persistence layer, acting on a user decision, moves a record to
// "confirmed" or "ignored", and re-detection must never move it back.
type Status string

const (
	StatusSuggested Status = "suggested"
	StatusConfirmed Status = "confirmed"
	StatusIgnored   Status = "ignored"
)

// Candidate is one detected recurring charge, prior to human confirmation.
type Candidate struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	NormalizedKey string     `json:"normalizedKey"`
	Amount        float64    `json:"amount"`
	Cadence       Cadence    `json:"cadence"`
	AnnualCost    float64    `json:"annualCost"`
	LastSeen      string     `json:"lastSeen"`
	Occurrences   int        `json:"occurrences"`
	Confidence    Confidence `json:"confidence"`
	NeedsReview   bool       `json:"needsReview"`
	Category      string     `json:"category,omitempty"`
	Status        Status     `json:"status"`
	IgnoreReasons []string   `json:"ignoreReasons,omitempty"`

	// UpdatedAt is owned by the persistence layer; the detector leaves it
	// zero.
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// StableID derives the candidate identity from the normalized key, cadence,
// and per-charge amount in cents. Re-running detection over overlapping data
// yields the same id for the same underlying charge, so the persistence
// layer can upsert idempotently.
func StableID(normalizedKey string, cadence Cadence, amount float64) string {
	cents := int64(math.Round(amount * 100))
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", normalizedKey, cadence, cents)))
	return hex.EncodeToString(sum[:])[:16]
}

// AnnualCost derives the yearly spend for a cadence and per-charge amount.
// It is always computed, never stored independently.
func AnnualCost(cadence Cadence, amount float64) float64 {
	switch cadence {
	case CadenceMonthly:
		return round2(amount * 12)
	case CadenceWeekly:
		return round2(amount * 52)
	}
	return round2(amount)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
