// Package detect implements the recurring-charge detection engine: it groups
// noisy bank-feed transactions by normalized merchant, infers a billing cadence
// from date spacing, validates amount consistency, scores confidence, and
// emits candidate subscriptions. The engine is a pure function over its input;
// it performs no I/O and holds no state between runs.
package detect

import (
	"math"
	"strings"
	"time"
)

// Transaction is a single raw feed item supplied by the external bank-data
// sync. The sync is responsible for deduplication; the engine treats each
// item as opaque beyond its four fields.
//
// Amount sign convention follows the aggregator feed: positive means money
// leaving the account (a purchase), zero or negative means a credit, refund,
// or inbound transfer.
type Transaction struct {
	Name         string  `json:"name"`
	MerchantName string  `json:"merchantName,omitempty"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"` // YYYY-MM-DD
}

// Label returns the display string used for grouping and rule matching:
// the aggregator-provided merchant name when present, else the raw name.
func (t Transaction) Label() string {
	if s := strings.TrimSpace(t.MerchantName); s != "" {
		return s
	}
	return strings.TrimSpace(t.Name)
}

// parseDate parses a YYYY-MM-DD date as UTC midnight. Day-gap arithmetic
// compares these instants so results are timezone-independent.
func parseDate(s string) (time.Time, bool) {
	ts, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// wellFormed reports whether the record carries everything the pipeline
// needs. Malformed records are skipped individually and never abort a run.
func wellFormed(t Transaction) bool {
	if t.Label() == "" {
		return false
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return false
	}
	_, ok := parseDate(t.Date)
	return ok
}
