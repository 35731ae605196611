package detect

import (
	"math"
	"sort"

	"github.com/breakwater-app/breakwater/internal/rules"
)

// Config tunes the detector. The zero value is not useful; start from
// DefaultConfig.
type Config struct {
	// ToleranceAbs and TolerancePct bound how far any group member's amount
	// may sit from the group median.
	ToleranceAbs float64
	TolerancePct float64

	// MinScore is the acceptance threshold for the additive scoring model.
	// Groups scoring below it are dropped rather than surfaced as noise.
	// A product tuning knob, not an invariant.
	MinScore float64

	// ScoringModel selects additive (primary) or occurrence-tier scoring.
	ScoringModel ScoringModel

	// Weekly enables the 6-8 day cadence window. Off by default; weekly
	// subscriptions are outside the primary product contract.
	Weekly bool
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		ToleranceAbs: 2,
		TolerancePct: 0.06,
		MinScore:     0.6,
		ScoringModel: ScoringAdditive,
	}
}

// Detector runs the full pipeline: exclusion filter, merchant grouping,
// cadence and amount validation, confidence scoring, curation rules, and
// candidate assembly. Detectors are immutable after New and safe for
// concurrent use.
type Detector struct {
	cfg   Config
	rules []rules.Rule
}

// New builds a Detector. A nil rule table means rules.Defaults.
func New(cfg Config, table []rules.Rule) *Detector {
	if table == nil {
		table = rules.Defaults
	}
	if cfg.ScoringModel == "" {
		cfg.ScoringModel = ScoringAdditive
	}
	return &Detector{cfg: cfg, rules: table}
}

// Detect analyzes a transaction list and returns candidate subscriptions
// ordered by annual cost descending. The computation is pure and
// deterministic: the same input always yields the same candidates, ids
// included. Malformed records are skipped; an empty input yields an empty
// result. Detect never fails.
func (d *Detector) Detect(transactions []Transaction) []*Candidate {
	cleaned := d.filter(transactions)
	groups := groupByMerchant(cleaned)

	var out []*Candidate
	for _, g := range groups {
		if c := d.evaluate(g); c != nil {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AnnualCost != out[j].AnnualCost {
			return out[i].AnnualCost > out[j].AnnualCost
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// filter drops malformed records, non-outgoing amounts, and transactions
// whose raw or normalized name matches a non-purchase pattern.
func (d *Detector) filter(transactions []Transaction) []Transaction {
	cleaned := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !wellFormed(t) || !Outgoing(t) {
			continue
		}
		label := t.Label()
		if ExcludedName(label) || ExcludedName(NormalizeMerchant(label)) {
			continue
		}
		t.Amount = math.Abs(t.Amount)
		cleaned = append(cleaned, t)
	}
	return cleaned
}

// evaluate validates one merchant group and assembles its candidate, or
// returns nil when the group is not a detectable subscription.
func (d *Detector) evaluate(g *group) *Candidate {
	if len(g.txs) < 3 {
		return nil
	}

	sorted := sortByDate(g.txs)

	amounts := make([]float64, len(sorted))
	for i, t := range sorted {
		amounts[i] = t.Amount
	}
	if !amountsConsistent(amounts, d.cfg.ToleranceAbs, d.cfg.TolerancePct) {
		return nil
	}

	gaps := dayGaps(sorted)
	cadence, ok := classifyCadence(gaps, d.cfg.Weekly)
	if !ok {
		return nil
	}
	if !spacingOK(gaps, cadence) {
		return nil
	}

	if d.cfg.ScoringModel == ScoringAdditive {
		if scoreAdditive(true, amounts, len(sorted)) < d.cfg.MinScore {
			return nil
		}
	}

	displayName := g.displayName()
	ruled := rules.Apply(d.rules, displayName)

	amount := round2(median(amounts))
	c := &Candidate{
		ID:            StableID(g.key, cadence, amount),
		Name:          ruled.CanonicalName,
		NormalizedKey: g.key,
		Amount:        amount,
		Cadence:       cadence,
		AnnualCost:    AnnualCost(cadence, amount),
		LastSeen:      sorted[len(sorted)-1].Date,
		Occurrences:   len(sorted),
		Category:      ruled.Category,
		Status:        StatusSuggested,
	}

	if ruled.Ignore {
		c.Status = StatusIgnored
		c.IgnoreReasons = ruled.Reasons
	}

	switch d.cfg.ScoringModel {
	case ScoringTiers:
		c.Confidence = confidenceTiers(c.Occurrences, c.Category != "")
	default:
		c.Confidence = confidenceFromScore(scoreAdditive(true, amounts, c.Occurrences))
	}
	c.NeedsReview = c.Confidence != ConfidenceHigh || c.Category == ""

	return c
}
