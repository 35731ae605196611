package service

import (
	"math"
	"time"

	"github.com/breakwater-app/breakwater/internal/detect"
)

const (
	minProjectionMonths     = 3
	maxProjectionMonths     = 24
	defaultProjectionMonths = 6
)

// CashflowMonth is the projected recurring spend for one calendar month.
type CashflowMonth struct {
	Month      string             `json:"month"` // YYYY-MM
	Label      string             `json:"label"` // e.g. "Jan 2026"
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"byCategory,omitempty"`
}

// CashflowProjection is the forward monthly series built from confirmed
// subscriptions.
type CashflowProjection struct {
	Months       []CashflowMonth `json:"months"`
	MonthlyTotal float64         `json:"monthlyTotal"`
	MaxMonth     float64         `json:"maxMonth"`
}

// BuildCashflow projects confirmed subscriptions forward from the month of
// `from`. Monthly subscriptions contribute their amount each month; yearly
// (and weekly, when enabled) spread their annual cost evenly so the series
// reflects the effective monthly burden rather than billing spikes. The
// window is clamped to [3,24] months, with zero meaning the default of 6.
func BuildCashflow(subs []*detect.Candidate, months int, from time.Time) CashflowProjection {
	if months == 0 {
		months = defaultProjectionMonths
	}
	if months < minProjectionMonths {
		months = minProjectionMonths
	}
	if months > maxProjectionMonths {
		months = maxProjectionMonths
	}

	monthly := map[string]float64{}
	var monthlyTotal float64
	for _, sub := range subs {
		if sub.Status != detect.StatusConfirmed {
			continue
		}
		perMonth := sub.AnnualCost / 12
		monthlyTotal += perMonth
		category := sub.Category
		if category == "" {
			category = "uncategorized"
		}
		monthly[category] += perMonth
	}

	start := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := CashflowProjection{
		Months:       make([]CashflowMonth, 0, months),
		MonthlyTotal: round2(monthlyTotal),
	}
	for i := 0; i < months; i++ {
		m := start.AddDate(0, i, 0)
		entry := CashflowMonth{
			Month: m.Format("2006-01"),
			Label: m.Format("Jan 2006"),
			Total: round2(monthlyTotal),
		}
		if len(monthly) > 0 {
			entry.ByCategory = make(map[string]float64, len(monthly))
			for cat, v := range monthly {
				entry.ByCategory[cat] = round2(v)
			}
		}
		out.Months = append(out.Months, entry)
		if entry.Total > out.MaxMonth {
			out.MaxMonth = entry.Total
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
