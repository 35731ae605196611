package detect

import (
	"math"
	"sort"
	"time"
)

// median returns the middle value of the inputs, or the mean of the two
// middle values for an even count. Empty input yields zero.
func median(nums []float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	s := append([]float64(nil), nums...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 0 {
		return (s[mid-1] + s[mid]) / 2
	}
	return s[mid]
}

// daysBetween returns the whole-day distance between two UTC-midnight
// instants.
func daysBetween(a, b time.Time) int {
	return int(math.Round(math.Abs(b.Sub(a).Hours()) / 24))
}

// dayGaps computes the consecutive day gaps of a date-ascending transaction
// slice. Records with unparseable dates never reach this point.
func dayGaps(sorted []Transaction) []int {
	gaps := make([]int, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		prev, _ := parseDate(sorted[i-1].Date)
		cur, _ := parseDate(sorted[i].Date)
		gaps = append(gaps, daysBetween(prev, cur))
	}
	return gaps
}

// sortByDate orders transactions date-ascending. Equal dates fall back to
// amount then name so repeated runs produce identical orderings.
func sortByDate(txs []Transaction) []Transaction {
	sorted := append([]Transaction(nil), txs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		if sorted[i].Amount != sorted[j].Amount {
			return sorted[i].Amount < sorted[j].Amount
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}
