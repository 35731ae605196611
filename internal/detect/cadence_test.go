package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCadence(t *testing.T) {
	tests := []struct {
		name   string
		gaps   []int
		weekly bool
		want   Cadence
		ok     bool
	}{
		{"monthly exact", []int{30, 30, 30}, false, CadenceMonthly, true},
		{"monthly drift", []int{28, 31, 33}, false, CadenceMonthly, true},
		{"monthly lower edge", []int{25, 25}, false, CadenceMonthly, true},
		{"monthly upper edge", []int{35, 35}, false, CadenceMonthly, true},
		{"yearly", []int{365, 364}, false, CadenceYearly, true},
		{"yearly leap drift", []int{366, 365}, false, CadenceYearly, true},
		{"weekly disabled", []int{7, 7, 7}, false, "", false},
		{"weekly enabled", []int{7, 7, 7}, true, CadenceWeekly, true},
		{"median outside all windows", []int{40, 45, 50}, false, "", false},
		{"single gap insufficient", []int{30}, false, "", false},
		{"no gaps", nil, false, "", false},
		{"fortnightly is not a cadence", []int{14, 14, 14}, false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classifyCadence(tt.gaps, tt.weekly)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpacingOK(t *testing.T) {
	tests := []struct {
		name    string
		gaps    []int
		cadence Cadence
		want    bool
	}{
		{"all in window", []int{30, 31, 29}, CadenceMonthly, true},
		{"one outlier tolerated", []int{31, 5, 31}, CadenceMonthly, true},
		{"majority outside", []int{31, 60, 90}, CadenceMonthly, false},
		{"two gaps both in window", []int{28, 32}, CadenceMonthly, true},
		{"two gaps one outside", []int{28, 90}, CadenceMonthly, false},
		{"single gap insufficient", []int{30}, CadenceMonthly, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spacingOK(tt.gaps, tt.cadence))
		})
	}
}

func TestAmountsConsistent(t *testing.T) {
	tests := []struct {
		name    string
		amounts []float64
		want    bool
	}{
		{"identical", []float64{15.99, 15.99, 15.99}, true},
		{"within absolute tolerance", []float64{15.99, 16.99, 14.99}, true},
		{"small tax drift on large amount", []float64{100, 105, 100}, true},
		{"one outlier rejects the group", []float64{10, 10, 15}, false},
		{"small amounts within tolerance", []float64{0.99, 1.50, 0.99}, true},
		{"single amount", []float64{15.99}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, amountsConsistent(tt.amounts, 2, 0.06))
		})
	}
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
	assert.Equal(t, 30.0, median([]float64{29, 30, 31}))
	assert.Equal(t, 30.5, median([]float64{30, 31}))
	assert.Equal(t, 31.0, median([]float64{31, 5, 31}))
}
