package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breakwater-app/breakwater/internal/detect"
)

func confirmedSub(id, category string, cadence detect.Cadence, amount float64) *detect.Candidate {
	return &detect.Candidate{
		ID:         id,
		Name:       id,
		Amount:     amount,
		Cadence:    cadence,
		AnnualCost: detect.AnnualCost(cadence, amount),
		Category:   category,
		Status:     detect.StatusConfirmed,
	}
}

func TestBuildCashflow(t *testing.T) {
	subs := []*detect.Candidate{
		confirmedSub("netflix", "Media", detect.CadenceMonthly, 15.99),
		confirmedSub("prime", "Media", detect.CadenceYearly, 139),
		{ID: "pending", Amount: 99, Cadence: detect.CadenceMonthly,
			AnnualCost: 1188, Status: detect.StatusSuggested},
	}

	from := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)
	got := BuildCashflow(subs, 6, from)

	require.Len(t, got.Months, 6)
	assert.Equal(t, "2026-01", got.Months[0].Month)
	assert.Equal(t, "Jan 2026", got.Months[0].Label)
	assert.Equal(t, "2026-06", got.Months[5].Month)

	// 15.99 + 139/12, suggested records excluded.
	want := 27.57
	assert.Equal(t, want, got.MonthlyTotal)
	assert.Equal(t, want, got.Months[0].Total)
	assert.Equal(t, want, got.MaxMonth)
	assert.Equal(t, want, got.Months[0].ByCategory["Media"])
}

func TestBuildCashflowClampsWindow(t *testing.T) {
	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.Len(t, BuildCashflow(nil, 0, from).Months, 6, "zero means default")
	assert.Len(t, BuildCashflow(nil, 1, from).Months, 3)
	assert.Len(t, BuildCashflow(nil, 100, from).Months, 24)
}

func TestBuildCashflowUncategorized(t *testing.T) {
	subs := []*detect.Candidate{confirmedSub("mystery", "", detect.CadenceMonthly, 10)}
	got := BuildCashflow(subs, 3, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 10.0, got.Months[0].ByCategory["uncategorized"])
}

func TestBuildClusters(t *testing.T) {
	subs := []*detect.Candidate{
		confirmedSub("netflix", "Media", detect.CadenceMonthly, 15.99),
		confirmedSub("spotify", "Media", detect.CadenceMonthly, 10.99),
		confirmedSub("adobe", "SaaS", detect.CadenceMonthly, 22.99),
		{ID: "pending", AnnualCost: 500, Category: "SaaS", Status: detect.StatusSuggested},
	}

	got := BuildClusters(subs)
	require.Len(t, got.Clusters, 2)

	assert.Equal(t, "Media", got.Clusters[0].Category)
	assert.Equal(t, 323.76, got.Clusters[0].AnnualTotal)
	assert.Equal(t, 2, got.Clusters[0].Count)

	assert.Equal(t, "SaaS", got.Clusters[1].Category)
	assert.Equal(t, 275.88, got.Clusters[1].AnnualTotal)
	assert.Equal(t, 1, got.Clusters[1].Count)

	assert.Equal(t, 599.64, got.AnnualTotal)
}

func TestBuildClustersEmpty(t *testing.T) {
	got := BuildClusters(nil)
	assert.Empty(t, got.Clusters)
	assert.Zero(t, got.AnnualTotal)
}
