package service

import (
	"sort"

	"github.com/breakwater-app/breakwater/internal/detect"
)

// Cluster groups confirmed subscriptions under one category with their
// combined annual cost.
type Cluster struct {
	Category      string              `json:"category"`
	AnnualTotal   float64             `json:"annualTotal"`
	Count         int                 `json:"count"`
	Subscriptions []*detect.Candidate `json:"subscriptions"`
}

// ClustersResponse is the category breakdown of confirmed subscriptions.
type ClustersResponse struct {
	Clusters    []Cluster `json:"clusters"`
	AnnualTotal float64   `json:"annualTotal"`
}

// BuildClusters groups confirmed subscriptions by category, one cluster per
// category, sorted by annual total descending with category name breaking
// ties.
func BuildClusters(subs []*detect.Candidate) ClustersResponse {
	byCategory := map[string]*Cluster{}
	var total float64
	for _, sub := range subs {
		if sub.Status != detect.StatusConfirmed {
			continue
		}
		category := sub.Category
		if category == "" {
			category = "uncategorized"
		}
		c, ok := byCategory[category]
		if !ok {
			c = &Cluster{Category: category}
			byCategory[category] = c
		}
		c.AnnualTotal += sub.AnnualCost
		c.Count++
		c.Subscriptions = append(c.Subscriptions, sub)
		total += sub.AnnualCost
	}

	out := ClustersResponse{
		Clusters:    make([]Cluster, 0, len(byCategory)),
		AnnualTotal: round2(total),
	}
	for _, c := range byCategory {
		c.AnnualTotal = round2(c.AnnualTotal)
		out.Clusters = append(out.Clusters, *c)
	}
	sort.Slice(out.Clusters, func(i, j int) bool {
		if out.Clusters[i].AnnualTotal != out.Clusters[j].AnnualTotal {
			return out.Clusters[i].AnnualTotal > out.Clusters[j].AnnualTotal
		}
		return out.Clusters[i].Category < out.Clusters[j].Category
	})
	return out
}
