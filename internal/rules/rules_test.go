package rules

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantName   string
		wantCat    string
		wantIgnore bool
	}{
		{"netflix rename and category", "NETFLIX.COM *91001", "Netflix", "Media", false},
		{"adobe", "ADOBE *CREATIVE CLD", "Adobe", "SaaS", false},
		{"utility title-cased", "TORONTO HYDRO ELECTRIC 8871", "Toronto Hydro Electric 8871", "Utilities", false},
		{"ignore rule wins", "ACH NETFLIX SETTLEMENT", "ACH NETFLIX SETTLEMENT", "", true},
		{"thank-you autopay ignored", "AUTOMATIC PAYMENT - THANK YOU", "AUTOMATIC PAYMENT - THANK YOU", "", true},
		{"no match passes through", "BLUE BOTTLE COFFEE", "BLUE BOTTLE COFFEE", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Apply(Defaults, tt.raw)
			assert.Equal(t, tt.wantName, res.CanonicalName)
			assert.Equal(t, tt.wantCat, res.Category)
			assert.Equal(t, tt.wantIgnore, res.Ignore)
		})
	}
}

func TestApplyIgnoreReasons(t *testing.T) {
	res := Apply(Defaults, "GUSTO PAYROLL 8821")
	assert.True(t, res.Ignore)
	assert.Equal(t, []string{"rule:ignore-payroll", "ignored_by_rule"}, res.Reasons)
}

func TestApplyLastCategoryWins(t *testing.T) {
	table := []Rule{
		{ID: "first", Match: regexp.MustCompile(`(?i)ACME`), Category: "SaaS"},
		{ID: "second", Match: regexp.MustCompile(`(?i)ACME CLOUD`), Category: "Utilities"},
	}
	res := Apply(table, "ACME CLOUD SERVICES")
	assert.Equal(t, "Utilities", res.Category)
	assert.Equal(t, []string{"rule:first", "rule:second"}, res.Reasons)
}

func TestApplyIgnoreShortCircuits(t *testing.T) {
	table := []Rule{
		{ID: "drop", Match: regexp.MustCompile(`(?i)ACME`), Ignore: true},
		{ID: "rename", Match: regexp.MustCompile(`(?i)ACME`), Rename: func(string) string { return "Acme" }},
	}
	res := Apply(table, "ACME CLOUD")
	assert.True(t, res.Ignore)
	assert.Equal(t, "ACME CLOUD", res.CanonicalName, "rules after the ignore never run")
	assert.Equal(t, []string{"rule:drop", "ignored_by_rule"}, res.Reasons)
}

func TestApplyEmptyTable(t *testing.T) {
	res := Apply(nil, "  NETFLIX.COM ")
	assert.Equal(t, "NETFLIX.COM", res.CanonicalName)
	assert.False(t, res.Ignore)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Toronto Hydro Electric", Title("TORONTO HYDRO ELECTRIC"))
	assert.Equal(t, "Bell Internet QC", Title("bell internet qc"))
	assert.Equal(t, "", Title("   "))
}
