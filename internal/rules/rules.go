// Package rules is a small curation layer applied after statistical
// detection: an ordered table of regex-keyed records that rename a merchant,
// assign a category, or force a group to be ignored. Rules are data, not
// code, so new merchant mappings never touch the detector.
package rules

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule is one declarative match/action record. Rules run in table order
// against the raw (pre-normalization) merchant string; every matching rule
// applies its rename and category, so for category the last match wins. A
// matching rule with Ignore set stops iteration and forces the candidate out
// of the user's suggestions.
type Rule struct {
	ID       string
	Match    *regexp.Regexp
	Rename   func(rawName string) string
	Category string
	Ignore   bool
}

// Result is the outcome of running a rule table over one merchant string.
type Result struct {
	CanonicalName string
	Category      string
	Ignore        bool
	Reasons       []string // "rule:<id>" per match, plus "ignored_by_rule"
}

// Apply runs the table in order against rawName. Conflicting category rules
// resolve deterministically by iteration order (last match wins); an ignore
// rule short-circuits the rest of the table.
func Apply(table []Rule, rawName string) Result {
	res := Result{CanonicalName: strings.TrimSpace(rawName)}

	for _, rule := range table {
		if rule.Match == nil || !rule.Match.MatchString(rawName) {
			continue
		}

		res.Reasons = append(res.Reasons, "rule:"+rule.ID)

		if rule.Ignore {
			res.Ignore = true
			res.Reasons = append(res.Reasons, "ignored_by_rule")
			break
		}

		if rule.Rename != nil {
			res.CanonicalName = rule.Rename(rawName)
		}
		if rule.Category != "" {
			res.Category = rule.Category
		}
	}

	return res
}

var titleCaser = cases.Title(language.English)

// Title produces a display-friendly canonical name from a raw merchant
// string: lowercased then title-cased word by word, short tokens uppercased.
// Useful as a Rename for rules that match a family of merchants rather than
// one brand.
func Title(raw string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	for i, w := range words {
		if len(w) > 2 {
			words[i] = titleCaser.String(w)
		} else {
			words[i] = strings.ToUpper(w)
		}
	}
	return strings.Join(words, " ")
}
