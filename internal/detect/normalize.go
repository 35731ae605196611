package detect

import (
	"regexp"
	"strings"
)

var (
	// Patterns for canonicalizing merchant strings into grouping keys.
	punctPattern  = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	longDigits    = regexp.MustCompile(`\b\d{4,}\b`)
	suffixTokens  = regexp.MustCompile(`\b(USA|US|CA|CANADA|INC|LLC|LTD|CORP)\b`)
	spacesPattern = regexp.MustCompile(`\s+`)
)

// NormalizeMerchant canonicalizes a raw merchant/description string into a
// stable grouping key: punctuation and bullets become spaces, reference-number
// runs of four or more digits are dropped, common corporate and geographic
// suffix tokens are stripped as whole words, and the result is uppercased with
// whitespace collapsed. Empty or purely symbolic input yields the empty
// string, which callers must drop rather than group.
func NormalizeMerchant(raw string) string {
	s := punctPattern.ReplaceAllString(raw, " ")
	s = longDigits.ReplaceAllString(s, "")
	s = strings.ToUpper(s)
	s = suffixTokens.ReplaceAllString(s, "")
	s = spacesPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// minKeyLength is the shortest normalized key worth grouping on; anything
// shorter is too ambiguous to treat as a merchant identity.
const minKeyLength = 2
