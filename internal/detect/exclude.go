package detect

import "regexp"

// exclusionPatterns identify transactions that are not purchases: transfer
// and deposit rails, payroll, P2P apps, ATM activity, refunds and reversals,
// interest, and loan servicing. A bank feed mixes these with true purchases,
// and their regular timing (biweekly payroll, monthly autopay) makes them
// look cadence-regular to the detector if not removed up front.
var exclusionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bACH\b`),
	regexp.MustCompile(`(?i)\bWIRE\b`),
	regexp.MustCompile(`(?i)\bTRANSFER\b`),
	regexp.MustCompile(`(?i)\bXFER\b`),
	regexp.MustCompile(`(?i)\bDEPOSIT\b`),
	regexp.MustCompile(`(?i)\bDIRECT\s*DEP(OSIT)?\b`),
	regexp.MustCompile(`(?i)\bPAYROLL\b`),
	regexp.MustCompile(`(?i)\bGUSTO\b`),
	regexp.MustCompile(`(?i)\bVENMO\b`),
	regexp.MustCompile(`(?i)\bZELLE\b`),
	regexp.MustCompile(`(?i)\bCASH\s*APP\b`),
	regexp.MustCompile(`(?i)\bATM\b`),
	regexp.MustCompile(`(?i)\bREFUND\b`),
	regexp.MustCompile(`(?i)\bREVERS(AL)?\b`),
	regexp.MustCompile(`(?i)\bCHARGEBACK\b`),
	regexp.MustCompile(`(?i)\bINTEREST\b`),
	regexp.MustCompile(`(?i)\bLOAN\b`),
	regexp.MustCompile(`(?i)\bMORTGAGE\b`),
	regexp.MustCompile(`(?i)\bCREDIT\b`),
	regexp.MustCompile(`(?i)\bCD\b`),
	regexp.MustCompile(`(?i)\bCERTIFICATE\s+OF\s+DEPOSIT\b`),
	regexp.MustCompile(`(?i)\bAUTOMATIC\s+PAYMENT\b`),
}

// ExcludedName reports whether the string matches any non-purchase pattern.
// A match excludes the transaction from detection entirely.
func ExcludedName(name string) bool {
	for _, re := range exclusionPatterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Outgoing reports whether the transaction is money leaving the account.
// Zero and negative amounts (credits, refunds, inbound transfers) never
// contribute to a recurring-charge group.
func Outgoing(t Transaction) bool {
	return t.Amount > 0
}
