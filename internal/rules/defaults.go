package rules

import "regexp"

// Categories is the curated category vocabulary.
var Categories = []string{
	"SaaS",
	"Media",
	"Utilities",
	"Finance",
	"Health",
	"Home",
	"Travel",
	"Other",
}

func fixed(name string) func(string) string {
	return func(string) string { return name }
}

// Defaults is the shipped rule table. Ignore rules come first as an extra
// guard on rails the statistical filter should already have excluded, then
// per-category brand mappings.
var Defaults = []Rule{
	{ID: "ignore-ach", Match: regexp.MustCompile(`(?i)\bACH\b`), Ignore: true},
	{ID: "ignore-transfer", Match: regexp.MustCompile(`(?i)\bTRANSFER\b|\bXFER\b`), Ignore: true},
	{ID: "ignore-deposit", Match: regexp.MustCompile(`(?i)\bDEPOSIT\b|\bDIRECT\s*DEP(OSIT)?\b`), Ignore: true},
	{ID: "ignore-payroll", Match: regexp.MustCompile(`(?i)\bPAYROLL\b|\bGUSTO\b`), Ignore: true},
	{ID: "ignore-loan", Match: regexp.MustCompile(`(?i)\bLOAN\b|\bMORTGAGE\b`), Ignore: true},
	{ID: "ignore-interest", Match: regexp.MustCompile(`(?i)\bINTEREST\b`), Ignore: true},
	{ID: "ignore-refund", Match: regexp.MustCompile(`(?i)\bREFUND\b|\bREVERS(AL)?\b|\bCHARGEBACK\b`), Ignore: true},
	{ID: "ignore-auto-payment", Match: regexp.MustCompile(`(?i)\bAUTOMATIC\s+PAYMENT\b|\bTHANK\b`), Ignore: true},

	{ID: "media-netflix", Match: regexp.MustCompile(`(?i)\bNETFLIX\b`), Category: "Media", Rename: fixed("Netflix")},
	{ID: "media-spotify", Match: regexp.MustCompile(`(?i)\bSPOTIFY\b`), Category: "Media", Rename: fixed("Spotify")},
	{ID: "media-youtube", Match: regexp.MustCompile(`(?i)\bYOUTUBE\b`), Category: "Media", Rename: fixed("YouTube")},
	{ID: "media-apple", Match: regexp.MustCompile(`(?i)\bAPPLE\b.*\bMUSIC\b|\bAPPLE\s+TV\b`), Category: "Media", Rename: fixed("Apple Media")},

	{ID: "saas-adobe", Match: regexp.MustCompile(`(?i)\bADOBE\b`), Category: "SaaS", Rename: fixed("Adobe")},
	{ID: "saas-notion", Match: regexp.MustCompile(`(?i)\bNOTION\b`), Category: "SaaS", Rename: fixed("Notion")},
	{ID: "saas-figma", Match: regexp.MustCompile(`(?i)\bFIGMA\b`), Category: "SaaS", Rename: fixed("Figma")},
	{ID: "saas-slack", Match: regexp.MustCompile(`(?i)\bSLACK\b`), Category: "SaaS", Rename: fixed("Slack")},
	{ID: "saas-google", Match: regexp.MustCompile(`(?i)\bGOOGLE\b.*\bWORKSPACE\b|\bGOOGLE\s+SERVICES\b`), Category: "SaaS", Rename: fixed("Google Workspace")},

	{ID: "util-hydro", Match: regexp.MustCompile(`(?i)\bHYDRO\b|\bELECTRIC\b`), Category: "Utilities", Rename: Title},
	{ID: "util-internet", Match: regexp.MustCompile(`(?i)\bROGERS\b|\bBELL\b|\bTELUS\b|\bINTERNET\b|\bFIBRE\b`), Category: "Utilities", Rename: Title},

	{ID: "fin-stripe", Match: regexp.MustCompile(`(?i)\bSTRIPE\b`), Category: "Finance", Rename: fixed("Stripe")},
	{ID: "fin-square", Match: regexp.MustCompile(`(?i)\bSQUARE\b`), Category: "Finance", Rename: fixed("Square")},

	{ID: "travel-uber", Match: regexp.MustCompile(`(?i)\bUBER\b`), Category: "Travel", Rename: fixed("Uber")},
	{ID: "travel-lyft", Match: regexp.MustCompile(`(?i)\bLYFT\b`), Category: "Travel", Rename: fixed("Lyft")},

	{ID: "health-peloton", Match: regexp.MustCompile(`(?i)\bPELOTON\b`), Category: "Health", Rename: fixed("Peloton")},
}
