package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcludedName(t *testing.T) {
	excluded := []string{
		"ACH PAYMENT 12345",
		"WIRE OUT",
		"Online Transfer to Savings",
		"XFER TO CHK",
		"DIRECT DEP ACME CORP",
		"GUSTO PAYROLL 8821",
		"VENMO PAYMENT",
		"ZELLE TO JANE",
		"CASH APP *JOHN",
		"ATM WITHDRAWAL",
		"REFUND NETFLIX.COM",
		"PURCHASE REVERSAL",
		"INTEREST PAYMENT",
		"HOME LOAN PMT",
		"MORTGAGE SERVICING",
		"CERTIFICATE OF DEPOSIT RENEWAL",
		"AUTOMATIC PAYMENT - THANK YOU",
	}
	for _, name := range excluded {
		assert.True(t, ExcludedName(name), "expected %q to be excluded", name)
	}

	kept := []string{
		"NETFLIX.COM",
		"SPOTIFY USA",
		"ADOBE CREATIVE CLOUD",
		"BLUE BOTTLE COFFEE",
		// substrings must not match: whole words only
		"MACHINERY SUPPLY", // contains "ACH"
		"SCDKEY STORE",     // contains "CD"
	}
	for _, name := range kept {
		assert.False(t, ExcludedName(name), "expected %q to be kept", name)
	}
}

func TestOutgoing(t *testing.T) {
	assert.True(t, Outgoing(Transaction{Amount: 15.99}))
	assert.False(t, Outgoing(Transaction{Amount: -15.99}), "inflows are not purchases")
	assert.False(t, Outgoing(Transaction{Amount: 0}))
}
