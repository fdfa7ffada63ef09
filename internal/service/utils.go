package service

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// sanitizeUTF8 drops invalid UTF-8 bytes and collapses runs of whitespace,
// so descriptions coming from arbitrary CSV exports are plain text.
func sanitizeUTF8(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.Join(strings.Fields(s), " ")
}

// percentOf returns part/whole*100. Callers guard against a zero whole.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	return part.Div(whole).Mul(hundred)
}
