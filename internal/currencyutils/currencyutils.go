// Package currencyutils provides amount parsing and formatting for rupee values.
package currencyutils

import (
	"strings"

	"github.com/shopspring/decimal"

	"avinya/fin-pulse/internal/parsererror"
)

// RupeeSymbol is the Indian rupee sign.
const RupeeSymbol = "₹"

// ParseAmount parses a matched amount token such as "1,250.50" or
// "1,25,000.". Grouping commas are dropped and a dangling decimal point is
// ignored. Only strictly positive amounts are accepted.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := StandardizeAmount(raw)
	if s == "" {
		return decimal.Zero, &parsererror.InvalidAmountError{Raw: raw, Reason: "empty"}
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &parsererror.InvalidAmountError{Raw: raw, Reason: err.Error()}
	}
	if !amount.IsPositive() {
		return decimal.Zero, &parsererror.InvalidAmountError{Raw: raw, Reason: "must be positive"}
	}
	return amount, nil
}

// StandardizeAmount strips grouping commas, whitespace and a trailing '.'.
func StandardizeAmount(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.TrimRight(s, ".")
}

// FormatAmount renders an amount with two decimals and Indian digit grouping,
// e.g. ₹1,25,000.50.
func FormatAmount(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + RupeeSymbol + groupIndian(intPart) + "." + frac
}

// groupIndian groups the last three digits, then pairs: 1234567 -> 12,34,567.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}
