package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR renders an amount with the Indian digit grouping used on
// receipts, e.g. 1234567.50 -> "Rs 12,34,567.50".
func FormatINR(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	parts := strings.SplitN(fixed, ".", 2)
	return sign + "Rs " + groupIndian(parts[0]) + "." + parts[1]
}

// groupIndian inserts commas after the last three digits, then every
// two: 1234567 -> 12,34,567.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
