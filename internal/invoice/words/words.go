// Package words spells out whole-unit amounts for printed invoices.
// Amount-in-words is a fraud-resistance convention: the printed document
// carries the total both as digits and as text.
//
// This function is PURE and carries no locale machinery: the English
// ones/tens tables and the Indian scale names (crore, lakh, thousand,
// hundred) are fixed.
package words

import "strings"

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

type scale struct {
	value int64
	name  string
}

// Indian numbering convention: groups of crore (1e7), lakh (1e5),
// thousand and hundred, with the sub-hundred remainder last.
var scales = [...]scale{
	{10_000_000, "Crore"},
	{100_000, "Lakh"},
	{1_000, "Thousand"},
	{100, "Hundred"},
}

// NumberToWords renders n in words, e.g. 1234 -> "One Thousand Two Hundred
// and Thirty-Four". Zero is "Zero"; negative values are prefixed "Minus ".
func NumberToWords(n int64) string {
	if n == 0 {
		return "Zero"
	}
	if n < 0 {
		return "Minus " + NumberToWords(-n)
	}
	return convert(n)
}

func convert(n int64) string {
	var parts []string
	for _, s := range scales {
		if q := n / s.value; q > 0 {
			parts = append(parts, convert(q)+" "+s.name)
			n %= s.value
		}
	}

	if n > 0 {
		if len(parts) == 0 {
			return subHundred(n)
		}
		return strings.Join(parts, " ") + " and " + subHundred(n)
	}
	return strings.Join(parts, " ")
}

func subHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + "-" + ones[n%10]
}
