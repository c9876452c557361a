package format

import "strings"

var (
	onesWords = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}

	teenWords = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}

	tensWords = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}

	// Indian place-value labels. The least-significant group covers three
	// digits, every group above it covers two.
	groupLabels = []string{"", "Thousand", "Lakh", "Crore", "Arab", "Kharab"}
)

// AmountInWords spells a whole rupee amount in the Indian numbering system
// (thousand/lakh/crore groupings), suffixed with " Only". Zero is the bare
// word "Zero"; negative amounts carry a "Negative " prefix.
//
// This function is PURE and fully deterministic.
func AmountInWords(amount int64) string {
	if amount == 0 {
		return "Zero"
	}
	if amount < 0 {
		return "Negative " + AmountInWords(-amount)
	}

	words := make([]string, 0, 8)
	for groupIndex := 0; amount > 0 && groupIndex < len(groupLabels); groupIndex++ {
		var group int64
		if groupIndex == 0 {
			group = amount % 1000
			amount /= 1000
		} else {
			group = amount % 100
			amount /= 100
		}
		if group == 0 {
			continue
		}
		part := groupWords(group)
		if label := groupLabels[groupIndex]; label != "" {
			part = append(part, label)
		}
		words = append(part, words...)
	}

	return strings.Join(words, " ") + " Only"
}

// groupWords converts a group of up to three digits.
func groupWords(n int64) []string {
	out := make([]string, 0, 3)
	if n >= 100 {
		out = append(out, onesWords[n/100], "Hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		out = append(out, tensWords[n/10])
		n %= 10
		if n > 0 {
			out = append(out, onesWords[n])
		}
	case n >= 10:
		out = append(out, teenWords[n-10])
	case n > 0:
		out = append(out, onesWords[n])
	}
	return out
}
