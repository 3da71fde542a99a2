package booking

import (
	"strconv"
	"strings"
)

// ExtractPrice pulls the numeric value out of a display price string such as
// "Rp 150.000" (Indonesian thousands separators). Non-digit characters are
// stripped; an empty or digit-free string yields 0.
func ExtractPrice(display string) int64 {
	var b strings.Builder
	for _, r := range display {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatPrice renders a numeric price in the Indonesian display format,
// e.g. 150000 -> "Rp 150.000".
func FormatPrice(price int64) string {
	negative := price < 0
	if negative {
		price = -price
	}

	digits := strconv.FormatInt(price, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "Rp " + b.String()
	if negative {
		out = "Rp -" + b.String()
	}
	return out
}
