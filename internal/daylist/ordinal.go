package daylist

import "strconv"

// Ordinal returns the English ordinal suffix for n: "st", "nd", "rd" or "th".
// Numbers ending in 11, 12 or 13 always take "th".
func Ordinal(n int) string {
	if n < 0 {
		n = -n
	}
	switch n % 100 {
	case 11, 12, 13:
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// Label formats the positional label of the n-th day, e.g. "3rd Day".
func Label(n int) string {
	return strconv.Itoa(n) + Ordinal(n) + " Day"
}
