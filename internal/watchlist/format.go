package watchlist

import (
	"fmt"
	"strings"
)

// FormatPrice renders a USD price for display, e.g. "$227.52".
func FormatPrice(price float64) string {
	if price <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", price)
}

// FormatChangePercent renders a signed percentage, e.g. "+1.25%" or "-0.40%".
func FormatChangePercent(percent float64) string {
	return fmt.Sprintf("%+.2f%%", percent)
}

// FormatMarketCap renders a capitalization given in millions of USD using the
// conventional T/B/M suffixes, e.g. "$3.44T", "$12.5B", "$900M".
func FormatMarketCap(millions float64) string {
	if millions <= 0 {
		return "N/A"
	}
	switch {
	case millions >= 1e6:
		return "$" + trimZeros(fmt.Sprintf("%.2f", millions/1e6)) + "T"
	case millions >= 1e3:
		return "$" + trimZeros(fmt.Sprintf("%.2f", millions/1e3)) + "B"
	default:
		return "$" + trimZeros(fmt.Sprintf("%.2f", millions)) + "M"
	}
}

func trimZeros(s string) string {
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
