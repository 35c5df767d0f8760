package reports

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount as dollars with two decimals, e.g. "$15.00"
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatLabel turns a camelCase summary key into a title, e.g.
// "averageOrderValue" becomes "Average Order Value"
func FormatLabel(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatSummaryValue renders a summary statistic. Revenue and value keys are
// currency, whole numbers print plainly, anything else gets two decimals.
func FormatSummaryValue(key string, value decimal.Decimal) string {
	if strings.Contains(key, "Revenue") || strings.Contains(key, "Value") {
		return FormatCurrency(value)
	}
	if value.IsInteger() {
		return value.String()
	}
	return value.StringFixed(2)
}
