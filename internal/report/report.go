// Package report holds the pure aggregation helpers shared by the
// dashboard and budget views. Everything here recomputes from scratch on
// already-loaded rows; there is no caching layer.
package report

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Percentage returns part/whole*100 rounded half-up to two decimals.
// A zero whole yields zero rather than an error, matching how budget
// views treat projects without a budget.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.DivRound(whole, 4).Mul(hundred).Round(2)
}

// CompletionPercent is completed/total*100 with integer truncation, the
// convention used for task progress bars.
func CompletionPercent(completed, total int64) int64 {
	if total == 0 {
		return 0
	}
	return completed * 100 / total
}

// SumAmounts totals the amounts of rows whose status is in the accepted
// set.
func SumAmounts[T any](rows []T, amount func(T) decimal.Decimal, status func(T) string, accepted ...string) decimal.Decimal {
	ok := make(map[string]bool, len(accepted))
	for _, s := range accepted {
		ok[s] = true
	}

	total := decimal.Zero
	for _, row := range rows {
		if ok[status(row)] {
			total = total.Add(amount(row))
		}
	}
	return total
}

// CountByStatus buckets rows by status.
func CountByStatus[T any](rows []T, status func(T) string) map[string]int64 {
	counts := make(map[string]int64)
	for _, row := range rows {
		counts[status(row)]++
	}
	return counts
}
