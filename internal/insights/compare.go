package insights

import "github.com/pennywise-app/pennywise/internal/model"

// Compare computes percent change between two periods for total spend and
// transaction count. A zero previous value yields 0% rather than dividing
// by zero; this hides genuinely new spending and is a deliberate policy,
// not a mathematical identity.
func Compare(currentTotalCents, previousTotalCents int64, currentCount, previousCount int) model.Comparison {
	var cmp model.Comparison

	if previousTotalCents > 0 {
		cmp.SpendingChangePercent = float64(currentTotalCents-previousTotalCents) / float64(previousTotalCents) * 100
	}
	if previousCount > 0 {
		cmp.TransactionChangePercent = float64(currentCount-previousCount) / float64(previousCount) * 100
	}

	return cmp
}
