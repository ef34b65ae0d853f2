// Package insights derives dashboard analytics from transaction history:
// per-period aggregation, month-over-month comparison, anomaly detection,
// and insight generation. Everything here is computed fresh per request;
// nothing is persisted.
package insights

import (
	"sort"

	"github.com/pennywise-app/pennywise/internal/model"
)

// Aggregate computes a period summary from a transaction list: total
// spend, transaction count, and per-category breakdown with percentages.
// Pure function of its input; categories are sorted descending by amount.
func Aggregate(transactions []model.Transaction) model.PeriodSummary {
	summary := model.PeriodSummary{
		TransactionCount: len(transactions),
	}

	type bucket struct {
		amountCents int64
		count       int
	}
	buckets := make(map[model.Category]*bucket)

	for _, txn := range transactions {
		summary.TotalSpentCents += txn.AmountCents
		b, ok := buckets[txn.Category]
		if !ok {
			b = &bucket{}
			buckets[txn.Category] = b
		}
		b.amountCents += txn.AmountCents
		b.count++
	}

	summary.Categories = make([]model.CategorySpending, 0, len(buckets))
	for category, b := range buckets {
		var percentage float64
		if summary.TotalSpentCents > 0 {
			percentage = float64(b.amountCents) / float64(summary.TotalSpentCents) * 100
		}
		summary.Categories = append(summary.Categories, model.CategorySpending{
			Category:    category,
			AmountCents: b.amountCents,
			Count:       b.count,
			Percentage:  percentage,
		})
	}

	sort.Slice(summary.Categories, func(i, j int) bool {
		if summary.Categories[i].AmountCents != summary.Categories[j].AmountCents {
			return summary.Categories[i].AmountCents > summary.Categories[j].AmountCents
		}
		return summary.Categories[i].Category < summary.Categories[j].Category
	})

	return summary
}
