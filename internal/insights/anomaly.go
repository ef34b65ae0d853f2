package insights

import (
	"fmt"
	"sort"

	"github.com/pennywise-app/pennywise/internal/model"
)

const (
	// historicalMonths is the size of the trailing baseline window.
	historicalMonths = 3

	// newMerchantMinCents is the amount above which a first-time
	// merchant is worth flagging ($50.00).
	newMerchantMinCents = 5000

	// Deviation multipliers against the category's monthly average.
	unusualAmountFactor = 2
	highSeverityFactor  = 5
)

// DetectAnomalies flags current-period transactions that deviate from the
// user's trailing-three-month baseline. With no historical data it
// returns nil regardless of current-period content: no baseline, no
// anomalies. A transaction can appear once per rule; the two rules are
// not de-duplicated against each other. Results are ordered by severity,
// stable within a tier.
func DetectAnomalies(current, historical []model.Transaction) []model.Anomaly {
	if len(historical) == 0 {
		return nil
	}

	// Average monthly spend per category over the baseline window.
	categoryTotals := make(map[model.Category]int64)
	for _, txn := range historical {
		categoryTotals[txn.Category] += txn.AmountCents
	}
	categoryAverages := make(map[model.Category]int64, len(categoryTotals))
	for category, total := range categoryTotals {
		categoryAverages[category] = total / historicalMonths
	}

	var anomalies []model.Anomaly

	for _, txn := range current {
		avg := categoryAverages[txn.Category]
		if avg <= 0 {
			continue
		}

		deviation := txn.AmountCents - avg
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation <= unusualAmountFactor*avg {
			continue
		}

		severity := model.SeverityMedium
		if deviation > highSeverityFactor*avg {
			severity = model.SeverityHigh
		}

		direction := "high"
		if txn.AmountCents < avg {
			direction = "low"
		}

		anomalies = append(anomalies, model.Anomaly{
			TransactionID: txn.ID,
			Type:          model.AnomalyUnusualAmount,
			Severity:      severity,
			Description: fmt.Sprintf("%s spent at %s is unusually %s for %s",
				formatCents(txn.AmountCents), txn.Merchant, direction, txn.Category),
		})
	}

	historicalMerchants := make(map[string]struct{}, len(historical))
	for _, txn := range historical {
		historicalMerchants[model.NormalizeMerchant(txn.Merchant)] = struct{}{}
	}

	for _, txn := range current {
		if _, known := historicalMerchants[model.NormalizeMerchant(txn.Merchant)]; known {
			continue
		}
		if txn.AmountCents <= newMerchantMinCents {
			continue
		}

		anomalies = append(anomalies, model.Anomaly{
			TransactionID: txn.ID,
			Type:          model.AnomalyUnusualMerchant,
			Severity:      model.SeverityLow,
			Description:   fmt.Sprintf("First time spending at %s", txn.Merchant),
		})
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		return anomalies[i].Severity.Rank() > anomalies[j].Severity.Rank()
	})

	return anomalies
}

// formatCents renders an integer cent amount as a dollar string.
func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
