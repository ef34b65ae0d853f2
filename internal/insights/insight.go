package insights

import (
	"fmt"
	"math"

	"github.com/pennywise-app/pennywise/internal/model"
)

// Insight rule thresholds.
const (
	spendingTrendThreshold  = 10 // |spending change %|
	spendingActionThreshold = 25
	topCategoryThreshold    = 40 // top category share %
	topCategoryAction       = 60
	budgetAlertFactor       = 1.5 // multiple of the monthly baseline
	frequencyThreshold      = 20  // |transaction change %|
)

// GenerateInsights turns period aggregates and comparisons into
// prioritized insight records. Each rule is evaluated independently; the
// caller gets zero or more insights with no cap (presentation slicing is
// a UI concern).
func GenerateInsights(currentTotalCents, previousTotalCents int64, categories []model.CategorySpending, spendingChangePercent, transactionChangePercent float64, baselineCents int64) []model.Insight {
	var result []model.Insight

	if math.Abs(spendingChangePercent) > spendingTrendThreshold {
		direction, amount := "decreased", "less"
		if spendingChangePercent > 0 {
			direction, amount = "increased", "more"
		}
		result = append(result, model.Insight{
			Type:  model.InsightSpendingTrend,
			Title: fmt.Sprintf("Spending %s significantly", direction),
			Description: fmt.Sprintf("You've spent %.1f%% %s this month compared to last month.",
				math.Abs(spendingChangePercent), amount),
			ActionRequired: spendingChangePercent > spendingActionThreshold,
		})
	}

	if len(categories) > 0 {
		top := categories[0]
		if top.Percentage > topCategoryThreshold {
			result = append(result, model.Insight{
				Type:  model.InsightCategoryInsight,
				Title: fmt.Sprintf("%s dominates your spending", top.Category),
				Description: fmt.Sprintf("%.1f%% of your spending this month was on %s. Consider if this aligns with your priorities.",
					top.Percentage, top.Category),
				ActionRequired: top.Percentage > topCategoryAction,
			})
		}
	}

	if baselineCents > 0 && float64(currentTotalCents) > budgetAlertFactor*float64(baselineCents) {
		result = append(result, model.Insight{
			Type:  model.InsightBudgetAlert,
			Title: "High spending detected",
			Description: fmt.Sprintf("Your spending this month is %.0f%% of your typical monthly spending.",
				float64(currentTotalCents)/float64(baselineCents)*100),
			ActionRequired: true,
		})
	}

	if math.Abs(transactionChangePercent) > frequencyThreshold {
		direction, amount := "decreased", "fewer"
		if transactionChangePercent > 0 {
			direction, amount = "increased", "more"
		}
		result = append(result, model.Insight{
			Type:  model.InsightSpendingTrend,
			Title: fmt.Sprintf("Transaction frequency %s", direction),
			Description: fmt.Sprintf("You made %.1f%% %s transactions this month.",
				math.Abs(transactionChangePercent), amount),
			ActionRequired: false,
		})
	}

	return result
}
