package model

// CategorySpending is one category's share of a period.
type CategorySpending struct {
	Category    Category `json:"category"`
	AmountCents int64    `json:"amount_cents"`
	Count       int      `json:"count"`
	Percentage  float64  `json:"percentage"`
}

// PeriodSummary aggregates one calendar-month window. Categories is always
// a non-nil slice in API payloads: empty for the previous period (totals
// only) and for months with no transactions, never null.
type PeriodSummary struct {
	Categories       []CategorySpending `json:"categories"`
	TotalSpentCents  int64              `json:"total_spent"`
	TransactionCount int                `json:"transaction_count"`
}

// Comparison holds month-over-month percent changes. Both values are 0
// when the previous period had no data.
type Comparison struct {
	SpendingChangePercent    float64 `json:"spending_change_percent"`
	TransactionChangePercent float64 `json:"transaction_change_percent"`
}

// AnomalyType distinguishes the two anomaly rules.
type AnomalyType string

const (
	// AnomalyUnusualAmount flags a transaction far from the user's
	// historical per-category average.
	AnomalyUnusualAmount AnomalyType = "unusual_amount"
	// AnomalyUnusualMerchant flags a notable first-time merchant.
	AnomalyUnusualMerchant AnomalyType = "unusual_merchant"
)

// Severity orders anomalies for display.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank returns the sort weight for a severity; higher sorts first.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Anomaly is a flagged transaction that deviates from the user's
// established pattern. Never persisted; recomputed per dashboard request.
type Anomaly struct {
	TransactionID string      `json:"transaction_id"`
	Type          AnomalyType `json:"type"`
	Severity      Severity    `json:"severity"`
	Description   string      `json:"description"`
}

// InsightType categorizes generated insights.
type InsightType string

const (
	InsightSpendingTrend   InsightType = "spending_trend"
	InsightCategoryInsight InsightType = "category_insight"
	InsightBudgetAlert     InsightType = "budget_alert"
)

// Insight is a generated observation about spending behavior.
type Insight struct {
	Type           InsightType `json:"type"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	ActionRequired bool        `json:"action_required"`
}

// DashboardInsights is the full dashboard payload. Derived on every
// request; it has no independent lifecycle.
type DashboardInsights struct {
	CurrentMonth  PeriodSummary `json:"current_month"`
	PreviousMonth PeriodSummary `json:"previous_month"`
	Comparison    Comparison    `json:"comparison"`
	Anomalies     []Anomaly     `json:"anomalies"`
	Insights      []Insight     `json:"insights"`
}
