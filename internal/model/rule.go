package model

import "time"

// Rule learning constants. A rule is created on the first manual
// correction and reinforced on each subsequent one; confidence never
// decays and never exceeds the cap.
const (
	RuleInitialConfidence = 0.7
	RuleConfidenceStep    = 0.1
	RuleConfidenceCap     = 0.95

	// RuleApplyThreshold is the minimum confidence at which the
	// classifier trusts a rule over the hosted classifier.
	RuleApplyThreshold = 0.8
)

// CategoryRule is a learned per-user, per-merchant category override.
// Merchant holds the normalized key; exactly one rule exists per
// (user, merchant) pair.
type CategoryRule struct {
	LastUsed   time.Time
	UserID     string
	Merchant   string
	Category   Category
	Confidence float64
	UsageCount int
}
