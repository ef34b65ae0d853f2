package model

// ClassificationSource indicates how a category was resolved.
type ClassificationSource string

const (
	// SourceRule means a learned merchant rule decided the category.
	SourceRule ClassificationSource = "rule"
	// SourceAI means the hosted classifier (or its deterministic keyword
	// fallback) decided the category.
	SourceAI ClassificationSource = "ai"
)

// ClassificationResult is the outcome of categorizing one transaction.
// Degraded is set when the hosted classifier failed and the keyword
// fallback produced the result; callers use it to track fallback rate.
type ClassificationResult struct {
	Category   Category
	Source     ClassificationSource
	Confidence float64
	Degraded   bool
}
