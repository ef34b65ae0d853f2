// Package llm provides the hosted classification client. The engine treats
// its output as untrusted: category labels are validated against the fixed
// set and confidences are clamped by the caller.
package llm

import "context"

// ClassifyRequest describes one transaction to categorize.
type ClassifyRequest struct {
	Merchant    string
	Description string
	AmountCents int64
}

// ClassifyResponse contains the hosted classifier's guess.
type ClassifyResponse struct {
	Category   string
	Reasoning  string
	Confidence float64
}

// Client defines the interface for hosted classification providers.
type Client interface {
	Classify(ctx context.Context, req ClassifyRequest) (ClassifyResponse, error)
}
