package model

import (
	"strings"
	"time"
)

// Transaction represents a single logged expense owned by one user.
// Amounts are integer minor currency units (cents); there is no
// floating-point money anywhere in the engine.
type Transaction struct {
	Date         time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	AIConfidence *float64 // classifier confidence at creation, nil if manual
	ID           string
	UserID       string
	Merchant     string
	Description  string
	Category     Category
	AmountCents  int64
}

// NormalizeMerchant canonicalizes a merchant string for rule lookups and
// historical merchant matching: trimmed and lower-cased. Rule keys and the
// anomaly detector's merchant set both use this form.
func NormalizeMerchant(merchant string) string {
	return strings.ToLower(strings.TrimSpace(merchant))
}
