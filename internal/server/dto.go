package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/pennywise-app/pennywise/internal/model"
)

const maxMerchantLength = 255

type createTransactionRequest struct {
	Merchant    string `json:"merchant"`
	AmountCents int64  `json:"amount_cents"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

func (r *createTransactionRequest) validate() (time.Time, error) {
	if err := validateMerchant(r.Merchant); err != nil {
		return time.Time{}, err
	}
	if r.AmountCents <= 0 {
		return time.Time{}, fmt.Errorf("amount_cents must be a positive integer")
	}
	date, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be RFC3339: %w", err)
	}
	if r.Category != "" && !model.Category(r.Category).IsValid() {
		return time.Time{}, fmt.Errorf("category %q is not a valid category", r.Category)
	}
	return date, nil
}

type updateTransactionRequest struct {
	Merchant    *string `json:"merchant,omitempty"`
	AmountCents *int64  `json:"amount_cents,omitempty"`
	Date        *string `json:"date,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

func (r *updateTransactionRequest) validate() error {
	if r.Merchant != nil {
		if err := validateMerchant(*r.Merchant); err != nil {
			return err
		}
	}
	if r.AmountCents != nil && *r.AmountCents <= 0 {
		return fmt.Errorf("amount_cents must be a positive integer")
	}
	if r.Date != nil {
		if _, err := time.Parse(time.RFC3339, *r.Date); err != nil {
			return fmt.Errorf("date must be RFC3339: %w", err)
		}
	}
	if r.Category != nil && !model.Category(*r.Category).IsValid() {
		return fmt.Errorf("category %q is not a valid category", *r.Category)
	}
	return nil
}

type categorizeRequest struct {
	Merchant    string `json:"merchant"`
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description,omitempty"`
}

func validateMerchant(merchant string) error {
	trimmed := strings.TrimSpace(merchant)
	if trimmed == "" {
		return fmt.Errorf("merchant is required")
	}
	if len(merchant) > maxMerchantLength {
		return fmt.Errorf("merchant must be at most %d characters", maxMerchantLength)
	}
	return nil
}

type transactionResponse struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	Merchant     string   `json:"merchant"`
	AmountCents  int64    `json:"amount_cents"`
	Category     string   `json:"category"`
	Date         string   `json:"date"`
	Description  string   `json:"description,omitempty"`
	AIConfidence *float64 `json:"ai_confidence,omitempty"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func toTransactionResponse(txn *model.Transaction) transactionResponse {
	return transactionResponse{
		ID:           txn.ID,
		UserID:       txn.UserID,
		Merchant:     txn.Merchant,
		AmountCents:  txn.AmountCents,
		Category:     string(txn.Category),
		Date:         txn.Date.Format(time.RFC3339),
		Description:  txn.Description,
		AIConfidence: txn.AIConfidence,
		CreatedAt:    txn.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    txn.UpdatedAt.Format(time.RFC3339),
	}
}

type transactionPageResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	HasMore      bool                  `json:"has_more"`
}

type categorizeResponse struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
	Degraded   bool    `json:"degraded,omitempty"`
}
