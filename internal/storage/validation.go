// Package storage provides the data persistence layer for the pennywise application.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/pennywise-app/pennywise/internal/common"
	"github.com/pennywise-app/pennywise/internal/model"
)

// Validation errors. All wrap common.ErrInvalidInput so callers can match
// the whole family with one errors.Is check.
var (
	ErrNilContext         = fmt.Errorf("%w: context cannot be nil", common.ErrInvalidInput)
	ErrEmptyString        = fmt.Errorf("%w: string parameter cannot be empty", common.ErrInvalidInput)
	ErrNilParameter       = fmt.Errorf("%w: parameter cannot be nil", common.ErrInvalidInput)
	ErrInvalidDateRange   = fmt.Errorf("%w: start date must be before end date", common.ErrInvalidInput)
	ErrInvalidTransaction = fmt.Errorf("%w: invalid transaction", common.ErrInvalidInput)
	ErrInvalidCategory    = fmt.Errorf("%w: invalid category", common.ErrInvalidInput)
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidTransaction)
	}
	if strings.TrimSpace(txn.Merchant) == "" {
		return fmt.Errorf("%w: missing merchant", ErrInvalidTransaction)
	}
	if txn.AmountCents <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if !txn.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, txn.Category)
	}
	if txn.AIConfidence != nil && (*txn.AIConfidence < 0 || *txn.AIConfidence > 1) {
		return fmt.Errorf("%w: confidence must be between 0 and 1", ErrInvalidTransaction)
	}
	return nil
}

// validateCategory ensures a category is a member of the fixed set.
func validateCategory(category model.Category) error {
	if !category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return nil
}
