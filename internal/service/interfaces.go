// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/pennywise-app/pennywise/internal/model"
)

// TransactionPage is one page of a user's transactions, newest first.
type TransactionPage struct {
	Transactions []model.Transaction
	Total        int
	Page         int
	Limit        int
	HasMore      bool
}

// Storage defines the contract for the persistence layer. All reads and
// writes are scoped to a single user; GetTransaction and friends return
// common.ErrNotFound for rows owned by other users.
type Storage interface {
	// Transaction operations
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransaction(ctx context.Context, userID, id string) (*model.Transaction, error)
	ListTransactions(ctx context.Context, userID string, page, limit int) (*TransactionPage, error)
	GetTransactionsByDateRange(ctx context.Context, userID string, start, end time.Time) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id string) error

	// Category rule operations. Merchant arguments are normalized by the
	// implementation; UpsertRule is atomic per (user, merchant).
	GetRule(ctx context.Context, userID, merchant string) (*model.CategoryRule, error)
	UpsertRule(ctx context.Context, userID, merchant string, category model.Category) error
	RecordRuleUse(ctx context.Context, userID, merchant string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Classifier resolves a category for a transaction.
type Classifier interface {
	Classify(ctx context.Context, userID, merchant string, amountCents int64, description string) model.ClassificationResult
}

// RuleLearner records manual category corrections.
type RuleLearner interface {
	Reinforce(ctx context.Context, userID, merchant string, category model.Category) error
}

// DashboardBuilder assembles the derived dashboard payload.
type DashboardBuilder interface {
	BuildDashboard(ctx context.Context, userID string, now time.Time) (*model.DashboardInsights, error)
}
