package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/service"
)

// RuleLearner turns manual category corrections into per-merchant rules.
type RuleLearner struct {
	storage service.Storage
	logger  *slog.Logger
}

// NewRuleLearner creates a rule learner.
func NewRuleLearner(storage service.Storage, logger *slog.Logger) *RuleLearner {
	if logger == nil {
		logger = slog.Default()
	}
	return &RuleLearner{storage: storage, logger: logger}
}

// Reinforce records a manual correction for (user, merchant). The storage
// upsert is atomic per key, so concurrent corrections for the same
// merchant reinforce a single rule instead of racing to create two.
func (l *RuleLearner) Reinforce(ctx context.Context, userID, merchant string, category model.Category) error {
	if err := l.storage.UpsertRule(ctx, userID, merchant, category); err != nil {
		return fmt.Errorf("failed to reinforce rule: %w", err)
	}

	l.logger.Info("reinforced category rule",
		"user_id", userID,
		"merchant", model.NormalizeMerchant(merchant),
		"category", category)

	return nil
}
