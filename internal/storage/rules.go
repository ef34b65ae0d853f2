package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pennywise-app/pennywise/internal/common"
	"github.com/pennywise-app/pennywise/internal/model"
)

// GetRule retrieves the category rule for (user, merchant). The merchant
// is normalized before lookup. Returns common.ErrNotFound when no rule
// exists.
func (s *SQLiteStorage) GetRule(ctx context.Context, userID, merchant string) (*model.CategoryRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(merchant, "merchant"); err != nil {
		return nil, err
	}

	var rule model.CategoryRule
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, merchant, category, confidence, usage_count, last_used
		FROM category_rules
		WHERE user_id = ? AND merchant = ?
	`, userID, model.NormalizeMerchant(merchant)).Scan(
		&rule.UserID,
		&rule.Merchant,
		&rule.Category,
		&rule.Confidence,
		&rule.UsageCount,
		&rule.LastUsed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}

	return &rule, nil
}

// UpsertRule creates or reinforces the rule for (user, merchant) in a
// single atomic statement. A new rule starts at the initial confidence
// with usage_count 1; an existing rule moves to the new category, steps
// its confidence toward the cap, and increments its usage count.
// Concurrent corrections for the same merchant cannot produce duplicate
// rules: (user_id, merchant) is the primary key and the conflict branch
// does the reinforcement.
func (s *SQLiteStorage) UpsertRule(ctx context.Context, userID, merchant string, category model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(merchant, "merchant"); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO category_rules (user_id, merchant, category, confidence, usage_count, last_used)
		VALUES (?, ?, ?, ?, 1, ?)
		ON CONFLICT(user_id, merchant) DO UPDATE SET
			category = excluded.category,
			confidence = MIN(category_rules.confidence + ?, ?),
			usage_count = category_rules.usage_count + 1,
			last_used = excluded.last_used
	`, userID, model.NormalizeMerchant(merchant), category,
		model.RuleInitialConfidence, time.Now().UTC(),
		model.RuleConfidenceStep, model.RuleConfidenceCap)
	if err != nil {
		return fmt.Errorf("failed to upsert rule: %w", err)
	}

	return nil
}

// RecordRuleUse increments a rule's usage count and refreshes last_used.
// Called on every classification served from the rule, not only on
// corrections. Returns common.ErrNotFound when no rule exists.
func (s *SQLiteStorage) RecordRuleUse(ctx context.Context, userID, merchant string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(merchant, "merchant"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE category_rules
		SET usage_count = usage_count + 1, last_used = ?
		WHERE user_id = ? AND merchant = ?
	`, time.Now().UTC(), userID, model.NormalizeMerchant(merchant))
	if err != nil {
		return fmt.Errorf("failed to record rule use: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}
