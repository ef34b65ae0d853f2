package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise-app/pennywise/internal/common"
	"github.com/pennywise-app/pennywise/internal/model"
)

func TestUpsertRule_CreateAndReinforce(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertRule(ctx, "user-1", "Starbucks", model.CategoryFood))

	rule, err := store.GetRule(ctx, "user-1", "Starbucks")
	require.NoError(t, err)
	assert.Equal(t, "starbucks", rule.Merchant)
	assert.Equal(t, model.CategoryFood, rule.Category)
	assert.InDelta(t, model.RuleInitialConfidence, rule.Confidence, 0.0001)
	assert.Equal(t, 1, rule.UsageCount)
	assert.False(t, rule.LastUsed.IsZero())

	require.NoError(t, store.UpsertRule(ctx, "user-1", "Starbucks", model.CategoryFood))

	rule, err = store.GetRule(ctx, "user-1", "Starbucks")
	require.NoError(t, err)
	assert.InDelta(t, model.RuleInitialConfidence+model.RuleConfidenceStep, rule.Confidence, 0.0001)
	assert.Equal(t, 2, rule.UsageCount)
}

func TestUpsertRule_ConfidenceNeverExceedsCap(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, store.UpsertRule(ctx, "user-1", "Costco", model.CategoryShopping))
	}

	rule, err := store.GetRule(ctx, "user-1", "Costco")
	require.NoError(t, err)
	assert.InDelta(t, model.RuleConfidenceCap, rule.Confidence, 0.0001)
	assert.Equal(t, 10, rule.UsageCount)
}

func TestUpsertRule_CorrectionSwitchesCategory(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertRule(ctx, "user-1", "Target", model.CategoryFood))
	require.NoError(t, store.UpsertRule(ctx, "user-1", "Target", model.CategoryShopping))

	rule, err := store.GetRule(ctx, "user-1", "Target")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryShopping, rule.Category)
	assert.Equal(t, 2, rule.UsageCount)
}

func TestUpsertRule_RejectsInvalidCategory(t *testing.T) {
	store := newTestStorage(t)

	err := store.UpsertRule(context.Background(), "user-1", "Target", model.Category("Lottery"))
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestGetRule_NormalizesMerchant(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertRule(ctx, "user-1", "  STARBUCKS ", model.CategoryFood))

	rule, err := store.GetRule(ctx, "user-1", "starbucks")
	require.NoError(t, err)
	assert.Equal(t, "starbucks", rule.Merchant)

	rule, err = store.GetRule(ctx, "user-1", "Starbucks  ")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryFood, rule.Category)
}

func TestGetRule_ScopedPerUser(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertRule(ctx, "user-1", "Starbucks", model.CategoryFood))

	_, err := store.GetRule(ctx, "user-2", "Starbucks")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRecordRuleUse(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertRule(ctx, "user-1", "Starbucks", model.CategoryFood))
	require.NoError(t, store.RecordRuleUse(ctx, "user-1", "STARBUCKS"))

	rule, err := store.GetRule(ctx, "user-1", "Starbucks")
	require.NoError(t, err)
	assert.Equal(t, 2, rule.UsageCount)

	// Usage does not touch confidence.
	assert.InDelta(t, model.RuleInitialConfidence, rule.Confidence, 0.0001)

	assert.ErrorIs(t, store.RecordRuleUse(ctx, "user-1", "Unknown"), common.ErrNotFound)
}
