package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise-app/pennywise/internal/model"
)

func TestReinforce_CreatesThenStrengthens(t *testing.T) {
	store := newTestStorage(t)
	learner := NewRuleLearner(store, nil)
	ctx := context.Background()

	require.NoError(t, learner.Reinforce(ctx, "user-1", "Trader Joe's", model.CategoryFood))

	rule, err := store.GetRule(ctx, "user-1", "Trader Joe's")
	require.NoError(t, err)
	assert.InDelta(t, model.RuleInitialConfidence, rule.Confidence, 0.0001)
	assert.Equal(t, 1, rule.UsageCount)
	assert.Equal(t, "trader joe's", rule.Merchant)

	require.NoError(t, learner.Reinforce(ctx, "user-1", "Trader Joe's", model.CategoryFood))

	rule, err = store.GetRule(ctx, "user-1", "Trader Joe's")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, rule.Confidence, 0.0001)
	assert.Equal(t, 2, rule.UsageCount)
}

func TestReinforce_ConfidenceCaps(t *testing.T) {
	store := newTestStorage(t)
	learner := NewRuleLearner(store, nil)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		require.NoError(t, learner.Reinforce(ctx, "user-1", "Costco", model.CategoryShopping))
	}

	rule, err := store.GetRule(ctx, "user-1", "Costco")
	require.NoError(t, err)
	assert.InDelta(t, model.RuleConfidenceCap, rule.Confidence, 0.0001)
	assert.Equal(t, 6, rule.UsageCount)
}

func TestReinforce_CorrectionMovesCategory(t *testing.T) {
	store := newTestStorage(t)
	learner := NewRuleLearner(store, nil)
	ctx := context.Background()

	require.NoError(t, learner.Reinforce(ctx, "user-1", "Target", model.CategoryFood))
	require.NoError(t, learner.Reinforce(ctx, "user-1", "Target", model.CategoryShopping))

	rule, err := store.GetRule(ctx, "user-1", "Target")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryShopping, rule.Category)
	assert.InDelta(t, 0.8, rule.Confidence, 0.0001)
}

func TestReinforce_MerchantVariantsShareOneRule(t *testing.T) {
	store := newTestStorage(t)
	learner := NewRuleLearner(store, nil)
	ctx := context.Background()

	require.NoError(t, learner.Reinforce(ctx, "user-1", "  STARBUCKS ", model.CategoryFood))
	require.NoError(t, learner.Reinforce(ctx, "user-1", "starbucks", model.CategoryFood))

	rule, err := store.GetRule(ctx, "user-1", "Starbucks")
	require.NoError(t, err)
	assert.Equal(t, 2, rule.UsageCount)
	assert.InDelta(t, 0.8, rule.Confidence, 0.0001)
}
