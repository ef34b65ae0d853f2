package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/storage"
)

func newTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedTransaction(t *testing.T, store *storage.SQLiteStorage, id, userID, merchant string, category model.Category, amountCents int64, date time.Time) {
	t.Helper()
	require.NoError(t, store.CreateTransaction(context.Background(), &model.Transaction{
		ID:          id,
		UserID:      userID,
		Merchant:    merchant,
		AmountCents: amountCents,
		Category:    category,
		Date:        date,
	}))
}

func TestBuildDashboard(t *testing.T) {
	store := newTestStorage(t)
	svc := NewService(store, 250000, nil)
	ctx := context.Background()

	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	userID := "user-1"

	// Trailing three months of Food history: 30000 total, monthly average 10000.
	for i, month := range []time.Month{time.March, time.April, time.May} {
		seedTransaction(t, store, fmt.Sprintf("hist-%d", i), userID, "Cafe Zef",
			model.CategoryFood, 10000, time.Date(2025, month, 5, 0, 0, 0, 0, time.UTC))
	}

	// Previous month also contributes to the comparison.
	seedTransaction(t, store, "prev-extra", userID, "Cafe Zef",
		model.CategoryFood, 5000, time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC))

	// Current month: one transaction at 3.5x the category average.
	seedTransaction(t, store, "cur-1", userID, "Cafe Zef",
		model.CategoryFood, 42000, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC))

	// Another user's rows must not leak into the dashboard.
	seedTransaction(t, store, "other-1", "user-2", "Cafe Zef",
		model.CategoryFood, 99999, time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC))

	dash, err := svc.BuildDashboard(ctx, userID, now)
	require.NoError(t, err)

	assert.Equal(t, int64(42000), dash.CurrentMonth.TotalSpentCents)
	assert.Equal(t, 1, dash.CurrentMonth.TransactionCount)
	require.Len(t, dash.CurrentMonth.Categories, 1)
	assert.InDelta(t, 100.0, dash.CurrentMonth.Categories[0].Percentage, 0.001)

	assert.Equal(t, int64(15000), dash.PreviousMonth.TotalSpentCents)
	assert.Equal(t, 2, dash.PreviousMonth.TransactionCount)
	assert.NotNil(t, dash.PreviousMonth.Categories)
	assert.Empty(t, dash.PreviousMonth.Categories, "previous month reports totals only")

	assert.InDelta(t, 180.0, dash.Comparison.SpendingChangePercent, 0.001)
	assert.InDelta(t, -50.0, dash.Comparison.TransactionChangePercent, 0.001)

	// Baseline: (30000+5000)/3 monthly Food average = 11666; deviation
	// 30334 is between 2x and 5x, so one medium unusual_amount anomaly.
	require.Len(t, dash.Anomalies, 1)
	assert.Equal(t, model.AnomalyUnusualAmount, dash.Anomalies[0].Type)
	assert.Equal(t, model.SeverityMedium, dash.Anomalies[0].Severity)
	assert.Equal(t, "cur-1", dash.Anomalies[0].TransactionID)

	// Spending up 180%, Food at 100% of the month, transaction count
	// halved: trend + category + frequency insights.
	require.Len(t, dash.Insights, 3)
}

func TestBuildDashboard_ColdStart(t *testing.T) {
	store := newTestStorage(t)
	svc := NewService(store, 250000, nil)
	ctx := context.Background()

	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	seedTransaction(t, store, "cur-1", "fresh-user", "First Merchant",
		model.CategoryShopping, 600000, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))

	dash, err := svc.BuildDashboard(ctx, "fresh-user", now)
	require.NoError(t, err)

	assert.Empty(t, dash.Anomalies, "no baseline means no anomalies")
	assert.NotNil(t, dash.Anomalies)
	assert.NotNil(t, dash.Insights)
	assert.Equal(t, int64(600000), dash.CurrentMonth.TotalSpentCents)
	assert.Zero(t, dash.Comparison.SpendingChangePercent)
}

func TestBuildDashboard_EmptyPayloadSerializesArrays(t *testing.T) {
	store := newTestStorage(t)
	svc := NewService(store, 250000, nil)

	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	dash, err := svc.BuildDashboard(context.Background(), "idle-user", now)
	require.NoError(t, err)

	payload, err := json.Marshal(dash)
	require.NoError(t, err)

	body := string(payload)
	assert.Contains(t, body, `"anomalies":[]`)
	assert.Contains(t, body, `"insights":[]`)
	assert.Contains(t, body, `"categories":[]`)
	assert.NotContains(t, body, "null")
}
