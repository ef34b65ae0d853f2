package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise-app/pennywise/internal/model"
)

func histTxn(merchant string, category model.Category, amountCents int64) model.Transaction {
	return model.Transaction{
		ID:          "hist-" + merchant,
		UserID:      "user-1",
		Merchant:    merchant,
		AmountCents: amountCents,
		Category:    category,
	}
}

func TestDetectAnomalies_ColdStart(t *testing.T) {
	current := []model.Transaction{
		txn("1", model.CategoryFood, 999999),
	}

	assert.Empty(t, DetectAnomalies(current, nil))
	assert.Empty(t, DetectAnomalies(current, []model.Transaction{}))
}

func TestDetectAnomalies_UnusualAmount(t *testing.T) {
	// 30000 over 3 months -> monthly average 10000 for Food.
	historical := []model.Transaction{
		histTxn("Grocer A", model.CategoryFood, 15000),
		histTxn("Grocer B", model.CategoryFood, 15000),
	}

	tests := []struct {
		name         string
		amountCents  int64
		wantCount    int
		wantSeverity model.Severity
	}{
		{"within 2x of average", 25000, 0, ""},
		{"2.5x average is medium", 35000, 1, model.SeverityMedium},
		{"above 5x deviation is high", 70001, 1, model.SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := []model.Transaction{{
				ID:          "cur-1",
				UserID:      "user-1",
				Merchant:    "Grocer A",
				AmountCents: tt.amountCents,
				Category:    model.CategoryFood,
			}}

			anomalies := DetectAnomalies(current, historical)
			require.Len(t, anomalies, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, model.AnomalyUnusualAmount, anomalies[0].Type)
				assert.Equal(t, tt.wantSeverity, anomalies[0].Severity)
				assert.Equal(t, "cur-1", anomalies[0].TransactionID)
				assert.Contains(t, anomalies[0].Description, "Grocer A")
				assert.Contains(t, anomalies[0].Description, "Food")
				assert.Contains(t, anomalies[0].Description, "high")
			}
		})
	}
}

func TestDetectAnomalies_NewMerchant(t *testing.T) {
	historical := []model.Transaction{
		histTxn("Known Shop", model.CategoryShopping, 9000),
	}

	t.Run("above threshold", func(t *testing.T) {
		current := []model.Transaction{{
			ID: "cur-1", UserID: "user-1", Merchant: "Brand New Boutique",
			AmountCents: 6000, Category: model.CategoryShopping,
		}}

		anomalies := DetectAnomalies(current, historical)
		require.Len(t, anomalies, 1)
		assert.Equal(t, model.AnomalyUnusualMerchant, anomalies[0].Type)
		assert.Equal(t, model.SeverityLow, anomalies[0].Severity)
	})

	t.Run("below threshold", func(t *testing.T) {
		current := []model.Transaction{{
			ID: "cur-1", UserID: "user-1", Merchant: "Brand New Boutique",
			AmountCents: 4000, Category: model.CategoryShopping,
		}}

		assert.Empty(t, DetectAnomalies(current, historical))
	})

	t.Run("merchant matching is case-insensitive", func(t *testing.T) {
		current := []model.Transaction{{
			ID: "cur-1", UserID: "user-1", Merchant: "  KNOWN SHOP ",
			AmountCents: 6000, Category: model.CategoryShopping,
		}}

		assert.Empty(t, DetectAnomalies(current, historical))
	})
}

func TestDetectAnomalies_BothRulesCanFlagSameTransaction(t *testing.T) {
	historical := []model.Transaction{
		histTxn("Old Cafe", model.CategoryFood, 3000),
	}

	// New merchant, amount over 5000 cents, and far above the Food monthly
	// average of 1000: one record per rule, no de-duplication.
	current := []model.Transaction{{
		ID: "cur-1", UserID: "user-1", Merchant: "Fancy Bistro",
		AmountCents: 6000, Category: model.CategoryFood,
	}}

	anomalies := DetectAnomalies(current, historical)
	require.Len(t, anomalies, 2)

	types := []model.AnomalyType{anomalies[0].Type, anomalies[1].Type}
	assert.Contains(t, types, model.AnomalyUnusualAmount)
	assert.Contains(t, types, model.AnomalyUnusualMerchant)
}

func TestDetectAnomalies_OrderedBySeverity(t *testing.T) {
	historical := []model.Transaction{
		histTxn("Grocer", model.CategoryFood, 30000),      // Food avg 10000
		histTxn("Pharmacy", model.CategoryHealthcare, 600), // Healthcare avg 200
	}

	current := []model.Transaction{
		// New merchant only: low.
		{ID: "low", UserID: "user-1", Merchant: "New Spot", AmountCents: 5500, Category: model.CategoryOther},
		// Deviation 25000 = 2.5x avg: medium.
		{ID: "medium", UserID: "user-1", Merchant: "Grocer", AmountCents: 35000, Category: model.CategoryFood},
		// Deviation 1800 = 9x avg: high.
		{ID: "high", UserID: "user-1", Merchant: "Pharmacy", AmountCents: 2000, Category: model.CategoryHealthcare},
	}

	anomalies := DetectAnomalies(current, historical)
	require.Len(t, anomalies, 3)
	assert.Equal(t, model.SeverityHigh, anomalies[0].Severity)
	assert.Equal(t, model.SeverityMedium, anomalies[1].Severity)
	assert.Equal(t, model.SeverityLow, anomalies[2].Severity)
}
