package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name          string
		currentTotal  int64
		previousTotal int64
		currentCount  int
		previousCount int
		wantSpending  float64
		wantCount     float64
	}{
		{
			name:         "doubled spend and count",
			currentTotal: 1000, previousTotal: 500,
			currentCount: 10, previousCount: 5,
			wantSpending: 100, wantCount: 100,
		},
		{
			name:         "zero previous period yields zero percent",
			currentTotal: 1000, previousTotal: 0,
			currentCount: 10, previousCount: 0,
			wantSpending: 0, wantCount: 0,
		},
		{
			name:         "decrease",
			currentTotal: 500, previousTotal: 1000,
			currentCount: 4, previousCount: 5,
			wantSpending: -50, wantCount: -20,
		},
		{
			name:         "no change",
			currentTotal: 1000, previousTotal: 1000,
			currentCount: 5, previousCount: 5,
			wantSpending: 0, wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp := Compare(tt.currentTotal, tt.previousTotal, tt.currentCount, tt.previousCount)
			assert.InDelta(t, tt.wantSpending, cmp.SpendingChangePercent, 0.0001)
			assert.InDelta(t, tt.wantCount, cmp.TransactionChangePercent, 0.0001)
		})
	}
}
