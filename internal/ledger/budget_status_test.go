package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateBudget(t *testing.T) {
	tests := []struct {
		name        string
		limit       int64
		threshold   int
		spent       int64
		wantPct     float64
		wantDisplay float64
		wantOver    bool
		wantNear    bool
	}{
		{name: "nothing spent", limit: 10000, threshold: 80, spent: 0, wantPct: 0, wantDisplay: 0},
		{name: "below threshold", limit: 10000, threshold: 80, spent: 7999, wantPct: 79.99, wantDisplay: 79.99},
		{name: "exactly threshold", limit: 10000, threshold: 80, spent: 8000, wantPct: 80, wantDisplay: 80, wantNear: true},
		{name: "exactly limit", limit: 10000, threshold: 80, spent: 10000, wantPct: 100, wantDisplay: 100, wantNear: true},
		{name: "over limit", limit: 10000, threshold: 80, spent: 15000, wantPct: 150, wantDisplay: 100, wantOver: true},
		{name: "zero threshold", limit: 10000, threshold: 0, spent: 0, wantPct: 0, wantDisplay: 0, wantNear: true},
		{name: "zero limit", limit: 0, threshold: 80, spent: 500, wantPct: 0, wantDisplay: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := EvaluateBudget(Budget{Amount: tt.limit, AlertThreshold: tt.threshold}, tt.spent)
			assert.InDelta(t, tt.wantPct, status.Percentage, 1e-9)
			assert.InDelta(t, tt.wantDisplay, status.DisplayPercentage, 1e-9)
			assert.Equal(t, tt.wantOver, status.IsOverBudget)
			assert.Equal(t, tt.wantNear, status.IsNearLimit)
			assert.Equal(t, tt.limit-tt.spent, status.Remaining)
		})
	}
}

func TestEvaluateBudgetJustOverLimit(t *testing.T) {
	status := EvaluateBudget(Budget{Amount: 1_000_000_000, AlertThreshold: 80}, 1_000_000_001)

	assert.Greater(t, status.Percentage, float64(100))
	assert.True(t, status.IsOverBudget)
	assert.False(t, status.IsNearLimit)
	assert.Equal(t, float64(100), status.DisplayPercentage)
	assert.Equal(t, int64(-1), status.Remaining)
}

func TestEvaluateBudgets(t *testing.T) {
	food := int64(11)
	car := int64(10)
	budgets := []Budget{
		{ID: 1, CategoryID: &food, Amount: 10000, AlertThreshold: 80},
		{ID: 2, Amount: 20000, AlertThreshold: 80},
		{ID: 3, CategoryID: &food, Amount: 5000, AlertThreshold: 50},
		{ID: 4, CategoryID: &car, Amount: 5000, AlertThreshold: 80},
	}
	spending := []CategoryTotal{
		{CategoryID: 11, Total: 9000},
		{CategoryID: 12, Total: 3000},
	}

	statuses := EvaluateBudgets(budgets, spending)
	require.Len(t, statuses, 4)

	assert.Equal(t, int64(1), statuses[0].ID)
	assert.Equal(t, int64(9000), statuses[0].Spent)
	assert.True(t, statuses[0].IsNearLimit)

	assert.Equal(t, int64(12000), statuses[1].Spent)
	assert.InDelta(t, 60, statuses[1].Percentage, 1e-9)

	assert.Equal(t, int64(9000), statuses[2].Spent)
	assert.True(t, statuses[2].IsOverBudget)

	assert.Equal(t, int64(0), statuses[3].Spent)
	assert.Equal(t, int64(5000), statuses[3].Remaining)

	assert.Empty(t, EvaluateBudgets(nil, spending))
}
