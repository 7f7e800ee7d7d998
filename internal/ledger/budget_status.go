package ledger

const DEFAULT_ALERT_THRESHOLD = 80

// EvaluateBudget computes usage of a single budget. A zero limit yields a
// percentage of 0.
func EvaluateBudget(b Budget, spent int64) BudgetStatus {
	var percentage float64
	if b.Amount > 0 {
		percentage = float64(spent) * 100 / float64(b.Amount)
	}

	display := percentage
	if display > 100 {
		display = 100
	}

	return BudgetStatus{
		Budget:            b,
		Spent:             spent,
		Remaining:         b.Amount - spent,
		Percentage:        percentage,
		DisplayPercentage: display,
		IsOverBudget:      percentage > 100,
		IsNearLimit:       float64(b.AlertThreshold) <= percentage && percentage <= 100,
	}
}

// EvaluateBudgets pairs every budget with the expense spending of its month.
// Budgets without a category are measured against all expenses, and
// duplicates are evaluated independently.
func EvaluateBudgets(budgets []Budget, spending []CategoryTotal) []BudgetStatus {
	byCategory := make(map[int64]int64, len(spending))
	var total int64
	for _, s := range spending {
		byCategory[s.CategoryID] += s.Total
		total += s.Total
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := total
		if b.CategoryID != nil {
			spent = byCategory[*b.CategoryID]
		}
		statuses = append(statuses, EvaluateBudget(b, spent))
	}
	return statuses
}
