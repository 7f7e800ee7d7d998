package storage

import (
	"context"
	"strings"

	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
)

func (s *SQLStorage) ListBudgets(ctx context.Context, ownerID int64, month string) ([]ledger.Budget, error) {
	query := "SELECT id, user_id, category_id, amount, month, alert_threshold, created_at, updated_at FROM budgets WHERE user_id = ?"
	args := []any{ownerID}
	if month != "" {
		query += " AND month = ?"
		args = append(args, month)
	}
	query += " ORDER BY month DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.fail(ctx, "ListBudgets", "list budgets", err, "Failed to get budgets, try again later.")
	}
	defer rows.Close()

	budgets := []ledger.Budget{}
	for rows.Next() {
		var b dbBudget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Amount, &b.Month, &b.AlertThreshold, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, s.fail(ctx, "ListBudgets", "scan budget", err, "Failed to get budgets, try again later.")
		}
		budgets = append(budgets, b.toDomain(s.loc))
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(ctx, "ListBudgets", "iterate budgets", err, "Failed to get budgets, try again later.")
	}
	return budgets, nil
}

func (s *SQLStorage) SaveBudget(ctx context.Context, b ledger.Budget) (int64, error) {
	query := `INSERT INTO budgets (user_id, category_id, amount, month, alert_threshold, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, query, b.OwnerID, nullInt64(b.CategoryID), b.Amount, b.Month, b.AlertThreshold, s.ts(b.CreatedAt), s.ts(b.UpdatedAt))
	if err != nil {
		return 0, s.fail(ctx, "SaveBudget", "save budget", err, "Failed to save the budget, try again later.")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, s.fail(ctx, "SaveBudget", "read budget id", err, "Failed to save the budget, try again later.")
	}
	return id, nil
}

func (s *SQLStorage) UpdateBudget(ctx context.Context, ownerID int64, id int64, patch ledger.BudgetPatch) (int64, error) {
	var sets []string
	var args []any
	if patch.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, *patch.Amount)
	}
	if patch.AlertThreshold != nil {
		sets = append(sets, "alert_threshold = ?")
		args = append(args, *patch.AlertThreshold)
	}
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, s.ts(patch.UpdatedAt))

	query := "UPDATE budgets SET " + strings.Join(sets, ", ") + " WHERE id = ? AND user_id = ?"
	args = append(args, id, ownerID)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, s.fail(ctx, "UpdateBudget", "update budget", err, "Failed to update the budget, try again later.")
	}
	return s.affected(ctx, "UpdateBudget", res)
}

func (s *SQLStorage) DeleteBudget(ctx context.Context, ownerID int64, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM budgets WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return 0, s.fail(ctx, "DeleteBudget", "delete budget", err, "Failed to delete the budget, try again later.")
	}
	return s.affected(ctx, "DeleteBudget", res)
}
