package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
)

const savingColumns = "id, user_id, amount, account_type, month, note, created_at, updated_at"

func (s *SQLStorage) ListSavings(ctx context.Context, ownerID int64) ([]ledger.Saving, error) {
	query := "SELECT " + savingColumns + " FROM savings WHERE user_id = ? ORDER BY month DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, s.fail(ctx, "ListSavings", "list savings", err, "Failed to get savings, try again later.")
	}
	defer rows.Close()

	savings := []ledger.Saving{}
	for rows.Next() {
		var sv dbSaving
		if err := rows.Scan(&sv.ID, &sv.UserID, &sv.Amount, &sv.AccountType, &sv.Month, &sv.Note, &sv.CreatedAt, &sv.UpdatedAt); err != nil {
			return nil, s.fail(ctx, "ListSavings", "scan saving", err, "Failed to get savings, try again later.")
		}
		savings = append(savings, sv.toDomain(s.loc))
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(ctx, "ListSavings", "iterate savings", err, "Failed to get savings, try again later.")
	}
	return savings, nil
}

// GetSavingByMonth returns the latest entry of month.
func (s *SQLStorage) GetSavingByMonth(ctx context.Context, ownerID int64, month string) (ledger.Saving, error) {
	query := "SELECT " + savingColumns + " FROM savings WHERE user_id = ? AND month = ? ORDER BY id DESC LIMIT 1"

	var sv dbSaving
	err := s.db.QueryRowContext(ctx, query, ownerID, month).Scan(&sv.ID, &sv.UserID, &sv.Amount, &sv.AccountType, &sv.Month, &sv.Note, &sv.CreatedAt, &sv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.Saving{}, notFound("No saving recorded for this month.")
		}
		return ledger.Saving{}, s.fail(ctx, "GetSavingByMonth", "get saving", err, "Failed to get the saving, try again later.")
	}
	return sv.toDomain(s.loc), nil
}

func (s *SQLStorage) SaveSaving(ctx context.Context, sv ledger.Saving) (int64, error) {
	query := `INSERT INTO savings (user_id, amount, account_type, month, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, query, sv.OwnerID, sv.Amount, string(sv.AccountType), sv.Month, nullString(sv.Note), s.ts(sv.CreatedAt), s.ts(sv.UpdatedAt))
	if err != nil {
		return 0, s.fail(ctx, "SaveSaving", "save saving", err, "Failed to save the saving, try again later.")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, s.fail(ctx, "SaveSaving", "read saving id", err, "Failed to save the saving, try again later.")
	}
	return id, nil
}

func (s *SQLStorage) UpdateSaving(ctx context.Context, ownerID int64, id int64, patch ledger.SavingPatch) (int64, error) {
	var sets []string
	var args []any
	if patch.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, *patch.Amount)
	}
	if patch.AccountType != nil {
		sets = append(sets, "account_type = ?")
		args = append(args, string(*patch.AccountType))
	}
	if patch.Note != nil {
		sets = append(sets, "note = ?")
		args = append(args, nullString(*patch.Note))
	}
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, s.ts(patch.UpdatedAt))

	query := "UPDATE savings SET " + strings.Join(sets, ", ") + " WHERE id = ? AND user_id = ?"
	args = append(args, id, ownerID)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, s.fail(ctx, "UpdateSaving", "update saving", err, "Failed to update the saving, try again later.")
	}
	return s.affected(ctx, "UpdateSaving", res)
}

func (s *SQLStorage) DeleteSaving(ctx context.Context, ownerID int64, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM savings WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return 0, s.fail(ctx, "DeleteSaving", "delete saving", err, "Failed to delete the saving, try again later.")
	}
	return s.affected(ctx, "DeleteSaving", res)
}

// --- WITHDRAWALS --- //

func (s *SQLStorage) ListWithdrawals(ctx context.Context, ownerID int64) ([]ledger.Withdrawal, error) {
	query := `SELECT id, user_id, amount, account_type, withdrawal_date, reason, created_at
		FROM savings_withdrawals WHERE user_id = ? ORDER BY withdrawal_date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, s.fail(ctx, "ListWithdrawals", "list withdrawals", err, "Failed to get withdrawals, try again later.")
	}
	defer rows.Close()

	withdrawals := []ledger.Withdrawal{}
	for rows.Next() {
		var w dbWithdrawal
		if err := rows.Scan(&w.ID, &w.UserID, &w.Amount, &w.AccountType, &w.WithdrawalDate, &w.Reason, &w.CreatedAt); err != nil {
			return nil, s.fail(ctx, "ListWithdrawals", "scan withdrawal", err, "Failed to get withdrawals, try again later.")
		}
		withdrawals = append(withdrawals, w.toDomain(s.loc))
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(ctx, "ListWithdrawals", "iterate withdrawals", err, "Failed to get withdrawals, try again later.")
	}
	return withdrawals, nil
}

func (s *SQLStorage) SaveWithdrawal(ctx context.Context, w ledger.Withdrawal) (int64, error) {
	query := `INSERT INTO savings_withdrawals (user_id, amount, account_type, withdrawal_date, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, query, w.OwnerID, w.Amount, string(w.AccountType), s.ts(w.WithdrawalDate), nullString(w.Reason), s.ts(w.CreatedAt))
	if err != nil {
		return 0, s.fail(ctx, "SaveWithdrawal", "save withdrawal", err, "Failed to save the withdrawal, try again later.")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, s.fail(ctx, "SaveWithdrawal", "read withdrawal id", err, "Failed to save the withdrawal, try again later.")
	}
	return id, nil
}

func (s *SQLStorage) DeleteWithdrawal(ctx context.Context, ownerID int64, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM savings_withdrawals WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return 0, s.fail(ctx, "DeleteWithdrawal", "delete withdrawal", err, "Failed to delete the withdrawal, try again later.")
	}
	return s.affected(ctx, "DeleteWithdrawal", res)
}

// SavingsTotals fills the two sums; Balance is left to the caller.
func (s *SQLStorage) SavingsTotals(ctx context.Context, ownerID int64) (ledger.SavingsTotals, error) {
	query := `SELECT
		(SELECT COALESCE(SUM(amount), 0) FROM savings WHERE user_id = ?),
		(SELECT COALESCE(SUM(amount), 0) FROM savings_withdrawals WHERE user_id = ?)`

	var totals ledger.SavingsTotals
	if err := s.db.QueryRowContext(ctx, query, ownerID, ownerID).Scan(&totals.TotalSavings, &totals.TotalWithdrawals); err != nil {
		return ledger.SavingsTotals{}, s.fail(ctx, "SavingsTotals", "sum savings", err, "Failed to get savings totals, try again later.")
	}
	return totals, nil
}
