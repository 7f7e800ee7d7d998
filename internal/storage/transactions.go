package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
)

const transactionColumns = "id, user_id, category_id, amount, type, person, description, transaction_date, created_at, updated_at"

// rangeFilter appends inclusive bounds on column for the set ends of r.
func (s *SQLStorage) rangeFilter(column string, r ledger.DateRange, args []any) (string, []any) {
	var clause string
	if r.Start != nil {
		clause += " AND " + column + " >= ?"
		args = append(args, s.ts(*r.Start))
	}
	if r.End != nil {
		clause += " AND " + column + " <= ?"
		args = append(args, s.ts(*r.End))
	}
	return clause, args
}

func (s *SQLStorage) ListTransactions(ctx context.Context, ownerID int64, r ledger.DateRange) ([]ledger.Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions WHERE user_id = ?"
	args := []any{ownerID}
	filter, args := s.rangeFilter("transaction_date", r, args)
	query += filter + " ORDER BY transaction_date DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.fail(ctx, "ListTransactions", "list transactions", err, "Failed to get transactions, try again later.")
	}
	defer rows.Close()

	transactions := []ledger.Transaction{}
	for rows.Next() {
		var t dbTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Type, &t.Person, &t.Description, &t.TransactionDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, s.fail(ctx, "ListTransactions", "scan transaction", err, "Failed to get transactions, try again later.")
		}
		transactions = append(transactions, t.toDomain(s.loc))
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(ctx, "ListTransactions", "iterate transactions", err, "Failed to get transactions, try again later.")
	}
	return transactions, nil
}

func (s *SQLStorage) GetTransaction(ctx context.Context, ownerID int64, id int64) (ledger.Transaction, error) {
	query := "SELECT " + transactionColumns + " FROM transactions WHERE id = ? AND user_id = ?"

	var t dbTransaction
	err := s.db.QueryRowContext(ctx, query, id, ownerID).Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Type, &t.Person, &t.Description, &t.TransactionDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.Transaction{}, notFound("Transaction not found.")
		}
		return ledger.Transaction{}, s.fail(ctx, "GetTransaction", "get transaction", err, "Failed to get the transaction, try again later.")
	}
	return t.toDomain(s.loc), nil
}

func (s *SQLStorage) SaveTransaction(ctx context.Context, t ledger.Transaction) (int64, error) {
	query := `INSERT INTO transactions (user_id, category_id, amount, type, person, description, transaction_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, query, t.OwnerID, t.CategoryID, t.Amount, string(t.Kind),
		nullString(t.Person), nullString(t.Description), s.ts(t.TransactionDate), s.ts(t.CreatedAt), s.ts(t.UpdatedAt))
	if err != nil {
		return 0, s.fail(ctx, "SaveTransaction", "save transaction", err, "Failed to save the transaction, try again later.")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, s.fail(ctx, "SaveTransaction", "read transaction id", err, "Failed to save the transaction, try again later.")
	}
	return id, nil
}

func (s *SQLStorage) UpdateTransaction(ctx context.Context, ownerID int64, id int64, patch ledger.TransactionPatch) (int64, error) {
	var sets []string
	var args []any
	if patch.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *patch.CategoryID)
	}
	if patch.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, *patch.Amount)
	}
	if patch.Person != nil {
		sets = append(sets, "person = ?")
		args = append(args, nullString(*patch.Person))
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, nullString(*patch.Description))
	}
	if patch.TransactionDate != nil {
		sets = append(sets, "transaction_date = ?")
		args = append(args, s.ts(*patch.TransactionDate))
	}
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, s.ts(patch.UpdatedAt))

	query := "UPDATE transactions SET " + strings.Join(sets, ", ") + " WHERE id = ? AND user_id = ?"
	args = append(args, id, ownerID)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, s.fail(ctx, "UpdateTransaction", "update transaction", err, "Failed to update the transaction, try again later.")
	}
	return s.affected(ctx, "UpdateTransaction", res)
}

func (s *SQLStorage) DeleteTransaction(ctx context.Context, ownerID int64, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return 0, s.fail(ctx, "DeleteTransaction", "delete transaction", err, "Failed to delete the transaction, try again later.")
	}
	return s.affected(ctx, "DeleteTransaction", res)
}

// --- AGGREGATES --- //

// SumByKind fills Income and Expense; Balance is left to the caller.
func (s *SQLStorage) SumByKind(ctx context.Context, ownerID int64, r ledger.DateRange) (ledger.Balance, error) {
	query := "SELECT type, COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = ?"
	args := []any{ownerID}
	filter, args := s.rangeFilter("transaction_date", r, args)
	query += filter + " GROUP BY type"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return ledger.Balance{}, s.fail(ctx, "SumByKind", "sum transactions", err, "Failed to calculate the balance, try again later.")
	}
	defer rows.Close()

	var balance ledger.Balance
	for rows.Next() {
		var kind string
		var total int64
		if err := rows.Scan(&kind, &total); err != nil {
			return ledger.Balance{}, s.fail(ctx, "SumByKind", "scan sum", err, "Failed to calculate the balance, try again later.")
		}
		switch ledger.Kind(kind) {
		case ledger.KindIncome:
			balance.Income = total
		case ledger.KindExpense:
			balance.Expense = total
		}
	}
	if err := rows.Err(); err != nil {
		return ledger.Balance{}, s.fail(ctx, "SumByKind", "iterate sums", err, "Failed to calculate the balance, try again later.")
	}
	return balance, nil
}

func (s *SQLStorage) SumExpensesByCategory(ctx context.Context, ownerID int64, r ledger.DateRange) ([]ledger.CategoryTotal, error) {
	query := "SELECT category_id, SUM(amount) AS total FROM transactions WHERE user_id = ? AND type = 'expense'"
	args := []any{ownerID}
	filter, args := s.rangeFilter("transaction_date", r, args)
	query += filter + " GROUP BY category_id ORDER BY total DESC, category_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.fail(ctx, "SumExpensesByCategory", "sum expenses", err, "Failed to get spending by category, try again later.")
	}
	defer rows.Close()

	totals := []ledger.CategoryTotal{}
	for rows.Next() {
		var total ledger.CategoryTotal
		if err := rows.Scan(&total.CategoryID, &total.Total); err != nil {
			return nil, s.fail(ctx, "SumExpensesByCategory", "scan expense sum", err, "Failed to get spending by category, try again later.")
		}
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(ctx, "SumExpensesByCategory", "iterate expense sums", err, "Failed to get spending by category, try again later.")
	}
	return totals, nil
}

// ListMonthKeys buckets transaction dates into months of the application
// time zone. Stored dates are UTC, so the bucketing cannot happen in SQL.
func (s *SQLStorage) ListMonthKeys(ctx context.Context, ownerID int64) ([]string, error) {
	query := "SELECT transaction_date FROM transactions WHERE user_id = ? ORDER BY transaction_date DESC"

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, s.fail(ctx, "ListMonthKeys", "list months", err, "Failed to get the archive, try again later.")
	}
	defer rows.Close()

	months := []string{}
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, s.fail(ctx, "ListMonthKeys", "scan month", err, "Failed to get the archive, try again later.")
		}
		// Dates arrive newest first, so equal months are adjacent.
		month := ledger.MonthKeyOf(date, s.loc)
		if len(months) == 0 || months[len(months)-1] != month {
			months = append(months, month)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(ctx, "ListMonthKeys", "iterate months", err, "Failed to get the archive, try again later.")
	}
	return months, nil
}
