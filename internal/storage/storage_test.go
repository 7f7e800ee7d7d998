package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"
	_ "time/tzdata"

	appErrors "github.com/fatali-fataliyev/household_ledger/customErrors"
	"github.com/fatali-fataliyev/household_ledger/internal/auth"
	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// StorageTestSuite runs the store and the tracker against an in-memory
// SQLite database.
type StorageTestSuite struct {
	suite.Suite
	ctx     context.Context
	loc     *time.Location
	store   *SQLStorage
	tracker *ledger.Tracker
	owner   int64
	other   int64
}

func (suite *StorageTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.loc = time.FixedZone("UTC+2", 2*60*60)

	store, err := OpenSQLite(suite.ctx, ":memory:", suite.loc)
	require.NoError(suite.T(), err, "failed to create test database")
	suite.store = store
	suite.tracker = ledger.NewTracker(store, nil, suite.loc)

	suite.owner, err = suite.tracker.UpsertUser(suite.ctx, ledger.UserProfile{OpenID: "anna", Name: "Anna"})
	require.NoError(suite.T(), err)
	suite.other, err = suite.tracker.UpsertUser(suite.ctx, ledger.UserProfile{OpenID: "ben"})
	require.NoError(suite.T(), err)
}

func (suite *StorageTestSuite) TearDownTest() {
	if suite.store != nil {
		suite.store.Close()
	}
}

func TestStorageTestSuite(t *testing.T) {
	suite.Run(t, new(StorageTestSuite))
}

func (suite *StorageTestSuite) expense(amount string, categoryID int64, date string) int64 {
	id, err := suite.tracker.CreateTransaction(suite.ctx, suite.owner, ledger.NewTransaction{
		CategoryID:      categoryID,
		Amount:          decimal.RequireFromString(amount),
		Kind:            ledger.KindExpense,
		TransactionDate: date,
	})
	require.NoError(suite.T(), err)
	return id
}

func (suite *StorageTestSuite) income(amount string, date string) int64 {
	id, err := suite.tracker.CreateTransaction(suite.ctx, suite.owner, ledger.NewTransaction{
		CategoryID:      1,
		Amount:          decimal.RequireFromString(amount),
		Kind:            ledger.KindIncome,
		TransactionDate: date,
	})
	require.NoError(suite.T(), err)
	return id
}

func (suite *StorageTestSuite) TestSeededCategories() {
	all, err := suite.store.ListCategories(suite.ctx, "")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 23)

	income, err := suite.store.ListCategories(suite.ctx, ledger.KindIncome)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), income, 6)
	for _, c := range income {
		assert.Equal(suite.T(), ledger.KindIncome, c.Kind)
		assert.True(suite.T(), c.IsRoot())
	}

	rent, err := suite.store.GetCategory(suite.ctx, 15)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Rent", rent.Name)
	require.NotNil(suite.T(), rent.ParentID)
	assert.Equal(suite.T(), int64(7), *rent.ParentID)
}

func (suite *StorageTestSuite) TestUpsertUserKeepsKnownFields() {
	id, err := suite.tracker.UpsertUser(suite.ctx, ledger.UserProfile{OpenID: "anna", Email: "anna@example.com"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.owner, id)

	user, err := suite.store.GetUserByID(suite.ctx, id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Anna", user.Name)
	assert.Equal(suite.T(), "anna@example.com", user.Email)
	assert.Equal(suite.T(), ledger.RoleUser, user.Role)
}

func (suite *StorageTestSuite) TestAmountIsStoredInCents() {
	id := suite.expense("12.50", 11, "2024-03-15")

	txn, err := suite.tracker.GetTransaction(suite.ctx, suite.owner, id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1250), txn.Amount)
	assert.Equal(suite.T(), ledger.KindExpense, txn.Kind)
	assert.Equal(suite.T(), time.Date(2024, 3, 15, 0, 0, 0, 0, suite.loc).Unix(), txn.TransactionDate.Unix())
}

func (suite *StorageTestSuite) TestOwnerIsolation() {
	id := suite.expense("10", 11, "2024-03-15")

	_, err := suite.tracker.GetTransaction(suite.ctx, suite.other, id)
	assert.True(suite.T(), appErrors.HasCode(err, appErrors.ErrNotFound))

	list, err := suite.tracker.ListTransactions(suite.ctx, suite.other, ledger.DateRange{})
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), list)

	amount := decimal.RequireFromString("99")
	affected, err := suite.tracker.UpdateTransaction(suite.ctx, suite.other, id, ledger.TransactionChanges{Amount: &amount})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(0), affected)

	affected, err = suite.tracker.DeleteTransaction(suite.ctx, suite.other, id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(0), affected)

	txn, err := suite.tracker.GetTransaction(suite.ctx, suite.owner, id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1000), txn.Amount)
}

func (suite *StorageTestSuite) TestPartialUpdate() {
	id, err := suite.tracker.CreateTransaction(suite.ctx, suite.owner, ledger.NewTransaction{
		CategoryID:      11,
		Amount:          decimal.RequireFromString("20"),
		Kind:            ledger.KindExpense,
		Person:          "Anna",
		Description:     "Lunch",
		TransactionDate: "2024-03-15",
	})
	require.NoError(suite.T(), err)

	description := "Dinner"
	affected, err := suite.tracker.UpdateTransaction(suite.ctx, suite.owner, id, ledger.TransactionChanges{Description: &description})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), affected)

	txn, err := suite.tracker.GetTransaction(suite.ctx, suite.owner, id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Dinner", txn.Description)
	assert.Equal(suite.T(), "Anna", txn.Person)
	assert.Equal(suite.T(), int64(2000), txn.Amount)
	assert.Equal(suite.T(), int64(11), txn.CategoryID)
}

func (suite *StorageTestSuite) TestCategoryKindMismatchOnUpdate() {
	id := suite.expense("20", 11, "2024-03-15")

	salary := int64(1)
	_, err := suite.tracker.UpdateTransaction(suite.ctx, suite.owner, id, ledger.TransactionChanges{CategoryID: &salary})
	assert.True(suite.T(), appErrors.HasCode(err, appErrors.ErrInvalidInput))
}

func (suite *StorageTestSuite) TestDeleteCategoryInUse() {
	suite.expense("20", 12, "2024-03-15")

	_, err := suite.tracker.DeleteCategory(suite.ctx, 12)
	require.Error(suite.T(), err)
	assert.Equal(suite.T(), appErrors.ErrConflict, appErrors.CodeOf(err))
	assert.Equal(suite.T(), "Cannot delete category that is used in transactions.", appErrors.MessageOf(err))

	_, err = suite.store.GetCategory(suite.ctx, 12)
	assert.NoError(suite.T(), err)

	_, err = suite.tracker.DeleteCategory(suite.ctx, 7)
	assert.Equal(suite.T(), appErrors.ErrConflict, appErrors.CodeOf(err))

	affected, err := suite.tracker.DeleteCategory(suite.ctx, 13)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), affected)
}

func (suite *StorageTestSuite) TestCategoryNesting() {
	parent := int64(7)
	id, err := suite.tracker.CreateCategory(suite.ctx, ledger.NewCategory{Name: "Insurance", Kind: ledger.KindExpense, ParentID: &parent})
	require.NoError(suite.T(), err)

	nested := id
	_, err = suite.tracker.CreateCategory(suite.ctx, ledger.NewCategory{Name: "Too deep", Kind: ledger.KindExpense, ParentID: &nested})
	assert.True(suite.T(), appErrors.HasCode(err, appErrors.ErrInvalidInput))

	_, err = suite.tracker.CreateCategory(suite.ctx, ledger.NewCategory{Name: "Wrong kind", Kind: ledger.KindIncome, ParentID: &parent})
	assert.True(suite.T(), appErrors.HasCode(err, appErrors.ErrInvalidInput))

	root := int64(0)
	affected, err := suite.tracker.UpdateCategory(suite.ctx, id, ledger.CategoryPatch{ParentID: &root})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), affected)

	category, err := suite.store.GetCategory(suite.ctx, id)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), category.IsRoot())
}

func (suite *StorageTestSuite) TestDateRangeFilter() {
	suite.expense("1", 11, "2024-03-01")
	suite.expense("2", 11, "2024-03-31")
	suite.expense("3", 11, "2024-04-01")

	r, err := ledger.ParseDateRange("2024-03-01", "2024-03-31", suite.loc)
	require.NoError(suite.T(), err)
	list, err := suite.tracker.ListTransactions(suite.ctx, suite.owner, r)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 2)
	assert.Equal(suite.T(), int64(200), list[0].Amount)
	assert.Equal(suite.T(), int64(100), list[1].Amount)

	r, err = ledger.ParseDateRange("2024-03-31", "", suite.loc)
	require.NoError(suite.T(), err)
	list, err = suite.tracker.ListTransactions(suite.ctx, suite.owner, r)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), list, 2)
}

func (suite *StorageTestSuite) TestMonthlySummaryAndArchive() {
	suite.income("1000", "2024-03-01")
	suite.expense("100", 11, "2024-03-10")
	suite.expense("250.50", 12, "2024-03-31")
	suite.expense("40", 11, "2024-03-20")
	suite.expense("999", 11, "2024-02-29")

	summary, err := suite.tracker.GetMonthlySummary(suite.ctx, suite.owner, "2024-03")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(100000), summary.Income)
	assert.Equal(suite.T(), int64(39050), summary.Expense)
	assert.Equal(suite.T(), int64(60950), summary.Balance)
	assert.Equal(suite.T(), []ledger.CategoryTotal{
		{CategoryID: 12, Total: 25050},
		{CategoryID: 11, Total: 14000},
	}, summary.ByCategory)

	months, err := suite.tracker.GetMonthsArchive(suite.ctx, suite.owner)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"2024-03", "2024-02"}, months)

	comparison, err := suite.tracker.GetMonthsComparison(suite.ctx, suite.owner, []string{"2024-02", "2024-01", "2024-03"})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), comparison, 3)
	assert.Equal(suite.T(), "2024-02", comparison[0].Month)
	assert.Equal(suite.T(), int64(99900), comparison[0].Expense)
	assert.Equal(suite.T(), int64(0), comparison[1].Income)
	assert.Empty(suite.T(), comparison[1].ByCategory)
	assert.Equal(suite.T(), "2024-03", comparison[2].Month)
}

func (suite *StorageTestSuite) TestBudgetStatus() {
	suite.expense("90", 11, "2024-03-05")
	suite.expense("30", 12, "2024-03-06")

	food := int64(11)
	_, err := suite.tracker.CreateBudget(suite.ctx, suite.owner, ledger.NewBudget{CategoryID: &food, Amount: decimal.RequireFromString("100"), Month: "2024-03"})
	require.NoError(suite.T(), err)
	_, err = suite.tracker.CreateBudget(suite.ctx, suite.owner, ledger.NewBudget{Amount: decimal.RequireFromString("100"), Month: "2024-03"})
	require.NoError(suite.T(), err)
	_, err = suite.tracker.CreateBudget(suite.ctx, suite.owner, ledger.NewBudget{Amount: decimal.RequireFromString("100"), Month: "2024-04"})
	require.NoError(suite.T(), err)

	salary := int64(1)
	_, err = suite.tracker.CreateBudget(suite.ctx, suite.owner, ledger.NewBudget{CategoryID: &salary, Amount: decimal.RequireFromString("100"), Month: "2024-03"})
	assert.True(suite.T(), appErrors.HasCode(err, appErrors.ErrInvalidInput))

	statuses, err := suite.tracker.GetBudgetStatus(suite.ctx, suite.owner, "2024-03")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), statuses, 2)

	assert.Equal(suite.T(), int64(9000), statuses[0].Spent)
	assert.True(suite.T(), statuses[0].IsNearLimit)
	assert.False(suite.T(), statuses[0].IsOverBudget)

	assert.Nil(suite.T(), statuses[1].CategoryID)
	assert.Equal(suite.T(), int64(12000), statuses[1].Spent)
	assert.Equal(suite.T(), int64(-2000), statuses[1].Remaining)
	assert.True(suite.T(), statuses[1].IsOverBudget)
	assert.Equal(suite.T(), float64(100), statuses[1].DisplayPercentage)

	all, err := suite.store.ListBudgets(suite.ctx, suite.owner, "")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 3)
}

func (suite *StorageTestSuite) TestSavingsLedger() {
	_, err := suite.tracker.CreateSaving(suite.ctx, suite.owner, ledger.NewSaving{Amount: decimal.RequireFromString("500"), AccountType: ledger.AccountBank, Month: "2024-03"})
	require.NoError(suite.T(), err)
	_, err = suite.tracker.CreateSaving(suite.ctx, suite.owner, ledger.NewSaving{Amount: decimal.RequireFromString("120.25"), AccountType: ledger.AccountCash, Month: "2024-04"})
	require.NoError(suite.T(), err)
	withdrawalID, err := suite.tracker.CreateWithdrawal(suite.ctx, suite.owner, ledger.NewWithdrawal{Amount: decimal.RequireFromString("100"), AccountType: ledger.AccountBank, WithdrawalDate: "2024-04-02", Reason: "Repairs"})
	require.NoError(suite.T(), err)

	totals, err := suite.tracker.GetSavingsTotals(suite.ctx, suite.owner)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), ledger.SavingsTotals{TotalSavings: 62025, TotalWithdrawals: 10000, Balance: 52025}, totals)

	march, err := suite.tracker.GetSavingByMonth(suite.ctx, suite.owner, "2024-03")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), march)
	assert.Equal(suite.T(), int64(50000), march.Amount)

	missing, err := suite.tracker.GetSavingByMonth(suite.ctx, suite.owner, "2023-01")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), missing)

	note := "Emergency fund"
	affected, err := suite.tracker.UpdateSaving(suite.ctx, suite.owner, march.ID, ledger.SavingChanges{Note: &note})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), affected)

	affected, err = suite.tracker.DeleteWithdrawal(suite.ctx, suite.other, withdrawalID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(0), affected)

	export, err := suite.tracker.Export(suite.ctx, suite.owner)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), export.Savings, 2)
	assert.Len(suite.T(), export.Withdrawals, 1)
	assert.Equal(suite.T(), "Emergency fund", export.Savings[1].Note)
}

func (suite *StorageTestSuite) TestSessions() {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	session := auth.Session{ID: "s-1", Token: "tok-1", OwnerID: suite.owner, CreatedAt: now, ExpireAt: now.Add(time.Hour)}
	require.NoError(suite.T(), suite.store.SaveSession(suite.ctx, session))

	got, err := suite.store.GetSessionByToken(suite.ctx, "tok-1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.owner, got.OwnerID)
	assert.True(suite.T(), got.ExpireAt.Equal(now.Add(time.Hour)))

	require.NoError(suite.T(), suite.store.UpdateSessionExpiry(suite.ctx, "tok-1", now.Add(2*time.Hour)))
	got, err = suite.store.GetSessionByToken(suite.ctx, "tok-1")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), got.ExpireAt.Equal(now.Add(2*time.Hour)))

	require.NoError(suite.T(), suite.store.DeleteSession(suite.ctx, "tok-1"))
	_, err = suite.store.GetSessionByToken(suite.ctx, "tok-1")
	assert.True(suite.T(), appErrors.HasCode(err, appErrors.ErrNotFound))
}

func (suite *StorageTestSuite) TestClosedDatabaseIsUnavailable() {
	require.NoError(suite.T(), suite.store.Close())

	_, err := suite.store.ListTransactions(suite.ctx, suite.owner, ledger.DateRange{})
	assert.Equal(suite.T(), appErrors.ErrUnavailable, appErrors.CodeOf(err))

	list, err := suite.tracker.ListTransactions(suite.ctx, suite.owner, ledger.DateRange{})
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), list)

	_, err = suite.tracker.CreateTransaction(suite.ctx, suite.owner, ledger.NewTransaction{
		CategoryID:      11,
		Amount:          decimal.RequireFromString("1"),
		Kind:            ledger.KindExpense,
		TransactionDate: "2024-03-01",
	})
	assert.Equal(suite.T(), appErrors.ErrUnavailable, appErrors.CodeOf(err))
	suite.store = nil
}

func (suite *StorageTestSuite) TestBalanceOfEmptyStore() {
	balance, err := suite.tracker.GetBalance(suite.ctx, suite.other, ledger.DateRange{})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), ledger.Balance{}, balance)

	spending, err := suite.tracker.GetSpendingByCategory(suite.ctx, suite.other, ledger.DateRange{})
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), spending)
}

func (suite *StorageTestSuite) TestBalanceEqualsSumOverCategories() {
	suite.income("1000", "2024-03-01")
	_, err := suite.tracker.CreateTransaction(suite.ctx, suite.owner, ledger.NewTransaction{
		CategoryID:      2,
		Amount:          decimal.RequireFromString("75.25"),
		Kind:            ledger.KindIncome,
		TransactionDate: "2024-03-05",
	})
	require.NoError(suite.T(), err)
	suite.expense("100", 11, "2024-03-10")
	suite.expense("250.50", 12, "2024-03-11")
	suite.expense("10.01", 15, "2024-04-02")
	suite.expense("3", 11, "2024-04-03")

	balance, err := suite.tracker.GetBalance(suite.ctx, suite.owner, ledger.DateRange{})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), balance.Income-balance.Expense, balance.Balance)

	all, err := suite.tracker.ListTransactions(suite.ctx, suite.owner, ledger.DateRange{})
	require.NoError(suite.T(), err)
	byCategory := map[int64]int64{}
	for _, t := range all {
		byCategory[t.CategoryID] += t.Amount
	}
	require.Len(suite.T(), byCategory, 5)

	var partitionSum int64
	for _, total := range byCategory {
		partitionSum += total
	}
	assert.Equal(suite.T(), balance.Income+balance.Expense, partitionSum)
	assert.Equal(suite.T(), int64(107525), balance.Income)
	assert.Equal(suite.T(), int64(36351), balance.Expense)
}

func (suite *StorageTestSuite) TestDaylightSavingFallBack() {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(suite.T(), err)
	store, err := OpenSQLite(suite.ctx, ":memory:", loc)
	require.NoError(suite.T(), err)
	defer store.Close()
	tracker := ledger.NewTracker(store, nil, loc)
	owner, err := tracker.UpsertUser(suite.ctx, ledger.UserProfile{OpenID: "nyc"})
	require.NoError(suite.T(), err)

	create := func(amount string, at string) int64 {
		id, err := tracker.CreateTransaction(suite.ctx, owner, ledger.NewTransaction{
			CategoryID:      11,
			Amount:          decimal.RequireFromString(amount),
			Kind:            ledger.KindExpense,
			TransactionDate: at,
		})
		require.NoError(suite.T(), err)
		return id
	}
	// 01:30 EDT, then 01:15 EST forty-five minutes later.
	earlier := create("1", "2024-11-03T05:30:00Z")
	later := create("2", "2024-11-03T06:15:00Z")

	start := time.Date(2024, 11, 3, 6, 0, 0, 0, time.UTC)
	balance, err := tracker.GetBalance(suite.ctx, owner, ledger.DateRange{Start: &start})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(200), balance.Expense)

	end := time.Date(2024, 11, 3, 5, 59, 0, 0, time.UTC)
	balance, err = tracker.GetBalance(suite.ctx, owner, ledger.DateRange{End: &end})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(100), balance.Expense)

	list, err := tracker.ListTransactions(suite.ctx, owner, ledger.DateRange{})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 2)
	assert.Equal(suite.T(), later, list[0].ID)
	assert.Equal(suite.T(), earlier, list[1].ID)
	assert.Equal(suite.T(), loc, list[0].TransactionDate.Location())

	// 22:00 on November 30 in New York is already December in UTC.
	create("4", "2024-12-01T03:00:00Z")
	months, err := tracker.GetMonthsArchive(suite.ctx, owner)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"2024-11"}, months)

	november, err := tracker.GetMonthlySummary(suite.ctx, owner, "2024-11")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(700), november.Expense)
}

func (suite *StorageTestSuite) TestTimedOutReadIsNotDegraded() {
	suite.expense("10", 11, "2024-03-10")

	ctx, cancel := context.WithDeadline(suite.ctx, time.Now().Add(-time.Second))
	defer cancel()

	_, err := suite.tracker.GetBalance(ctx, suite.owner, ledger.DateRange{})
	require.Error(suite.T(), err)
	assert.Equal(suite.T(), appErrors.ErrInternal, appErrors.CodeOf(err))

	balance, err := suite.tracker.GetBalance(suite.ctx, suite.owner, ledger.DateRange{})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1000), balance.Expense)
}

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: false},
		{name: "wrapped cancel", err: fmt.Errorf("query: %w", context.Canceled), want: false},
		{name: "statement error", err: errors.New("no such table: budgets"), want: false},
		{name: "bad connection", err: driver.ErrBadConn, want: true},
		{name: "connection done", err: sql.ErrConnDone, want: true},
		{name: "mysql invalid connection", err: mysql.ErrInvalidConn, want: true},
		{name: "dial refused", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnavailable(tt.err))
		})
	}
}
