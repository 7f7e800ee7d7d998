package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

type AccountType string

const (
	AccountCash AccountType = "cash"
	AccountBank AccountType = "bank"
)

func (a AccountType) Valid() bool {
	return a == AccountCash || a == AccountBank
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// USERS

type User struct {
	ID           int64
	OpenID       string
	Name         string
	Email        string
	LoginMethod  string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSignedIn time.Time
}

type UserProfile struct {
	OpenID      string
	Name        string
	Email       string
	LoginMethod string
}

// CATEGORIES

type Category struct {
	ID        int64
	Name      string
	Kind      Kind
	ParentID  *int64
	Icon      string
	Color     string
	CreatedAt time.Time
}

func (c Category) IsRoot() bool {
	return c.ParentID == nil
}

type NewCategory struct {
	Name     string
	Kind     Kind
	ParentID *int64
	Icon     string
	Color    string
}

// CategoryPatch changes only the non-nil fields. A ParentID pointing at 0
// turns the category back into a root.
type CategoryPatch struct {
	Name     *string
	Icon     *string
	Color    *string
	ParentID *int64
}

func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Icon == nil && p.Color == nil && p.ParentID == nil
}

// TRANSACTIONS

type Transaction struct {
	ID              int64
	OwnerID         int64
	CategoryID      int64
	Amount          int64
	Kind            Kind
	Person          string
	Description     string
	TransactionDate time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type NewTransaction struct {
	CategoryID      int64
	Amount          decimal.Decimal
	Kind            Kind
	Person          string
	Description     string
	TransactionDate string
}

type TransactionChanges struct {
	CategoryID      *int64
	Amount          *decimal.Decimal
	Person          *string
	Description     *string
	TransactionDate *string
}

// TransactionPatch is the normalized form of TransactionChanges handed to
// the store.
type TransactionPatch struct {
	CategoryID      *int64
	Amount          *int64
	Person          *string
	Description     *string
	TransactionDate *time.Time
	UpdatedAt       time.Time
}

func (p TransactionPatch) IsEmpty() bool {
	return p.CategoryID == nil && p.Amount == nil && p.Person == nil &&
		p.Description == nil && p.TransactionDate == nil
}

// DateRange bounds are inclusive; a nil bound is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// BUDGETS

type Budget struct {
	ID             int64
	OwnerID        int64
	CategoryID     *int64
	Amount         int64
	Month          string
	AlertThreshold int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type NewBudget struct {
	CategoryID     *int64
	Amount         decimal.Decimal
	Month          string
	AlertThreshold *int
}

type BudgetChanges struct {
	Amount         *decimal.Decimal
	AlertThreshold *int
}

type BudgetPatch struct {
	Amount         *int64
	AlertThreshold *int
	UpdatedAt      time.Time
}

func (p BudgetPatch) IsEmpty() bool {
	return p.Amount == nil && p.AlertThreshold == nil
}

type BudgetStatus struct {
	Budget
	Spent             int64
	Remaining         int64
	Percentage        float64
	DisplayPercentage float64
	IsOverBudget      bool
	IsNearLimit       bool
}

// AGGREGATES

type Balance struct {
	Income  int64
	Expense int64
	Balance int64
}

type CategoryTotal struct {
	CategoryID int64
	Total      int64
}

type MonthlySummary struct {
	Month      string
	Income     int64
	Expense    int64
	Balance    int64
	ByCategory []CategoryTotal
}

// SAVINGS

type Saving struct {
	ID          int64
	OwnerID     int64
	Amount      int64
	AccountType AccountType
	Month       string
	Note        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type NewSaving struct {
	Amount      decimal.Decimal
	AccountType AccountType
	Month       string
	Note        string
}

type SavingChanges struct {
	Amount      *decimal.Decimal
	AccountType *AccountType
	Note        *string
}

type SavingPatch struct {
	Amount      *int64
	AccountType *AccountType
	Note        *string
	UpdatedAt   time.Time
}

func (p SavingPatch) IsEmpty() bool {
	return p.Amount == nil && p.AccountType == nil && p.Note == nil
}

type Withdrawal struct {
	ID             int64
	OwnerID        int64
	Amount         int64
	AccountType    AccountType
	WithdrawalDate time.Time
	Reason         string
	CreatedAt      time.Time
}

type NewWithdrawal struct {
	Amount         decimal.Decimal
	AccountType    AccountType
	WithdrawalDate string
	Reason         string
}

type SavingsTotals struct {
	TotalSavings     int64
	TotalWithdrawals int64
	Balance          int64
}

// Export is everything one owner has recorded.
type Export struct {
	ExportedAt   time.Time
	Transactions []Transaction
	Budgets      []Budget
	Savings      []Saving
	Withdrawals  []Withdrawal
}

// Change describes a committed mutation that invalidates cached aggregates.
type Change struct {
	Entity  string    `json:"entity"`
	Action  string    `json:"action"`
	OwnerID int64     `json:"owner_id"`
	ID      int64     `json:"id"`
	Month   string    `json:"month,omitempty"`
	At      time.Time `json:"at"`
}
