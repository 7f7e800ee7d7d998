package api

import (
	"time"

	appErrors "github.com/fatali-fataliyev/household_ledger/customErrors"
	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
	"github.com/shopspring/decimal"
)

// REQUESTS START:

type LoginRequest struct {
	Passphrase string `json:"passphrase"`
	OpenID     string `json:"openId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

type CreateCategoryRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID *int64 `json:"parentId"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
}

// UpdateCategoryRequest: parentId 0 makes the category a root again.
type UpdateCategoryRequest struct {
	Name     *string `json:"name"`
	Icon     *string `json:"icon"`
	Color    *string `json:"color"`
	ParentID *int64  `json:"parentId"`
}

type CreateTransactionRequest struct {
	CategoryID      int64           `json:"categoryId"`
	Amount          decimal.Decimal `json:"amount"` // number or numeric string, "12.50"
	Type            string          `json:"type"`
	Person          string          `json:"person"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transactionDate"`
}

type UpdateTransactionRequest struct {
	CategoryID      *int64           `json:"categoryId"`
	Amount          *decimal.Decimal `json:"amount"`
	Person          *string          `json:"person"`
	Description     *string          `json:"description"`
	TransactionDate *string          `json:"transactionDate"`
}

type CreateBudgetRequest struct {
	CategoryID     *int64          `json:"categoryId"`
	Amount         decimal.Decimal `json:"amount"`
	Month          string          `json:"month"`
	AlertThreshold *int            `json:"alertThreshold"`
}

type UpdateBudgetRequest struct {
	Amount         *decimal.Decimal `json:"amount"`
	AlertThreshold *int             `json:"alertThreshold"`
}

type CreateSavingRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	AccountType string          `json:"accountType"`
	Month       string          `json:"month"`
	Note        string          `json:"note"`
}

type UpdateSavingRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	AccountType *string          `json:"accountType"`
	Note        *string          `json:"note"`
}

type CreateWithdrawalRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	AccountType    string          `json:"accountType"`
	WithdrawalDate string          `json:"withdrawalDate"`
	Reason         string          `json:"reason"`
}

//REQUESTS END:

//RESPONSES:

type LoginResponse struct {
	Message  string    `json:"message"`
	Token    string    `json:"token"`
	OwnerID  int64     `json:"ownerId"`
	ExpireAt time.Time `json:"expireAt"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

type AffectedResponse struct {
	Affected int64 `json:"affected"`
}

type UserItem struct {
	ID           int64     `json:"id"`
	OpenID       string    `json:"openId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	LoginMethod  string    `json:"loginMethod"`
	Role         string    `json:"role"`
	LastSignedIn time.Time `json:"lastSignedIn"`
}

type CategoryItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	ParentID  *int64    `json:"parentId"`
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Amounts in responses are cents.
type TransactionItem struct {
	ID              int64     `json:"id"`
	CategoryID      int64     `json:"categoryId"`
	Amount          int64     `json:"amount"`
	Type            string    `json:"type"`
	Person          string    `json:"person,omitempty"`
	Description     string    `json:"description,omitempty"`
	TransactionDate time.Time `json:"transactionDate"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type BudgetItem struct {
	ID             int64     `json:"id"`
	CategoryID     *int64    `json:"categoryId"`
	Amount         int64     `json:"amount"`
	Month          string    `json:"month"`
	AlertThreshold int       `json:"alertThreshold"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type BudgetStatusItem struct {
	BudgetItem
	Spent             int64   `json:"spent"`
	Remaining         int64   `json:"remaining"`
	Percentage        float64 `json:"percentage"`
	DisplayPercentage float64 `json:"displayPercentage"`
	IsOverBudget      bool    `json:"isOverBudget"`
	IsNearLimit       bool    `json:"isNearLimit"`
}

type BalanceResponse struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Balance int64 `json:"balance"`
}

type CategoryTotalItem struct {
	CategoryID int64 `json:"categoryId"`
	Total      int64 `json:"total"`
}

type MonthlySummaryResponse struct {
	Month      string              `json:"month"`
	Income     int64               `json:"income"`
	Expense    int64               `json:"expense"`
	Balance    int64               `json:"balance"`
	ByCategory []CategoryTotalItem `json:"byCategory"`
}

type SavingItem struct {
	ID          int64     `json:"id"`
	Amount      int64     `json:"amount"`
	AccountType string    `json:"accountType"`
	Month       string    `json:"month"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type WithdrawalItem struct {
	ID             int64     `json:"id"`
	Amount         int64     `json:"amount"`
	AccountType    string    `json:"accountType"`
	WithdrawalDate time.Time `json:"withdrawalDate"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type SavingsTotalsResponse struct {
	TotalSavings     int64 `json:"totalSavings"`
	TotalWithdrawals int64 `json:"totalWithdrawals"`
	Balance          int64 `json:"balance"`
}

type ExportResponse struct {
	ExportedAt   time.Time         `json:"exportedAt"`
	Transactions []TransactionItem `json:"transactions"`
	Budgets      []BudgetItem      `json:"budgets"`
	Savings      []SavingItem      `json:"savings"`
	Withdrawals  []WithdrawalItem  `json:"withdrawals"`
}

//RESPONSES END:

func httpStatusFromError(err error) int {
	switch appErrors.CodeOf(err) {
	case appErrors.ErrNotFound:
		return 404 // not found
	case appErrors.ErrInvalidInput:
		return 400 // bad request
	case appErrors.ErrAuth:
		return 401 // unauthorized
	case appErrors.ErrConflict:
		return 409 // conflict
	case appErrors.ErrUnavailable:
		return 503 // store unavailable
	default:
		return 500 //internal error
	}
}

func UserToHttp(u ledger.User) UserItem {
	return UserItem{
		ID:           u.ID,
		OpenID:       u.OpenID,
		Name:         u.Name,
		Email:        u.Email,
		LoginMethod:  u.LoginMethod,
		Role:         string(u.Role),
		LastSignedIn: u.LastSignedIn,
	}
}

func CategoryToHttp(c ledger.Category) CategoryItem {
	return CategoryItem{
		ID:        c.ID,
		Name:      c.Name,
		Type:      string(c.Kind),
		ParentID:  c.ParentID,
		Icon:      c.Icon,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
	}
}

func TransactionToHttp(t ledger.Transaction) TransactionItem {
	return TransactionItem{
		ID:              t.ID,
		CategoryID:      t.CategoryID,
		Amount:          t.Amount,
		Type:            string(t.Kind),
		Person:          t.Person,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func BudgetToHttp(b ledger.Budget) BudgetItem {
	return BudgetItem{
		ID:             b.ID,
		CategoryID:     b.CategoryID,
		Amount:         b.Amount,
		Month:          b.Month,
		AlertThreshold: b.AlertThreshold,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func BudgetStatusToHttp(s ledger.BudgetStatus) BudgetStatusItem {
	return BudgetStatusItem{
		BudgetItem:        BudgetToHttp(s.Budget),
		Spent:             s.Spent,
		Remaining:         s.Remaining,
		Percentage:        s.Percentage,
		DisplayPercentage: s.DisplayPercentage,
		IsOverBudget:      s.IsOverBudget,
		IsNearLimit:       s.IsNearLimit,
	}
}

func CategoryTotalsToHttp(totals []ledger.CategoryTotal) []CategoryTotalItem {
	items := make([]CategoryTotalItem, 0, len(totals))
	for _, t := range totals {
		items = append(items, CategoryTotalItem{CategoryID: t.CategoryID, Total: t.Total})
	}
	return items
}

func SummaryToHttp(s ledger.MonthlySummary) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		Month:      s.Month,
		Income:     s.Income,
		Expense:    s.Expense,
		Balance:    s.Balance,
		ByCategory: CategoryTotalsToHttp(s.ByCategory),
	}
}

func SavingToHttp(s ledger.Saving) SavingItem {
	return SavingItem{
		ID:          s.ID,
		Amount:      s.Amount,
		AccountType: string(s.AccountType),
		Month:       s.Month,
		Note:        s.Note,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func WithdrawalToHttp(w ledger.Withdrawal) WithdrawalItem {
	return WithdrawalItem{
		ID:             w.ID,
		Amount:         w.Amount,
		AccountType:    string(w.AccountType),
		WithdrawalDate: w.WithdrawalDate,
		Reason:         w.Reason,
		CreatedAt:      w.CreatedAt,
	}
}

// mapItems converts a store result into its transport form; never nil.
func mapItems[T any, R any](items []T, convert func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, convert(item))
	}
	return out
}
