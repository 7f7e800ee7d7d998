package storage

import (
	"database/sql"
	"time"

	"github.com/fatali-fataliyev/household_ledger/internal/auth"
	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
)

// Rows as scanned; nullable columns map to "" or nil in the domain.

type dbSession struct {
	ID        string
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpireAt  time.Time
}

func (d dbSession) toDomain() auth.Session {
	return auth.Session{
		ID:        d.ID,
		Token:     d.Token,
		OwnerID:   d.UserID,
		CreatedAt: d.CreatedAt.UTC(),
		ExpireAt:  d.ExpireAt.UTC(),
	}
}

type dbUser struct {
	ID           int64
	OpenID       string
	Name         sql.NullString
	Email        sql.NullString
	LoginMethod  sql.NullString
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSignedIn time.Time
}

func (d dbUser) toDomain(loc *time.Location) ledger.User {
	return ledger.User{
		ID:           d.ID,
		OpenID:       d.OpenID,
		Name:         d.Name.String,
		Email:        d.Email.String,
		LoginMethod:  d.LoginMethod.String,
		Role:         ledger.Role(d.Role),
		CreatedAt:    d.CreatedAt.In(loc),
		UpdatedAt:    d.UpdatedAt.In(loc),
		LastSignedIn: d.LastSignedIn.In(loc),
	}
}

type dbCategory struct {
	ID        int64
	Name      string
	Type      string
	ParentID  sql.NullInt64
	Icon      sql.NullString
	Color     sql.NullString
	CreatedAt time.Time
}

func (d dbCategory) toDomain(loc *time.Location) ledger.Category {
	return ledger.Category{
		ID:        d.ID,
		Name:      d.Name,
		Kind:      ledger.Kind(d.Type),
		ParentID:  int64Ptr(d.ParentID),
		Icon:      d.Icon.String,
		Color:     d.Color.String,
		CreatedAt: d.CreatedAt.In(loc),
	}
}

type dbTransaction struct {
	ID              int64
	UserID          int64
	CategoryID      int64
	Amount          int64
	Type            string
	Person          sql.NullString
	Description     sql.NullString
	TransactionDate time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (d dbTransaction) toDomain(loc *time.Location) ledger.Transaction {
	return ledger.Transaction{
		ID:              d.ID,
		OwnerID:         d.UserID,
		CategoryID:      d.CategoryID,
		Amount:          d.Amount,
		Kind:            ledger.Kind(d.Type),
		Person:          d.Person.String,
		Description:     d.Description.String,
		TransactionDate: d.TransactionDate.In(loc),
		CreatedAt:       d.CreatedAt.In(loc),
		UpdatedAt:       d.UpdatedAt.In(loc),
	}
}

type dbBudget struct {
	ID             int64
	UserID         int64
	CategoryID     sql.NullInt64
	Amount         int64
	Month          string
	AlertThreshold int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (d dbBudget) toDomain(loc *time.Location) ledger.Budget {
	return ledger.Budget{
		ID:             d.ID,
		OwnerID:        d.UserID,
		CategoryID:     int64Ptr(d.CategoryID),
		Amount:         d.Amount,
		Month:          d.Month,
		AlertThreshold: d.AlertThreshold,
		CreatedAt:      d.CreatedAt.In(loc),
		UpdatedAt:      d.UpdatedAt.In(loc),
	}
}

type dbSaving struct {
	ID          int64
	UserID      int64
	Amount      int64
	AccountType string
	Month       string
	Note        sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (d dbSaving) toDomain(loc *time.Location) ledger.Saving {
	return ledger.Saving{
		ID:          d.ID,
		OwnerID:     d.UserID,
		Amount:      d.Amount,
		AccountType: ledger.AccountType(d.AccountType),
		Month:       d.Month,
		Note:        d.Note.String,
		CreatedAt:   d.CreatedAt.In(loc),
		UpdatedAt:   d.UpdatedAt.In(loc),
	}
}

type dbWithdrawal struct {
	ID             int64
	UserID         int64
	Amount         int64
	AccountType    string
	WithdrawalDate time.Time
	Reason         sql.NullString
	CreatedAt      time.Time
}

func (d dbWithdrawal) toDomain(loc *time.Location) ledger.Withdrawal {
	return ledger.Withdrawal{
		ID:             d.ID,
		OwnerID:        d.UserID,
		Amount:         d.Amount,
		AccountType:    ledger.AccountType(d.AccountType),
		WithdrawalDate: d.WithdrawalDate.In(loc),
		Reason:         d.Reason.String,
		CreatedAt:      d.CreatedAt.In(loc),
	}
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
