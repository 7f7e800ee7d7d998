package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	appErrors "github.com/fatali-fataliyev/household_ledger/customErrors"
	"github.com/fatali-fataliyev/household_ledger/internal/contextutil"
	"github.com/fatali-fataliyev/household_ledger/logging"
)

const (
	MAX_OPEN_ID_LENGTH       = 64
	MAX_USER_NAME_LENGTH     = 255
	MAX_EMAIL_LENGTH         = 320
	MAX_LOGIN_METHOD_LENGTH  = 64
	MAX_CATEGORY_NAME_LENGTH = 100
	MAX_ICON_LENGTH          = 50
	MAX_COLOR_LENGTH         = 20
	MAX_PERSON_LENGTH        = 100
	MAX_DESCRIPTION_LENGTH   = 1000
	MAX_NOTE_LENGTH          = 1000
	MIN_COMPARED_MONTHS      = 2
	MAX_COMPARED_MONTHS      = 12
)

type Storage interface {
	UpsertUser(ctx context.Context, profile UserProfile, signedInAt time.Time) (int64, error)
	GetUserByID(ctx context.Context, id int64) (User, error)

	ListCategories(ctx context.Context, kind Kind) ([]Category, error)
	GetCategory(ctx context.Context, id int64) (Category, error)
	SaveCategory(ctx context.Context, category Category) (int64, error)
	UpdateCategory(ctx context.Context, id int64, patch CategoryPatch) (int64, error)
	DeleteCategory(ctx context.Context, id int64) (int64, error)
	IsCategoryInUse(ctx context.Context, id int64) (bool, error)
	HasSubcategories(ctx context.Context, id int64) (bool, error)

	ListTransactions(ctx context.Context, ownerID int64, r DateRange) ([]Transaction, error)
	GetTransaction(ctx context.Context, ownerID int64, id int64) (Transaction, error)
	SaveTransaction(ctx context.Context, t Transaction) (int64, error)
	UpdateTransaction(ctx context.Context, ownerID int64, id int64, patch TransactionPatch) (int64, error)
	DeleteTransaction(ctx context.Context, ownerID int64, id int64) (int64, error)

	SumByKind(ctx context.Context, ownerID int64, r DateRange) (Balance, error)
	SumExpensesByCategory(ctx context.Context, ownerID int64, r DateRange) ([]CategoryTotal, error)
	ListMonthKeys(ctx context.Context, ownerID int64) ([]string, error)

	// ListBudgets returns every month when month is empty.
	ListBudgets(ctx context.Context, ownerID int64, month string) ([]Budget, error)
	SaveBudget(ctx context.Context, b Budget) (int64, error)
	UpdateBudget(ctx context.Context, ownerID int64, id int64, patch BudgetPatch) (int64, error)
	DeleteBudget(ctx context.Context, ownerID int64, id int64) (int64, error)

	ListSavings(ctx context.Context, ownerID int64) ([]Saving, error)
	GetSavingByMonth(ctx context.Context, ownerID int64, month string) (Saving, error)
	SaveSaving(ctx context.Context, s Saving) (int64, error)
	UpdateSaving(ctx context.Context, ownerID int64, id int64, patch SavingPatch) (int64, error)
	DeleteSaving(ctx context.Context, ownerID int64, id int64) (int64, error)
	ListWithdrawals(ctx context.Context, ownerID int64) ([]Withdrawal, error)
	SaveWithdrawal(ctx context.Context, w Withdrawal) (int64, error)
	DeleteWithdrawal(ctx context.Context, ownerID int64, id int64) (int64, error)
	SavingsTotals(ctx context.Context, ownerID int64) (SavingsTotals, error)
}

// ChangePublisher is told about every committed mutation.
type ChangePublisher interface {
	Publish(ctx context.Context, change Change) error
}

type Tracker struct {
	storage   Storage
	publisher ChangePublisher
	loc       *time.Location
	now       func() time.Time
}

// NewTracker accepts a nil storage; reads then return empty results and
// writes fail with an UNAVAILABLE error.
func NewTracker(s Storage, publisher ChangePublisher, loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.UTC
	}
	return &Tracker{
		storage:   s,
		publisher: publisher,
		loc:       loc,
		now:       time.Now,
	}
}

func (t *Tracker) Location() *time.Location {
	return t.loc
}

func (t *Tracker) IsAvailable() bool {
	return t.storage != nil
}

var errStoreUnavailable = appErrors.ErrorResponse{
	Code:    appErrors.ErrUnavailable,
	Message: "Database not available.",
}

func logDegraded(ctx context.Context, op string, err error) {
	traceID := contextutil.TraceIDFromContext(ctx)
	if err == nil {
		err = errStoreUnavailable
	}
	logging.Logger.Warnf("[TraceID=%s] | store unavailable, %s returns an empty result | Error: %v", traceID, op, err)
}

// readOrDefault runs a store read and swaps an unavailable store for the
// fallback value.
func readOrDefault[T any](ctx context.Context, t *Tracker, op string, fallback T, read func(Storage) (T, error)) (T, error) {
	if t.storage == nil {
		logDegraded(ctx, op, nil)
		return fallback, nil
	}
	v, err := read(t.storage)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrUnavailable) {
			logDegraded(ctx, op, err)
			return fallback, nil
		}
		return fallback, fmt.Errorf("failed to %s: %w", op, err)
	}
	return v, nil
}

func (t *Tracker) requireStore() (Storage, error) {
	if t.storage == nil {
		return nil, errStoreUnavailable
	}
	return t.storage, nil
}

func (t *Tracker) publish(ctx context.Context, change Change) {
	if t.publisher == nil {
		return
	}
	change.At = t.now().UTC()
	if err := t.publisher.Publish(ctx, change); err != nil {
		traceID := contextutil.TraceIDFromContext(ctx)
		logging.Logger.Warnf("[TraceID=%s] | failed to publish %s.%s change | Error: %v", traceID, change.Entity, change.Action, err)
	}
}

func validateOwner(ownerID int64) error {
	if ownerID <= 0 {
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrAuth,
			Message: "Owner is not resolved, log in again.",
		}
	}
	return nil
}

func validateID(id int64, what string) error {
	if id <= 0 {
		return appErrors.Invalid("Invalid %s id: %d.", what, id)
	}
	return nil
}

func checkLength(value string, max int, field string) error {
	if utf8.RuneCountInString(value) > max {
		return appErrors.Invalid("%s is too long, maximum length is %d.", field, max)
	}
	return nil
}

// USERS

func (t *Tracker) UpsertUser(ctx context.Context, profile UserProfile) (int64, error) {
	profile.OpenID = strings.TrimSpace(profile.OpenID)
	profile.Name = strings.TrimSpace(profile.Name)
	profile.Email = strings.TrimSpace(profile.Email)

	if profile.OpenID == "" {
		return 0, appErrors.Invalid("Open id cannot be empty.")
	}
	for _, check := range []struct {
		value string
		max   int
		field string
	}{
		{profile.OpenID, MAX_OPEN_ID_LENGTH, "Open id"},
		{profile.Name, MAX_USER_NAME_LENGTH, "Name"},
		{profile.Email, MAX_EMAIL_LENGTH, "Email"},
		{profile.LoginMethod, MAX_LOGIN_METHOD_LENGTH, "Login method"},
	} {
		if err := checkLength(check.value, check.max, check.field); err != nil {
			return 0, err
		}
	}

	st, err := t.requireStore()
	if err != nil {
		return 0, err
	}
	id, err := st.UpsertUser(ctx, profile, t.now().In(t.loc))
	if err != nil {
		return 0, fmt.Errorf("failed to upsert user: %w", err)
	}
	return id, nil
}

func (t *Tracker) GetUser(ctx context.Context, id int64) (User, error) {
	if err := validateOwner(id); err != nil {
		return User{}, err
	}
	st, err := t.requireStore()
	if err != nil {
		return User{}, err
	}
	user, err := st.GetUserByID(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// CATEGORIES

func (t *Tracker) ListCategories(ctx context.Context, kind Kind) ([]Category, error) {
	if kind != "" && !kind.Valid() {
		return nil, appErrors.Invalid("Invalid category type '%s', expected income or expense.", kind)
	}
	return readOrDefault(ctx, t, "list categories", []Category{}, func(st Storage) ([]Category, error) {
		return st.ListCategories(ctx, kind)
	})
}

func validateCategoryLabels(name, icon, color *string) error {
	if name != nil {
		*name = strings.TrimSpace(*name)
		if *name == "" {
			return appErrors.Invalid("Category name cannot be empty.")
		}
		if err := checkLength(*name, MAX_CATEGORY_NAME_LENGTH, "Category name"); err != nil {
			return err
		}
	}
	if icon != nil {
		if err := checkLength(*icon, MAX_ICON_LENGTH, "Icon"); err != nil {
			return err
		}
	}
	if color != nil {
		if err := checkLength(*color, MAX_COLOR_LENGTH, "Color"); err != nil {
			return err
		}
	}
	return nil
}

// checkParent enforces one level of nesting within the same kind.
func checkParent(ctx context.Context, st Storage, parentID int64, kind Kind) error {
	parent, err := st.GetCategory(ctx, parentID)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrNotFound) {
			return appErrors.Invalid("Parent category %d does not exist.", parentID)
		}
		return fmt.Errorf("failed to get parent category: %w", err)
	}
	if !parent.IsRoot() {
		return appErrors.Invalid("Category '%s' is already a subcategory and cannot have subcategories.", parent.Name)
	}
	if parent.Kind != kind {
		return appErrors.Invalid("Parent category is %s, subcategory must be %s too.", parent.Kind, parent.Kind)
	}
	return nil
}

func (t *Tracker) CreateCategory(ctx context.Context, req NewCategory) (int64, error) {
	if err := validateCategoryLabels(&req.Name, &req.Icon, &req.Color); err != nil {
		return 0, err
	}
	if !req.Kind.Valid() {
		return 0, appErrors.Invalid("Invalid category type '%s', expected income or expense.", req.Kind)
	}
	if req.ParentID != nil {
		if err := validateID(*req.ParentID, "parent category"); err != nil {
			return 0, err
		}
	}

	st, err := t.requireStore()
	if err != nil {
		return 0, err
	}
	if req.ParentID != nil {
		if err := checkParent(ctx, st, *req.ParentID, req.Kind); err != nil {
			return 0, err
		}
	}

	category := Category{
		Name:      req.Name,
		Kind:      req.Kind,
		ParentID:  req.ParentID,
		Icon:      req.Icon,
		Color:     req.Color,
		CreatedAt: t.now().In(t.loc),
	}
	id, err := st.SaveCategory(ctx, category)
	if err != nil {
		return 0, fmt.Errorf("failed to save category: %w", err)
	}
	t.publish(ctx, Change{Entity: "category", Action: "create", ID: id})
	return id, nil
}

// UpdateCategory returns the number of affected rows; 0 when the category
// does not exist.
func (t *Tracker) UpdateCategory(ctx context.Context, id int64, patch CategoryPatch) (int64, error) {
	if err := validateID(id, "category"); err != nil {
		return 0, err
	}
	if patch.IsEmpty() {
		return 0, appErrors.Invalid("Nothing to update.")
	}
	if err := validateCategoryLabels(patch.Name, patch.Icon, patch.Color); err != nil {
		return 0, err
	}
	if patch.ParentID != nil && *patch.ParentID < 0 {
		return 0, appErrors.Invalid("Invalid parent category id: %d.", *patch.ParentID)
	}

	st, err := t.requireStore()
	if err != nil {
		return 0, err
	}

	if patch.ParentID != nil && *patch.ParentID > 0 {
		parentID := *patch.ParentID
		if parentID == id {
			return 0, appErrors.Invalid("A category cannot be its own parent.")
		}
		current, err := st.GetCategory(ctx, id)
		if err != nil {
			if appErrors.HasCode(err, appErrors.ErrNotFound) {
				return 0, nil
			}
			return 0, fmt.Errorf("failed to get category: %w", err)
		}
		hasChildren, err := st.HasSubcategories(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("failed to check subcategories: %w", err)
		}
		if hasChildren {
			return 0, appErrors.Invalid("Category '%s' has subcategories and cannot become a subcategory.", current.Name)
		}
		if err := checkParent(ctx, st, parentID, current.Kind); err != nil {
			return 0, err
		}
	}

	affected, err := st.UpdateCategory(ctx, id, patch)
	if err != nil {
		return 0, fmt.Errorf("failed to update category: %w", err)
	}
	if affected > 0 {
		t.publish(ctx, Change{Entity: "category", Action: "update", ID: id})
	}
	return affected, nil
}

func (t *Tracker) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	if err := validateID(id, "category"); err != nil {
		return 0, err
	}
	st, err := t.requireStore()
	if err != nil {
		return 0, err
	}

	inUse, err := st.IsCategoryInUse(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to check category usage: %w", err)
	}
	if inUse {
		return 0, appErrors.ErrorResponse{
			Code:    appErrors.ErrConflict,
			Message: "Cannot delete category that is used in transactions.",
		}
	}
	hasChildren, err := st.HasSubcategories(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to check subcategories: %w", err)
	}
	if hasChildren {
		return 0, appErrors.ErrorResponse{
			Code:    appErrors.ErrConflict,
			Message: "Cannot delete category that has subcategories.",
		}
	}

	affected, err := st.DeleteCategory(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete category: %w", err)
	}
	if affected > 0 {
		t.publish(ctx, Change{Entity: "category", Action: "delete", ID: id})
	}
	return affected, nil
}
