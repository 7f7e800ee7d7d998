package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fatali-fataliyev/household_ledger/internal/ledger"
)

const categoryColumns = "id, name, type, parent_id, icon, color, created_at"

func (s *SQLStorage) ListCategories(ctx context.Context, kind ledger.Kind) ([]ledger.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories WHERE 1=1"
	var args []any
	if kind != "" {
		query += " AND type = ?"
		args = append(args, string(kind))
	}
	query += " ORDER BY COALESCE(parent_id, id), parent_id IS NOT NULL, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.fail(ctx, "ListCategories", "list categories", err, "Failed to get categories, try again later.")
	}
	return s.processCategoryRows(ctx, rows)
}

func (s *SQLStorage) processCategoryRows(ctx context.Context, rows *sql.Rows) ([]ledger.Category, error) {
	defer rows.Close()

	categories := []ledger.Category{}
	for rows.Next() {
		var c dbCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.ParentID, &c.Icon, &c.Color, &c.CreatedAt); err != nil {
			return nil, s.fail(ctx, "processCategoryRows", "scan category", err, "Failed to get categories, try again later.")
		}
		categories = append(categories, c.toDomain(s.loc))
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(ctx, "processCategoryRows", "iterate categories", err, "Failed to get categories, try again later.")
	}
	return categories, nil
}

func (s *SQLStorage) GetCategory(ctx context.Context, id int64) (ledger.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories WHERE id = ?"

	var c dbCategory
	err := s.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Type, &c.ParentID, &c.Icon, &c.Color, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.Category{}, notFound("Category not found.")
		}
		return ledger.Category{}, s.fail(ctx, "GetCategory", "get category", err, "Failed to get the category, try again later.")
	}
	return c.toDomain(s.loc), nil
}

func (s *SQLStorage) SaveCategory(ctx context.Context, category ledger.Category) (int64, error) {
	query := "INSERT INTO categories (name, type, parent_id, icon, color, created_at) VALUES (?, ?, ?, ?, ?, ?)"
	res, err := s.db.ExecContext(ctx, query, category.Name, string(category.Kind), nullInt64(category.ParentID),
		nullString(category.Icon), nullString(category.Color), s.ts(category.CreatedAt))
	if err != nil {
		return 0, s.fail(ctx, "SaveCategory", "save category", err, "Failed to save the category, try again later.")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, s.fail(ctx, "SaveCategory", "read category id", err, "Failed to save the category, try again later.")
	}
	return id, nil
}

func (s *SQLStorage) UpdateCategory(ctx context.Context, id int64, patch ledger.CategoryPatch) (int64, error) {
	var sets []string
	var args []any
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, nullString(*patch.Icon))
	}
	if patch.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, nullString(*patch.Color))
	}
	if patch.ParentID != nil {
		sets = append(sets, "parent_id = ?")
		if *patch.ParentID == 0 {
			args = append(args, nil)
		} else {
			args = append(args, *patch.ParentID)
		}
	}
	if len(sets) == 0 {
		return 0, nil
	}

	query := "UPDATE categories SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, s.fail(ctx, "UpdateCategory", "update category", err, "Failed to update the category, try again later.")
	}
	return s.affected(ctx, "UpdateCategory", res)
}

func (s *SQLStorage) exists(ctx context.Context, function string, query string, args ...any) (bool, error) {
	var found int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, s.fail(ctx, function, "run existence check", err, "Failed to check the category, try again later.")
	}
	return true, nil
}

func (s *SQLStorage) IsCategoryInUse(ctx context.Context, id int64) (bool, error) {
	return s.exists(ctx, "IsCategoryInUse", "SELECT 1 FROM transactions WHERE category_id = ? LIMIT 1", id)
}

func (s *SQLStorage) HasSubcategories(ctx context.Context, id int64) (bool, error) {
	return s.exists(ctx, "HasSubcategories", "SELECT 1 FROM categories WHERE parent_id = ? LIMIT 1", id)
}

// DeleteCategory repeats the usage check inside the deleting transaction so a
// transaction booked in between is not orphaned.
func (s *SQLStorage) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, s.fail(ctx, "DeleteCategory", "begin transaction", err, "Failed to delete the category, try again later.")
	}

	query := `DELETE FROM categories WHERE id = ?
		AND NOT EXISTS (SELECT 1 FROM transactions WHERE category_id = ?)`
	result, err := tx.ExecContext(ctx, query, id, id)
	if err != nil {
		tx.Rollback()
		return 0, s.fail(ctx, "DeleteCategory", "delete category", err, "Failed to delete the category, try again later.")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, s.fail(ctx, "DeleteCategory", "check affected rows", err, "Failed to delete the category, try again later.")
	}

	if err := tx.Commit(); err != nil {
		return 0, s.fail(ctx, "DeleteCategory", "commit transaction", err, "Failed to delete the category, try again later.")
	}
	return rowsAffected, nil
}
