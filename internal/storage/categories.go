package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finzap/finzap/internal/model"
)

// GetCategories returns all categories ordered by name. Name order is the
// stable iteration order the categorizer depends on.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, keywords, icon, color, is_default, created_at
		FROM categories
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		cat, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		categories = append(categories, *cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByName returns a category by its name, or nil when absent.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, keywords, icon, color, is_default, created_at
		FROM categories
		WHERE name = ?`

	row := s.db.QueryRowContext(ctx, query, name)
	cat, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// FindOrCreateCategory inserts the category if its name is new and returns
// the persisted row either way. The insert uses ON CONFLICT DO NOTHING on
// the unique name index, so two concurrent creators converge on a single
// row: the loser's insert is a no-op and the following select sees the
// winner's row. The returned bool reports whether this call created it.
func (s *SQLiteStorage) FindOrCreateCategory(ctx context.Context, cat model.Category) (*model.Category, bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, false, err
	}
	if err := validateCategory(&cat); err != nil {
		return nil, false, err
	}

	keywords, err := json.Marshal(cat.Keywords)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode keywords: %w", err)
	}
	if cat.Keywords == nil {
		keywords = []byte("[]")
	}
	if cat.ID == "" {
		cat.ID = uuid.NewString()
	}
	if cat.Icon == "" {
		cat.Icon = "tag"
	}

	insertQuery := `
		INSERT INTO categories (id, name, keywords, icon, color, is_default, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO NOTHING`

	result, err := s.db.ExecContext(ctx, insertQuery,
		cat.ID, cat.Name, string(keywords), cat.Icon, cat.Color, cat.IsDefault, time.Now())
	if err != nil {
		return nil, false, fmt.Errorf("failed to create category: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to check category insert: %w", err)
	}

	existing, err := s.GetCategoryByName(ctx, cat.Name)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("category %q vanished after insert", cat.Name)
	}

	if inserted > 0 {
		slog.Info("created new category", "name", existing.Name, "id", existing.ID)
	}
	return existing, inserted > 0, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (*model.Category, error) {
	var cat model.Category
	var keywords string
	err := row.Scan(&cat.ID, &cat.Name, &keywords, &cat.Icon, &cat.Color, &cat.IsDefault, &cat.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}
	if err := json.Unmarshal([]byte(keywords), &cat.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords for category %s: %w", cat.Name, err)
	}
	return &cat, nil
}
