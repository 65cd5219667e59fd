// Package category maps expense descriptions to spending categories,
// creating new categories when nothing known matches.
package category

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/finzap/finzap/internal/cache"
	"github.com/finzap/finzap/internal/model"
)

// cacheKey is the single key under which the category list is memoized.
const cacheKey = "categories"

// Store is the persistence surface the categorizer needs.
type Store interface {
	GetCategories(ctx context.Context) ([]model.Category, error)
	FindOrCreateCategory(ctx context.Context, cat model.Category) (*model.Category, bool, error)
}

// Categorizer resolves descriptions to categories. Matching walks the
// persisted categories in name order and returns on the first keyword
// that is a substring of the description; misses fall through to the
// static mapping table, then to word derivation.
type Categorizer struct {
	store    Store
	cache    *cache.TTLCache[[]model.Category]
	colorIdx func(n int) int
}

// New creates a categorizer backed by the given store and cache.
func New(store Store, listCache *cache.TTLCache[[]model.Category]) *Categorizer {
	return &Categorizer{
		store:    store,
		cache:    listCache,
		colorIdx: rand.Intn,
	}
}

// Seed ensures the default categories exist. Safe to run repeatedly; the
// unique name constraint makes each insert idempotent.
func (c *Categorizer) Seed(ctx context.Context) error {
	for _, cat := range SeedCategories() {
		if _, _, err := c.store.FindOrCreateCategory(ctx, cat); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
		}
	}
	c.cache.Delete(cacheKey)
	return nil
}

// Categorize finds the best category for a description and returns it
// together with the cleaned-up display description.
func (c *Categorizer) Categorize(ctx context.Context, description string) (*model.Category, string, error) {
	lower := strings.ToLower(description)

	categories, err := c.listCategories(ctx)
	if err != nil {
		return nil, "", err
	}

	for i := range categories {
		for _, keyword := range categories[i].Keywords {
			if keyword != "" && strings.Contains(lower, keyword) {
				return &categories[i], cleanupDescription(lower, keyword), nil
			}
		}
	}

	// Nothing matched: derive a name and get-or-create it. The create is
	// atomic on the unique name, so concurrent misses on the same
	// description converge on one row.
	name := deriveCategoryName(lower)
	created, isNew, err := c.store.FindOrCreateCategory(ctx, model.Category{
		Name:     name,
		Keywords: []string{lower},
		Icon:     "tag",
		Color:    palette[c.colorIdx(len(palette))],
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get or create category %q: %w", name, err)
	}
	if isNew {
		c.cache.Delete(cacheKey)
		slog.Info("learned new category", "name", name, "description", lower)
	}

	return created, cleanupDescription(lower, ""), nil
}

// listCategories returns the category list, from cache when fresh. Cache
// problems are never fatal; the store is the fallback.
func (c *Categorizer) listCategories(ctx context.Context) ([]model.Category, error) {
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached, nil
	}

	categories, err := c.store.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	c.cache.Set(cacheKey, categories)
	return categories, nil
}

// deriveCategoryName picks a category name for an unmatched description:
// static mapping table first, then the first word longer than 3
// characters, then the fallback.
func deriveCategoryName(description string) string {
	for _, m := range staticMappings {
		if strings.Contains(description, m.keyword) {
			return m.category
		}
	}

	for _, word := range strings.Split(description, " ") {
		if utf8.RuneCountInString(word) > 3 {
			return capitalizeFirst(word)
		}
	}

	return fallbackCategoryName
}

// cleanupDescription prepares a description for display. All words get
// their first letter capitalized; when a keyword matched, the window from
// 10 characters before the keyword through the end is used instead so the
// matched term keeps its surrounding context.
func cleanupDescription(description, matchedKeyword string) string {
	words := strings.Split(description, " ")
	for i, word := range words {
		words[i] = capitalizeFirst(word)
	}
	clean := strings.Join(words, " ")

	if matchedKeyword != "" {
		if byteIdx := strings.Index(description, matchedKeyword); byteIdx >= 0 {
			runeIdx := utf8.RuneCountInString(description[:byteIdx])
			start := runeIdx - 10
			if start < 0 {
				start = 0
			}
			runes := []rune(description)
			clean = capitalizeFirst(string(runes[start:]))
		}
	}

	return strings.TrimSpace(clean)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
