package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"gymdesk/internal/domain/category"
)

// UpdateCategoriesStore defines the registry interface for wholesale update.
type UpdateCategoriesStore interface {
	ReplaceAll(ctx context.Context, values []category.Category) error
}

// UpdateCategoriesInput carries the edited registry.
type UpdateCategoriesInput struct {
	Names []string
}

// UpdateCategoriesDeps holds dependencies for UpdateCategories.
type UpdateCategoriesDeps struct {
	CategoryStore UpdateCategoriesStore
}

// ExecuteUpdateCategories replaces the registry wholesale. Blank rows from
// the editor are dropped, duplicates collapse to the first occurrence.
// Existing lesson/student references to removed categories are left alone:
// they stay offerable through the in-use union rather than being cascaded.
// PRE: Input comes straight from the editor, unvalidated
// POST: Registry holds exactly the cleaned name list
func ExecuteUpdateCategories(ctx context.Context, input UpdateCategoriesInput, deps UpdateCategoriesDeps) error {
	seen := make(map[string]bool)
	var values []category.Category
	for _, raw := range input.Names {
		name := strings.TrimSpace(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		c := category.Category{Name: name}
		if err := c.Validate(); err != nil {
			return err
		}
		values = append(values, c)
	}

	if err := deps.CategoryStore.ReplaceAll(ctx, values); err != nil {
		return err
	}
	slog.Info("categories_updated", "count", len(values))
	return nil
}
