package category

import (
	"context"

	domain "gymdesk/internal/domain/category"
)

// Store persists the category registry.
type Store interface {
	List(ctx context.Context) ([]domain.Category, error)
	ReplaceAll(ctx context.Context, values []domain.Category) error
}
