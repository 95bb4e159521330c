package projections

import (
	"context"
	"errors"

	studentStore "gymdesk/internal/adapters/storage/student"
	"gymdesk/internal/domain/category"
	"gymdesk/internal/domain/student"
)

// CategoryRegistryStore defines the registry interface for category queries.
type CategoryRegistryStore interface {
	List(ctx context.Context) ([]category.Category, error)
}

// CategoriesInUseStore defines the lesson interface for category queries.
type CategoriesInUseStore interface {
	CategoriesInUse(ctx context.Context) ([]string, error)
}

// AllowedCategoriesStudentStore defines the roster interface for the lock check.
type AllowedCategoriesStudentStore interface {
	GetByName(ctx context.Context, name string) (student.Student, error)
}

// GetAllowedCategoriesQuery carries the student being scheduled.
type GetAllowedCategoriesQuery struct {
	StudentName string
}

// GetAllowedCategoriesDeps holds dependencies for the category option set.
type GetAllowedCategoriesDeps struct {
	StudentStore  AllowedCategoriesStudentStore
	CategoryStore CategoryRegistryStore
	LessonStore   CategoriesInUseStore
}

// QueryCategoriesInUse returns registry entries unioned with every category
// string appearing in persisted lessons, first-seen order. The scheduling
// form always offers a valid option set even for categories no longer in
// the registry.
func QueryCategoriesInUse(ctx context.Context, deps GetAllowedCategoriesDeps) ([]string, error) {
	cats, err := deps.CategoryStore.List(ctx)
	if err != nil {
		return nil, err
	}
	registry := make([]string, 0, len(cats))
	for _, c := range cats {
		registry = append(registry, c.Name)
	}

	inUse, err := deps.LessonStore.CategoriesInUse(ctx)
	if err != nil {
		return nil, err
	}
	return category.Union(registry, inUse), nil
}

// QueryAllowedCategories returns the category options for scheduling one
// student. A student bound to a category that is still offerable gets a
// single locked option; everyone else gets the full option set.
// POST: Result is never empty unless both registry and history are empty
func QueryAllowedCategories(ctx context.Context, query GetAllowedCategoriesQuery, deps GetAllowedCategoriesDeps) ([]string, error) {
	all, err := QueryCategoriesInUse(ctx, deps)
	if err != nil {
		return nil, err
	}

	if query.StudentName == "" {
		return all, nil
	}
	s, err := deps.StudentStore.GetByName(ctx, query.StudentName)
	if err != nil {
		if errors.Is(err, studentStore.ErrNotFound) {
			return all, nil
		}
		return nil, err
	}
	if s.BoundCategory == "" {
		return all, nil
	}
	for _, name := range all {
		if name == s.BoundCategory {
			return []string{s.BoundCategory}, nil
		}
	}
	// A bound category that vanished from both registry and history does
	// not lock the form to an unofferable option.
	return all, nil
}
