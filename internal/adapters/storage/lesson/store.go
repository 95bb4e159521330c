package lesson

import (
	"context"

	domain "gymdesk/internal/domain/lesson"
)

// Store persists Lesson state.
type Store interface {
	List(ctx context.Context) ([]domain.Lesson, error)
	ListByDate(ctx context.Context, date string) ([]domain.Lesson, error)
	Append(ctx context.Context, value domain.Lesson) error
	Remove(ctx context.Context, value domain.Lesson) error
	ReplaceDay(ctx context.Context, date string, values []domain.Lesson) error
	CountByStudent(ctx context.Context, name string) (int, error)
	CategoriesInUse(ctx context.Context) ([]string, error)
}
