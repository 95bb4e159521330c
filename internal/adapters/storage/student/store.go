package student

import (
	"context"
	"errors"

	domain "gymdesk/internal/domain/student"
)

// ErrNotFound means no roster entry exists for the given name.
var ErrNotFound = errors.New("student not found")

// Store persists Student state.
type Store interface {
	List(ctx context.Context) ([]domain.Student, error)
	GetByName(ctx context.Context, name string) (domain.Student, error)
	ReplaceAll(ctx context.Context, values []domain.Student) error
}
