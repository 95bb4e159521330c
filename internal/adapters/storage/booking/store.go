package booking

import (
	"context"
	"errors"

	domain "gymdesk/internal/domain/booking"
)

// ErrNotFound means no request exists with the given ID.
var ErrNotFound = errors.New("booking request not found")

// Store persists BookingRequest state. The collection is append-only except
// for status flips and the destructive Clear.
type Store interface {
	List(ctx context.Context) ([]domain.Request, error)
	ListPending(ctx context.Context) ([]domain.Request, error)
	GetByID(ctx context.Context, id string) (domain.Request, error)
	Append(ctx context.Context, value domain.Request) error
	SetStatus(ctx context.Context, id, status string) error
	Clear(ctx context.Context) error
}
