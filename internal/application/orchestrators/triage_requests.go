package orchestrators

import (
	"context"
	"log/slog"

	"gymdesk/internal/domain/booking"
)

// DeclineRequestDeps holds dependencies for DeclineRequest.
type DeclineRequestDeps struct {
	BookingStore ApproveRequestBookingStore
}

// ExecuteDeclineRequest flips a pending request to declined. No further
// side effect: the requester is told out of band.
// PRE: RequestID names a pending request
// POST: The request is declined; nothing else changes
func ExecuteDeclineRequest(ctx context.Context, requestID string, deps DeclineRequestDeps) error {
	r, err := deps.BookingStore.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if err := r.Decline(); err != nil {
		return err
	}
	if err := deps.BookingStore.SetStatus(ctx, requestID, booking.StatusDeclined); err != nil {
		return err
	}
	slog.Info("request_declined", "id", requestID)
	return nil
}

// ClearRequestsBookingStore defines the booking store interface for the
// bulk clear action.
type ClearRequestsBookingStore interface {
	Clear(ctx context.Context) error
}

// ClearRequestsDeps holds dependencies for ClearRequests.
type ClearRequestsDeps struct {
	BookingStore ClearRequestsBookingStore
}

// ExecuteClearRequests empties the whole request queue, handled or not.
// Destructive: the UI button is the only confirmation.
// POST: The queue holds zero requests
func ExecuteClearRequests(ctx context.Context, deps ClearRequestsDeps) error {
	if err := deps.BookingStore.Clear(ctx); err != nil {
		return err
	}
	slog.Info("requests_cleared")
	return nil
}
