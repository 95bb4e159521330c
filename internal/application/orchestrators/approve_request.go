package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"gymdesk/internal/domain/booking"
	"gymdesk/internal/domain/lesson"
)

// ApproveRequestBookingStore defines the booking store interface for triage.
type ApproveRequestBookingStore interface {
	GetByID(ctx context.Context, id string) (booking.Request, error)
	SetStatus(ctx context.Context, id, status string) error
}

// ApproveRequestLessonStore defines the lesson store interface for approval.
type ApproveRequestLessonStore interface {
	Append(ctx context.Context, value lesson.Lesson) error
	Remove(ctx context.Context, value lesson.Lesson) error
}

// ApproveRequestInput carries the request to approve and the category the
// coach picked at approval time (the request itself never carries one).
type ApproveRequestInput struct {
	RequestID string
	Category  string
}

// ApproveRequestDeps holds dependencies for ApproveRequest.
type ApproveRequestDeps struct {
	BookingStore ApproveRequestBookingStore
	LessonStore  ApproveRequestLessonStore
}

// ExecuteApproveRequest flips a pending request to approved and creates the
// matching lesson. The pair is atomic from the caller's perspective: the
// lesson commits first, and if the status flip then fails the lesson is
// removed again before the error returns, so no approved-without-lesson or
// lesson-while-pending state is left observable.
// PRE: RequestID names a pending request
// POST: On success the request is approved and the lesson exists; on error
// the observable state is unchanged
func ExecuteApproveRequest(ctx context.Context, input ApproveRequestInput, deps ApproveRequestDeps) error {
	r, err := deps.BookingStore.GetByID(ctx, input.RequestID)
	if err != nil {
		return err
	}
	if err := r.Approve(); err != nil {
		return err
	}

	l := lesson.Lesson{
		Date:     r.TargetDate,
		Time:     r.Time,
		Student:  r.Requester,
		Category: input.Category,
	}
	if err := l.Validate(); err != nil {
		return err
	}

	if err := deps.LessonStore.Append(ctx, l); err != nil {
		return fmt.Errorf("approve %s: %w", input.RequestID, err)
	}
	if err := deps.BookingStore.SetStatus(ctx, input.RequestID, booking.StatusApproved); err != nil {
		if rbErr := deps.LessonStore.Remove(ctx, l); rbErr != nil {
			slog.Error("approve_rollback_failed", "id", input.RequestID, "error", rbErr)
		}
		return fmt.Errorf("approve %s: %w", input.RequestID, err)
	}

	slog.Info("request_approved", "id", input.RequestID, "date", l.Date, "time", l.Time, "student", l.Student)
	return nil
}
