package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"gymdesk/internal/adapters/email"
	"gymdesk/internal/domain/booking"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// SubmitRequestBookingStore defines the booking store interface for submission.
type SubmitRequestBookingStore interface {
	Append(ctx context.Context, value booking.Request) error
}

// SubmitRequestInput carries one student booking form submission.
type SubmitRequestInput struct {
	TargetDate string
	Time       string
	Requester  string
	Note       string
}

// SubmitRequestDeps holds dependencies for SubmitRequest. EmailSender and
// CoachEmail are optional; when unset no notification goes out.
type SubmitRequestDeps struct {
	BookingStore SubmitRequestBookingStore
	EmailSender  email.Sender
	CoachEmail   string
}

// SubmitRequestResult carries the stored request.
type SubmitRequestResult struct {
	Request booking.Request
}

// ExecuteSubmitRequest appends a pending booking request. The target slot is
// deliberately not checked against existing lessons: the queue exists to
// register unmet demand, so a request for a filled slot is valid waitlist
// interest. The coach notification email is best-effort and never fails the
// submission.
// PRE: Input comes straight from the form, unvalidated
// POST: On success the queue grows by one pending request
func ExecuteSubmitRequest(ctx context.Context, input SubmitRequestInput, deps SubmitRequestDeps) (SubmitRequestResult, error) {
	r := booking.Request{
		ID:          uuid.New().String(),
		SubmittedAt: timeNow(),
		TargetDate:  input.TargetDate,
		Time:        input.Time,
		Requester:   input.Requester,
		Note:        input.Note,
		Status:      booking.StatusPending,
	}
	if err := r.Validate(); err != nil {
		return SubmitRequestResult{}, err
	}

	if err := deps.BookingStore.Append(ctx, r); err != nil {
		return SubmitRequestResult{}, err
	}
	slog.Info("request_submitted", "id", r.ID, "target_date", r.TargetDate, "time", r.Time, "requester", r.Requester)

	if deps.EmailSender != nil && deps.CoachEmail != "" {
		notifyCoach(ctx, deps, r)
	}
	return SubmitRequestResult{Request: r}, nil
}

func notifyCoach(ctx context.Context, deps SubmitRequestDeps, r booking.Request) {
	body := fmt.Sprintf(
		"<p><strong>%s</strong> asked about <strong>%s %s</strong>.</p><p>%s</p>",
		html.EscapeString(r.Requester),
		html.EscapeString(r.TargetDate),
		html.EscapeString(r.Time),
		html.EscapeString(r.Note),
	)
	_, err := deps.EmailSender.Send(ctx, email.SendRequest{
		To:      []string{deps.CoachEmail},
		Subject: fmt.Sprintf("New booking request: %s %s", r.TargetDate, r.Time),
		HTML:    body,
	})
	if err != nil {
		slog.Warn("request_notification_failed", "id", r.ID, "error", err)
	}
}
