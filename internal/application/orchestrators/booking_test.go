package orchestrators_test

import (
	"context"
	"errors"
	"testing"

	"gymdesk/internal/adapters/email"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/domain/booking"
)

type mockBookingStore struct {
	requests      []booking.Request
	failSetStatus error
}

func (m *mockBookingStore) Append(_ context.Context, r booking.Request) error {
	m.requests = append(m.requests, r)
	return nil
}

func (m *mockBookingStore) GetByID(_ context.Context, id string) (booking.Request, error) {
	for _, r := range m.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return booking.Request{}, errors.New("not found")
}

func (m *mockBookingStore) SetStatus(_ context.Context, id, status string) error {
	if m.failSetStatus != nil {
		return m.failSetStatus
	}
	for i := range m.requests {
		if m.requests[i].ID == id {
			m.requests[i].Status = status
			return nil
		}
	}
	return errors.New("not found")
}

func (m *mockBookingStore) Clear(_ context.Context) error {
	m.requests = nil
	return nil
}

type recordingSender struct {
	sent []email.SendRequest
	err  error
}

func (s *recordingSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if s.err != nil {
		return email.SendResult{}, s.err
	}
	s.sent = append(s.sent, req)
	return email.SendResult{MessageID: "test"}, nil
}

// TestExecuteSubmitRequest tests booking submission.
func TestExecuteSubmitRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("valid submission is pending with id and timestamp", func(t *testing.T) {
		bs := &mockBookingStore{}
		sender := &recordingSender{}
		input := orchestrators.SubmitRequestInput{
			TargetDate: "2025-03-01", Time: "10:00", Requester: "Amy", Note: "trial",
		}
		result, err := orchestrators.ExecuteSubmitRequest(ctx, input, orchestrators.SubmitRequestDeps{
			BookingStore: bs, EmailSender: sender, CoachEmail: "coach@example.com",
		})
		if err != nil {
			t.Fatalf("ExecuteSubmitRequest() error = %v", err)
		}
		r := result.Request
		if r.Status != booking.StatusPending {
			t.Errorf("status = %q, want pending", r.Status)
		}
		if r.ID == "" {
			t.Error("id should be assigned")
		}
		if r.SubmittedAt.IsZero() {
			t.Error("submitted_at should be stamped")
		}
		if len(bs.requests) != 1 {
			t.Errorf("appended = %d, want 1", len(bs.requests))
		}
		if len(sender.sent) != 1 {
			t.Fatalf("notifications = %d, want 1", len(sender.sent))
		}
		if sender.sent[0].To[0] != "coach@example.com" {
			t.Errorf("notification to = %v", sender.sent[0].To)
		}
	})

	t.Run("missing requester rejected", func(t *testing.T) {
		bs := &mockBookingStore{}
		input := orchestrators.SubmitRequestInput{TargetDate: "2025-03-01", Time: "10:00"}
		_, err := orchestrators.ExecuteSubmitRequest(ctx, input, orchestrators.SubmitRequestDeps{BookingStore: bs})
		if !errors.Is(err, booking.ErrEmptyRequester) {
			t.Fatalf("error = %v, want ErrEmptyRequester", err)
		}
		if len(bs.requests) != 0 {
			t.Error("store must be unchanged on validation failure")
		}
	})

	t.Run("notification failure does not fail the submission", func(t *testing.T) {
		bs := &mockBookingStore{}
		sender := &recordingSender{err: errors.New("smtp down")}
		input := orchestrators.SubmitRequestInput{
			TargetDate: "2025-03-01", Time: "10:00", Requester: "Amy",
		}
		if _, err := orchestrators.ExecuteSubmitRequest(ctx, input, orchestrators.SubmitRequestDeps{
			BookingStore: bs, EmailSender: sender, CoachEmail: "coach@example.com",
		}); err != nil {
			t.Fatalf("ExecuteSubmitRequest() error = %v, want nil", err)
		}
		if len(bs.requests) != 1 {
			t.Error("request should still be appended")
		}
	})
}

// TestExecuteApproveRequest tests the atomic approve commit.
func TestExecuteApproveRequest(t *testing.T) {
	ctx := context.Background()
	pending := booking.Request{
		ID: "req-1", TargetDate: "2025-03-01", Time: "10:00",
		Requester: "Amy", Status: booking.StatusPending,
	}

	t.Run("approve creates lesson and flips status", func(t *testing.T) {
		bs := &mockBookingStore{requests: []booking.Request{pending}}
		ls := &mockLessonStore{}
		input := orchestrators.ApproveRequestInput{RequestID: "req-1", Category: "MA Physique"}
		if err := orchestrators.ExecuteApproveRequest(ctx, input, orchestrators.ApproveRequestDeps{
			BookingStore: bs, LessonStore: ls,
		}); err != nil {
			t.Fatalf("ExecuteApproveRequest() error = %v", err)
		}
		if bs.requests[0].Status != booking.StatusApproved {
			t.Errorf("status = %q, want approved", bs.requests[0].Status)
		}
		if len(ls.lessons) != 1 {
			t.Fatalf("lessons = %d, want 1", len(ls.lessons))
		}
		l := ls.lessons[0]
		if l.Date != "2025-03-01" || l.Time != "10:00" || l.Student != "Amy" || l.Category != "MA Physique" {
			t.Errorf("lesson = %+v", l)
		}
	})

	t.Run("already handled request rejected", func(t *testing.T) {
		done := pending
		done.Status = booking.StatusDeclined
		bs := &mockBookingStore{requests: []booking.Request{done}}
		ls := &mockLessonStore{}
		err := orchestrators.ExecuteApproveRequest(ctx,
			orchestrators.ApproveRequestInput{RequestID: "req-1", Category: "MA Physique"},
			orchestrators.ApproveRequestDeps{BookingStore: bs, LessonStore: ls})
		if !errors.Is(err, booking.ErrNotPending) {
			t.Fatalf("error = %v, want ErrNotPending", err)
		}
		if len(ls.lessons) != 0 {
			t.Error("no lesson may be created for a handled request")
		}
	})

	t.Run("status flip failure rolls the lesson back", func(t *testing.T) {
		bs := &mockBookingStore{
			requests:      []booking.Request{pending},
			failSetStatus: errors.New("disk full"),
		}
		ls := &mockLessonStore{}
		err := orchestrators.ExecuteApproveRequest(ctx,
			orchestrators.ApproveRequestInput{RequestID: "req-1", Category: "MA Physique"},
			orchestrators.ApproveRequestDeps{BookingStore: bs, LessonStore: ls})
		if err == nil {
			t.Fatal("expected error")
		}
		if len(ls.lessons) != 0 {
			t.Errorf("lesson left behind after failed approve: %+v", ls.lessons)
		}
		if bs.requests[0].Status != booking.StatusPending {
			t.Errorf("status = %q, want still pending", bs.requests[0].Status)
		}
	})
}

// TestExecuteDeclineRequest tests decline triage.
func TestExecuteDeclineRequest(t *testing.T) {
	bs := &mockBookingStore{requests: []booking.Request{{
		ID: "req-1", TargetDate: "2025-03-01", Time: "10:00",
		Requester: "Amy", Status: booking.StatusPending,
	}}}
	if err := orchestrators.ExecuteDeclineRequest(context.Background(), "req-1",
		orchestrators.DeclineRequestDeps{BookingStore: bs}); err != nil {
		t.Fatalf("ExecuteDeclineRequest() error = %v", err)
	}
	if bs.requests[0].Status != booking.StatusDeclined {
		t.Errorf("status = %q, want declined", bs.requests[0].Status)
	}
}

// TestExecuteClearRequests tests the destructive bulk clear.
func TestExecuteClearRequests(t *testing.T) {
	bs := &mockBookingStore{requests: []booking.Request{
		{ID: "a", Status: booking.StatusPending},
		{ID: "b", Status: booking.StatusApproved},
	}}
	if err := orchestrators.ExecuteClearRequests(context.Background(),
		orchestrators.ClearRequestsDeps{BookingStore: bs}); err != nil {
		t.Fatalf("ExecuteClearRequests() error = %v", err)
	}
	if len(bs.requests) != 0 {
		t.Errorf("requests = %d, want 0", len(bs.requests))
	}
}
