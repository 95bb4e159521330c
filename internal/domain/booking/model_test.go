package booking_test

import (
	"errors"
	"testing"

	"gymdesk/internal/domain/booking"
)

// TestRequest_Validate tests validation of Request.
func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     booking.Request
		wantErr bool
	}{
		{
			name:    "valid pending request",
			req:     booking.Request{ID: "1", TargetDate: "2025-03-01", Time: "10:00", Requester: "Amy", Status: booking.StatusPending},
			wantErr: false,
		},
		{
			name:    "empty requester",
			req:     booking.Request{ID: "2", TargetDate: "2025-03-01", Time: "10:00", Requester: "", Status: booking.StatusPending},
			wantErr: true,
		},
		{
			name:    "empty target date",
			req:     booking.Request{ID: "3", TargetDate: "", Time: "10:00", Requester: "Amy", Status: booking.StatusPending},
			wantErr: true,
		},
		{
			name:    "bogus status",
			req:     booking.Request{ID: "4", TargetDate: "2025-03-01", Time: "10:00", Requester: "Amy", Status: "maybe"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Request.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestRequest_Transitions tests approve/decline state transitions.
func TestRequest_Transitions(t *testing.T) {
	t.Run("approve pending", func(t *testing.T) {
		r := booking.Request{Status: booking.StatusPending}
		if err := r.Approve(); err != nil {
			t.Fatalf("Approve() error = %v", err)
		}
		if r.Status != booking.StatusApproved {
			t.Errorf("status = %q, want approved", r.Status)
		}
	})

	t.Run("decline pending", func(t *testing.T) {
		r := booking.Request{Status: booking.StatusPending}
		if err := r.Decline(); err != nil {
			t.Fatalf("Decline() error = %v", err)
		}
		if r.Status != booking.StatusDeclined {
			t.Errorf("status = %q, want declined", r.Status)
		}
	})

	t.Run("approve twice", func(t *testing.T) {
		r := booking.Request{Status: booking.StatusApproved}
		if err := r.Approve(); !errors.Is(err, booking.ErrNotPending) {
			t.Errorf("Approve() error = %v, want ErrNotPending", err)
		}
	})

	t.Run("decline an approved request", func(t *testing.T) {
		r := booking.Request{Status: booking.StatusApproved}
		if err := r.Decline(); !errors.Is(err, booking.ErrNotPending) {
			t.Errorf("Decline() error = %v, want ErrNotPending", err)
		}
	})
}
