package booking

import (
	"errors"
	"strings"
	"time"
)

// Request status constants
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeclined = "declined"
)

// ValidStatuses contains all valid status values.
var ValidStatuses = []string{StatusPending, StatusApproved, StatusDeclined}

// Domain errors
var (
	ErrEmptyRequester = errors.New("requester name cannot be empty")
	ErrEmptyTarget    = errors.New("target date cannot be empty")
	ErrInvalidStatus  = errors.New("status must be one of: pending, approved, declined")
	ErrNotPending     = errors.New("request has already been handled")
)

// Request is one student-submitted booking interest awaiting coach triage.
// A request may target an already-filled slot: the queue exists to register
// unmet demand, so no availability check happens at submission.
type Request struct {
	ID          string
	SubmittedAt time.Time
	TargetDate  string // YYYY-MM-DD
	Time        string // HH:MM
	Requester   string
	Note        string
	Status      string
}

// Validate checks if the Request has valid data.
// PRE: Request struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Requester) == "" {
		return ErrEmptyRequester
	}
	if strings.TrimSpace(r.TargetDate) == "" {
		return ErrEmptyTarget
	}
	if !isValidStatus(r.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// IsPending returns true if the request still awaits coach action.
// INVARIANT: Request fields are not mutated
func (r *Request) IsPending() bool {
	return r.Status == StatusPending
}

// Approve transitions the request from pending to approved.
// PRE: Request is pending
// POST: Status is approved
func (r *Request) Approve() error {
	if !r.IsPending() {
		return ErrNotPending
	}
	r.Status = StatusApproved
	return nil
}

// Decline transitions the request from pending to declined.
// PRE: Request is pending
// POST: Status is declined
func (r *Request) Decline() error {
	if !r.IsPending() {
		return ErrNotPending
	}
	r.Status = StatusDeclined
	return nil
}

func isValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
