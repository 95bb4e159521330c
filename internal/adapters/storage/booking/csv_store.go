package booking

import (
	"context"
	"fmt"
	"time"

	"gymdesk/internal/adapters/storage/table"
	domain "gymdesk/internal/domain/booking"
)

// submittedAtLayout is the persisted timestamp format.
const submittedAtLayout = "2006-01-02 15:04"

// Schema describes the booking_requests collection. Early exports used
// "request_date" for the submission timestamp and "message" for the note;
// rows predating triage statuses load as pending.
var Schema = table.Schema{
	Name: "booking_requests",
	Columns: []table.Column{
		{Name: "id", Kind: table.KindText},
		{Name: "submitted_at", Kind: table.KindDateTime, Legacy: []string{"request_date"}},
		{Name: "target_date", Kind: table.KindDate},
		{Name: "time", Kind: table.KindText},
		{Name: "requester", Kind: table.KindText, Legacy: []string{"student_name"}},
		{Name: "note", Kind: table.KindText, Legacy: []string{"message"}},
		{Name: "status", Kind: table.KindText, Default: domain.StatusPending},
	},
}

// CSVStore implements Store over the flat-file table engine.
type CSVStore struct {
	files *table.Files
}

// NewCSVStore creates a new booking request store.
func NewCSVStore(files *table.Files) *CSVStore {
	return &CSVStore{files: files}
}

// List retrieves every request in submission order.
func (s *CSVStore) List(_ context.Context) ([]domain.Request, error) {
	t := s.files.Load(Schema)
	out := make([]domain.Request, 0, len(t.Rows))
	for i := range t.Rows {
		out = append(out, fromRow(t, i))
	}
	return out, nil
}

// ListPending retrieves requests still awaiting coach action.
func (s *CSVStore) ListPending(ctx context.Context) ([]domain.Request, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Request
	for _, r := range all {
		if r.IsPending() {
			out = append(out, r)
		}
	}
	return out, nil
}

// GetByID retrieves one request.
// PRE: id is non-empty
// POST: Returns the entity or ErrNotFound
func (s *CSVStore) GetByID(_ context.Context, id string) (domain.Request, error) {
	t := s.files.Load(Schema)
	for i := range t.Rows {
		if t.Get(i, "id") == id {
			return fromRow(t, i), nil
		}
	}
	return domain.Request{}, fmt.Errorf("%q: %w", id, ErrNotFound)
}

// Append adds one request to the end of the queue.
// PRE: value has been validated
// POST: Collection grows by one row
func (s *CSVStore) Append(_ context.Context, value domain.Request) error {
	t := s.files.Load(Schema)
	t.AppendRow(toRow(value))
	return s.files.Save(Schema, t)
}

// SetStatus flips the status of the request with the given id.
// PRE: status is a valid request status
// POST: Only the status field of the matching row changes
func (s *CSVStore) SetStatus(_ context.Context, id, status string) error {
	t := s.files.Load(Schema)
	idCol := t.ColIndex("id")
	statusCol := t.ColIndex("status")
	for _, row := range t.Rows {
		if row[idCol] == id {
			row[statusCol] = status
			return s.files.Save(Schema, t)
		}
	}
	return fmt.Errorf("%q: %w", id, ErrNotFound)
}

// Clear empties the whole collection. Destructive bulk action.
// POST: Collection holds zero rows
func (s *CSVStore) Clear(_ context.Context) error {
	t := s.files.Load(Schema)
	t.Rows = nil
	return s.files.Save(Schema, t)
}

func fromRow(t table.Table, i int) domain.Request {
	submitted, _ := time.Parse(submittedAtLayout, t.Get(i, "submitted_at"))
	return domain.Request{
		ID:          t.Get(i, "id"),
		SubmittedAt: submitted,
		TargetDate:  t.Get(i, "target_date"),
		Time:        t.Get(i, "time"),
		Requester:   t.Get(i, "requester"),
		Note:        t.Get(i, "note"),
		Status:      t.Get(i, "status"),
	}
}

func toRow(r domain.Request) map[string]string {
	submitted := ""
	if !r.SubmittedAt.IsZero() {
		submitted = r.SubmittedAt.Format(submittedAtLayout)
	}
	return map[string]string{
		"id":           r.ID,
		"submitted_at": submitted,
		"target_date":  r.TargetDate,
		"time":         r.Time,
		"requester":    r.Requester,
		"note":         r.Note,
		"status":       r.Status,
	}
}
