package student

import (
	"errors"
	"strconv"
	"strings"
)

// Domain errors
var (
	ErrEmptyName = errors.New("student name cannot be empty")
)

// Student is one roster entry. Name is the key the schedule joins on.
// BoundCategory, when set, locks the category choice while scheduling for
// this student.
type Student struct {
	Name          string
	Purchased     int // lesson credits bought
	BoundCategory string
	Note          string
}

// Validate checks if the Student has valid data.
// PRE: Student struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Student) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Credits is the derived credit view for one student. Remaining may be
// negative: over-booking is not blocked.
type Credits struct {
	Purchased int
	Used      int
	Remaining int
}

// ParsePurchased coerces a raw purchased-count field to an int.
// Blank or unparsable values count as zero rather than failing the load.
// POST: Returns the parsed count, never negative input passthrough errors
func ParsePurchased(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	// Spreadsheet exports sometimes carry "10.0"; accept the float form.
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
