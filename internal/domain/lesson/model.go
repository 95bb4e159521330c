package lesson

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// AllowDoubleBooking names the scheduling policy for duplicate (date, time)
// slots. Two students may share a slot (e.g. a paired session), so adding a
// lesson never checks slot uniqueness. Flip requires a migration plan for
// existing double-booked rows.
const AllowDoubleBooking = true

// Slot boundaries for the coach's working day.
const (
	FirstSlotHour = 7
	LastSlotHour  = 22
)

// TimeSlots contains every bookable slot in ascending order ("07:00".."22:00").
var TimeSlots = buildTimeSlots()

// Domain errors
var (
	ErrEmptyStudent = errors.New("student must be selected")
	ErrEmptyDate    = errors.New("date cannot be empty")
	ErrInvalidTime  = errors.New("time must be a valid slot between 07:00 and 22:00")
)

// Lesson represents one scheduled class occurrence for one student.
// Date is YYYY-MM-DD; an empty Date marks a row whose original date value
// could not be parsed.
type Lesson struct {
	Date     string
	Time     string // HH:MM
	Student  string
	Category string
	Note     string
}

// Validate checks if the Lesson has valid data.
// PRE: Lesson struct is populated
// POST: Returns nil if valid, error otherwise
func (l *Lesson) Validate() error {
	if strings.TrimSpace(l.Student) == "" {
		return ErrEmptyStudent
	}
	if strings.TrimSpace(l.Date) == "" {
		return ErrEmptyDate
	}
	if !IsValidSlot(l.Time) {
		return ErrInvalidTime
	}
	return nil
}

// IsValidSlot reports whether t is one of the bookable time slots.
func IsValidSlot(t string) bool {
	for _, s := range TimeSlots {
		if s == t {
			return true
		}
	}
	return false
}

// SortBySlot orders lessons by time slot ascending, then by student name for
// a stable display order when a slot is double-booked.
// POST: ls is sorted in place
func SortBySlot(ls []Lesson) {
	sort.SliceStable(ls, func(i, j int) bool {
		if ls[i].Time != ls[j].Time {
			return ls[i].Time < ls[j].Time
		}
		return ls[i].Student < ls[j].Student
	})
}

func buildTimeSlots() []string {
	slots := make([]string, 0, LastSlotHour-FirstSlotHour+1)
	for h := FirstSlotHour; h <= LastSlotHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}
