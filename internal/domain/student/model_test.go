package student_test

import (
	"testing"

	"gymdesk/internal/domain/student"
)

// TestStudent_Validate tests validation of Student.
func TestStudent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		stu     student.Student
		wantErr bool
	}{
		{
			name:    "valid student",
			stu:     student.Student{Name: "Amy", Purchased: 10},
			wantErr: false,
		},
		{
			name:    "zero credits is fine",
			stu:     student.Student{Name: "Ben"},
			wantErr: false,
		},
		{
			name:    "empty name",
			stu:     student.Student{Name: ""},
			wantErr: true,
		},
		{
			name:    "whitespace name",
			stu:     student.Student{Name: "  "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stu.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Student.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestParsePurchased tests credit count coercion.
func TestParsePurchased(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"10", 10},
		{" 10 ", 10},
		{"10.0", 10},
		{"", 0},
		{"n/a", 0},
		{"-2", -2},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := student.ParsePurchased(tt.raw); got != tt.want {
				t.Errorf("ParsePurchased(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
