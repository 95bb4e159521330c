package category_test

import (
	"reflect"
	"testing"

	"gymdesk/internal/domain/category"
)

// TestCategory_Validate tests validation of Category.
func TestCategory_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cat     category.Category
		wantErr bool
	}{
		{name: "valid", cat: category.Category{Name: "MA Physique"}, wantErr: false},
		{name: "empty", cat: category.Category{Name: ""}, wantErr: true},
		{name: "whitespace", cat: category.Category{Name: " "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cat.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Category.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestUnion tests registry/in-use merging.
func TestUnion(t *testing.T) {
	tests := []struct {
		name     string
		registry []string
		inUse    []string
		want     []string
	}{
		{
			name:     "registry first, in-use appended",
			registry: []string{"A", "B"},
			inUse:    []string{"B", "C"},
			want:     []string{"A", "B", "C"},
		},
		{
			name:     "deleted category still offered when in use",
			registry: []string{"A"},
			inUse:    []string{"Retired"},
			want:     []string{"A", "Retired"},
		},
		{
			name:     "blanks dropped",
			registry: []string{"", "A"},
			inUse:    []string{""},
			want:     []string{"A"},
		},
		{
			name:     "both empty",
			registry: nil,
			inUse:    nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := category.Union(tt.registry, tt.inUse)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Union() = %v, want %v", got, tt.want)
			}
		})
	}
}
