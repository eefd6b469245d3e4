package model

import (
	"testing"
	"time"
)

func TestPet_Created(t *testing.T) {
	tests := []struct {
		name    string
		created string
		want    time.Time
		wantOK  bool
	}{
		{
			name:    "date only",
			created: "2024-01-01",
			want:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantOK:  true,
		},
		{
			name:    "rfc3339",
			created: "2024-03-05T10:20:30Z",
			want:    time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC),
			wantOK:  true,
		},
		{
			name:    "local timestamp",
			created: "2024-03-05T10:20:30",
			want:    time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC),
			wantOK:  true,
		},
		{
			name:    "empty",
			created: "",
			wantOK:  false,
		},
		{
			name:    "garbage",
			created: "not a date",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Pet{CreatedAt: tt.created}.Created()
			if ok != tt.wantOK {
				t.Fatalf("Created() ok = %v, want %v", ok, tt.wantOK)
			}

			if ok && !got.Equal(tt.want) {
				t.Errorf("Created() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortDirection(t *testing.T) {
	if Ascending.Toggle() != Descending {
		t.Error("Ascending.Toggle() should be Descending")
	}

	if Descending.Toggle() != Ascending {
		t.Error("Descending.Toggle() should be Ascending")
	}

	tests := []struct {
		input string
		want  SortDirection
	}{
		{"", Ascending},
		{"asc", Ascending},
		{"desc", Descending},
		{" DESC ", Descending},
		{"z-a", Descending},
		{"other", Ascending},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseSortDirection(tt.input); got != tt.want {
				t.Errorf("ParseSortDirection(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if Descending.String() != "desc" || Ascending.String() != "asc" {
		t.Error("unexpected SortDirection.String()")
	}
}
