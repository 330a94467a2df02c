package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openmat-france/openmat-api/internal/domain"
)

func TestParseDates(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{
			name:  "two dates with delimiter",
			input: "2025-01-01 | 2025-01-08",
			want:  []string{"2025-01-01", "2025-01-08"},
		},
		{
			name:  "single date",
			input: "2025-01-01",
			want:  []string{"2025-01-01"},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "nil",
			input: nil,
			want:  nil,
		},
		{
			name:  "recurring sentinel stays a single element",
			input: "RÉCURRENT",
			want:  []string{"RÉCURRENT"},
		},
		{
			name:  "blank segments dropped",
			input: "2025-01-01 ||  | 2025-01-08",
			want:  []string{"2025-01-01", "2025-01-08"},
		},
		{
			name:  "string slice passes through trimmed",
			input: []string{" 2025-01-01 ", "", "2025-01-08"},
			want:  []string{"2025-01-01", "2025-01-08"},
		},
		{
			name:  "any slice is coerced per element",
			input: []any{"2025-01-01", 42},
			want:  []string{"2025-01-01", "42"},
		},
		{
			name:  "scalar is coerced to one element",
			input: 20250101,
			want:  []string{"20250101"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDates(tt.input))
		})
	}
}

func TestIsRecurring(t *testing.T) {
	tests := []struct {
		name string
		date string
		want bool
	}{
		{"sentinel", "RÉCURRENT", true},
		{"legacy sentinel", "2099-12-31", true},
		{"sentinel as substring", "RÉCURRENT (tous les lundis)", true},
		{"plain date", "2025-06-01", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsRecurring(domain.Session{Date: tt.date})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecurrenceDay(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        string
	}{
		{"day in title", "Open Mat du Samedi", "venez nombreux", "samedi"},
		{"day in description", "Open Mat", "tous les jeudis soir", "jeudi"},
		{"scan order picks the earliest weekday", "lundi et vendredi", "", "lundi"},
		{"no day", "Open Mat JJB", "gi et no-gi", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecurrenceDay(domain.Session{Title: tt.title, Description: tt.description})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsExpiredAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name string
		date string
		want bool
	}{
		{"recurring never expires", "RÉCURRENT", false},
		{"legacy recurring never expires", "2099-12-31", false},
		{"no date is not expired", "", false},
		{"all dates past", "2020-01-01 | 2020-06-01", true},
		{"one future date keeps it alive", "2020-01-01 | 2099-01-01", false},
		{"single past date", "2025-06-14", true},
		{"today is not expired", "2025-06-15", false},
		{"future date", "2025-07-01", false},
		{"garbage date is not expired", "bientôt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsExpiredAt(domain.Session{Date: tt.date}, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsExpiredAtRecurringPrecedence(t *testing.T) {
	// A recurring sentinel wins even when other fields carry past dates.
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	s := domain.Session{
		Title:       "Open Mat 2020-01-01",
		Date:        "RÉCURRENT",
		Description: "reprise le 2020-06-01",
	}

	assert.False(t, IsExpiredAt(s, now))
}

func TestFilterActiveAndExpired(t *testing.T) {
	sessions := []domain.Session{
		{ID: "past", Date: "2020-01-01"},
		{ID: "future", Date: "2099-01-01"},
		{ID: "recurring", Date: "RÉCURRENT"},
	}

	active := FilterActive(sessions)
	expired := FilterExpired(sessions)

	activeIDs := make([]string, 0, len(active))
	for _, s := range active {
		activeIDs = append(activeIDs, s.ID)
	}

	assert.ElementsMatch(t, []string{"future", "recurring"}, activeIDs)
	if assert.Len(t, expired, 1) {
		assert.Equal(t, "past", expired[0].ID)
	}
}
