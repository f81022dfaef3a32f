package domain

import (
	"testing"
	"time"
)

func TestDateRange_IsValid(t *testing.T) {
	now := time.Now()
	tomorrow := now.Add(24 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)

	tests := []struct {
		name      string
		dateRange *DateRange
		expected  bool
	}{
		{
			name: "ordered range",
			dateRange: &DateRange{
				Start: yesterday,
				End:   now,
			},
			expected: true,
		},
		{
			name: "open start",
			dateRange: &DateRange{
				End: now,
			},
			expected: true,
		},
		{
			name: "open end",
			dateRange: &DateRange{
				Start: now,
			},
			expected: true,
		},
		{
			name: "start equals end",
			dateRange: &DateRange{
				Start: now,
				End:   now,
			},
			expected: true,
		},
		{
			name: "start after end",
			dateRange: &DateRange{
				Start: tomorrow,
				End:   now,
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dateRange.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDateRange_SlackBounds(t *testing.T) {
	from := time.Date(2019, time.November, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2019, time.November, 25, 12, 30, 0, 250*int(time.Millisecond), time.UTC)

	tests := []struct {
		name       string
		dateRange  *DateRange
		wantOldest string
		wantLatest string
	}{
		{
			name:      "nil range",
			dateRange: nil,
		},
		{
			name:      "empty range",
			dateRange: &DateRange{},
		},
		{
			name:       "both bounds",
			dateRange:  &DateRange{Start: from, End: to},
			wantOldest: "1572912000",
			wantLatest: "1574685000.25",
		},
		{
			name:       "start only",
			dateRange:  &DateRange{Start: from},
			wantOldest: "1572912000",
		},
		{
			name:       "end only",
			dateRange:  &DateRange{End: to},
			wantLatest: "1574685000.25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldest, latest := tt.dateRange.SlackBounds()
			if oldest != tt.wantOldest {
				t.Errorf("oldest = %q, want %q", oldest, tt.wantOldest)
			}
			if latest != tt.wantLatest {
				t.Errorf("latest = %q, want %q", latest, tt.wantLatest)
			}
		})
	}
}

func TestEpochSeconds(t *testing.T) {
	ts := time.UnixMilli(1572912000123)
	if got := EpochSeconds(ts); got != 1572912000.123 {
		t.Errorf("EpochSeconds() = %v, want seconds not milliseconds", got)
	}
}
