package datetime

import (
	"testing"
	"time"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		dateStr  string
		expected string
	}{
		{
			name:     "Valid date",
			layout:   DateLayout,
			dateStr:  "2025-01-15",
			expected: "2025-01-15",
		},
		{
			name:     "Another valid date",
			layout:   DateLayout,
			dateStr:  "2030-12-31",
			expected: "2030-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(tt.layout, tt.dateStr)
			if result.Format(tt.layout) != tt.expected {
				t.Errorf("MustParseTime() = %s, expected %s", result.Format(tt.layout), tt.expected)
			}
		})
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateLayout, "invalid-date")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"Valid date", "2024-01-01", false},
		{"Leap day", "2024-02-29", false},
		{"Not a leap year", "2023-02-29", true},
		{"Month only", "2024-01", true},
		{"Empty", "", true},
		{"Garbage", "tomorrow", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.date)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
			if !tt.wantErr && result.Format(DateLayout) != tt.date {
				t.Errorf("ParseDate(%q) = %s", tt.date, result.Format(DateLayout))
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
	}{
		{"One month", "2024-01-01", 1, "2024-02-01"},
		{"Across year", "2024-11-15", 3, "2025-02-15"},
		{"Clamp to February leap", "2024-01-31", 1, "2024-02-29"},
		{"Clamp to February", "2023-01-31", 1, "2023-02-28"},
		{"Clamp to thirty days", "2024-03-31", 1, "2024-04-30"},
		{"Day restored after clamp", "2024-01-31", 2, "2024-03-31"},
		{"Thirty years", "2024-01-01", 360, "2054-01-01"},
		{"Negative offset", "2024-03-31", -1, "2024-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AddMonths(MustParseTime(DateLayout, tt.date), tt.months)
			if result.Format(DateLayout) != tt.expected {
				t.Errorf("AddMonths(%s, %d) = %s, expected %s", tt.date, tt.months, result.Format(DateLayout), tt.expected)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	start := MustParseTime(DateLayout, "2024-12-25")
	if got := AddDays(start, 14).Format(DateLayout); got != "2025-01-08" {
		t.Errorf("AddDays() = %s, expected 2025-01-08", got)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    time.Month
		expected int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.expected {
			t.Errorf("DaysInMonth(%d, %s) = %d, expected %d", tt.year, tt.month, got, tt.expected)
		}
	}
}

func TestFormat(t *testing.T) {
	if Format(time.Time{}) != "" {
		t.Errorf("Format() of zero time should be empty")
	}
	if got := Format(MustParseTime(DateLayout, "2024-06-30")); got != "2024-06-30" {
		t.Errorf("Format() = %s, expected 2024-06-30", got)
	}
}
