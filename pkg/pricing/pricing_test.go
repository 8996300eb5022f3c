package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveDays(t *testing.T) {
	baseDate := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{
			name:     "three day rental",
			start:    baseDate,
			end:      baseDate.AddDate(0, 0, 3),
			expected: 3,
		},
		{
			name:     "single day difference",
			start:    baseDate,
			end:      baseDate.AddDate(0, 0, 1),
			expected: 1,
		},
		{
			name:     "equal dates floor to one day",
			start:    baseDate,
			end:      baseDate,
			expected: 1,
		},
		{
			name:     "inverted dates floor to one day",
			start:    baseDate.AddDate(0, 0, 5),
			end:      baseDate,
			expected: 1,
		},
		{
			name:     "time of day is ignored",
			start:    time.Date(2024, 3, 10, 23, 45, 0, 0, time.UTC),
			end:      time.Date(2024, 3, 13, 0, 15, 0, 0, time.UTC),
			expected: 3,
		},
		{
			name:     "range crossing a month boundary",
			start:    time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EffectiveDays(tt.start, tt.end)
			assert.Equal(t, tt.expected, result)
			assert.GreaterOrEqual(t, result, 1)
		})
	}
}

func TestLateDays(t *testing.T) {
	expected := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		actual   time.Time
		expected time.Time
		want     int
	}{
		{
			name:     "returned two days late",
			actual:   expected.AddDate(0, 0, 2),
			expected: expected,
			want:     2,
		},
		{
			name:     "returned on time",
			actual:   expected,
			expected: expected,
			want:     0,
		},
		{
			name:     "returned early",
			actual:   expected.AddDate(0, 0, -3),
			expected: expected,
			want:     0,
		},
		{
			name:     "late by hours on the same day is not late",
			actual:   time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LateDays(tt.actual, tt.expected))
		})
	}
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name     string
		rate     decimal.Decimal
		days     int
		expected decimal.Decimal
	}{
		{
			name:     "standard rate over three days",
			rate:     decimal.NewFromInt(100),
			days:     3,
			expected: decimal.NewFromInt(300),
		},
		{
			name:     "fractional rate stays exact",
			rate:     decimal.RequireFromString("19.99"),
			days:     7,
			expected: decimal.RequireFromString("139.93"),
		},
		{
			name:     "zero rate",
			rate:     decimal.Zero,
			days:     10,
			expected: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := LineTotal(tt.rate, tt.days)
			assert.True(t, result.Equal(tt.expected),
				"Expected %v, but got %v", tt.expected, result)
			assert.False(t, result.IsNegative())
		})
	}
}
