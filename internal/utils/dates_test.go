package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToday(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	tests := []struct {
		name     string
		now      time.Time
		expected string
	}{
		{
			name:     "Midday UTC is the same date in Kolkata",
			now:      time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
			expected: "2024-06-15",
		},
		{
			name: "Late UTC evening is already the next day in Kolkata",
			// 20:00 UTC = 01:30 IST next day
			now:      time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC),
			expected: "2024-06-16",
		},
		{
			name: "Just before the IST midnight boundary",
			// 18:29 UTC = 23:59 IST same day
			now:      time.Date(2024, 6, 15, 18, 29, 0, 0, time.UTC),
			expected: "2024-06-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			today := Today(tt.now, kolkata)
			assert.Equal(t, tt.expected, DateKey(today))
			assert.Equal(t, time.UTC, today.Location())
			assert.Equal(t, 0, today.Hour())
		})
	}
}

func TestNormalize(t *testing.T) {
	ts := time.Date(2024, 3, 9, 17, 45, 12, 0, time.UTC)
	assert.Equal(t, "2024-03-09", DateKey(Normalize(ts)))
	assert.True(t, Normalize(ts).Equal(Normalize(Normalize(ts))))
}

func TestAddDays(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-29", DateKey(AddDays(day, -1)), "leap year boundary")
	assert.Equal(t, "2024-03-31", DateKey(AddDays(day, 30)))
}
