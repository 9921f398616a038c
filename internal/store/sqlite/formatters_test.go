package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "Valid time",
			input:    time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
			expected: "2024-01-15T10:30:45.000Z",
		},
		{
			name:     "Time with timezone is stored as UTC",
			input:    time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("EST", -5*3600)),
			expected: "2024-06-15T19:30:00.000Z",
		},
		{
			name:     "Time with nanoseconds keeps milliseconds",
			input:    time.Date(2024, 3, 10, 9, 15, 30, 123456789, time.UTC),
			expected: "2024-03-10T09:15:30.123Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestFormatTimeForDB_SortsLikeTime(t *testing.T) {
	earlier := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(5 * time.Millisecond)
	assert.Less(t, FormatTimeForDB(earlier), FormatTimeForDB(later))
}

func TestParseTimeFromDB(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "Millisecond UTC",
			input:    "2024-01-15T10:30:45.250Z",
			expected: time.Date(2024, 1, 15, 10, 30, 45, 250000000, time.UTC),
		},
		{
			name:     "Offset converted to UTC",
			input:    "2024-06-15T14:30:00-05:00",
			expected: time.Date(2024, 6, 15, 19, 30, 0, 0, time.UTC),
		},
		{
			name:    "Invalid",
			input:   "yesterday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeFromDB(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got))
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}
