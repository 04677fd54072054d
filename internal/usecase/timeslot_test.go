package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"14:00:00", 840, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"nine", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parseClock(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", formatClock(0))
	assert.Equal(t, "09:05", formatClock(545))
	assert.Equal(t, "23:59", formatClock(1439))
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		want           bool
	}{
		{"identical", 540, 600, 540, 600, true},
		{"partial overlap", 540, 600, 570, 630, true},
		{"contained", 540, 660, 570, 600, true},
		{"touching endpoints", 540, 600, 600, 660, false},
		{"touching reversed", 600, 660, 540, 600, false},
		{"disjoint", 540, 600, 700, 760, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, intervalsOverlap(tt.s1, tt.e1, tt.s2, tt.e2))
			// Overlap is symmetric
			assert.Equal(t, tt.want, intervalsOverlap(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestGenerateTimeSlots(t *testing.T) {
	t.Run("exact fit", func(t *testing.T) {
		slots, err := generateTimeSlots("09:00", "10:00", 30)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, timeSlot{Start: "09:00", End: "09:30"}, slots[0])
		assert.Equal(t, timeSlot{Start: "09:30", End: "10:00"}, slots[1])
	})

	t.Run("trailing remainder dropped", func(t *testing.T) {
		slots, err := generateTimeSlots("09:00", "10:15", 30)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, "10:00", slots[1].End)
	})

	t.Run("window shorter than duration", func(t *testing.T) {
		slots, err := generateTimeSlots("09:00", "09:20", 30)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := generateTimeSlots("10:00", "09:00", 30)
		assert.Error(t, err)
	})

	t.Run("start equals end", func(t *testing.T) {
		_, err := generateTimeSlots("09:00", "09:00", 30)
		assert.Error(t, err)
	})

	t.Run("non-positive duration", func(t *testing.T) {
		_, err := generateTimeSlots("09:00", "10:00", 0)
		assert.Error(t, err)
	})
}

func TestFormatTokenNumber(t *testing.T) {
	date := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "TKN720250309001", formatTokenNumber(7, date, 1))
	assert.Equal(t, "TKN720250309012", formatTokenNumber(7, date, 12))
	assert.Equal(t, "TKN4220250309123", formatTokenNumber(42, date, 123))
	// Sequence keeps growing past three digits instead of wrapping
	assert.Equal(t, "TKN7202503091000", formatTokenNumber(7, date, 1000))
}
