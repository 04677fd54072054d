package usecase

import (
	"testing"

	"clinic-booking-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSlotOverlap(t *testing.T) {
	existing := []entity.Appointment{
		{ID: 1, StartTime: "09:00", EndTime: "09:30", Status: entity.AppointmentStatusAvailable},
		{ID: 2, StartTime: "10:00", EndTime: "10:30", Status: entity.AppointmentStatusBooked},
		{ID: 3, StartTime: "11:00", EndTime: "11:30", Status: entity.AppointmentStatusCancelled},
	}

	t.Run("clashing window reports the existing slot", func(t *testing.T) {
		err := checkSlotOverlap(existing, 555, 585) // 09:15-09:45
		require.Error(t, err)

		var overlapErr *SlotOverlapError
		require.ErrorAs(t, err, &overlapErr)
		assert.Equal(t, 1, overlapErr.ExistingID)
		assert.Equal(t, "09:00", overlapErr.StartTime)
	})

	t.Run("booked slots still block", func(t *testing.T) {
		err := checkSlotOverlap(existing, 615, 645) // 10:15-10:45
		var overlapErr *SlotOverlapError
		require.ErrorAs(t, err, &overlapErr)
		assert.Equal(t, 2, overlapErr.ExistingID)
	})

	t.Run("cancelled slots do not block", func(t *testing.T) {
		assert.NoError(t, checkSlotOverlap(existing, 660, 690)) // 11:00-11:30
	})

	t.Run("touching endpoints allowed", func(t *testing.T) {
		assert.NoError(t, checkSlotOverlap(existing, 570, 600)) // 09:30-10:00
	})

	t.Run("no existing slots", func(t *testing.T) {
		assert.NoError(t, checkSlotOverlap(nil, 540, 570))
	})
}
