package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentAddBooking(t *testing.T) {
	t.Run("increments until capacity and flips status", func(t *testing.T) {
		slot := &Appointment{MaxPatients: 2, Status: AppointmentStatusAvailable}

		require.NoError(t, slot.AddBooking())
		assert.Equal(t, 1, slot.CurrentBookings)
		assert.Equal(t, AppointmentStatusAvailable, slot.Status)

		require.NoError(t, slot.AddBooking())
		assert.Equal(t, 2, slot.CurrentBookings)
		assert.Equal(t, AppointmentStatusBooked, slot.Status)
	})

	t.Run("rejects booking past capacity", func(t *testing.T) {
		slot := &Appointment{MaxPatients: 1, CurrentBookings: 1, Status: AppointmentStatusBooked}

		err := slot.AddBooking()
		assert.ErrorIs(t, err, ErrSlotAtCapacity)
		assert.Equal(t, 1, slot.CurrentBookings)
	})

	t.Run("single patient slot books immediately", func(t *testing.T) {
		slot := &Appointment{MaxPatients: 1, Status: AppointmentStatusAvailable}

		require.NoError(t, slot.AddBooking())
		assert.Equal(t, AppointmentStatusBooked, slot.Status)
	})
}

func TestAppointmentReleaseBooking(t *testing.T) {
	t.Run("reopens a booked slot", func(t *testing.T) {
		slot := &Appointment{MaxPatients: 2, CurrentBookings: 2, Status: AppointmentStatusBooked}

		slot.ReleaseBooking()
		assert.Equal(t, 1, slot.CurrentBookings)
		assert.Equal(t, AppointmentStatusAvailable, slot.Status)
	})

	t.Run("floors the counter at zero", func(t *testing.T) {
		slot := &Appointment{MaxPatients: 2, CurrentBookings: 0, Status: AppointmentStatusAvailable}

		slot.ReleaseBooking()
		assert.Equal(t, 0, slot.CurrentBookings)
	})

	t.Run("manually closed slot keeps its status", func(t *testing.T) {
		slot := &Appointment{MaxPatients: 2, CurrentBookings: 2, Status: AppointmentStatusCompleted}

		slot.ReleaseBooking()
		assert.Equal(t, 1, slot.CurrentBookings)
		assert.Equal(t, AppointmentStatusCompleted, slot.Status)
	})
}

func TestAppointmentHasCapacity(t *testing.T) {
	assert.True(t, (&Appointment{MaxPatients: 3, CurrentBookings: 2}).HasCapacity())
	assert.False(t, (&Appointment{MaxPatients: 3, CurrentBookings: 3}).HasCapacity())
}

func TestAppointmentIsTerminal(t *testing.T) {
	assert.False(t, (&Appointment{Status: AppointmentStatusAvailable}).IsTerminal())
	assert.False(t, (&Appointment{Status: AppointmentStatusBooked}).IsTerminal())
	assert.True(t, (&Appointment{Status: AppointmentStatusCompleted}).IsTerminal())
	assert.True(t, (&Appointment{Status: AppointmentStatusCancelled}).IsTerminal())
}

func TestTokenAppointmentHoldsSlot(t *testing.T) {
	holding := []TokenAppointmentStatus{
		TokenAppointmentStatusConfirmed,
		TokenAppointmentStatusPending,
		TokenAppointmentStatusCompleted,
		TokenAppointmentStatusNoShow,
	}
	for _, status := range holding {
		assert.True(t, (&TokenAppointment{Status: status}).HoldsSlot(), "status %s", status)
	}
	assert.False(t, (&TokenAppointment{Status: TokenAppointmentStatusCancelled}).HoldsSlot())
}

func TestTokenAppointmentIsTerminal(t *testing.T) {
	assert.True(t, (&TokenAppointment{Status: TokenAppointmentStatusCancelled}).IsTerminal())
	assert.True(t, (&TokenAppointment{Status: TokenAppointmentStatusCompleted}).IsTerminal())
	assert.False(t, (&TokenAppointment{Status: TokenAppointmentStatusConfirmed}).IsTerminal())
	assert.False(t, (&TokenAppointment{Status: TokenAppointmentStatusNoShow}).IsTerminal())
}
