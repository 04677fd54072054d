package usecase

import (
	"testing"
	"time"

	"clinic-booking-api/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPatientEmail(t *testing.T) {
	assert.NoError(t, checkPatientEmail("jane@example.com", "jane@example.com"))
	assert.ErrorIs(t, checkPatientEmail("someone.else@example.com", "jane@example.com"), ErrEmailMismatch)
}

func TestCheckAssistantAssignment(t *testing.T) {
	t.Run("no assistant profile", func(t *testing.T) {
		assert.ErrorIs(t, checkAssistantAssignment(nil, 7), ErrNotAssignedToDoctor)
	})

	t.Run("assigned to another doctor", func(t *testing.T) {
		assistant := &entity.Assistant{ID: 3, DoctorID: 5}
		assert.ErrorIs(t, checkAssistantAssignment(assistant, 7), ErrNotAssignedToDoctor)
	})

	t.Run("assigned doctor passes", func(t *testing.T) {
		assistant := &entity.Assistant{ID: 3, DoctorID: 7}
		assert.NoError(t, checkAssistantAssignment(assistant, 7))
	})
}

func TestCheckWalkInEmail(t *testing.T) {
	assert.NoError(t, checkWalkInEmail("jane@example.com", false))
	assert.NoError(t, checkWalkInEmail("", true))
	assert.ErrorIs(t, checkWalkInEmail("", false), ErrEmailRequired)
}

func TestDuplicateGuardApplies(t *testing.T) {
	assert.True(t, duplicateGuardApplies("jane@example.com"))
	assert.False(t, duplicateGuardApplies(""))
}

func TestCheckSlotBookable(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	openSlot := func() *entity.Appointment {
		return &entity.Appointment{
			ID:              10,
			DoctorID:        4,
			Date:            tomorrow,
			MaxPatients:     3,
			CurrentBookings: 1,
			Status:          entity.AppointmentStatusAvailable,
		}
	}

	t.Run("missing slot", func(t *testing.T) {
		assert.ErrorIs(t, checkSlotBookable(nil, 0, today), ErrSlotNotFound)
	})

	t.Run("doctor mismatch on staff channel", func(t *testing.T) {
		assert.ErrorIs(t, checkSlotBookable(openSlot(), 9, today), ErrSlotDoctorMismatch)
	})

	t.Run("zero expected doctor skips the match", func(t *testing.T) {
		assert.NoError(t, checkSlotBookable(openSlot(), 0, today))
	})

	t.Run("manually closed slot", func(t *testing.T) {
		slot := openSlot()
		slot.Status = entity.AppointmentStatusCancelled
		assert.ErrorIs(t, checkSlotBookable(slot, 4, today), ErrSlotUnavailable)
	})

	t.Run("past date", func(t *testing.T) {
		slot := openSlot()
		slot.Date = today.AddDate(0, 0, -1)
		assert.ErrorIs(t, checkSlotBookable(slot, 4, today), ErrSlotPast)
	})

	t.Run("same-day booking allowed", func(t *testing.T) {
		slot := openSlot()
		slot.Date = today
		assert.NoError(t, checkSlotBookable(slot, 4, today))
	})

	t.Run("full slot", func(t *testing.T) {
		slot := openSlot()
		slot.CurrentBookings = slot.MaxPatients
		assert.ErrorIs(t, checkSlotBookable(slot, 4, today), ErrSlotFull)
	})

	t.Run("open slot passes", func(t *testing.T) {
		assert.NoError(t, checkSlotBookable(openSlot(), 4, today))
	})
}

func TestResolveFee(t *testing.T) {
	doctorFee := decimal.NewFromInt(500)
	override := decimal.NewFromInt(350)

	assert.True(t, resolveFee(doctorFee, nil).Equal(doctorFee))
	assert.True(t, resolveFee(doctorFee, &override).Equal(override))
}

func TestApplyCancel(t *testing.T) {
	t.Run("confirmed booking releases its slot", func(t *testing.T) {
		booking := &entity.TokenAppointment{Status: entity.TokenAppointmentStatusConfirmed}

		releaseSlot, err := applyCancel(booking)
		require.NoError(t, err)
		assert.True(t, releaseSlot)
		assert.Equal(t, entity.TokenAppointmentStatusCancelled, booking.Status)
	})

	t.Run("second cancel of the same booking fails without a release", func(t *testing.T) {
		booking := &entity.TokenAppointment{Status: entity.TokenAppointmentStatusConfirmed}

		_, err := applyCancel(booking)
		require.NoError(t, err)

		releaseSlot, err := applyCancel(booking)
		assert.ErrorIs(t, err, ErrBookingTerminal)
		assert.False(t, releaseSlot)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		booking := &entity.TokenAppointment{Status: entity.TokenAppointmentStatusCompleted}

		releaseSlot, err := applyCancel(booking)
		assert.ErrorIs(t, err, ErrBookingTerminal)
		assert.False(t, releaseSlot)
		assert.Equal(t, entity.TokenAppointmentStatusCompleted, booking.Status)
	})

	t.Run("no-show still holds capacity until cancelled", func(t *testing.T) {
		booking := &entity.TokenAppointment{Status: entity.TokenAppointmentStatusNoShow}

		releaseSlot, err := applyCancel(booking)
		require.NoError(t, err)
		assert.True(t, releaseSlot)
	})
}

func TestApplyStatusChange(t *testing.T) {
	tests := []struct {
		name  string
		from  entity.TokenAppointmentStatus
		to    entity.TokenAppointmentStatus
		delta int
	}{
		{"confirmed to cancelled releases", entity.TokenAppointmentStatusConfirmed, entity.TokenAppointmentStatusCancelled, -1},
		{"cancelled to confirmed re-acquires", entity.TokenAppointmentStatusCancelled, entity.TokenAppointmentStatusConfirmed, 1},
		{"confirmed to completed keeps capacity", entity.TokenAppointmentStatusConfirmed, entity.TokenAppointmentStatusCompleted, 0},
		{"pending to no-show keeps capacity", entity.TokenAppointmentStatusPending, entity.TokenAppointmentStatusNoShow, 0},
		{"no-show to cancelled releases", entity.TokenAppointmentStatusNoShow, entity.TokenAppointmentStatusCancelled, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := &entity.TokenAppointment{Status: tt.from}
			assert.Equal(t, tt.delta, applyStatusChange(booking, tt.to))
			assert.Equal(t, tt.to, booking.Status)
		})
	}
}

func TestCheckBookingAccess(t *testing.T) {
	booking := &entity.TokenAppointment{
		ID:           42,
		DoctorID:     7,
		PatientEmail: "jane@example.com",
	}

	t.Run("admin sees everything", func(t *testing.T) {
		assert.NoError(t, checkBookingAccess(bookingActor{roleID: entity.RoleIDAdmin}, booking))
	})

	t.Run("doctor owns the booking", func(t *testing.T) {
		actor := bookingActor{roleID: entity.RoleIDDoctor, doctorID: 7}
		assert.NoError(t, checkBookingAccess(actor, booking))
	})

	t.Run("doctor of another patient is rejected", func(t *testing.T) {
		actor := bookingActor{roleID: entity.RoleIDDoctor, doctorID: 8}
		assert.ErrorIs(t, checkBookingAccess(actor, booking), ErrBookingNotOwned)
	})

	t.Run("assistant scoped to the booking's doctor", func(t *testing.T) {
		actor := bookingActor{roleID: entity.RoleIDAssistant, doctorID: 7}
		assert.NoError(t, checkBookingAccess(actor, booking))
	})

	t.Run("assistant of another doctor is rejected", func(t *testing.T) {
		actor := bookingActor{roleID: entity.RoleIDAssistant, doctorID: 8}
		assert.ErrorIs(t, checkBookingAccess(actor, booking), ErrBookingNotOwned)
	})

	t.Run("patient matches by email", func(t *testing.T) {
		actor := bookingActor{roleID: entity.RoleIDPatient, email: "jane@example.com"}
		assert.NoError(t, checkBookingAccess(actor, booking))
	})

	t.Run("patient with another email is rejected", func(t *testing.T) {
		actor := bookingActor{roleID: entity.RoleIDPatient, email: "mallory@example.com"}
		assert.ErrorIs(t, checkBookingAccess(actor, booking), ErrBookingNotOwned)
	})

	t.Run("walk-in without email is never patient-visible", func(t *testing.T) {
		walkIn := &entity.TokenAppointment{ID: 43, DoctorID: 7}
		actor := bookingActor{roleID: entity.RoleIDPatient, email: ""}
		assert.ErrorIs(t, checkBookingAccess(actor, walkIn), ErrBookingNotOwned)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		assert.ErrorIs(t, checkBookingAccess(bookingActor{roleID: 99}, booking), ErrBookingNotOwned)
	})
}
