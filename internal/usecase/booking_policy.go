package usecase

import (
	"time"

	"clinic-booking-api/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Booking policy rules shared by the channel entrypoints and the
// transactional core. Pure functions over already-loaded rows, so the
// ownership matrix and status transitions are testable without a database.

// checkPatientEmail rejects patient-channel bookings made under a different
// email than the logged-in account, so the duplicate guard cannot be dodged
// by booking under another address.
func checkPatientEmail(requestEmail, accountEmail string) error {
	if requestEmail != accountEmail {
		return ErrEmailMismatch
	}
	return nil
}

// checkAssistantAssignment rejects assistants booking for a doctor they are
// not assigned to.
func checkAssistantAssignment(assistant *entity.Assistant, doctorID int) error {
	if assistant == nil || assistant.DoctorID != doctorID {
		return ErrNotAssignedToDoctor
	}
	return nil
}

// checkWalkInEmail gates staff bookings without a patient email behind the
// AllowAnonymousBooking config flag.
func checkWalkInEmail(email string, allowAnonymous bool) error {
	if email == "" && !allowAnonymous {
		return ErrEmailRequired
	}
	return nil
}

// duplicateGuardApplies reports whether the (doctor, email, date) duplicate
// guard can run. Walk-ins without an email are invisible to it.
func duplicateGuardApplies(email string) bool {
	return email != ""
}

// checkSlotBookable validates a locked slot row for a new booking. An
// expectedDoctorID of zero skips the doctor match (patient channel).
func checkSlotBookable(slot *entity.Appointment, expectedDoctorID int, today time.Time) error {
	if slot == nil {
		return ErrSlotNotFound
	}
	if expectedDoctorID != 0 && slot.DoctorID != expectedDoctorID {
		return ErrSlotDoctorMismatch
	}
	if slot.IsTerminal() {
		return ErrSlotUnavailable
	}
	if slot.Date.Before(today) {
		return ErrSlotPast
	}
	if !slot.HasCapacity() {
		return ErrSlotFull
	}
	return nil
}

// resolveFee picks the explicit staff override when present, the doctor's
// consultation fee otherwise.
func resolveFee(doctorFee decimal.Decimal, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return doctorFee
}

// applyCancel flips a booking to Cancelled and reports whether it was
// holding slot capacity that must now be released. Must run on a booking
// row loaded under a row lock: the second of two concurrent cancels then
// sees Cancelled here and fails instead of releasing capacity twice.
func applyCancel(booking *entity.TokenAppointment) (releaseSlot bool, err error) {
	if booking.IsTerminal() {
		return false, ErrBookingTerminal
	}
	releaseSlot = booking.HoldsSlot()
	booking.Status = entity.TokenAppointmentStatusCancelled
	return releaseSlot, nil
}

// applyStatusChange moves a booking to status and reports the capacity
// adjustment its slot needs: +1 when the booking starts holding capacity
// again, -1 when it stops, 0 otherwise. Same locking requirement as
// applyCancel.
func applyStatusChange(booking *entity.TokenAppointment, status entity.TokenAppointmentStatus) int {
	wasHolding := booking.HoldsSlot()
	booking.Status = status
	nowHolding := booking.HoldsSlot()

	switch {
	case nowHolding && !wasHolding:
		return 1
	case !nowHolding && wasHolding:
		return -1
	default:
		return 0
	}
}

// bookingActor is the authenticated identity resolved for ownership checks.
// Doctors carry their own doctor id, assistants the id of the doctor they
// are assigned to.
type bookingActor struct {
	roleID   int
	doctorID int
	email    string
}

// checkBookingAccess is the per-role ownership matrix for a single booking:
// admins see everything, doctors and assistants their scoped doctor's
// patients, patients their own bookings by email. Walk-in bookings without
// an email are never patient-visible.
func checkBookingAccess(actor bookingActor, booking *entity.TokenAppointment) error {
	switch actor.roleID {
	case entity.RoleIDAdmin:
		return nil
	case entity.RoleIDDoctor, entity.RoleIDAssistant:
		if actor.doctorID != booking.DoctorID {
			return ErrBookingNotOwned
		}
		return nil
	case entity.RoleIDPatient:
		if booking.PatientEmail == "" || booking.PatientEmail != actor.email {
			return ErrBookingNotOwned
		}
		return nil
	default:
		return ErrBookingNotOwned
	}
}
