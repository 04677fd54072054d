package converter

import (
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
)

// BookingToResponse converts a TokenAppointment entity to BookingResponse DTO
func BookingToResponse(booking *entity.TokenAppointment) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:              booking.ID,
		TokenNumber:     booking.TokenNumber,
		PatientName:     booking.PatientName,
		PatientEmail:    booking.PatientEmail,
		PatientPhone:    booking.PatientPhone,
		PatientAge:      booking.PatientAge,
		PatientGender:   booking.PatientGender,
		PatientLocation: booking.PatientLocation,
		Date:            booking.Date.Format("2006-01-02"),
		Time:            booking.Time,
		Status:          string(booking.Status),
		BookedVia:       string(booking.BookedVia),
		FeeCharged:      booking.FeeCharged,
		ReasonForVisit:  booking.ReasonForVisit,
		Notes:           booking.Notes,
		DoctorID:        booking.DoctorID,
		AppointmentID:   booking.AppointmentID,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}

	if booking.Doctor.ID != 0 {
		response.Doctor = DoctorToResponse(&booking.Doctor)
	}
	if booking.Appointment.ID != 0 {
		response.Appointment = AppointmentToResponse(&booking.Appointment)
	}

	return response
}

// BookingsToResponses converts a slice of TokenAppointment entities to DTOs
func BookingsToResponses(bookings []entity.TokenAppointment) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
