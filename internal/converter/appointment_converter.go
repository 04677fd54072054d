package converter

import (
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		DoctorID:        appointment.DoctorID,
		ClinicID:        appointment.ClinicID,
		Date:            appointment.Date.Format("2006-01-02"),
		StartTime:       appointment.StartTime,
		EndTime:         appointment.EndTime,
		Duration:        appointment.Duration,
		MaxPatients:     appointment.MaxPatients,
		CurrentBookings: appointment.CurrentBookings,
		Status:          string(appointment.Status),
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if appointment.Doctor.ID != 0 {
		response.Doctor = DoctorToResponse(&appointment.Doctor)
	}
	if appointment.Clinic.ID != 0 {
		response.Clinic = ClinicToResponse(&appointment.Clinic)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
