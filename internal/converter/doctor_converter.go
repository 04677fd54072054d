package converter

import (
	"clinic-booking-api/internal/delivery/dto"
	"clinic-booking-api/internal/domain/entity"

	"github.com/google/uuid"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:              doctor.ID,
		Name:            doctor.Name,
		Specialization:  doctor.Specialization,
		Experience:      doctor.Experience,
		LicenseNumber:   doctor.LicenseNumber,
		Qualification:   doctor.Qualification,
		Bio:             doctor.Bio,
		ConsultationFee: doctor.ConsultationFee,
		CreatedAt:       doctor.CreatedAt,
	}

	if doctor.User.ID != uuid.Nil {
		response.Email = doctor.User.Email
		response.IsActive = doctor.User.IsActive
	}

	return response
}

// DoctorsToResponses converts a slice of Doctor entities to DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		resp := DoctorToResponse(&doctor)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// DoctorToPublicResponse strips account fields for the public directory
func DoctorToPublicResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	response := DoctorToResponse(doctor)
	if response == nil {
		return nil
	}
	response.LicenseNumber = ""
	response.IsActive = nil
	return response
}

// DoctorsToPublicResponses converts a slice of Doctor entities to public DTOs
func DoctorsToPublicResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		resp := DoctorToPublicResponse(&doctor)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
