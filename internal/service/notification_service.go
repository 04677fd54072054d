package service

import (
	"context"

	"clinic-booking-api/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// NotificationService delivers booking lifecycle messages to patients.
// Callers fire these off after commit and never fail the request on a
// notification error.
type NotificationService interface {
	SendBookingConfirmation(ctx context.Context, booking *entity.TokenAppointment)
	SendBookingCancellation(ctx context.Context, booking *entity.TokenAppointment)
	SendStatusChange(ctx context.Context, booking *entity.TokenAppointment, oldStatus entity.TokenAppointmentStatus)
}

// logNotificationService is the default delivery backend: it writes the
// notification payload to the structured log. Walk-in bookings without an
// email are skipped.
type logNotificationService struct {
	log *logrus.Logger
}

func NewLogNotificationService(log *logrus.Logger) NotificationService {
	return &logNotificationService{log: log}
}

func (s *logNotificationService) SendBookingConfirmation(ctx context.Context, booking *entity.TokenAppointment) {
	if booking.PatientEmail == "" {
		return
	}
	s.log.WithFields(logrus.Fields{
		"type":         "booking_confirmation",
		"to":           booking.PatientEmail,
		"token_number": booking.TokenNumber,
		"date":         booking.Date.Format("2006-01-02"),
		"time":         booking.Time,
	}).Info("Notification sent")
}

func (s *logNotificationService) SendBookingCancellation(ctx context.Context, booking *entity.TokenAppointment) {
	if booking.PatientEmail == "" {
		return
	}
	s.log.WithFields(logrus.Fields{
		"type":         "booking_cancellation",
		"to":           booking.PatientEmail,
		"token_number": booking.TokenNumber,
	}).Info("Notification sent")
}

func (s *logNotificationService) SendStatusChange(ctx context.Context, booking *entity.TokenAppointment, oldStatus entity.TokenAppointmentStatus) {
	if booking.PatientEmail == "" {
		return
	}
	s.log.WithFields(logrus.Fields{
		"type":         "booking_status_change",
		"to":           booking.PatientEmail,
		"token_number": booking.TokenNumber,
		"old_status":   string(oldStatus),
		"new_status":   string(booking.Status),
	}).Info("Notification sent")
}
