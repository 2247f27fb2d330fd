package booking

import (
	"context"
	"time"

	appointmentRepo "saudeplus/database/repository/appointment"
	professionalRepo "saudeplus/database/repository/professional"
	userRepo "saudeplus/database/repository/user"
	"saudeplus/models"
	"saudeplus/services/calendar"
)

// CreateAppointmentInput carries the booking request.
type CreateAppointmentInput struct {
	ProfessionalID string
	UserID         string
	StartsAt       time.Time
	EndsAt         time.Time
}

// BookingService defines the appointment booking workflow.
type BookingService interface {
	CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*models.Appointment, error)
	ListUserAppointments(ctx context.Context, userID string) ([]models.Appointment, error)
}

// DefaultBookingService implements BookingService. The broker and event
// service are only exercised when the booking user has a connected calendar.
type DefaultBookingService struct {
	Appointments  appointmentRepo.AppointmentRepository
	Professionals professionalRepo.ProfessionalRepository
	Users         userRepo.UserRepository
	Broker        calendar.TokenBroker
	Events        calendar.EventService
}
