package appointmentRepo

import (
	"context"

	"saudeplus/models"
)

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]models.Appointment, error)

	// SetGoogleEventID attaches the mirrored calendar event reference to an
	// already committed appointment.
	SetGoogleEventID(ctx context.Context, id, eventID string) error
}
