package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	professionalRepo "saudeplus/database/repository/professional"
	userRepo "saudeplus/database/repository/user"
	"saudeplus/models"
	"saudeplus/services/calendar"
	"saudeplus/utils"
)

// mirrorTimeout bounds the whole remote mirror phase (token refresh plus
// event creation). A timeout here never affects the committed booking.
const mirrorTimeout = 20 * time.Second

// CreateAppointment validates the request, commits the appointment locally,
// then mirrors it onto the user's Google Calendar on a best-effort basis.
// Once the local commit succeeds the appointment exists and is returned to
// the caller no matter what happens during the mirror phase.
func (svc *DefaultBookingService) CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if !in.EndsAt.After(in.StartsAt) {
		return nil, &ValidationError{Reason: "end must be strictly after start"}
	}

	user, err := svc.Users.GetByID(ctx, in.UserID)
	if errors.Is(err, userRepo.ErrNotFound) {
		return nil, &AccountNotFoundError{UserID: in.UserID}
	}
	if err != nil {
		return nil, fmt.Errorf("fetching user %s: %w", in.UserID, err)
	}

	prof, err := svc.Professionals.GetByID(ctx, in.ProfessionalID)
	if errors.Is(err, professionalRepo.ErrNotFound) {
		return nil, &ValidationError{Reason: "professional unavailable"}
	}
	if err != nil {
		return nil, fmt.Errorf("fetching professional %s: %w", in.ProfessionalID, err)
	}
	if !prof.IsActive {
		return nil, &ValidationError{Reason: "professional unavailable"}
	}

	// Durability boundary. Price is snapshotted from the professional's
	// current price; no overlap check is made against existing appointments.
	appt := &models.Appointment{
		ID:             uuid.New().String(),
		ProfessionalID: prof.ID,
		UserID:         user.ID,
		StartsAt:       in.StartsAt,
		EndsAt:         in.EndsAt,
		PriceCents:     prof.PriceCents,
		Status:         models.AppointmentConfirmed,
		CreatedAt:      time.Now(),
	}
	if err := svc.Appointments.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("booking commit failed: %w", err)
	}

	if user.CalendarConnected() {
		eventID, mirrorErr := svc.mirrorToCalendar(ctx, user, prof, appt)
		if mirrorErr != nil {
			logger.Warn("calendar mirror failed, appointment kept",
				zap.String("appointmentId", appt.ID),
				zap.String("userId", user.ID),
				zap.Error(mirrorErr))
		} else if err := svc.Appointments.SetGoogleEventID(ctx, appt.ID, eventID); err != nil {
			logger.Warn("failed to attach calendar event reference",
				zap.String("appointmentId", appt.ID),
				zap.String("eventId", eventID),
				zap.Error(err))
		} else {
			appt.GoogleEventID = eventID
		}
	}

	return appt, nil
}

// mirrorToCalendar runs the remote mirror phase and returns the created event
// id. All failures come back as a single error the caller logs and discards.
func (svc *DefaultBookingService) mirrorToCalendar(ctx context.Context, user *models.User, prof *models.Professional, appt *models.Appointment) (string, error) {
	mirrorCtx, cancel := context.WithTimeout(ctx, mirrorTimeout)
	defer cancel()

	token, err := svc.Broker.GetValidAccessToken(mirrorCtx, user)
	if err != nil {
		return "", err
	}

	event, err := svc.Events.CreateEvent(mirrorCtx, token, calendar.EventInput{
		Summary:  fmt.Sprintf("Sessão com %s", prof.FullName),
		Start:    appt.StartsAt,
		End:      appt.EndsAt,
		TimeZone: calendar.DefaultTimeZone,
	})
	if err != nil {
		return "", err
	}
	if event.Id == "" {
		return "", errors.New("calendar response missing event id")
	}
	return event.Id, nil
}

// ListUserAppointments returns the caller's appointments ordered by start time.
func (svc *DefaultBookingService) ListUserAppointments(ctx context.Context, userID string) ([]models.Appointment, error) {
	return svc.Appointments.ListByUser(ctx, userID)
}
