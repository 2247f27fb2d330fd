package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"saudeplus/middleware"
	"saudeplus/services/booking"
	"saudeplus/utils"
)

// AppointmentHandler serves booking endpoints.
type AppointmentHandler struct {
	Svc booking.BookingService
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(svc booking.BookingService) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc}
}

type createAppointmentInput struct {
	ProfessionalID string `json:"professional_id"`
	StartsAt       string `json:"starts_at"`
	EndsAt         string `json:"ends_at"`
}

// CreateAppointmentHandler books a session with a professional. The booking
// succeeds whether or not the calendar mirror does.
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	var in createAppointmentInput
	if err := c.ShouldBindJSON(&in); err != nil || in.ProfessionalID == "" {
		utils.JSONError(c, http.StatusBadRequest, "professional_id, starts_at and ends_at are required", "")
		return
	}
	startsAt, err := time.Parse(time.RFC3339, in.StartsAt)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid starts_at", err.Error())
		return
	}
	endsAt, err := time.Parse(time.RFC3339, in.EndsAt)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid ends_at", err.Error())
		return
	}

	appt, err := h.Svc.CreateAppointment(c.Request.Context(), booking.CreateAppointmentInput{
		ProfessionalID: in.ProfessionalID,
		UserID:         user.ID,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
	})
	if err != nil {
		var validationErr *booking.ValidationError
		var accountErr *booking.AccountNotFoundError
		switch {
		case errors.As(err, &validationErr):
			utils.JSONError(c, http.StatusBadRequest, validationErr.Reason, "")
		case errors.As(err, &accountErr):
			utils.JSONError(c, http.StatusNotFound, "user not found", "")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to create appointment", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": appt.ID, "appointment": appt})
}

// ListAppointmentsHandler returns the caller's appointments.
func (h *AppointmentHandler) ListAppointmentsHandler(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated", "")
		return
	}
	items, err := h.Svc.ListUserAppointments(c.Request.Context(), user.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
