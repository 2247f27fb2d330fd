package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/googleapi"

	"saudeplus/config"
	"saudeplus/middleware"
	"saudeplus/services/auth"
	"saudeplus/services/calendar"
	"saudeplus/utils"
)

// CalendarHandler serves the Google Calendar connection flow and direct
// event creation.
type CalendarHandler struct {
	OAuth  *auth.GoogleOAuth
	Broker calendar.TokenBroker
	Events calendar.EventService
}

// NewCalendarHandler constructs a CalendarHandler.
func NewCalendarHandler(oauth *auth.GoogleOAuth, broker calendar.TokenBroker, events calendar.EventService) *CalendarHandler {
	return &CalendarHandler{OAuth: oauth, Broker: broker, Events: events}
}

// StatusHandler reports whether the caller has a connected calendar.
func (h *CalendarHandler) StatusHandler(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"connected": false, "reason": "not_logged"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": user.CalendarConnected()})
}

// ConnectHandler starts the calendar consent flow for the caller.
func (h *CalendarHandler) ConnectHandler(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, config.AppConfig.FrontURL)
		return
	}
	state, err := h.OAuth.NewState(c.Request.Context(), user.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to start calendar connection", err.Error())
		return
	}
	c.Redirect(http.StatusFound, h.OAuth.CalendarURL(state))
}

// CallbackHandler completes the calendar consent flow.
func (h *CalendarHandler) CallbackHandler(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing authorization code", "")
		return
	}
	if _, err := h.OAuth.HandleCalendarCallback(c.Request.Context(), code, c.Query("state")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "calendar connection failed", err.Error())
		return
	}
	c.Redirect(http.StatusFound, config.AppConfig.FrontURL+"/calendar")
}

type createEventInput struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	TimeZone    string `json:"timeZone"`
	CreateMeet  bool   `json:"createMeet"`
}

// CreateEventHandler creates an event directly on the caller's calendar.
func (h *CalendarHandler) CreateEventHandler(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	var in createEventInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Start == "" || in.End == "" {
		utils.JSONError(c, http.StatusBadRequest, "start and end are required", "")
		return
	}
	start, err := time.Parse(time.RFC3339, in.Start)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid start", err.Error())
		return
	}
	end, err := time.Parse(time.RFC3339, in.End)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid end", err.Error())
		return
	}
	summary := in.Summary
	if summary == "" {
		summary = "Novo evento"
	}

	token, err := h.Broker.GetValidAccessToken(c.Request.Context(), user)
	if err != nil {
		var notConnected *calendar.NotConnectedError
		var refreshFailed *calendar.RefreshFailedError
		if errors.As(err, &notConnected) || errors.As(err, &refreshFailed) {
			utils.JSONError(c, http.StatusBadRequest, "calendar unavailable", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to obtain access token", err.Error())
		return
	}

	event, err := h.Events.CreateEvent(c.Request.Context(), token, calendar.EventInput{
		Summary:     summary,
		Description: in.Description,
		Start:       start,
		End:         end,
		TimeZone:    in.TimeZone,
		CreateMeet:  in.CreateMeet,
	})
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			c.JSON(gerr.Code, gin.H{"error": gerr.Message})
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "failed to create event", err.Error())
		return
	}
	c.JSON(http.StatusOK, event)
}
