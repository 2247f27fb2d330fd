package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// DefaultTimeZone is the fixed timezone applied to all booked sessions.
const DefaultTimeZone = "America/Sao_Paulo"

// EventInput describes a calendar event to create on the user's primary
// calendar.
type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
	CreateMeet  bool
}

// EventService creates events on a user's Google Calendar using a bearer
// access token obtained from the TokenBroker.
type EventService interface {
	CreateEvent(ctx context.Context, accessToken string, in EventInput) (*gcal.Event, error)
}

// GoogleEventService implements EventService against the Google Calendar API.
// Endpoint overrides the API base URL; leave empty for production.
type GoogleEventService struct {
	Endpoint string
}

// NewGoogleEventService constructs an EventService for the production API.
func NewGoogleEventService() *GoogleEventService {
	return &GoogleEventService{}
}

func (s *GoogleEventService) CreateEvent(ctx context.Context, accessToken string, in EventInput) (*gcal.Event, error) {
	tz := in.TimeZone
	if tz == "" {
		tz = DefaultTimeZone
	}

	opts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})),
	}
	if s.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.Endpoint))
	}
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("building calendar client: %w", err)
	}

	event := &gcal.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Start:       &gcal.EventDateTime{DateTime: in.Start.Format(time.RFC3339), TimeZone: tz},
		End:         &gcal.EventDateTime{DateTime: in.End.Format(time.RFC3339), TimeZone: tz},
	}

	call := svc.Events.Insert("primary", event)
	if in.CreateMeet {
		event.ConferenceData = &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId: fmt.Sprintf("meet-%d", time.Now().Unix()),
			},
		}
		call = call.ConferenceDataVersion(1)
	}

	created, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("creating calendar event: %w", err)
	}
	return created, nil
}
