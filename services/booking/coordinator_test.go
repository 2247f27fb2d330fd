package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"

	appointmentRepo "saudeplus/database/repository/appointment"
	professionalRepo "saudeplus/database/repository/professional"
	userRepo "saudeplus/database/repository/user"
	"saudeplus/models"
	"saudeplus/services/calendar"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, userRepo.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (r *fakeUserRepo) GetByGoogleSub(_ context.Context, sub string) (*models.User, error) {
	return nil, userRepo.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id, name, phone string) error { return nil }

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error { return nil }

func (r *fakeUserRepo) SetGoogleSub(_ context.Context, id, sub string) error { return nil }

func (r *fakeUserRepo) UpdateGoogleTokens(_ context.Context, id, access, refresh string, expiry int64) error {
	return nil
}

type fakeProfessionalRepo struct {
	professionals map[string]*models.Professional
}

func (r *fakeProfessionalRepo) Create(_ context.Context, p *models.Professional) error {
	r.professionals[p.ID] = p
	return nil
}

func (r *fakeProfessionalRepo) GetByID(_ context.Context, id string) (*models.Professional, error) {
	if p, ok := r.professionals[id]; ok {
		return p, nil
	}
	return nil, professionalRepo.ErrNotFound
}

func (r *fakeProfessionalRepo) GetByUserID(_ context.Context, userID string) (*models.Professional, error) {
	return nil, professionalRepo.ErrNotFound
}

func (r *fakeProfessionalRepo) Update(_ context.Context, id string, fields map[string]interface{}) error {
	return nil
}

func (r *fakeProfessionalRepo) Delete(_ context.Context, id string) error { return nil }

func (r *fakeProfessionalRepo) List(_ context.Context, f professionalRepo.ListFilter) ([]models.Professional, error) {
	return nil, nil
}

func (r *fakeProfessionalRepo) AddAvailability(_ context.Context, av *models.Availability) error {
	return nil
}

func (r *fakeProfessionalRepo) AddLocation(_ context.Context, loc *models.Location) error { return nil }

func (r *fakeProfessionalRepo) ListSpecialties(_ context.Context, profession string) ([]models.Specialty, error) {
	return nil, nil
}

type fakeAppointmentRepo struct {
	appointments map[string]*models.Appointment
	eventIDs     map[string]string
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appointments: map[string]*models.Appointment{},
		eventIDs:     map[string]string{},
	}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appt *models.Appointment) error {
	stored := *appt
	r.appointments[appt.ID] = &stored
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	if a, ok := r.appointments[id]; ok {
		return a, nil
	}
	return nil, appointmentRepo.ErrNotFound
}

func (r *fakeAppointmentRepo) ListByUser(_ context.Context, userID string) ([]models.Appointment, error) {
	var items []models.Appointment
	for _, a := range r.appointments {
		if a.UserID == userID {
			items = append(items, *a)
		}
	}
	return items, nil
}

func (r *fakeAppointmentRepo) SetGoogleEventID(_ context.Context, id, eventID string) error {
	a, ok := r.appointments[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	a.GoogleEventID = eventID
	r.eventIDs[id] = eventID
	return nil
}

type fakeBroker struct {
	token string
	err   error
	calls int
}

func (b *fakeBroker) GetValidAccessToken(_ context.Context, user *models.User) (string, error) {
	b.calls++
	if b.err != nil {
		return "", b.err
	}
	return b.token, nil
}

type fakeEvents struct {
	eventID string
	err     error
	calls   int
	last    calendar.EventInput
	token   string
}

func (e *fakeEvents) CreateEvent(_ context.Context, accessToken string, in calendar.EventInput) (*gcal.Event, error) {
	e.calls++
	e.token = accessToken
	e.last = in
	if e.err != nil {
		return nil, e.err
	}
	return &gcal.Event{Id: e.eventID}, nil
}

type fixture struct {
	svc          *DefaultBookingService
	appointments *fakeAppointmentRepo
	broker       *fakeBroker
	events       *fakeEvents
}

func newFixture(user *models.User, prof *models.Professional) *fixture {
	appointments := newFakeAppointmentRepo()
	broker := &fakeBroker{token: "a1"}
	events := &fakeEvents{eventID: "evt123"}
	users := &fakeUserRepo{users: map[string]*models.User{}}
	if user != nil {
		users.users[user.ID] = user
	}
	professionals := &fakeProfessionalRepo{professionals: map[string]*models.Professional{}}
	if prof != nil {
		professionals.professionals[prof.ID] = prof
	}
	return &fixture{
		svc: &DefaultBookingService{
			Appointments:  appointments,
			Professionals: professionals,
			Users:         users,
			Broker:        broker,
			Events:        events,
		},
		appointments: appointments,
		broker:       broker,
		events:       events,
	}
}

func activeProfessional() *models.Professional {
	return &models.Professional{
		ID:         "p1",
		FullName:   "Dra. Ana Pereira",
		Profession: "psychology",
		PriceCents: 8000,
		IsActive:   true,
	}
}

func validInput() CreateAppointmentInput {
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	return CreateAppointmentInput{
		ProfessionalID: "p1",
		UserID:         "u1",
		StartsAt:       start,
		EndsAt:         start.Add(50 * time.Minute),
	}
}

func TestCreateAppointmentWithoutCalendarConnection(t *testing.T) {
	f := newFixture(&models.User{ID: "u1", Email: "a@b.com"}, activeProfessional())

	appt, err := f.svc.CreateAppointment(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, models.AppointmentConfirmed, appt.Status)
	assert.Equal(t, 8000, appt.PriceCents)
	assert.Empty(t, appt.GoogleEventID)
	assert.Len(t, f.appointments.appointments, 1)
	// No calendar connection means the broker is never consulted.
	assert.Equal(t, 0, f.broker.calls)
	assert.Equal(t, 0, f.events.calls)
}

func TestCreateAppointmentRejectsEndNotAfterStart(t *testing.T) {
	f := newFixture(&models.User{ID: "u1"}, activeProfessional())
	in := validInput()
	in.EndsAt = in.StartsAt

	_, err := f.svc.CreateAppointment(context.Background(), in)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, f.appointments.appointments)
}

func TestCreateAppointmentRejectsUnknownProfessional(t *testing.T) {
	f := newFixture(&models.User{ID: "u1"}, nil)

	_, err := f.svc.CreateAppointment(context.Background(), validInput())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, f.appointments.appointments)
}

func TestCreateAppointmentRejectsInactiveProfessional(t *testing.T) {
	prof := activeProfessional()
	prof.IsActive = false
	f := newFixture(&models.User{ID: "u1"}, prof)

	_, err := f.svc.CreateAppointment(context.Background(), validInput())

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, f.appointments.appointments)
}

func TestCreateAppointmentRejectsUnknownUser(t *testing.T) {
	f := newFixture(nil, activeProfessional())

	_, err := f.svc.CreateAppointment(context.Background(), validInput())

	var accountErr *AccountNotFoundError
	require.ErrorAs(t, err, &accountErr)
	assert.Empty(t, f.appointments.appointments)
}

func TestCreateAppointmentMirrorsToCalendar(t *testing.T) {
	f := newFixture(&models.User{ID: "u1", GoogleRefreshToken: "r1"}, activeProfessional())

	appt, err := f.svc.CreateAppointment(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, "evt123", appt.GoogleEventID)
	assert.Equal(t, "evt123", f.appointments.eventIDs[appt.ID])
	assert.Equal(t, "a1", f.events.token)
	assert.Equal(t, "Sessão com Dra. Ana Pereira", f.events.last.Summary)
	assert.Equal(t, calendar.DefaultTimeZone, f.events.last.TimeZone)
	assert.Equal(t, appt.StartsAt, f.events.last.Start)
	assert.Equal(t, appt.EndsAt, f.events.last.End)
}

func TestCreateAppointmentSurvivesTokenRefreshFailure(t *testing.T) {
	f := newFixture(&models.User{ID: "u1", GoogleRefreshToken: "r1"}, activeProfessional())
	f.broker.err = &calendar.RefreshFailedError{StatusCode: 400, Body: `{"error":"invalid_grant"}`}

	appt, err := f.svc.CreateAppointment(context.Background(), validInput())

	require.NoError(t, err)
	assert.Empty(t, appt.GoogleEventID)
	assert.Len(t, f.appointments.appointments, 1)
	assert.Equal(t, 0, f.events.calls)
}

func TestCreateAppointmentSurvivesCalendarFailure(t *testing.T) {
	f := newFixture(&models.User{ID: "u1", GoogleRefreshToken: "r1"}, activeProfessional())
	f.events.err = errors.New("Post \"https://www.googleapis.com\": context deadline exceeded")

	appt, err := f.svc.CreateAppointment(context.Background(), validInput())

	require.NoError(t, err)
	assert.Empty(t, appt.GoogleEventID)
	stored := f.appointments.appointments[appt.ID]
	require.NotNil(t, stored)
	assert.Equal(t, models.AppointmentConfirmed, stored.Status)
	assert.Empty(t, stored.GoogleEventID)
}

func TestCreateAppointmentPriceSnapshotIsStable(t *testing.T) {
	prof := activeProfessional()
	f := newFixture(&models.User{ID: "u1"}, prof)

	appt, err := f.svc.CreateAppointment(context.Background(), validInput())
	require.NoError(t, err)

	// A later price change must not leak into the committed booking.
	prof.PriceCents = 12000
	stored, err := f.appointments.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, 8000, stored.PriceCents)
}

func TestCreateAppointmentAllowsOverlappingBookings(t *testing.T) {
	// No conflict detection exists for the same professional and window;
	// both bookings succeed. Kept as observed behavior, pending a product
	// decision on double-booking.
	f := newFixture(&models.User{ID: "u1"}, activeProfessional())

	first, err := f.svc.CreateAppointment(context.Background(), validInput())
	require.NoError(t, err)
	second, err := f.svc.CreateAppointment(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, f.appointments.appointments, 2)
}

func TestListUserAppointments(t *testing.T) {
	f := newFixture(&models.User{ID: "u1"}, activeProfessional())
	_, err := f.svc.CreateAppointment(context.Background(), validInput())
	require.NoError(t, err)

	items, err := f.svc.ListUserAppointments(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = f.svc.ListUserAppointments(context.Background(), "other")
	require.NoError(t, err)
	assert.Empty(t, items)
}
