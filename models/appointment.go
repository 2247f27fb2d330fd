package models

import "time"

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
)

// Appointment represents a booked session between a user and a professional.
// PriceCents is a snapshot of the professional's price at booking time, so
// later price changes never alter historical bookings. GoogleEventID is
// best-effort metadata: the appointment is authoritative whether or not the
// calendar mirror ever succeeded.
type Appointment struct {
	ID             string    `bson:"id" json:"id"`
	ProfessionalID string    `bson:"professional_id" json:"professional_id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	StartsAt       time.Time `bson:"starts_at" json:"starts_at"`
	EndsAt         time.Time `bson:"ends_at" json:"ends_at"`
	PriceCents     int       `bson:"price_cents" json:"price_cents"`
	Status         string    `bson:"status" json:"status"`
	GoogleEventID  string    `bson:"google_event_id,omitempty" json:"google_event_id,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
