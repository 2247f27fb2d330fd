package models

import "time"

// Professional is a bookable healthcare professional profile.
type Professional struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"user_id,omitempty" json:"user_id,omitempty"` // owning account, optional
	FullName       string    `bson:"full_name" json:"full_name"`
	Profession     string    `bson:"profession" json:"profession"` // "psychology" or "nutrition"
	RegisterCode   string    `bson:"register_code,omitempty" json:"register_code,omitempty"`
	City           string    `bson:"city,omitempty" json:"city,omitempty"`
	State          string    `bson:"state,omitempty" json:"state,omitempty"`
	Bio            string    `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL      string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	WhatsApp       string    `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	PriceCents     int       `bson:"price_cents" json:"price_cents"`         // session price in minor currency units
	SessionMinutes int       `bson:"session_minutes" json:"session_minutes"` // session duration
	Modalities     []string  `bson:"modalities" json:"modalities"`           // "online", "presencial"
	Rating         *float64  `bson:"rating,omitempty" json:"rating,omitempty"`
	IsActive       bool      `bson:"is_active" json:"is_active"`
	SpecialtyIDs   []string  `bson:"specialty_ids,omitempty" json:"specialty_ids,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// Specialty is a catalogue entry professionals can be tagged with.
type Specialty struct {
	ID         string `bson:"id" json:"id"`
	Profession string `bson:"profession" json:"profession"`
	Name       string `bson:"name" json:"name"`
	Slug       string `bson:"slug" json:"slug"`
}

// Availability is a weekly recurring slot a professional attends in.
type Availability struct {
	ID             string `bson:"id" json:"id"`
	ProfessionalID string `bson:"professional_id" json:"professional_id"`
	Weekday        int    `bson:"weekday" json:"weekday"` // 0 = Sunday
	StartTime      string `bson:"start_time" json:"start_time"`
	EndTime        string `bson:"end_time" json:"end_time"`
}

// Location is a physical address where a professional attends.
type Location struct {
	ID             string   `bson:"id" json:"id"`
	ProfessionalID string   `bson:"professional_id" json:"professional_id"`
	Address        string   `bson:"address" json:"address"`
	Lat            *float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng            *float64 `bson:"lng,omitempty" json:"lng,omitempty"`
	IsPrimary      bool     `bson:"is_primary" json:"is_primary"`
}
