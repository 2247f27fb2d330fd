package models

import "time"

// User represents a platform account, either a patient or the owner of a
// professional profile. The Google token fields are populated once the user
// completes the calendar consent flow; a non-empty refresh token is the sole
// evidence that the calendar connection exists.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name,omitempty" json:"name,omitempty"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string    `bson:"password_hash,omitempty" json:"-"`
	GoogleSub    string    `bson:"google_sub,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`

	// Google Calendar connection. Access token and expiry are only meaningful
	// together; both are rewritten on every refresh.
	GoogleAccessToken  string `bson:"google_access_token,omitempty" json:"-"`
	GoogleRefreshToken string `bson:"google_refresh_token,omitempty" json:"-"`
	GoogleTokenExpiry  int64  `bson:"google_token_expiry,omitempty" json:"-"`
}

// CalendarConnected reports whether the user has linked a Google Calendar.
func (u *User) CalendarConnected() bool {
	return u.GoogleRefreshToken != ""
}
