package calendar

import "fmt"

// NotConnectedError indicates the account never completed the Google Calendar
// consent flow. The caller must route the user through the connect endpoint;
// retrying will not help.
type NotConnectedError struct {
	UserID string
}

func (e *NotConnectedError) Error() string {
	return fmt.Sprintf("calendar not connected for user %s", e.UserID)
}

// RefreshFailedError indicates the token endpoint rejected the refresh
// exchange or returned a malformed response. The upstream body is kept for
// diagnostics.
type RefreshFailedError struct {
	StatusCode int
	Body       string
}

func (e *RefreshFailedError) Error() string {
	return fmt.Sprintf("token refresh failed (status %d): %s", e.StatusCode, e.Body)
}
