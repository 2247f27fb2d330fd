package booking

import "fmt"

// ValidationError rejects a booking request before anything is persisted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid booking request: %s", e.Reason)
}

// AccountNotFoundError indicates the booking user does not exist.
type AccountNotFoundError struct {
	UserID string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %s not found", e.UserID)
}
