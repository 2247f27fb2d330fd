package handlers

import (
	userRepo "saudeplus/database/repository/user"
)

// HandlerBundle groups all handlers plus the repositories middleware needs.
type HandlerBundle struct {
	Auth         *AuthHandler
	Calendar     *CalendarHandler
	Appointment  *AppointmentHandler
	Professional *ProfessionalHandler
	Profile      *ProfileHandler
	UserRepo     userRepo.UserRepository
}
