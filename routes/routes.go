package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"saudeplus/handlers"
	"saudeplus/middleware"
)

// RegisterAuthRoutes registers local and Google authentication endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/auth/register", hb.Auth.RegisterHandler)
	r.POST("/auth/login", hb.Auth.LoginHandler)
	r.POST("/auth/logout", hb.Auth.LogoutHandler)
	r.POST("/auth/forgot-password", hb.Auth.ForgotPasswordHandler)
	r.POST("/auth/reset-password", hb.Auth.ResetPasswordHandler)

	r.GET("/auth/google/login", hb.Auth.GoogleLoginHandler)
	r.GET("/oauth2/callback/login", hb.Auth.GoogleLoginCallbackHandler)
}

// RegisterCalendarRoutes registers the Google Calendar connection flow and
// direct event creation.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// The OAuth callback is reached by redirect from Google, without a token.
	r.GET("/oauth2/callback/calendar", hb.Calendar.CallbackHandler)

	protected := r.Group("")
	protected.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
	protected.GET("/calendar/status", hb.Calendar.StatusHandler)
	protected.GET("/auth/google/calendar", hb.Calendar.ConnectHandler)
	protected.POST("/calendar/events", hb.Calendar.CreateEventHandler)
}

// RegisterAppointmentRoutes registers booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/appointments")
	api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
	api.POST("", hb.Appointment.CreateAppointmentHandler)
	api.GET("", hb.Appointment.ListAppointmentsHandler)
}

// RegisterProfessionalRoutes registers the public catalogue and admin
// management endpoints.
func RegisterProfessionalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/specialties", hb.Professional.ListSpecialtiesHandler)
	r.GET("/professionals", hb.Professional.ListProfessionalsHandler)
	r.GET("/professionals/:id", hb.Professional.GetProfessionalHandler)

	admin := r.Group("/admin")
	admin.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
	admin.POST("/professionals", hb.Professional.CreateProfessionalHandler)
	admin.PUT("/professionals/:id", hb.Professional.UpdateProfessionalHandler)
	admin.DELETE("/professionals/:id", hb.Professional.DeleteProfessionalHandler)
	admin.POST("/professionals/:id/availability", hb.Professional.AddAvailabilityHandler)
	admin.POST("/professionals/:id/locations", hb.Professional.AddLocationHandler)
}

// RegisterProfileRoutes registers the caller-profile endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
	api.GET("/me", hb.Profile.GetMeHandler)
	api.PUT("/me", hb.Profile.UpdateMeHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC().Format(time.RFC3339)})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterCalendarRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterProfessionalRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterHealthRoute(r)
}
