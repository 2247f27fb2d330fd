package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"saudeplus/config"
	"saudeplus/database"
	appointmentRepoPkg "saudeplus/database/repository/appointment"
	professionalRepoPkg "saudeplus/database/repository/professional"
	userRepoPkg "saudeplus/database/repository/user"
	"saudeplus/handlers"
	"saudeplus/middleware"
	"saudeplus/routes"
	"saudeplus/services/auth"
	"saudeplus/services/booking"
	"saudeplus/services/calendar"
	"saudeplus/services/professional"
	"saudeplus/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	professionalRepo := professionalRepoPkg.NewMongoProfessionalRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()

	// services.
	tokenBroker := calendar.NewGoogleTokenBroker(
		config.AppConfig.GoogleClientID,
		config.AppConfig.GoogleClientSecret,
		config.AppConfig.GoogleTokenURL,
		userRepo,
	)
	eventService := calendar.NewGoogleEventService()

	authService := &auth.DefaultAuthService{
		Users: userRepo,
		Cache: utils.GetAuthCacheClient(),
	}
	googleOAuth := auth.NewGoogleOAuth(userRepo, utils.GetAuthCacheClient())

	bookingService := &booking.DefaultBookingService{
		Appointments:  appointmentRepo,
		Professionals: professionalRepo,
		Users:         userRepo,
		Broker:        tokenBroker,
		Events:        eventService,
	}
	professionalService := &professional.DefaultProfessionalService{
		Repo: professionalRepo,
	}

	hb := &handlers.HandlerBundle{
		Auth:         handlers.NewAuthHandler(authService, googleOAuth),
		Calendar:     handlers.NewCalendarHandler(googleOAuth, tokenBroker, eventService),
		Appointment:  handlers.NewAppointmentHandler(bookingService),
		Professional: handlers.NewProfessionalHandler(professionalService),
		Profile:      handlers.NewProfileHandler(userRepo, professionalRepo),
		UserRepo:     userRepo,
	}
	routes.RegisterRoutes(router, hb)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on port %s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("Server forced to shutdown: %v", err)
	}
	logger.Info("Server exited")
}
