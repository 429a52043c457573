package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/cinemyst/onboarding-service/internal/api/handler"
	"github.com/cinemyst/onboarding-service/internal/api/middleware"
	"github.com/cinemyst/onboarding-service/internal/core/ports"
)

// Services are the application services the router exposes.
type Services struct {
	Auth       ports.AuthService
	Onboarding ports.OnboardingService
	Profile    ports.ProfileService
	Storage    ports.ObjectStorage

	MaxPictureBytes int64
	// Checks are the readiness probes keyed by dependency name.
	Checks map[string]handler.DependencyCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("cinemyst"))

	authHandler := handler.NewAuthHandler(svc.Auth)
	onboardingHandler := handler.NewOnboardingHandler(svc.Onboarding, svc.MaxPictureBytes)
	profileHandler := handler.NewProfileHandler(svc.Profile, svc.MaxPictureBytes)
	storageHandler := handler.NewStorageHandler(svc.Storage)
	authMiddleware := middleware.Auth(svc.Auth)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.SignUp)
	e.POST("/auth/signin", authHandler.SignIn)
	e.POST("/auth/signout", authHandler.SignOut, authMiddleware)
	e.GET("/auth/session", authHandler.Session, authMiddleware)

	// --- Onboarding wizard ---
	onboarding := e.Group("/v1/onboarding", authMiddleware)
	onboarding.POST("", onboardingHandler.Start)
	onboarding.GET("", onboardingHandler.Get)
	onboarding.PUT("/birthday", onboardingHandler.SubmitBirthday)
	onboarding.PUT("/role", onboardingHandler.SelectRole)
	onboarding.PUT("/details", onboardingHandler.SubmitRoleDetails)
	onboarding.PUT("/location", onboardingHandler.SubmitLocation)
	onboarding.PUT("/picture", onboardingHandler.SubmitPicture)
	onboarding.DELETE("/picture", onboardingHandler.SkipPicture)
	onboarding.POST("/complete", onboardingHandler.Complete)

	// --- Saved profile ---
	profile := e.Group("/v1/profile", authMiddleware)
	profile.GET("", profileHandler.Get)
	profile.PUT("/picture", profileHandler.UploadPicture)

	// --- Public objects ---
	e.GET("/storage/:bucket/*", storageHandler.Get)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(svc.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
