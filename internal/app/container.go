package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/nekogravitycat/smart-parking-backend/internal/api"
	"github.com/nekogravitycat/smart-parking-backend/internal/auth"
	"github.com/nekogravitycat/smart-parking-backend/internal/booking"
	"github.com/nekogravitycat/smart-parking-backend/internal/driver"
	"github.com/nekogravitycat/smart-parking-backend/internal/feedback"
	"github.com/nekogravitycat/smart-parking-backend/internal/metrics"
	"github.com/nekogravitycat/smart-parking-backend/internal/occupancy"
	"github.com/nekogravitycat/smart-parking-backend/internal/slot"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	CORSOrigins  []string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	Logger       *zap.Logger

	// Revoker defaults to auth.NopRevoker.
	Revoker auth.Revoker
	// Registry defaults to a fresh registry with runtime collectors.
	Registry *prometheus.Registry
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Refresher  *metrics.Refresher

	DriverService    driver.Service
	OccupancyService occupancy.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	revoker := cfg.Revoker
	if revoker == nil {
		revoker = auth.NopRevoker{}
	}

	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	appMetrics := metrics.New(registry)

	// Driver Module
	driverRepo := driver.NewPgxRepository(cfg.DBPool)
	driverService := driver.NewService(driverRepo, passwordHasher)

	// Occupancy Engine
	occupancyService := occupancy.NewService(occupancy.NewPgxStore(cfg.DBPool), appMetrics, logger)

	// Slot Module (freeing a slot through edit is an engine cancel)
	slotRepo := slot.NewPgxRepository(cfg.DBPool)
	slotService := slot.NewService(slotRepo, occupancyService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo)

	// Feedback Module
	feedbackRepo := feedback.NewPgxRepository(cfg.DBPool)
	feedbackService := feedback.NewService(feedbackRepo)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:     cfg.IsProduction,
		CORSOrigins:      cfg.CORSOrigins,
		Logger:           logger,
		Gatherer:         registry,
		DriverService:    driverService,
		SlotService:      slotService,
		OccupancyService: occupancyService,
		BookingService:   bookingService,
		FeedbackService:  feedbackService,
		JWTManager:       jwtManager,
		Revoker:          revoker,
	})

	return &Container{
		Router:           router,
		JWTManager:       jwtManager,
		Refresher:        metrics.NewRefresher(slotRepo, appMetrics, logger),
		DriverService:    driverService,
		OccupancyService: occupancyService,
	}
}
