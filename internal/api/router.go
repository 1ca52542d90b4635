package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nekogravitycat/smart-parking-backend/internal/auth"
	"github.com/nekogravitycat/smart-parking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/smart-parking-backend/internal/booking/http"
	"github.com/nekogravitycat/smart-parking-backend/internal/driver"
	driverHttp "github.com/nekogravitycat/smart-parking-backend/internal/driver/http"
	"github.com/nekogravitycat/smart-parking-backend/internal/feedback"
	feedbackHttp "github.com/nekogravitycat/smart-parking-backend/internal/feedback/http"
	"github.com/nekogravitycat/smart-parking-backend/internal/occupancy"
	occupancyHttp "github.com/nekogravitycat/smart-parking-backend/internal/occupancy/http"
	"github.com/nekogravitycat/smart-parking-backend/internal/slot"
	slotHttp "github.com/nekogravitycat/smart-parking-backend/internal/slot/http"
)

// Config holds the services and settings the router is assembled from.
type Config struct {
	IsProduction bool
	CORSOrigins  []string
	Logger       *zap.Logger
	Gatherer     prometheus.Gatherer

	DriverService    driver.Service
	SlotService      slot.Service
	OccupancyService occupancy.Service
	BookingService   booking.Service
	FeedbackService  feedback.Service

	JWTManager *auth.JWTManager
	Revoker    auth.Revoker
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()

	// Global Middleware:
	// - RequestID: Tags the request for log correlation.
	// - AccessLog: Structured request log.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(RequestID(), AccessLog(logger.Named("http")), Recovery(logger))

	// Configure CORS (Cross-Origin Resource Sharing).
	config := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = cfg.CORSOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", headerRequestID}
	config.ExposeHeaders = []string{headerRequestID}
	r.Use(cors.New(config))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Smart Parking API")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	revoker := cfg.Revoker
	if revoker == nil {
		revoker = auth.NopRevoker{}
	}

	// authMiddleware: Validates if the request contains a valid, unrevoked JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager, revoker)
	// adminMiddleware: Further checks if the authenticated driver has the admin role.
	adminMiddleware := auth.RequireAdmin()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	driverHandler := driverHttp.NewHandler(cfg.DriverService, cfg.JWTManager, revoker)
	slotHandler := slotHttp.NewHandler(cfg.SlotService)
	occupancyHandler := occupancyHttp.NewHandler(cfg.OccupancyService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	feedbackHandler := feedbackHttp.NewHandler(cfg.FeedbackService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		driverHttp.RegisterRoutes(v1, driverHandler, authMiddleware, adminMiddleware)
		slotHttp.RegisterRoutes(v1, slotHandler, authMiddleware, adminMiddleware)
		occupancyHttp.RegisterRoutes(v1, occupancyHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		feedbackHttp.RegisterRoutes(v1, feedbackHandler, authMiddleware, adminMiddleware)
	}

	return r
}
