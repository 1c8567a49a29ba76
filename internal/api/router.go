package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mentorloop/mentorloop-backend/internal/auth"
	"github.com/mentorloop/mentorloop-backend/internal/availability"
	availabilityHttp "github.com/mentorloop/mentorloop-backend/internal/availability/http"
	"github.com/mentorloop/mentorloop-backend/internal/booking"
	bookingHttp "github.com/mentorloop/mentorloop-backend/internal/booking/http"
	"github.com/mentorloop/mentorloop-backend/internal/category"
	categoryHttp "github.com/mentorloop/mentorloop-backend/internal/category/http"
	"github.com/mentorloop/mentorloop-backend/internal/lifecycle"
	"github.com/mentorloop/mentorloop-backend/internal/listing"
	listingHttp "github.com/mentorloop/mentorloop-backend/internal/listing/http"
	"github.com/mentorloop/mentorloop-backend/internal/mentor"
	mentorHttp "github.com/mentorloop/mentorloop-backend/internal/mentor/http"
	"github.com/mentorloop/mentorloop-backend/internal/session"
	sessionHttp "github.com/mentorloop/mentorloop-backend/internal/session/http"
	"github.com/mentorloop/mentorloop-backend/internal/user"
)

// Config holds the services and settings the router needs to assemble the
// HTTP surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string // comma-separated allowed origins for production

	UserService         user.Service
	MentorService       mentor.Service
	CategoryService     category.Service
	ListingService      listing.Service
	AvailabilityService availability.Service
	BookingService      booking.Service
	SessionService      session.Service
	Orchestrator        *lifecycle.Orchestrator
	JWTManager          *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // local frontend
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the authenticated user has admin privileges.
	adminMiddleware := RequireAdmin(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	authHandler := NewAuthHandler(cfg.UserService, cfg.MentorService, cfg.JWTManager)
	mentorHandler := mentorHttp.NewHandler(cfg.MentorService)
	categoryHandler := categoryHttp.NewHandler(cfg.CategoryService)
	listingHandler := listingHttp.NewHandler(cfg.ListingService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.Orchestrator, cfg.MentorService)
	sessionHandler := sessionHttp.NewHandler(cfg.SessionService, cfg.MentorService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/me", authMiddleware, authHandler.Me)

		mentorHttp.RegisterRoutes(v1, mentorHandler, authMiddleware)
		categoryHttp.RegisterRoutes(v1, categoryHandler, authMiddleware, adminMiddleware)
		listingHttp.RegisterRoutes(v1, listingHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		sessionHttp.RegisterRoutes(v1, sessionHandler, authMiddleware)
	}

	return r
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
