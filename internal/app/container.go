package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mentorloop/mentorloop-backend/internal/api"
	"github.com/mentorloop/mentorloop-backend/internal/auth"
	"github.com/mentorloop/mentorloop-backend/internal/availability"
	"github.com/mentorloop/mentorloop-backend/internal/booking"
	"github.com/mentorloop/mentorloop-backend/internal/category"
	"github.com/mentorloop/mentorloop-backend/internal/config"
	"github.com/mentorloop/mentorloop-backend/internal/lifecycle"
	"github.com/mentorloop/mentorloop-backend/internal/listing"
	"github.com/mentorloop/mentorloop-backend/internal/mentor"
	"github.com/mentorloop/mentorloop-backend/internal/notify"
	"github.com/mentorloop/mentorloop-backend/internal/pkg/storage"
	"github.com/mentorloop/mentorloop-backend/internal/session"
	"github.com/mentorloop/mentorloop-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Notifier   notify.Notifier
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool, logger *zap.Logger) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, err
	}
	processor := storage.NewImageProcessor()

	// Session completion events go to AMQP when configured, otherwise to
	// the log.
	var notifier notify.Notifier
	if cfg.AMQPURL != "" {
		notifier, err = notify.NewAMQPNotifier(cfg.AMQPURL)
		if err != nil {
			return nil, err
		}
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	// User Module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher, logger)

	// Mentor Module
	mentorRepo := mentor.NewPgxRepository(pool)
	mentorService := mentor.NewService(mentorRepo, store, processor)

	// Category Module
	categoryRepo := category.NewPgxRepository(pool)
	categoryService := category.NewService(categoryRepo)

	// Listing Module
	listingRepo := listing.NewPgxRepository(pool)
	listingService := listing.NewService(listingRepo, mentorService, categoryService)

	// Availability Module
	availabilityRepo := availability.NewPgxRepository(pool)
	availabilityService := availability.NewService(availabilityRepo, mentorService, cfg.HorizonDays, cfg.SlotLengthMinutes)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, listingService)

	// Session Module
	sessionRepo := session.NewPgxRepository(pool)
	sessionService := session.NewService(sessionRepo, mentorService, notifier, logger)

	// Lifecycle Orchestrator
	orchestrator := lifecycle.NewOrchestrator(
		lifecycle.NewPgxTxRunner(pool),
		bookingRepo,
		sessionRepo,
		bookingService,
		logger,
	)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		MentorService:       mentorService,
		CategoryService:     categoryService,
		ListingService:      listingService,
		AvailabilityService: availabilityService,
		BookingService:      bookingService,
		SessionService:      sessionService,
		Orchestrator:        orchestrator,
		JWTManager:          jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Notifier:   notifier,
	}, nil
}
