package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alnourclinic/clinic-scheduler/internal/audit"
	"github.com/alnourclinic/clinic-scheduler/internal/config"
	domain "github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
	"github.com/alnourclinic/clinic-scheduler/internal/handlers"
	infraRepo "github.com/alnourclinic/clinic-scheduler/internal/infra/repository"
	"github.com/alnourclinic/clinic-scheduler/internal/middleware"
	"github.com/alnourclinic/clinic-scheduler/internal/notify"
	ucBooking "github.com/alnourclinic/clinic-scheduler/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log *zap.Logger,
	publisher notify.Publisher,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	accountDir := infraRepo.NewAccountGormDirectory(db)

	policy := cfg.Policy()
	clock := domain.NewClock(cfg.Location())

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	notifyDispatcher := notify.NewDispatcher(publisher, log)

	// ======================================================
	// USE CASES - BOOKINGS
	// ======================================================
	createUC := ucBooking.NewCreateBooking(
		bookingRepo,
		accountDir,
		policy,
		clock,
		auditDispatcher,
		log,
	)

	rescheduleUC := ucBooking.NewRescheduleBooking(
		bookingRepo,
		policy,
		clock,
		auditDispatcher,
		log,
	)

	updateUC := ucBooking.NewUpdateBookingFields(
		bookingRepo,
		auditDispatcher,
		log,
	)

	transitionUC := ucBooking.NewTransitionStatus(
		bookingRepo,
		clock,
		notifyDispatcher,
		auditDispatcher,
		log,
	)

	listSlotsUC := ucBooking.NewListAvailableSlots(bookingRepo, policy, clock)
	listUC := ucBooking.NewListBookings(bookingRepo, clock)
	getUC := ucBooking.NewGetBooking(bookingRepo)
	statsUC := ucBooking.NewBookingStats(bookingRepo, clock)
	deleteUC := ucBooking.NewDeleteBooking(bookingRepo, auditDispatcher, log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	bookingHandler := handlers.NewBookingHandler(
		createUC,
		rescheduleUC,
		updateUC,
		transitionUC,
		listSlotsUC,
		listUC,
		getUC,
		statsUC,
		deleteUC,
		cfg.Location(),
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.List)
			secured.GET("/bookings/slots", bookingHandler.AvailableSlots)
			secured.GET("/bookings/stats", bookingHandler.Stats)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.PATCH("/bookings/:id", bookingHandler.Update)
			secured.PATCH("/bookings/:id/reschedule", bookingHandler.Reschedule)
			secured.PATCH("/bookings/:id/confirm", bookingHandler.Confirm)
			secured.PATCH("/bookings/:id/complete", bookingHandler.Complete)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
			secured.DELETE("/bookings/:id", bookingHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
