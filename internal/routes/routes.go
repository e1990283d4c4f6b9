package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/studiobela/salon-scheduler/internal/audit"
	"github.com/studiobela/salon-scheduler/internal/booking"
	"github.com/studiobela/salon-scheduler/internal/cache"
	"github.com/studiobela/salon-scheduler/internal/config"
	"github.com/studiobela/salon-scheduler/internal/handlers"
	infraRepo "github.com/studiobela/salon-scheduler/internal/infra/repository"
	"github.com/studiobela/salon-scheduler/internal/middleware"
	"github.com/studiobela/salon-scheduler/internal/notify"
	"github.com/studiobela/salon-scheduler/internal/payment"
	ucAppointment "github.com/studiobela/salon-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	identityRepo := infraRepo.NewIdentityGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var rdb *redis.Client
	if cfg.HasRedis() {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opts)
	}

	slotsCache := cache.NewSlotsCache(rdb)

	var sessionStore booking.SessionStore
	if rdb != nil {
		sessionStore = booking.NewRedisStore(rdb)
	} else {
		sessionStore = booking.NewMemoryStore()
	}

	gatewayFactory := payment.NewFactory()

	var notifier notify.Notifier = notify.Noop{}
	if cfg.HasTwilio() {
		notifier = notify.NewTwilioNotifier(
			cfg.TwilioAccountSID,
			cfg.TwilioAuthToken,
			cfg.TwilioFrom,
		)
	}

	bookingMachine := booking.NewMachine(
		appointmentRepo,
		identityRepo,
		sessionStore,
		gatewayFactory,
		slotsCache,
		auditDispatcher,
	)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, slotsCache)

	createAppointmentUC := ucAppointment.NewCreateStaffAppointment(
		appointmentRepo,
		slotsCache,
		auditDispatcher,
	)

	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		slotsCache,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		slotsCache,
		auditDispatcher,
		notifier,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		slotsCache,
		auditDispatcher,
	)

	confirmPaymentUC := ucAppointment.NewConfirmPayment(
		appointmentRepo,
		slotsCache,
		gatewayFactory,
		auditDispatcher,
		notifier,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	professionalHandler := handlers.NewProfessionalHandler(db)
	clientHandler := handlers.NewClientHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		rescheduleAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		deleteAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC)
	bookingHandler := handlers.NewBookingHandler(db, bookingMachine, cfg)
	webhookHandler := handlers.NewWebhookHandler(confirmPaymentUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug", publicHandler.GetSalon)
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/professionals", publicHandler.ListProfessionals)
			publicAPI.GET("/:slug/days", publicHandler.ListDays)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)

			// fluxo guiado
			publicAPI.POST("/:slug/booking", bookingHandler.Start)
			publicAPI.GET("/booking/:session_id", bookingHandler.View)
			publicAPI.POST("/booking/:session_id/advance", bookingHandler.Advance)
			publicAPI.POST("/booking/:session_id/back", bookingHandler.Back)
			publicAPI.DELETE("/booking/:session_id", bookingHandler.Abandon)
		}

		// ------------------------------
		// 💳 WEBHOOKS
		// ------------------------------
		api.POST("/webhooks/mercadopago/:salon_id", webhookHandler.MercadoPago)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		secured.Use(middleware.SubscriptionGate(appointmentRepo))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/salon", salonHandler.GetMeSalon)
			secured.PATCH("/me/salon", salonHandler.UpdateMeSalon)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/professionals", professionalHandler.List)
			secured.POST("/me/professionals", professionalHandler.Create)
			secured.PATCH("/me/professionals/:id", professionalHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Delete)

			// fluxo guiado iniciado pela equipe
			secured.POST("/me/booking", bookingHandler.StartStaff)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
