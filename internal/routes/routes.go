package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/odontosys/clinic-api/internal/audit"
	"github.com/odontosys/clinic-api/internal/config"
	"github.com/odontosys/clinic-api/internal/handlers"
	infraRepo "github.com/odontosys/clinic-api/internal/infra/repository"
	"github.com/odontosys/clinic-api/internal/middleware"
	"github.com/odontosys/clinic-api/internal/notify"
	"github.com/odontosys/clinic-api/internal/payments"
	"github.com/odontosys/clinic-api/internal/storage"
	ucAppointment "github.com/odontosys/clinic-api/internal/usecase/appointment"
)

// RegisterRoutes monta toda a API. Devolve o dispatcher de auditoria,
// para o main fechar no shutdown, e o serviço de notificações, para o
// agendador de lembretes publicar no mesmo feed.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	redisClient *redis.Client,
	cfg *config.Config,
) (*audit.Dispatcher, *notify.Service) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middleware.MetricsMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var publisher notify.Publisher = notify.NopPublisher{}
	var feedStream *notify.Stream
	if redisClient != nil {
		publisher = notify.NewRedisPublisher(redisClient)
		feedStream = notify.NewStream(redisClient)
	}
	notifications := notify.NewService(db, publisher)

	uploader := storage.NewUploader(cfg)

	mp, err := payments.New(cfg.MercadoPagoToken)
	if err != nil {
		log.Printf("mercadopago desabilitado: %v", err)
		mp = nil
	}

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		scheduleRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		scheduleRepo,
	)

	availabilityUC := ucAppointment.NewGetAvailability(scheduleRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	clinicHandler := handlers.NewClinicHandler(db)

	professionalHandler := handlers.NewProfessionalHandler(db, uploader)
	serviceHandler := handlers.NewServiceHandler(db)
	professionalServiceHandler := handlers.NewProfessionalServiceHandler(db, scheduleRepo)
	clientHandler := handlers.NewClientHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		deleteAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		availabilityUC,
	)

	notificationHandler := handlers.NewNotificationHandler(notifications, feedStream)
	financialHandler := handlers.NewFinancialHandler(db, mp)
	medicalRecordHandler := handlers.NewMedicalRecordHandler(db)
	prescriptionHandler := handlers.NewPrescriptionHandler(db)
	diagnosisHandler := handlers.NewDiagnosisHandler(db)
	odontogramHandler := handlers.NewOdontogramHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)

	// ======================================================
	// OBSERVABILIDADE
	// ======================================================
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/clinic", clinicHandler.GetMeClinic)
			secured.PATCH("/me/clinic", clinicHandler.UpdateMeClinic)

			secured.GET("/me/dashboard", dashboardHandler.Overview)

			// ------------------------------
			// PROFISSIONAIS
			// ------------------------------
			secured.GET("/me/professionals", professionalHandler.List)
			secured.POST("/me/professionals", professionalHandler.Create)
			secured.GET("/me/professionals/:id", professionalHandler.Get)
			secured.PATCH("/me/professionals/:id", professionalHandler.Update)
			secured.DELETE("/me/professionals/:id", professionalHandler.Delete)
			secured.POST("/me/professionals/:id/photo", professionalHandler.UploadPhoto)

			// ------------------------------
			// SERVIÇOS
			// ------------------------------
			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.GET("/me/services/:id", serviceHandler.Get)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			// ------------------------------
			// VÍNCULOS PROFISSIONAL x SERVIÇO
			// ------------------------------
			secured.GET("/me/professionals/:id/services", professionalServiceHandler.ListByProfessional)
			secured.GET("/me/services/:id/professionals", professionalServiceHandler.ListByService)
			secured.POST("/me/associations", professionalServiceHandler.Create)
			secured.GET("/me/associations/:professionalId/:serviceId", professionalServiceHandler.Get)
			secured.PATCH("/me/associations/:professionalId/:serviceId", professionalServiceHandler.Update)
			secured.PATCH("/me/associations/:professionalId/:serviceId/toggle", professionalServiceHandler.Toggle)
			secured.DELETE("/me/associations/:professionalId/:serviceId", professionalServiceHandler.Delete)
			secured.GET("/me/associations/:professionalId/:serviceId/duration", professionalServiceHandler.Duration)
			secured.GET("/me/associations/:professionalId/:serviceId/can-perform", professionalServiceHandler.CanPerform)

			// ------------------------------
			// CLIENTES
			// ------------------------------
			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.GET("/me/clients/:id", clientHandler.Get)
			secured.PATCH("/me/clients/:id", clientHandler.Update)
			secured.POST("/me/clients/:id/lock", clientHandler.Lock)
			secured.POST("/me/clients/:id/unlock", clientHandler.Unlock)

			// ------------------------------
			// AGENDAMENTOS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/me/appointments/availability", appointmentHandler.Availability)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// NOTIFICAÇÕES
			// ------------------------------
			secured.GET("/me/notifications", notificationHandler.List)
			secured.GET("/me/notifications/unread-count", notificationHandler.UnreadCount)
			secured.GET("/me/notifications/stream", notificationHandler.Stream)
			secured.PATCH("/me/notifications/:id/read", notificationHandler.MarkRead)
			secured.POST("/me/notifications/read-all", notificationHandler.MarkAllRead)
			secured.DELETE("/me/notifications/:id", notificationHandler.Delete)
			// sem :id remove em lote: apaga tudo que já foi lido
			secured.DELETE("/me/notifications", notificationHandler.DeleteAllRead)

			// ------------------------------
			// FINANCEIRO
			// ------------------------------
			secured.GET("/me/transactions", financialHandler.List)
			secured.POST("/me/transactions", financialHandler.Create)
			secured.GET("/me/transactions/summary", financialHandler.Summary)
			secured.PATCH("/me/transactions/:id/pay", financialHandler.MarkPaid)
			secured.PATCH("/me/transactions/:id/cancel", financialHandler.CancelTransaction)
			secured.POST("/me/transactions/:id/payment-link", financialHandler.CreatePaymentLink)

			// ------------------------------
			// CLÍNICO
			// ------------------------------
			secured.GET("/me/clients/:id/records", medicalRecordHandler.ListByClient)
			secured.POST("/me/records", medicalRecordHandler.Create)
			secured.PATCH("/me/records/:id", medicalRecordHandler.Update)

			secured.GET("/me/clients/:id/prescriptions", prescriptionHandler.ListByClient)
			secured.POST("/me/prescriptions", prescriptionHandler.Create)
			secured.GET("/me/prescriptions/:id", prescriptionHandler.Get)
			secured.DELETE("/me/prescriptions/:id", prescriptionHandler.Delete)

			secured.GET("/me/clients/:id/diagnoses", diagnosisHandler.ListByClient)
			secured.POST("/me/diagnoses", diagnosisHandler.Create)
			secured.PATCH("/me/diagnoses/:id/resolve", diagnosisHandler.Resolve)

			secured.GET("/me/clients/:id/odontogram", odontogramHandler.Get)
			secured.PUT("/me/clients/:id/odontogram/entries", odontogramHandler.UpsertEntry)
			secured.DELETE("/me/clients/:id/odontogram/entries/:entryId", odontogramHandler.DeleteEntry)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}

	return auditDispatcher, notifications
}
