package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	bookAppointmentHandler "github.com/m04kA/VetBookingService/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/m04kA/VetBookingService/internal/api/handlers/cancel_appointment"
	getAppointmentHandler "github.com/m04kA/VetBookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/VetBookingService/internal/api/handlers/get_available_slots"
	getUserAppointmentsHandler "github.com/m04kA/VetBookingService/internal/api/handlers/get_user_appointments"
	getVetAppointmentsHandler "github.com/m04kA/VetBookingService/internal/api/handlers/get_vet_appointments"
	getVetScheduleHandler "github.com/m04kA/VetBookingService/internal/api/handlers/get_vet_schedule"
	paymentWebhookHandler "github.com/m04kA/VetBookingService/internal/api/handlers/payment_webhook"
	registerVetHandler "github.com/m04kA/VetBookingService/internal/api/handlers/register_vet"
	setVetScheduleHandler "github.com/m04kA/VetBookingService/internal/api/handlers/set_vet_schedule"
	updateAppointmentStatusHandler "github.com/m04kA/VetBookingService/internal/api/handlers/update_appointment_status"
	updateAppointmentTypeHandler "github.com/m04kA/VetBookingService/internal/api/handlers/update_appointment_type"
	"github.com/m04kA/VetBookingService/internal/api/middleware"
	"github.com/m04kA/VetBookingService/internal/config"
	scheduleCache "github.com/m04kA/VetBookingService/internal/infra/cache/schedule"
	appointmentRepo "github.com/m04kA/VetBookingService/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/VetBookingService/internal/infra/storage/schedule"
	vetRepo "github.com/m04kA/VetBookingService/internal/infra/storage/vet"
	"github.com/m04kA/VetBookingService/internal/integrations/payment"
	appointmentsService "github.com/m04kA/VetBookingService/internal/service/appointments"
	scheduleService "github.com/m04kA/VetBookingService/internal/service/schedule"
	vetsService "github.com/m04kA/VetBookingService/internal/service/vets"
	bookAppointmentUC "github.com/m04kA/VetBookingService/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/m04kA/VetBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/VetBookingService/pkg/dbmetrics"
	"github.com/m04kA/VetBookingService/pkg/logger"
	"github.com/m04kA/VetBookingService/pkg/metrics"
	"github.com/m04kA/VetBookingService/pkg/txmanager"
)

const defaultFakeCheckoutURL = "http://localhost:8080/payments/fake/checkout"

// paymentGateway создание платежа и разбор webhook одного провайдера
type paymentGateway interface {
	bookAppointmentUC.PaymentGateway
	paymentWebhookHandler.Gateway
}

// templateStore хранилище шаблонов: Postgres напрямую или через кэш Redis
type templateStore interface {
	scheduleService.ScheduleRepository
	vetsService.ScheduleRepository
	getAvailableSlotsUC.ScheduleRepository
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting VetBookingService...")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Booking.Timezone, err)
	}
	log.Info("Operating timezone: %s", location)

	// Инициализируем метрики (если включены). nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	vetRepository := vetRepo.NewRepository(wrappedDB)
	var templates templateStore = scheduleRepo.NewRepository(wrappedDB)

	// Кэш шаблонов расписания
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Кэш необязателен: при недоступном Redis чтения уходят в Postgres
			log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		templates = scheduleCache.NewRepository(templates, redisClient, cfg.Redis.TTL(), metricsCollector, log)
		log.Info("Schedule cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
	}

	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Платежный шлюз
	var gateway paymentGateway
	switch cfg.Payment.Provider {
	case config.PaymentProviderStripe:
		gateway = payment.NewStripeGateway(payment.StripeConfig{
			SecretKey:        cfg.Payment.SecretKey,
			WebhookSecret:    cfg.Payment.WebhookSecret,
			WebhookTolerance: time.Duration(cfg.Payment.WebhookTolerance) * time.Second,
			Currency:         cfg.Payment.Currency,
			SuccessURL:       cfg.Payment.SuccessURL,
			CancelURL:        cfg.Payment.CancelURL,
		}, log)
	default:
		checkoutURL := cfg.Payment.SuccessURL
		if checkoutURL == "" {
			checkoutURL = defaultFakeCheckoutURL
		}
		gateway = payment.NewFakeGateway(checkoutURL, cfg.Payment.WebhookSecret, log)
	}
	log.Info("Payment provider: %s", cfg.Payment.Provider)

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	scheduleSvc := scheduleService.NewService(templates, vetRepository, log)
	vetsSvc := vetsService.NewService(vetRepository, templates, txManager, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		vetRepository,
		templates,
		appointmentRepository,
		metricsCollector,
		location,
		log,
	)

	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		vetRepository,
		templates,
		appointmentRepository,
		gateway,
		txManager,
		metricsCollector,
		location,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getVetAppointments := getVetAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getVetSchedule := getVetScheduleHandler.NewHandler(scheduleSvc, log)
	setVetSchedule := setVetScheduleHandler.NewHandler(scheduleSvc, log)
	registerVet := registerVetHandler.NewHandler(vetsSvc, log)
	updateAppointmentType := updateAppointmentTypeHandler.NewHandler(vetsSvc, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(gateway, appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты врача на дату
	api.HandleFunc("/vets/{vetId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Недельный шаблон расписания врача
	api.HandleFunc("/vets/{vetId}/schedule", getVetSchedule.Handle).Methods(http.MethodGet)

	// События платежного шлюза (проверяются подписью)
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// INTERNAL ROUTES (X-Internal-Token)
	// ============================================================

	internal := api.PathPrefix("/internal").Subrouter()
	internal.Use(middleware.InternalToken(cfg.Auth.InternalToken))

	// Регистрация врача сервисом аккаунтов
	internal.HandleFunc("/vets", registerVet.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (JWT или X-User-ID)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Записи ---
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Кабинет врача ---
	protected.HandleFunc("/vets/{vetId}/appointments", getVetAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/vets/{vetId}/schedule/{weekday}", setVetSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/vets/{vetId}/appointment-types/{type}", updateAppointmentType.Handle).Methods(http.MethodPut)

	if cfg.Auth.JWTSecret == "" {
		log.Warn("JWT secret is empty: user id is taken from X-User-ID header")
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
