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

	cancelAppointmentHandler "github.com/nextdentist/booking-service/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/nextdentist/booking-service/internal/api/handlers/create_appointment"
	deleteReviewHandler "github.com/nextdentist/booking-service/internal/api/handlers/delete_review"
	getAppointmentHandler "github.com/nextdentist/booking-service/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/nextdentist/booking-service/internal/api/handlers/get_availability"
	getDentistAppointmentsHandler "github.com/nextdentist/booking-service/internal/api/handlers/get_dentist_appointments"
	getUserAppointmentsHandler "github.com/nextdentist/booking-service/internal/api/handlers/get_user_appointments"
	updateAppointmentStatusHandler "github.com/nextdentist/booking-service/internal/api/handlers/update_appointment_status"
	updateReviewStatusHandler "github.com/nextdentist/booking-service/internal/api/handlers/update_review_status"
	validateAggregatesHandler "github.com/nextdentist/booking-service/internal/api/handlers/validate_aggregates"
	"github.com/nextdentist/booking-service/internal/api/middleware"
	"github.com/nextdentist/booking-service/internal/config"
	appointmentRepo "github.com/nextdentist/booking-service/internal/infra/storage/appointment"
	dentistRepo "github.com/nextdentist/booking-service/internal/infra/storage/dentist"
	reviewRepo "github.com/nextdentist/booking-service/internal/infra/storage/review"
	"github.com/nextdentist/booking-service/internal/integrations/notify"
	"github.com/nextdentist/booking-service/internal/jobs"
	appointmentsService "github.com/nextdentist/booking-service/internal/service/appointments"
	reviewsService "github.com/nextdentist/booking-service/internal/service/reviews"
	createAppointmentUC "github.com/nextdentist/booking-service/internal/usecase/create_appointment"
	getAvailabilityUC "github.com/nextdentist/booking-service/internal/usecase/get_availability"
	"github.com/nextdentist/booking-service/pkg/dbmetrics"
	"github.com/nextdentist/booking-service/pkg/logger"
	"github.com/nextdentist/booking-service/pkg/metrics"
	"github.com/nextdentist/booking-service/pkg/simpletxmanager"
	"github.com/nextdentist/booking-service/pkg/txmanager"
)

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

	log.Info("Starting NextDentist booking service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		dentistRepository     *dentistRepo.Repository
		reviewRepository      *reviewRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		dentistRepository = dentistRepo.NewRepository(wrappedDB)
		reviewRepository = reviewRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		dentistRepository = dentistRepo.NewRepository(db)
		reviewRepository = reviewRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем клиента WhatsApp уведомлений (если включены)
	var notifier createAppointmentUC.Notifier
	if cfg.Notify.Enabled {
		notifier = notify.NewClient(cfg.Notify.AccountSID, cfg.Notify.AuthToken, cfg.Notify.From, log)
		log.Info("WhatsApp notifications enabled (from=%s)", cfg.Notify.From)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, log)
	reviewSvc := reviewsService.NewService(reviewRepository, dentistRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		dentistRepository,
		txMgr,
		notifier,
		log,
	)

	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		dentistRepository,
		appointmentRepository,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	getDentistAppointments := getDentistAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateReviewStatus := updateReviewStatusHandler.NewHandler(reviewSvc, log)
	deleteReview := deleteReviewHandler.NewHandler(reviewSvc, log)
	validateAggregates := validateAggregatesHandler.NewHandler(reviewSvc, log)

	// Фоновая сверка агрегатов отзывов
	var driftJob *jobs.DriftCheckJob
	if cfg.Jobs.DriftCheckEnabled {
		var driftCounter jobs.DriftCounter
		if cfg.Metrics.Enabled {
			driftCounter = metricsCollector
		}
		driftJob = jobs.NewDriftCheckJob(dentistRepository, reviewSvc, driftCounter, log)
		if err := driftJob.Start(cfg.Jobs.DriftCheckSchedule); err != nil {
			log.Fatal("Failed to start drift check job: %v", err)
		}
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность слотов врача на дату
	api.HandleFunc("/dentists/{dentistId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Создание записи (публичное: гостевые записи разрешены)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Подтверждение записи по публичному коду
	api.HandleFunc("/appointments/code/{code}", getAppointment.HandleByCode).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на приём ---
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// История записей пациента
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// Журнал записей врача
	protected.HandleFunc("/dentists/{dentistId}/appointments", getDentistAppointments.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют Bearer JWT с ролью admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.JWTSecret))

	// --- Модерация отзывов ---
	admin.HandleFunc("/reviews/{reviewId}/status", updateReviewStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/reviews/{reviewId}", deleteReview.Handle).Methods(http.MethodDelete)

	// Сверка агрегатов врача
	admin.HandleFunc("/dentists/{dentistId}/aggregates/validate", validateAggregates.Handle).Methods(http.MethodGet)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновую сверку
	if driftJob != nil {
		driftJob.Stop()
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
