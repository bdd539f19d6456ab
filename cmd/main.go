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

	cancelReservationHandler "github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers/cancel_reservation"
	createBlockedSlotHandler "github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers/create_blocked_slot"
	createReservationHandler "github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers/create_reservation"
	deleteBlockedSlotHandler "github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers/delete_blocked_slot"
	getAvailableSlotsHandler "github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers/get_available_slots"
	getBlockedDatesHandler "github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers/get_blocked_dates"
	getReservationHandler "github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers/get_reservation"
	getSettingsHandler "github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers/get_settings"
	getTenantReservationsHandler "github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers/get_tenant_reservations"
	getWorkingHoursHandler "github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers/get_working_hours"
	listBlockedSlotsHandler "github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers/list_blocked_slots"
	updateReservationStatusHandler "github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers/update_reservation_status"
	updateSettingsHandler "github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers/update_settings"
	updateWorkingHoursHandler "github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers/update_working_hours"
	"github.com/laia-platform/LAIA-SchedulingService/internal/api/middleware"
	"github.com/laia-platform/LAIA-SchedulingService/internal/config"
	availabilityCache "github.com/laia-platform/LAIA-SchedulingService/internal/infra/cache"
	blockedSlotRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/blockedslot"
	reservationRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/reservation"
	tenantSettingsRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/tenantsettings"
	workingHoursRepo "github.com/laia-platform/LAIA-SchedulingService/internal/infra/storage/workinghours"
	reservationsService "github.com/laia-platform/LAIA-SchedulingService/internal/service/reservations"
	scheduleService "github.com/laia-platform/LAIA-SchedulingService/internal/service/schedule"
	createBookingUC "github.com/laia-platform/LAIA-SchedulingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/laia-platform/LAIA-SchedulingService/internal/usecase/get_available_slots"
	getBlockedDatesUC "github.com/laia-platform/LAIA-SchedulingService/internal/usecase/get_blocked_dates"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/dbmetrics"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/logger"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/metrics"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/migrator"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/simpletxmanager"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/txmanager"
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

	log.Info("Starting LAIA-SchedulingService...")
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

	// Применяем миграции (если указан путь)
	if cfg.Database.MigrationsPath != "" {
		m, err := migrator.New(db, cfg.Database.MigrationsPath)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := m.Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		version, err := m.Version(context.Background())
		if err != nil {
			log.Fatal("Failed to get migration version: %v", err)
		}
		log.Info("Migrations applied, current version: %d", version)
	}

	// Подключаемся к Redis (если кеш включен)
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTLSeconds)
	}

	slotCache := availabilityCache.NewAvailabilityCache(
		redisClient,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		log,
	)

	// Инициализируем репозитории (с метриками или без)
	var (
		workingHoursRepository   *workingHoursRepo.Repository
		blockedSlotRepository    *blockedSlotRepo.Repository
		reservationRepository    *reservationRepo.Repository
		tenantSettingsRepository *tenantSettingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		workingHoursRepository = workingHoursRepo.NewRepository(wrappedDB)
		blockedSlotRepository = blockedSlotRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		tenantSettingsRepository = tenantSettingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		workingHoursRepository = workingHoursRepo.NewRepository(db)
		blockedSlotRepository = blockedSlotRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		tenantSettingsRepository = tenantSettingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		slotCache,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		workingHoursRepository,
		blockedSlotRepository,
		tenantSettingsRepository,
		slotCache,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		workingHoursRepository,
		blockedSlotRepository,
		reservationRepository,
		tenantSettingsRepository,
		slotCache,
		log,
	)

	getBlockedDatesUseCase := getBlockedDatesUC.NewUseCase(
		workingHoursRepository,
		blockedSlotRepository,
		reservationRepository,
		tenantSettingsRepository,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		reservationRepository,
		workingHoursRepository,
		blockedSlotRepository,
		tenantSettingsRepository,
		slotCache,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBlockedDates := getBlockedDatesHandler.NewHandler(getBlockedDatesUseCase, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(scheduleSvc, log)
	createReservation := createReservationHandler.NewHandler(createBookingUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	getTenantReservations := getTenantReservationsHandler.NewHandler(reservationsSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(scheduleSvc, log)
	listBlockedSlots := listBlockedSlotsHandler.NewHandler(scheduleSvc, log)
	createBlockedSlot := createBlockedSlotHandler.NewHandler(scheduleSvc, log)
	deleteBlockedSlot := deleteBlockedSlotHandler.NewHandler(scheduleSvc, log)
	getSettings := getSettingsHandler.NewHandler(scheduleSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/tenants/{tenantId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Заблокированные даты месяца
	api.HandleFunc("/tenants/{tenantId}/blocked-dates",
		getBlockedDates.Handle).Methods(http.MethodGet)

	// Недельное расписание тенанта
	api.HandleFunc("/tenants/{tenantId}/working-hours",
		getWorkingHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.StaffAuth(log))

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/tenants/{tenantId}/reservations",
		createReservation.Handle).Methods(http.MethodPost)

	// Список бронирований тенанта с фильтрацией
	protected.HandleFunc("/tenants/{tenantId}/reservations",
		getTenantReservations.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}",
		getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel",
		cancelReservation.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования
	protected.HandleFunc("/reservations/{reservationId}/status",
		updateReservationStatus.Handle).Methods(http.MethodPatch)

	// --- Управление расписанием ---
	// Обновление недельного расписания
	protected.HandleFunc("/tenants/{tenantId}/working-hours",
		updateWorkingHours.Handle).Methods(http.MethodPut)

	// Блокировки
	protected.HandleFunc("/tenants/{tenantId}/blocked-slots",
		listBlockedSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/blocked-slots",
		createBlockedSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/tenants/{tenantId}/blocked-slots/{blockId}",
		deleteBlockedSlot.Handle).Methods(http.MethodDelete)

	// Настройки планирования
	protected.HandleFunc("/tenants/{tenantId}/settings",
		getSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/tenants/{tenantId}/settings",
		updateSettings.Handle).Methods(http.MethodPut)

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
