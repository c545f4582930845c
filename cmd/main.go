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

	cancelBookingHandler "github.com/salabelleza/SLB-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/salabelleza/SLB-BookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/salabelleza/SLB-BookingService/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/salabelleza/SLB-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/salabelleza/SLB-BookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/salabelleza/SLB-BookingService/internal/api/handlers/get_user_bookings"
	getWeeklyScheduleHandler "github.com/salabelleza/SLB-BookingService/internal/api/handlers/get_weekly_schedule"
	listServicesHandler "github.com/salabelleza/SLB-BookingService/internal/api/handlers/list_services"
	updateBookingStatusHandler "github.com/salabelleza/SLB-BookingService/internal/api/handlers/update_booking_status"
	"github.com/salabelleza/SLB-BookingService/internal/api/middleware"
	"github.com/salabelleza/SLB-BookingService/internal/config"
	bookingRepo "github.com/salabelleza/SLB-BookingService/internal/infra/storage/booking"
	catalogServiceClient "github.com/salabelleza/SLB-BookingService/internal/integrations/catalogservice"
	identityServiceClient "github.com/salabelleza/SLB-BookingService/internal/integrations/identityservice"
	bookingsService "github.com/salabelleza/SLB-BookingService/internal/service/bookings"
	catalogService "github.com/salabelleza/SLB-BookingService/internal/service/catalog"
	createBookingUC "github.com/salabelleza/SLB-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/salabelleza/SLB-BookingService/internal/usecase/get_available_slots"
	getWeeklyScheduleUC "github.com/salabelleza/SLB-BookingService/internal/usecase/get_weekly_schedule"
	"github.com/salabelleza/SLB-BookingService/pkg/dbmetrics"
	"github.com/salabelleza/SLB-BookingService/pkg/logger"
	"github.com/salabelleza/SLB-BookingService/pkg/metrics"
	"github.com/salabelleza/SLB-BookingService/pkg/retry"
	"github.com/salabelleza/SLB-BookingService/pkg/simpletxmanager"
	"github.com/salabelleza/SLB-BookingService/pkg/txmanager"
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

	log.Info("Starting SLB-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		retry.NewPolicy(cfg.CatalogService.RetryAttempts,
			time.Duration(cfg.CatalogService.RetryDelayMS)*time.Millisecond),
		time.Duration(cfg.CatalogService.CacheTTL)*time.Second,
		log,
	)
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, IdentityService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		txMgr             createBookingUC.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	catalogSvc := catalogService.NewService(catalogClient, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogClient,
		identityClient,
		txMgr,
		cfg.Booking,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		cfg.Booking,
		log,
	)

	getWeeklyScheduleUseCase := getWeeklyScheduleUC.NewUseCase(
		bookingRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getWeeklySchedule := getWeeklyScheduleHandler.NewHandler(getWeeklyScheduleUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix: идентичность извлекается для всех маршрутов,
	// анонимные запросы допустимы (гостевое бронирование)
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Каталог услуг (первый шаг оформления)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Доступные слоты на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования (доступно и гостям)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Просмотр бронирования
	api.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования (владелец или персонал)
	api.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	api.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (требуют X-User-Role: staff)
	// ============================================================

	staff := api.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireStaff)

	// Недельный календарь
	staff.HandleFunc("/schedule/week", getWeeklySchedule.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования
	staff.HandleFunc("/bookings/{id}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Удаление бронирования
	staff.HandleFunc("/bookings/{id}", deleteBooking.Handle).Methods(http.MethodDelete)

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
