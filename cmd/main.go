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

	createBookingHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/get_user_bookings"
	healthHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/health"
	listRoomsHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/list_rooms"
	seedRoomsHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/seed_rooms"
	"github.com/m04kA/SMC-RoomBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBooking/internal/config"
	"github.com/m04kA/SMC-RoomBooking/internal/domain"
	"github.com/m04kA/SMC-RoomBooking/internal/infra/events"
	"github.com/m04kA/SMC-RoomBooking/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/room"
	bookingsService "github.com/m04kA/SMC-RoomBooking/internal/service/bookings"
	roomsService "github.com/m04kA/SMC-RoomBooking/internal/service/rooms"
	roomsModels "github.com/m04kA/SMC-RoomBooking/internal/service/rooms/models"
	createBookingUC "github.com/m04kA/SMC-RoomBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-RoomBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-RoomBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBooking/pkg/logger"
	"github.com/m04kA/SMC-RoomBooking/pkg/metrics"
	"github.com/m04kA/SMC-RoomBooking/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-RoomBooking...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Business.Location()
	if err != nil {
		log.Fatal("Failed to load business timezone %q: %v", cfg.Business.Timezone, err)
	}
	log.Info("Business hours %02d:00-%02d:00 in %s", domain.BusinessOpenHour, domain.BusinessCloseHour, location)

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

	// Без метрик обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Блокировка комнат (если настроен Redis)
	var roomLocker createBookingUC.RoomLocker = lock.NopLock{}
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		roomLocker = lock.NewRoomLock(redisClient, lock.Options{
			TTL:  cfg.Redis.LockTTL(),
			Wait: cfg.Redis.LockWait(),
		})
		log.Info("Room lock enabled (redis=%s, ttl=%s, wait=%s)",
			cfg.Redis.Addr, cfg.Redis.LockTTL(), cfg.Redis.LockWait())
	} else {
		log.Warn("Redis is not configured, room lock disabled")
	}

	// Публикация событий (если настроен брокер)
	var publisher createBookingUC.EventPublisher = events.NopPublisher{}
	if cfg.Events.Enabled() {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to AMQP broker: %v", err)
		}
		defer func() {
			if err := amqpPublisher.Close(); err != nil {
				log.Error("Failed to close AMQP publisher: %v", err)
			}
		}()

		publisher = amqpPublisher
		log.Info("Booking events are published to exchange %s", cfg.Events.Exchange)
	} else {
		log.Warn("AMQP is not configured, booking events disabled")
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	roomRepository := roomRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	seed := make([]roomsModels.SeedRoom, 0, len(cfg.Seed.Rooms))
	for _, r := range cfg.Seed.Rooms {
		seed = append(seed, roomsModels.SeedRoom{Name: r.Name, Capacity: r.Capacity})
	}

	bookingSvc := bookingsService.NewService(bookingRepository, publisher, log)
	roomSvc := roomsService.NewService(roomRepository, seed, log)

	// Инициализируем use cases
	var admissionMetrics createBookingUC.AdmissionMetrics
	if metricsCollector != nil {
		admissionMetrics = metricsCollector
	}

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		roomLocker,
		publisher,
		admissionMetrics,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		location,
		log,
	)

	// Инициализируем handlers
	health := healthHandler.NewHandler(wrappedDB, log)
	listRooms := listRoomsHandler.NewHandler(roomSvc, log)
	seedRooms := seedRoomsHandler.NewHandler(roomSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/healthz", health.Handle).Methods(http.MethodGet)

	// Наполнение каталога комнат
	api.HandleFunc("/rooms/seed", seedRooms.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Комнаты ---
	protected.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rooms/{roomId}/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// my-bookings регистрируется раньше /bookings/{bookingId}
	protected.HandleFunc("/bookings/my-bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

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
