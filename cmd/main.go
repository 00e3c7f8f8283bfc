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

	cancelBookingHandler "github.com/m04kA/HMS-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/HMS-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/HMS-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/HMS-BookingService/internal/api/handlers/get_booking"
	getDoctorHandler "github.com/m04kA/HMS-BookingService/internal/api/handlers/get_doctor"
	getDoctorBookingsHandler "github.com/m04kA/HMS-BookingService/internal/api/handlers/get_doctor_bookings"
	getUserBookingsHandler "github.com/m04kA/HMS-BookingService/internal/api/handlers/get_user_bookings"
	listDepartmentsHandler "github.com/m04kA/HMS-BookingService/internal/api/handlers/list_departments"
	listDoctorsHandler "github.com/m04kA/HMS-BookingService/internal/api/handlers/list_doctors"
	manageScheduleHandler "github.com/m04kA/HMS-BookingService/internal/api/handlers/manage_schedule"
	updateBookingHandler "github.com/m04kA/HMS-BookingService/internal/api/handlers/update_booking"
	updateBookingStatusHandler "github.com/m04kA/HMS-BookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/HMS-BookingService/internal/api/middleware"
	"github.com/m04kA/HMS-BookingService/internal/config"
	bookingRepo "github.com/m04kA/HMS-BookingService/internal/infra/storage/booking"
	departmentRepo "github.com/m04kA/HMS-BookingService/internal/infra/storage/department"
	doctorRepo "github.com/m04kA/HMS-BookingService/internal/infra/storage/doctor"
	userServiceClient "github.com/m04kA/HMS-BookingService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/HMS-BookingService/internal/service/bookings"
	doctorsService "github.com/m04kA/HMS-BookingService/internal/service/doctors"
	"github.com/m04kA/HMS-BookingService/internal/slotengine"
	createBookingUC "github.com/m04kA/HMS-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/HMS-BookingService/internal/usecase/get_available_slots"
	updateBookingUC "github.com/m04kA/HMS-BookingService/internal/usecase/update_booking"
	"github.com/m04kA/HMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HMS-BookingService/pkg/logger"
	"github.com/m04kA/HMS-BookingService/pkg/metrics"
	"github.com/m04kA/HMS-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/HMS-BookingService/pkg/txmanager"
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

	log.Info("Starting HMS-BookingService...")
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

	// Инициализируем клиент UserService
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository    *bookingRepo.Repository
		doctorRepository     *doctorRepo.Repository
		departmentRepository *departmentRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		doctorRepository = doctorRepo.NewRepository(wrappedDB)
		departmentRepository = departmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		doctorRepository = doctorRepo.NewRepository(db)
		departmentRepository = departmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Политики движка слотов: бронирование и просмотр доступности
	// используют разные длительности слота
	bookingPolicy := slotengine.Policy{
		SlotDurationMinutes: cfg.Booking.AppointmentDurationMinutes,
		HorizonDays:         cfg.Booking.HorizonDays,
	}
	browsePolicy := slotengine.Policy{
		SlotDurationMinutes: cfg.Booking.BrowseSlotDurationMinutes,
		HorizonDays:         cfg.Booking.HorizonDays,
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		userClient,
		log,
	)
	doctorSvc := doctorsService.NewService(
		doctorRepository,
		departmentRepository,
		userClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		doctorRepository,
		userClient,
		txMgr,
		log,
		bookingPolicy,
	)

	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		doctorRepository,
		txMgr,
		log,
		bookingPolicy,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		doctorRepository,
		log,
		browsePolicy,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getDoctorBookings := getDoctorBookingsHandler.NewHandler(bookingSvc, log)
	listDoctors := listDoctorsHandler.NewHandler(doctorSvc, log)
	getDoctor := getDoctorHandler.NewHandler(doctorSvc, log)
	manageSchedule := manageScheduleHandler.NewHandler(doctorSvc, log)
	listDepartments := listDepartmentsHandler.NewHandler(doctorSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог отделений
	api.HandleFunc("/departments", listDepartments.Handle).Methods(http.MethodGet)

	// Каталог врачей
	api.HandleFunc("/doctors", listDoctors.Handle).Methods(http.MethodGet)

	// Карточка врача: расписание, отпуска, доступность на сегодня
	api.HandleFunc("/doctors/{doctorId}", getDoctor.Handle).Methods(http.MethodGet)

	// Слоты врача на день
	api.HandleFunc("/doctors/{doctorId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на прием ---
	// Создание записи
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Перенос записи на другую дату/время
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)

	// Отмена записи пациентом
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Смена статуса записи врачом
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История записей пациента
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Кабинет врача ---
	// Записи к врачу
	protected.HandleFunc("/doctors/{doctorId}/bookings", getDoctorBookings.Handle).Methods(http.MethodGet)

	// Добавление окна приема
	protected.HandleFunc("/doctors/{doctorId}/availability", manageSchedule.HandleAddAvailability).Methods(http.MethodPost)

	// Добавление дня отсутствия
	protected.HandleFunc("/doctors/{doctorId}/leaves", manageSchedule.HandleAddLeave).Methods(http.MethodPost)

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
