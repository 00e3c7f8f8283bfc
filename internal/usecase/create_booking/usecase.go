package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HMS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/HMS-BookingService/internal/integrations/userservice"
	"github.com/m04kA/HMS-BookingService/internal/slotengine"
)

// UseCase use case для создания записи на прием
type UseCase struct {
	bookingRepo  BookingRepository
	doctorRepo   DoctorRepository
	userClient   UserServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	policy       slotengine.Policy
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	doctorRepo DoctorRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
	policy slotengine.Policy,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		doctorRepo:   doctorRepo,
		userClient:   userClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		policy:       policy,
	}
}

// Execute выполняет use case создания записи на прием
// Проверка доступности слота и вставка выполняются в одной сериализуемой
// транзакции: записи дня блокируются (FOR UPDATE), а конкурентную вставку
// того же слота добивает частичный уникальный индекс
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, doctor=%d, date=%s, time=%v",
		req.UserID, req.DoctorID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование врача
	doctor, err := uc.doctorRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		uc.logger.Warn("CreateBooking: doctor id=%d not found: %v", req.DoctorID, err)
		return nil, ErrDoctorNotFound
	}

	// 4. Получаем учетную запись пациента для денормализации контактов
	user, err := uc.userClient.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем проверку и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Окна приема врача (порядок (day, start_time, id) важен для
		// выбора "первого подходящего окна")
		windows, err := uc.doctorRepo.GetAvailability(txCtx, req.DoctorID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get availability: %v", err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		// 5.2. Отпуска врача на запрошенную дату
		leaves, err := uc.doctorRepo.GetLeavesByDate(txCtx, req.DoctorID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get leaves: %v", err)
			return fmt.Errorf("%w: failed to get leaves: %v", ErrInternal, err)
		}

		// 5.3. Активные записи врача на дату с блокировкой (FOR UPDATE)
		filter := domain.DoctorBookingsFilter{
			DoctorID:  req.DoctorID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		}
		bookings, err := uc.bookingRepo.GetByDoctorWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.4. Оценка слота
		decision := slotengine.Evaluate(
			slotengine.Schedule{Windows: windows, Leaves: leaves, Bookings: bookings},
			slotengine.Request{Date: req.Date, Time: req.Time},
			now,
			uc.policy,
		)

		if decision.Rejected() {
			uc.logger.Warn("CreateBooking: slot rejected, code=%s: %s", decision.Code, decision.Reason)
			return rejectionError(decision)
		}

		// 5.5. Создаем запись с денормализацией контактов пациента
		booking := &domain.Booking{
			UserID:          &req.UserID,
			PatientName:     user.FullName(),
			PatientPhone:    user.Phone,
			PatientEmail:    user.Email,
			DoctorID:        req.DoctorID,
			BookingDate:     req.Date,
			AppointmentTime: req.Time,
			Status:          domain.StatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot taken by concurrent booking")
				return fmt.Errorf("%w: slot was taken by a concurrent booking", ErrSlotConflict)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		DoctorID:        result.DoctorID,
		DoctorName:      doctor.Name,
		BookingDate:     result.BookingDate,
		AppointmentTime: result.AppointmentTime,
		Status:          string(result.Status),
		PatientName:     result.PatientName,
		PatientPhone:    result.PatientPhone,
		PatientEmail:    result.PatientEmail,
		BookedOn:        result.BookedOn,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// rejectionError переводит решение движка слотов в ошибку usecase,
// сохраняя человекочитаемую причину
func rejectionError(d slotengine.Decision) error {
	var sentinel error
	switch d.Code {
	case slotengine.CodePastDate:
		sentinel = ErrPastDate
	case slotengine.CodeTooFarAhead:
		sentinel = ErrTooFarAhead
	case slotengine.CodeOnLeave:
		sentinel = ErrDoctorOnLeave
	case slotengine.CodeNotScheduled:
		sentinel = ErrNotScheduled
	case slotengine.CodeOutsideHours:
		sentinel = ErrOutsideHours
	case slotengine.CodeConflict:
		sentinel = ErrSlotConflict
	default:
		sentinel = ErrInternal
	}
	return fmt.Errorf("%w: %s", sentinel, d.Reason)
}
