package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HMS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/HMS-BookingService/internal/slotengine"
)

// UseCase use case для переноса записи на другую дату/время
type UseCase struct {
	bookingRepo  BookingRepository
	doctorRepo   DoctorRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	policy       slotengine.Policy
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	doctorRepo DoctorRepository,
	txManager TransactionManager,
	logger Logger,
	policy slotengine.Policy,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		doctorRepo:   doctorRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		policy:       policy,
	}
}

// Execute выполняет use case переноса записи
// Сама переносимая запись исключается из проверки конфликтов: перенос
// на то же время не должен конфликтовать сам с собой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%d, user=%d, date=%s, time=%v",
		req.BookingID, req.UserID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// Переменная для хранения результата
	var result *domain.Booking

	// 3. Выполняем проверку и обновление в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем запись и проверяем права
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.UserID == nil || *booking.UserID != req.UserID {
			uc.logger.Warn("UpdateBooking: booking id=%d does not belong to user id=%d", req.BookingID, req.UserID)
			return ErrNotOwner
		}

		if !booking.CanBeUpdated() {
			uc.logger.Warn("UpdateBooking: booking id=%d is in status %s and cannot be updated", req.BookingID, booking.Status)
			return ErrNotEditable
		}

		// 3.2. Окна приема врача
		windows, err := uc.doctorRepo.GetAvailability(txCtx, booking.DoctorID)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get availability: %v", err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		// 3.3. Отпуска врача на новую дату
		leaves, err := uc.doctorRepo.GetLeavesByDate(txCtx, booking.DoctorID, req.Date)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get leaves: %v", err)
			return fmt.Errorf("%w: failed to get leaves: %v", ErrInternal, err)
		}

		// 3.4. Активные записи врача на новую дату с блокировкой (FOR UPDATE)
		filter := domain.DoctorBookingsFilter{
			DoctorID:  booking.DoctorID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		}
		bookings, err := uc.bookingRepo.GetByDoctorWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 3.5. Оценка нового слота, исключая саму переносимую запись
		decision := slotengine.Evaluate(
			slotengine.Schedule{Windows: windows, Leaves: leaves, Bookings: bookings},
			slotengine.Request{Date: req.Date, Time: req.Time, ExcludeBookingID: &req.BookingID},
			now,
			uc.policy,
		)

		if decision.Rejected() {
			uc.logger.Warn("UpdateBooking: slot rejected, code=%s: %s", decision.Code, decision.Reason)
			return rejectionError(decision)
		}

		// 3.6. Переносим запись
		if err := uc.bookingRepo.UpdateSchedule(txCtx, req.BookingID, req.Date, req.Time); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("UpdateBooking: slot taken by concurrent booking")
				return fmt.Errorf("%w: slot was taken by a concurrent booking", ErrSlotConflict)
			}
			uc.logger.Error("UpdateBooking: failed to update schedule: %v", err)
			return fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}

		booking.BookingDate = req.Date
		booking.AppointmentTime = req.Time
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully rescheduled booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		DoctorID:        result.DoctorID,
		BookingDate:     result.BookingDate,
		AppointmentTime: result.AppointmentTime,
		Status:          string(result.Status),
		PatientName:     result.PatientName,
		PatientPhone:    result.PatientPhone,
		PatientEmail:    result.PatientEmail,
		BookedOn:        result.BookedOn,
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
