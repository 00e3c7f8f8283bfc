package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	"github.com/m04kA/HMS-BookingService/internal/slotengine"
)

// UseCase use case для получения слотов врача на день
type UseCase struct {
	bookingRepo  BookingRepository
	doctorRepo   DoctorRepository
	timeProvider TimeProvider
	logger       Logger
	policy       slotengine.Policy
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	doctorRepo DoctorRepository,
	logger Logger,
	policy slotengine.Policy,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		doctorRepo:   doctorRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		policy:       policy,
	}
}

// Execute выполняет use case получения слотов дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: doctor=%d, date=%s",
		req.DoctorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование врача
	doctor, err := uc.doctorRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: doctor id=%d not found: %v", req.DoctorID, err)
		return nil, ErrDoctorNotFound
	}

	// 4. Окна приема врача
	windows, err := uc.doctorRepo.GetAvailability(ctx, req.DoctorID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 5. Отпуска врача на дату
	leaves, err := uc.doctorRepo.GetLeavesByDate(ctx, req.DoctorID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get leaves: %v", err)
		return nil, fmt.Errorf("%w: failed to get leaves: %v", ErrInternal, err)
	}

	// 6. Активные записи врача на дату
	filter := domain.DoctorBookingsFilter{
		DoctorID:  req.DoctorID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
	}
	bookings, err := uc.bookingRepo.GetByDoctorWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Оценка дня движком слотов (время не запрашиваем - получаем список)
	decision := slotengine.Evaluate(
		slotengine.Schedule{Windows: windows, Leaves: leaves, Bookings: bookings},
		slotengine.Request{Date: req.Date},
		now,
		uc.policy,
	)

	resp := &Response{
		DoctorID:       doctor.ID,
		DoctorName:     doctor.Name,
		Specialization: doctor.Specialization,
		Date:           req.Date,
		DayName:        domain.DayName(domain.DayOfWeek(req.Date)),
	}

	// Недоступный день - валидный ответ, а не ошибка
	if decision.Rejected() {
		uc.logger.Info("GetAvailableSlots: doctor=%d unavailable on %s, code=%s",
			req.DoctorID, req.Date.Format(domain.DateFormat), decision.Code)
		resp.Available = false
		resp.Reason = decision.Reason
		resp.Code = string(decision.Code)
		resp.Slots = []Slot{}
		return resp, nil
	}

	resp.Available = true
	if decision.Window != nil {
		resp.WorkingHours = fmt.Sprintf("%s - %s", decision.Window.StartTime, decision.Window.EndTime)
	}

	resp.Slots = make([]Slot, 0, len(decision.Slots))
	for _, s := range decision.Slots {
		resp.Slots = append(resp.Slots, Slot{Time: s.Time, IsFree: s.IsFree})
	}
	resp.TotalSlots = len(decision.Slots)
	resp.FreeSlots = domain.CountFree(decision.Slots)

	uc.logger.Info("GetAvailableSlots: doctor=%d, date=%s, %d/%d slots free",
		req.DoctorID, req.Date.Format(domain.DateFormat), resp.FreeSlots, resp.TotalSlots)

	return resp, nil
}
