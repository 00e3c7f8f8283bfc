package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HMS-BookingService/internal/infra/storage/booking"
	userClient "github.com/m04kA/HMS-BookingService/internal/integrations/userservice"
	"github.com/m04kA/HMS-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с записями на прием
type Service struct {
	bookingRepo BookingRepository
	userClient  UserServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	bookingRepo BookingRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		userClient:  userClient,
		logger:      logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - пользователь может видеть только свою запись
// или записи к себе, если он врач
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю записей пациента
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetDoctorBookings получает записи к врачу с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению терминальных статусов.
// Доступно только самому врачу
//
// Примеры использования:
// - Все активные записи: GetDoctorBookings(ctx, &GetDoctorBookingsRequest{DoctorID: 123, UserID: 456})
// - Записи на дату: StartDate и EndDate указывают на одну дату
// - Записи за период: StartDate и EndDate указывают на разные даты
// - Только ожидающие: указать Status = "pending"
// - Включая завершенные и отмененные: IncludeTerminal = true
func (s *Service) GetDoctorBookings(ctx context.Context, req *models.GetDoctorBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetDoctorBookings: fetching bookings for doctor=%d, user=%d", req.DoctorID, req.UserID)

	// Проверяем, что запрашивает сам врач
	if err := s.checkDoctorAccess(ctx, req.DoctorID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetDoctorBookings: invalid filter for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByDoctorWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetDoctorBookings: repository error for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: GetDoctorBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDoctorBookings: successfully fetched %d bookings for doctor=%d", len(bookings), req.DoctorID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет запись на прием
// Отменить может владелец записи либо врач, к которому она оформлена;
// завершенные и уже отмененные записи отменить нельзя
func (s *Service) Cancel(ctx context.Context, bookingID int64, userID int64) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, userID)

	// Получаем запись
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (владелец или врач записи)
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", userID, bookingID)
		return err
	}

	// Проверяем, можно ли отменить запись
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Отменяем запись
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusCancelled); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// UpdateStatus обновляет статус записи
// Доступно только врачу, к которому оформлена запись
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	// Получаем запись
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только врач записи)
	if err := s.checkDoctorAccess(ctx, booking.DoctorID, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Обновляем статус
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			// Возврат записи в активный статус столкнулся с занятым слотом
			s.logger.Warn("UpdateStatus: slot taken while reactivating booking id=%d", bookingID)
			return ErrSlotTaken
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к записи
// Пользователь может видеть свою запись или записи к себе, если он врач
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	// Если пользователь владелец записи - доступ разрешен
	if booking.UserID != nil && *booking.UserID == userID {
		return nil
	}

	// Проверяем, является ли пользователь врачом этой записи
	if err := s.checkDoctorAccess(ctx, booking.DoctorID, userID); err != nil {
		// Ошибка уже залогирована в checkDoctorAccess
		return ErrAccessDenied
	}

	return nil
}

// checkDoctorAccess проверяет, что учетная запись пользователя привязана
// к указанному врачу
func (s *Service) checkDoctorAccess(ctx context.Context, doctorID int64, userID int64) error {
	profile, err := s.userClient.GetDoctorProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrNoDoctorProfile) || errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("checkDoctorAccess: user=%d has no doctor profile", userID)
			return ErrAccessDenied
		}
		s.logger.Error("checkDoctorAccess: failed to get doctor profile for user=%d: %v", userID, err)
		return fmt.Errorf("%w: checkDoctorAccess - failed to get doctor profile: %v", ErrInternal, err)
	}

	if profile.DoctorID != doctorID {
		s.logger.Warn("checkDoctorAccess: user=%d is not doctor=%d", userID, doctorID)
		return ErrAccessDenied
	}

	s.logger.Info("checkDoctorAccess: user=%d confirmed as doctor=%d", userID, doctorID)
	return nil
}
