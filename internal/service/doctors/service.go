package doctors

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	doctorRepo "github.com/m04kA/HMS-BookingService/internal/infra/storage/doctor"
	userClient "github.com/m04kA/HMS-BookingService/internal/integrations/userservice"
	"github.com/m04kA/HMS-BookingService/internal/service/doctors/models"
	"github.com/m04kA/HMS-BookingService/pkg/types"
)

// Service сервис для работы с каталогом врачей, расписанием и отделениями
type Service struct {
	doctorRepo     DoctorRepository
	departmentRepo DepartmentRepository
	userClient     UserServiceClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса врачей
func NewService(
	doctorRepo DoctorRepository,
	departmentRepo DepartmentRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		doctorRepo:     doctorRepo,
		departmentRepo: departmentRepo,
		userClient:     userClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// List получает каталог врачей с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListDoctorsRequest) (*models.DoctorListResponse, error) {
	s.logger.Info("List: fetching doctors, department=%v, specialization=%v, search=%v",
		req.DepartmentID, req.Specialization, req.Search)

	doctors, err := s.doctorRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d doctors", len(doctors))
	return models.FromDomainDoctorList(doctors), nil
}

// GetByID получает карточку врача: расписание, ближайшие отпуска
// и доступность на сегодня
func (s *Service) GetByID(ctx context.Context, id int64) (*models.DoctorDetailsResponse, error) {
	s.logger.Info("GetByID: fetching doctor id=%d", id)

	doctor, err := s.doctorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			s.logger.Warn("GetByID: doctor id=%d not found", id)
			return nil, ErrDoctorNotFound
		}
		s.logger.Error("GetByID: repository error for doctor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	windows, err := s.doctorRepo.GetAvailability(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get availability for doctor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to get availability: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	leaves, err := s.doctorRepo.GetUpcomingLeaves(ctx, id, now)
	if err != nil {
		s.logger.Error("GetByID: failed to get leaves for doctor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to get leaves: %v", ErrInternal, err)
	}

	resp := &models.DoctorDetailsResponse{
		DoctorResponse: *models.FromDomainDoctor(doctor),
		Presence:       string(domain.DoctorPresence(windows, leaves, now)),
		Availability:   make([]models.AvailabilityWindowResponse, 0, len(windows)),
		Leaves:         make([]models.LeaveDayResponse, 0, len(leaves)),
	}

	for _, w := range windows {
		resp.Availability = append(resp.Availability, models.FromDomainWindow(w))
	}
	for _, l := range leaves {
		resp.Leaves = append(resp.Leaves, models.FromDomainLeave(l))
	}

	s.logger.Info("GetByID: successfully fetched doctor id=%d", id)
	return resp, nil
}

// AddAvailability добавляет окно приема врача
// Доступно только самому врачу
func (s *Service) AddAvailability(ctx context.Context, doctorID int64, req *models.AddAvailabilityRequest) (*models.AvailabilityWindowResponse, error) {
	s.logger.Info("AddAvailability: doctor=%d, day=%d, %s-%s by user=%d",
		doctorID, req.Day, req.StartTime, req.EndTime, req.UserID)

	if err := s.checkDoctorAccess(ctx, doctorID, req.UserID); err != nil {
		return nil, err
	}

	if req.Day < 0 || req.Day > 6 {
		s.logger.Warn("AddAvailability: invalid day=%d for doctor=%d", req.Day, doctorID)
		return nil, fmt.Errorf("%w: day must be in range 0..6", ErrInvalidInput)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		s.logger.Warn("AddAvailability: invalid startTime=%s: %v", req.StartTime, err)
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		s.logger.Warn("AddAvailability: invalid endTime=%s: %v", req.EndTime, err)
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if !startTime.IsBefore(endTime) {
		s.logger.Warn("AddAvailability: startTime=%s is not before endTime=%s", req.StartTime, req.EndTime)
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	window := &domain.AvailabilityWindow{
		DoctorID:  doctorID,
		Day:       req.Day,
		StartTime: startTime,
		EndTime:   endTime,
	}

	created, err := s.doctorRepo.CreateAvailability(ctx, window)
	if err != nil {
		s.logger.Error("AddAvailability: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: AddAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddAvailability: successfully created window id=%d for doctor=%d", created.ID, doctorID)
	resp := models.FromDomainWindow(created)
	return &resp, nil
}

// AddLeave добавляет день отсутствия врача
// Доступно только самому врачу
func (s *Service) AddLeave(ctx context.Context, doctorID int64, req *models.AddLeaveRequest) (*models.LeaveDayResponse, error) {
	s.logger.Info("AddLeave: doctor=%d, date=%s by user=%d", doctorID, req.Date, req.UserID)

	if err := s.checkDoctorAccess(ctx, doctorID, req.UserID); err != nil {
		return nil, err
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		s.logger.Warn("AddLeave: invalid date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	leave := &domain.LeaveDay{
		DoctorID: doctorID,
		Date:     date,
		Reason:   req.Reason,
	}

	created, err := s.doctorRepo.CreateLeave(ctx, leave)
	if err != nil {
		s.logger.Error("AddLeave: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: AddLeave - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddLeave: successfully created leave id=%d for doctor=%d", created.ID, doctorID)
	resp := models.FromDomainLeave(created)
	return &resp, nil
}

// ListDepartments получает список отделений с количеством врачей
func (s *Service) ListDepartments(ctx context.Context) (*models.DepartmentListResponse, error) {
	s.logger.Info("ListDepartments: fetching departments")

	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListDepartments: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListDepartments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListDepartments: successfully fetched %d departments", len(departments))
	return models.FromDomainDepartmentList(departments), nil
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

	return nil
}
