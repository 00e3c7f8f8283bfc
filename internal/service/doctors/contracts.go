package doctors

import (
	"context"
	"time"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	"github.com/m04kA/HMS-BookingService/internal/integrations/userservice"
)

// DoctorRepository интерфейс репозитория врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	List(ctx context.Context, filter domain.DoctorsFilter) ([]*domain.Doctor, error)
	GetAvailability(ctx context.Context, doctorID int64) ([]*domain.AvailabilityWindow, error)
	CreateAvailability(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	GetLeavesByDate(ctx context.Context, doctorID int64, date time.Time) ([]*domain.LeaveDay, error)
	GetUpcomingLeaves(ctx context.Context, doctorID int64, from time.Time) ([]*domain.LeaveDay, error)
	CreateLeave(ctx context.Context, leave *domain.LeaveDay) (*domain.LeaveDay, error)
}

// DepartmentRepository интерфейс репозитория отделений
type DepartmentRepository interface {
	List(ctx context.Context) ([]*domain.Department, error)
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetDoctorProfile(ctx context.Context, userID int64) (*userservice.DoctorProfile, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
