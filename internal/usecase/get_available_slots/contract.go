package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/HMS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория записей на прием
type BookingRepository interface {
	GetByDoctorWithFilter(ctx context.Context, filter domain.DoctorBookingsFilter) ([]*domain.Booking, error)
}

// DoctorRepository интерфейс репозитория врачей
type DoctorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	GetAvailability(ctx context.Context, doctorID int64) ([]*domain.AvailabilityWindow, error)
	GetLeavesByDate(ctx context.Context, doctorID int64, date time.Time) ([]*domain.LeaveDay, error)
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
