package manage_schedule

import (
	"context"

	"github.com/m04kA/HMS-BookingService/internal/service/doctors/models"
)

type DoctorService interface {
	AddAvailability(ctx context.Context, doctorID int64, req *models.AddAvailabilityRequest) (*models.AvailabilityWindowResponse, error)
	AddLeave(ctx context.Context, doctorID int64, req *models.AddLeaveRequest) (*models.LeaveDayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
