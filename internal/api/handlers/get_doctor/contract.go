package get_doctor

import (
	"context"

	"github.com/m04kA/HMS-BookingService/internal/service/doctors/models"
)

type DoctorService interface {
	GetByID(ctx context.Context, id int64) (*models.DoctorDetailsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
