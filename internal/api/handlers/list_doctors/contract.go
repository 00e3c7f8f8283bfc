package list_doctors

import (
	"context"

	"github.com/m04kA/HMS-BookingService/internal/service/doctors/models"
)

type DoctorService interface {
	List(ctx context.Context, req *models.ListDoctorsRequest) (*models.DoctorListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
