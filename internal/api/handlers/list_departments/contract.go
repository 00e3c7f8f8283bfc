package list_departments

import (
	"context"

	"github.com/m04kA/HMS-BookingService/internal/service/doctors/models"
)

type DoctorService interface {
	ListDepartments(ctx context.Context) (*models.DepartmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
