package create_booking

import (
	"time"

	"github.com/m04kA/HMS-BookingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID   int64             // ID пациента (из заголовка аутентификации)
	DoctorID int64             // ID врача
	Date     time.Time         // Дата приема (без времени)
	Time     *types.TimeString // Время приема (nil = запись без конкретного времени)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64             // ID созданной записи
	UserID          *int64            // ID пациента
	DoctorID        int64             // ID врача
	DoctorName      string            // Имя врача
	BookingDate     time.Time         // Дата приема
	AppointmentTime *types.TimeString // Время приема
	Status          string            // Статус записи

	// Денормализованные контактные данные пациента
	PatientName  string
	PatientPhone string
	PatientEmail string

	BookedOn  time.Time // Время оформления записи
	CreatedAt time.Time
	UpdatedAt time.Time
}
