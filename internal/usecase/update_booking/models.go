package update_booking

import (
	"time"

	"github.com/m04kA/HMS-BookingService/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	BookingID int64             // ID переносимой записи
	UserID    int64             // ID пациента (из заголовка аутентификации)
	Date      time.Time         // Новая дата приема
	Time      *types.TimeString // Новое время приема (nil = запись без времени)
}

// Response модель ответа с обновленной записью
type Response struct {
	ID              int64             // ID записи
	UserID          *int64            // ID пациента
	DoctorID        int64             // ID врача
	BookingDate     time.Time         // Новая дата приема
	AppointmentTime *types.TimeString // Новое время приема
	Status          string            // Статус записи

	PatientName  string
	PatientPhone string
	PatientEmail string

	BookedOn  time.Time
	UpdatedAt time.Time
}
