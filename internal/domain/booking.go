package domain

import (
	"time"

	"github.com/m04kA/HMS-BookingService/pkg/types"
)

// BookingStatus represents the status of an appointment booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusAccepted  BookingStatus = "accepted"
	StatusRejected  BookingStatus = "rejected"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents an appointment booking in the system
type Booking struct {
	ID     int64
	UserID *int64 // ID пациента во внешнем UserService (nil для анонимных записей)

	// Denormalized patient contact data
	PatientName  string
	PatientPhone string
	PatientEmail string

	DoctorID        int64
	BookingDate     time.Time
	AppointmentTime *types.TimeString // nil = запись без конкретного времени
	Status          BookingStatus

	BookedOn  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot returns true if the booking blocks its time slot.
// Only pending and accepted bookings occupy slots; rejected, cancelled
// and completed ones do not.
func (b *Booking) OccupiesSlot() bool {
	return b.Status == StatusPending || b.Status == StatusAccepted
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status != StatusCompleted && b.Status != StatusCancelled
}

// CanBeUpdated returns true if the booking date/time can still be changed
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending || b.Status == StatusAccepted
}

// IsTerminal returns true if the booking is in a terminal status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusRejected || b.Status == StatusCancelled || b.Status == StatusCompleted
}

// DoctorBookingsFilter фильтр для получения записей врача
type DoctorBookingsFilter struct {
	DoctorID        int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeTerminal bool           // Включать ли записи в терминальных статусах
}
