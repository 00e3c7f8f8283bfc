package models

import (
	"errors"
	"time"

	"github.com/m04kA/HMS-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetUserBookingsRequest запрос на получение записей пациента
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetDoctorBookingsRequest запрос на получение записей врача
type GetDoctorBookingsRequest struct {
	UserID          int64      `json:"userId"`
	DoctorID        int64      `json:"doctorId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeTerminal bool       `json:"includeTerminal,omitempty"` // Включить завершенные и отмененные записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetDoctorBookingsRequest) ToDomainFilter() (domain.DoctorBookingsFilter, error) {
	filter := domain.DoctorBookingsFilter{
		DoctorID:        r.DoctorID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeTerminal: r.IncludeTerminal,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          *int64  `json:"userId,omitempty"`
	DoctorID        int64   `json:"doctorId"`
	BookingDate     string  `json:"bookingDate"`               // "2025-10-15"
	AppointmentTime *string `json:"appointmentTime,omitempty"` // "10:00", отсутствует у записей без времени
	Status          string  `json:"status"`

	// Денормализованные контактные данные пациента
	PatientName  string `json:"patientName"`
	PatientPhone string `json:"patientPhone,omitempty"`
	PatientEmail string `json:"patientEmail,omitempty"`

	BookedOn  time.Time `json:"bookedOn"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		DoctorID:     b.DoctorID,
		BookingDate:  b.BookingDate.Format(domain.DateFormat),
		Status:       string(b.Status),
		PatientName:  b.PatientName,
		PatientPhone: b.PatientPhone,
		PatientEmail: b.PatientEmail,
		BookedOn:     b.BookedOn,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.AppointmentTime != nil {
		timeStr := b.AppointmentTime.String()
		resp.AppointmentTime = &timeStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !domain.IsValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}
