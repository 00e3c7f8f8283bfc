package create_booking

import (
	"time"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	createBooking "github.com/m04kA/HMS-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/HMS-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	DoctorID        int64   `json:"doctorId"`
	BookingDate     string  `json:"bookingDate"`               // "2025-10-15"
	AppointmentTime *string `json:"appointmentTime,omitempty"` // "10:00", опционально
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          *int64  `json:"userId,omitempty"`
	DoctorID        int64   `json:"doctorId"`
	DoctorName      string  `json:"doctorName"`
	BookingDate     string  `json:"bookingDate"`
	AppointmentTime *string `json:"appointmentTime,omitempty"`
	Status          string  `json:"status"`
	PatientName     string  `json:"patientName"`
	PatientPhone    string  `json:"patientPhone,omitempty"`
	PatientEmail    string  `json:"patientEmail,omitempty"`
	BookedOn        string  `json:"bookedOn"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время, если указано
	var appointmentTime *types.TimeString
	if r.AppointmentTime != nil && *r.AppointmentTime != "" {
		t, err := types.NewTimeStringFromString(*r.AppointmentTime)
		if err != nil {
			return nil, err
		}
		appointmentTime = &t
	}

	return &createBooking.Request{
		UserID:   userID,
		DoctorID: r.DoctorID,
		Date:     bookingDate,
		Time:     appointmentTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:           resp.ID,
		UserID:       resp.UserID,
		DoctorID:     resp.DoctorID,
		DoctorName:   resp.DoctorName,
		BookingDate:  resp.BookingDate.Format(domain.DateFormat),
		Status:       resp.Status,
		PatientName:  resp.PatientName,
		PatientPhone: resp.PatientPhone,
		PatientEmail: resp.PatientEmail,
		BookedOn:     resp.BookedOn.Format(time.RFC3339),
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.AppointmentTime != nil {
		timeStr := resp.AppointmentTime.String()
		out.AppointmentTime = &timeStr
	}

	return out
}
