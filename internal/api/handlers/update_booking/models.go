package update_booking

import (
	"time"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	updateBooking "github.com/m04kA/HMS-BookingService/internal/usecase/update_booking"
	"github.com/m04kA/HMS-BookingService/pkg/types"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	BookingDate     string  `json:"bookingDate"`               // "2025-10-15"
	AppointmentTime *string `json:"appointmentTime,omitempty"` // "10:00", опционально
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          *int64  `json:"userId,omitempty"`
	DoctorID        int64   `json:"doctorId"`
	BookingDate     string  `json:"bookingDate"`
	AppointmentTime *string `json:"appointmentTime,omitempty"`
	Status          string  `json:"status"`
	PatientName     string  `json:"patientName"`
	BookedOn        string  `json:"bookedOn"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID, userID int64) (*updateBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	var appointmentTime *types.TimeString
	if r.AppointmentTime != nil && *r.AppointmentTime != "" {
		t, err := types.NewTimeStringFromString(*r.AppointmentTime)
		if err != nil {
			return nil, err
		}
		appointmentTime = &t
	}

	return &updateBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Date:      bookingDate,
		Time:      appointmentTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		DoctorID:    resp.DoctorID,
		BookingDate: resp.BookingDate.Format(domain.DateFormat),
		Status:      resp.Status,
		PatientName: resp.PatientName,
		BookedOn:    resp.BookedOn.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.AppointmentTime != nil {
		timeStr := resp.AppointmentTime.String()
		out.AppointmentTime = &timeStr
	}

	return out
}
