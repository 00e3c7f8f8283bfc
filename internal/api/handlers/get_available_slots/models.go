package get_available_slots

import (
	"github.com/m04kA/HMS-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/HMS-BookingService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	DoctorID       int64  `json:"doctorId"`
	DoctorName     string `json:"doctorName"`
	Specialization string `json:"specialization"`
	Date           string `json:"date"`
	DayName        string `json:"dayName"`

	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	Code      string `json:"code,omitempty"`

	WorkingHours string `json:"workingHours,omitempty"`
	TotalSlots   int    `json:"totalSlots"`
	FreeSlots    int    `json:"freeSlots"`
	Slots        []Slot `json:"slots"`
}

// Slot HTTP модель слота
type Slot struct {
	Time   string `json:"time"`
	IsFree bool   `json:"isFree"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	out := &SlotsResponse{
		DoctorID:       resp.DoctorID,
		DoctorName:     resp.DoctorName,
		Specialization: resp.Specialization,
		Date:           resp.Date.Format(domain.DateFormat),
		DayName:        resp.DayName,
		Available:      resp.Available,
		Reason:         resp.Reason,
		Code:           resp.Code,
		WorkingHours:   resp.WorkingHours,
		TotalSlots:     resp.TotalSlots,
		FreeSlots:      resp.FreeSlots,
		Slots:          make([]Slot, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, Slot{Time: s.Time.String(), IsFree: s.IsFree})
	}

	return out
}
