package get_doctor_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	"github.com/m04kA/HMS-BookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	doctorID int64,
	userID int64,
	statusStr string,
	dateStr string,
	fromStr string,
	toStr string,
	includeTerminalStr string,
) (*models.GetDoctorBookingsRequest, error) {
	req := &models.GetDoctorBookingsRequest{
		UserID:          userID,
		DoctorID:        doctorID,
		IncludeTerminal: false, // По умолчанию только активные
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// date задает один день; иначе можно указать период from/to
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date value: %w", err)
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		if fromStr != "" {
			from, err := time.Parse(domain.DateFormat, fromStr)
			if err != nil {
				return nil, fmt.Errorf("invalid from value: %w", err)
			}
			req.StartDate = &from
		}
		if toStr != "" {
			to, err := time.Parse(domain.DateFormat, toStr)
			if err != nil {
				return nil, fmt.Errorf("invalid to value: %w", err)
			}
			req.EndDate = &to
		}
	}

	// Парсим includeTerminal если указан
	if includeTerminalStr != "" {
		includeTerminal, err := strconv.ParseBool(includeTerminalStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeTerminal value: %w", err)
		}
		req.IncludeTerminal = includeTerminal
	}

	return req, nil
}
