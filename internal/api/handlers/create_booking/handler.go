package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/HMS-BookingService/internal/api/handlers"
	"github.com/m04kA/HMS-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/HMS-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid booking date format, expected YYYY-MM-DD"
	msgInvalidTime        = "invalid appointment time format, expected HH:MM"
	msgMissingUserID      = "missing user ID"
	msgDoctorNotFound     = "doctor not found"
	msgUserNotFound       = "user not found"
	msgSlotConflict       = "this time slot is already booked"
	msgDateRejected       = "booking date is not available"
	msgTimeRejected       = "appointment time is not available"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if req.AppointmentTime != nil {
			handlers.RespondValidationError(w, map[string]string{"appointmentTime": msgInvalidTime})
		} else {
			handlers.RespondValidationError(w, map[string]string{"bookingDate": msgInvalidDate})
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, &req, userID, err)
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, doctor_id=%d",
		result.ID, userID, req.DoctorID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// respondUseCaseError транслирует ошибки use case в HTTP ответ.
// Отказы движка слотов привязываются к полю bookingDate или appointmentTime
func (h *Handler) respondUseCaseError(w http.ResponseWriter, req *CreateBookingRequest, userID int64, err error) {
	switch {
	case errors.Is(err, createBooking.ErrDoctorNotFound):
		h.logger.Warn("POST /bookings - Doctor not found: doctor_id=%d", req.DoctorID)
		handlers.RespondNotFound(w, msgDoctorNotFound)

	case errors.Is(err, createBooking.ErrUserNotFound):
		h.logger.Warn("POST /bookings - User not found: user_id=%d", userID)
		handlers.RespondNotFound(w, msgUserNotFound)

	case errors.Is(err, createBooking.ErrSlotConflict):
		h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, doctor_id=%d", userID, req.DoctorID)
		handlers.RespondError(w, http.StatusConflict,
			handlers.ErrorDetail(err, createBooking.ErrSlotConflict, msgSlotConflict))

	case errors.Is(err, createBooking.ErrPastDate):
		handlers.RespondValidationError(w, map[string]string{
			"bookingDate": handlers.ErrorDetail(err, createBooking.ErrPastDate, msgDateRejected),
		})

	case errors.Is(err, createBooking.ErrTooFarAhead):
		handlers.RespondValidationError(w, map[string]string{
			"bookingDate": handlers.ErrorDetail(err, createBooking.ErrTooFarAhead, msgDateRejected),
		})

	case errors.Is(err, createBooking.ErrDoctorOnLeave):
		handlers.RespondValidationError(w, map[string]string{
			"bookingDate": handlers.ErrorDetail(err, createBooking.ErrDoctorOnLeave, msgDateRejected),
		})

	case errors.Is(err, createBooking.ErrNotScheduled):
		handlers.RespondValidationError(w, map[string]string{
			"bookingDate": handlers.ErrorDetail(err, createBooking.ErrNotScheduled, msgDateRejected),
		})

	case errors.Is(err, createBooking.ErrOutsideHours):
		handlers.RespondValidationError(w, map[string]string{
			"appointmentTime": handlers.ErrorDetail(err, createBooking.ErrOutsideHours, msgTimeRejected),
		})

	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, doctor_id=%d, error=%v",
			userID, req.DoctorID, err)
		handlers.RespondInternalError(w)
	}
}
