package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-BookingService/internal/api/handlers"
	"github.com/m04kA/HMS-BookingService/internal/api/middleware"
	updateBooking "github.com/m04kA/HMS-BookingService/internal/usecase/update_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking ID"
	msgInvalidDate        = "invalid booking date format, expected YYYY-MM-DD"
	msgInvalidTime        = "invalid appointment time format, expected HH:MM"
	msgMissingUserID      = "missing user ID"
	msgNotFound           = "booking not found"
	msgForbidden          = "access denied"
	msgNotEditable        = "booking can no longer be updated"
	msgSlotConflict       = "this time slot is already booked"
	msgDateRejected       = "booking date is not available"
	msgTimeRejected       = "appointment time is not available"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, userID)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: %v", err)
		if req.AppointmentTime != nil {
			handlers.RespondValidationError(w, map[string]string{"appointmentTime": msgInvalidTime})
		} else {
			handlers.RespondValidationError(w, map[string]string{"bookingDate": msgInvalidDate})
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondUseCaseError(w, bookingID, userID, err)
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking rescheduled successfully: booking_id=%d, user_id=%d",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// respondUseCaseError транслирует ошибки use case в HTTP ответ
func (h *Handler) respondUseCaseError(w http.ResponseWriter, bookingID, userID int64, err error) {
	switch {
	case errors.Is(err, updateBooking.ErrBookingNotFound):
		h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, updateBooking.ErrNotOwner):
		h.logger.Warn("PUT /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, updateBooking.ErrNotEditable):
		h.logger.Warn("PUT /bookings/{id} - Booking not editable: booking_id=%d", bookingID)
		handlers.RespondError(w, http.StatusConflict, msgNotEditable)

	case errors.Is(err, updateBooking.ErrSlotConflict):
		h.logger.Warn("PUT /bookings/{id} - Slot conflict: booking_id=%d", bookingID)
		handlers.RespondError(w, http.StatusConflict,
			handlers.ErrorDetail(err, updateBooking.ErrSlotConflict, msgSlotConflict))

	case errors.Is(err, updateBooking.ErrPastDate):
		handlers.RespondValidationError(w, map[string]string{
			"bookingDate": handlers.ErrorDetail(err, updateBooking.ErrPastDate, msgDateRejected),
		})

	case errors.Is(err, updateBooking.ErrTooFarAhead):
		handlers.RespondValidationError(w, map[string]string{
			"bookingDate": handlers.ErrorDetail(err, updateBooking.ErrTooFarAhead, msgDateRejected),
		})

	case errors.Is(err, updateBooking.ErrDoctorOnLeave):
		handlers.RespondValidationError(w, map[string]string{
			"bookingDate": handlers.ErrorDetail(err, updateBooking.ErrDoctorOnLeave, msgDateRejected),
		})

	case errors.Is(err, updateBooking.ErrNotScheduled):
		handlers.RespondValidationError(w, map[string]string{
			"bookingDate": handlers.ErrorDetail(err, updateBooking.ErrNotScheduled, msgDateRejected),
		})

	case errors.Is(err, updateBooking.ErrOutsideHours):
		handlers.RespondValidationError(w, map[string]string{
			"appointmentTime": handlers.ErrorDetail(err, updateBooking.ErrOutsideHours, msgTimeRejected),
		})

	case errors.Is(err, updateBooking.ErrInvalidInput):
		h.logger.Warn("PUT /bookings/{id} - Invalid input: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
