package get_doctor_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-BookingService/internal/api/handlers"
	"github.com/m04kA/HMS-BookingService/internal/api/middleware"
	"github.com/m04kA/HMS-BookingService/internal/service/bookings"
)

const (
	msgInvalidDoctorID = "invalid doctor ID"
	msgInvalidFilter   = "invalid filter parameters"
	msgMissingUserID   = "missing user ID"
	msgForbidden       = "access denied"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/bookings
//
// Query параметры:
//   - status: фильтр по статусу ("pending", "accepted", ...)
//   - date: записи на конкретную дату (YYYY-MM-DD)
//   - from, to: записи за период (игнорируются при указанном date)
//   - includeTerminal: включить завершенные и отмененные записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/bookings - Invalid doctor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /doctors/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	req, err := ToServiceRequest(
		doctorID,
		userID,
		query.Get("status"),
		query.Get("date"),
		query.Get("from"),
		query.Get("to"),
		query.Get("includeTerminal"),
	)
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/bookings - Invalid filter: doctor_id=%d, error=%v", doctorID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetDoctorBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /doctors/{id}/bookings - Access denied: doctor_id=%d, user_id=%d", doctorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /doctors/{id}/bookings - Invalid filter: doctor_id=%d", doctorID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /doctors/{id}/bookings - Failed to get bookings: doctor_id=%d, error=%v",
				doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/{id}/bookings - Retrieved %d bookings for doctor_id=%d",
		len(result.Bookings), doctorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
