package manage_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/HMS-BookingService/internal/api/handlers"
	"github.com/m04kA/HMS-BookingService/internal/api/middleware"
	"github.com/m04kA/HMS-BookingService/internal/service/doctors"
	"github.com/m04kA/HMS-BookingService/internal/service/doctors/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDoctorID    = "invalid doctor ID"
	msgMissingUserID      = "missing user ID"
	msgForbidden          = "access denied"
	msgDoctorNotFound     = "doctor not found"
)

type Handler struct {
	service DoctorService
	logger  Logger
}

func NewHandler(service DoctorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleAddAvailability POST /api/v1/doctors/{doctorId}/availability
func (h *Handler) HandleAddAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, userID, ok := h.extractIDs(w, r, "POST /doctors/{id}/availability")
	if !ok {
		return
	}

	var req AddAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /doctors/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.AddAvailabilityRequest{
		UserID:    userID,
		Day:       req.Day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	result, err := h.service.AddAvailability(r.Context(), doctorID, serviceReq)
	if err != nil {
		h.respondServiceError(w, "POST /doctors/{id}/availability", doctorID, userID, err)
		return
	}

	h.logger.Info("POST /doctors/{id}/availability - Window created: doctor_id=%d, window_id=%d",
		doctorID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleAddLeave POST /api/v1/doctors/{doctorId}/leaves
func (h *Handler) HandleAddLeave(w http.ResponseWriter, r *http.Request) {
	doctorID, userID, ok := h.extractIDs(w, r, "POST /doctors/{id}/leaves")
	if !ok {
		return
	}

	var req AddLeaveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /doctors/{id}/leaves - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.AddLeaveRequest{
		UserID: userID,
		Date:   req.Date,
		Reason: req.Reason,
	}

	result, err := h.service.AddLeave(r.Context(), doctorID, serviceReq)
	if err != nil {
		h.respondServiceError(w, "POST /doctors/{id}/leaves", doctorID, userID, err)
		return
	}

	h.logger.Info("POST /doctors/{id}/leaves - Leave created: doctor_id=%d, leave_id=%d",
		doctorID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// extractIDs извлекает doctorId из URL и userID из контекста
func (h *Handler) extractIDs(w http.ResponseWriter, r *http.Request, route string) (doctorID, userID int64, ok bool) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseInt(vars["doctorId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s - Invalid doctor ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return 0, 0, false
	}

	userID, found := middleware.GetUserID(r.Context())
	if !found {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, 0, false
	}

	return doctorID, userID, true
}

// respondServiceError транслирует ошибки сервиса в HTTP ответ
func (h *Handler) respondServiceError(w http.ResponseWriter, route string, doctorID, userID int64, err error) {
	switch {
	case errors.Is(err, doctors.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: doctor_id=%d, user_id=%d", route, doctorID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, doctors.ErrDoctorNotFound):
		h.logger.Warn("%s - Doctor not found: doctor_id=%d", route, doctorID)
		handlers.RespondNotFound(w, msgDoctorNotFound)

	case errors.Is(err, doctors.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: doctor_id=%d, error=%v", route, doctorID, err)
		handlers.RespondBadRequest(w, handlers.ErrorDetail(err, doctors.ErrInvalidInput, msgInvalidRequestBody))

	default:
		h.logger.Error("%s - Internal error: doctor_id=%d, error=%v", route, doctorID, err)
		handlers.RespondInternalError(w)
	}
}
