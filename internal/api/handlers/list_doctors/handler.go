package list_doctors

import (
	"net/http"
	"strconv"

	"github.com/m04kA/HMS-BookingService/internal/api/handlers"
	"github.com/m04kA/HMS-BookingService/internal/service/doctors/models"
)

const (
	msgInvalidDepartmentID = "invalid department ID"
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

// Handle GET /api/v1/doctors
//
// Query параметры:
//   - departmentId: фильтр по отделению
//   - specialization: точное совпадение специализации
//   - search: поиск по имени и специализации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListDoctorsRequest{}

	if departmentIDStr := query.Get("departmentId"); departmentIDStr != "" {
		departmentID, err := strconv.ParseInt(departmentIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /doctors - Invalid department ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDepartmentID)
			return
		}
		req.DepartmentID = &departmentID
	}

	if specialization := query.Get("specialization"); specialization != "" {
		req.Specialization = &specialization
	}

	if search := query.Get("search"); search != "" {
		req.Search = &search
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /doctors - Failed to list doctors: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /doctors - Retrieved %d doctors", len(result.Doctors))
	handlers.RespondJSON(w, http.StatusOK, result)
}
