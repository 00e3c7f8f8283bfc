package list_departments

import (
	"net/http"

	"github.com/m04kA/HMS-BookingService/internal/api/handlers"
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

// Handle GET /api/v1/departments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListDepartments(r.Context())
	if err != nil {
		h.logger.Error("GET /departments - Failed to list departments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /departments - Retrieved %d departments", len(result.Departments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
