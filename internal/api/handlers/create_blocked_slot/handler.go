package create_blocked_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers"
	"github.com/laia-platform/LAIA-SchedulingService/internal/service/schedule"
	"github.com/laia-platform/LAIA-SchedulingService/internal/service/schedule/models"
)

const (
	msgInvalidTenantID = "некорректный идентификатор тенанта"
	msgInvalidBody     = "некорректное тело запроса"
	msgInvalidBlock    = "некорректные параметры блокировки"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/blocked-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /blocked-slots - Invalid tenant id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req models.CreateBlockedSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocked-slots - Invalid body: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.TenantID = tenantID

	result, err := h.service.CreateBlockedSlot(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBlock)

		default:
			h.logger.Error("POST /blocked-slots - Failed: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocked-slots - Created: tenant_id=%d, block_id=%d", tenantID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
