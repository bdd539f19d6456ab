package delete_blocked_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers"
	"github.com/laia-platform/LAIA-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidTenantID = "некорректный идентификатор тенанта"
	msgInvalidBlockID  = "некорректный идентификатор блокировки"
	msgBlockNotFound   = "блокировка не найдена"
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

// Handle DELETE /api/v1/tenants/{tenantId}/blocked-slots/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /blocked-slots/{id} - Invalid tenant id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	blockID, err := strconv.ParseInt(vars["blockId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /blocked-slots/{id} - Invalid block id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.DeleteBlockedSlot(r.Context(), tenantID, blockID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrBlockedSlotNotFound):
			handlers.RespondNotFound(w, msgBlockNotFound)

		default:
			h.logger.Error("DELETE /blocked-slots/{id} - Failed: tenant_id=%d, block_id=%d, error=%v",
				tenantID, blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /blocked-slots/{id} - Deleted: tenant_id=%d, block_id=%d", tenantID, blockID)
	w.WriteHeader(http.StatusNoContent)
}
