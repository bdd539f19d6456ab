package get_blocked_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/laia-platform/LAIA-SchedulingService/internal/api/handlers"
	getBlocked "github.com/laia-platform/LAIA-SchedulingService/internal/usecase/get_blocked_dates"
)

const (
	msgInvalidTenantID = "некорректный идентификатор тенанта"
	msgInvalidYear     = "некорректный год"
	msgInvalidMonth    = "некорректный месяц"
	msgInvalidDuration = "некорректная длительность услуги"
	msgInvalidRequest  = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetBlockedDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetBlockedDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/blocked-dates?year=YYYY&month=M&durationMinutes=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, err := strconv.ParseInt(mux.Vars(r)["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /blocked-dates - Invalid tenant id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.logger.Warn("GET /blocked-dates - Invalid year: %v", err)
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		h.logger.Warn("GET /blocked-dates - Invalid month: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	// Длительность опциональна, без неё берётся гранулярность тенанта
	duration := 0
	if raw := r.URL.Query().Get("durationMinutes"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /blocked-dates - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getBlocked.Request{
		TenantID:        tenantID,
		Year:            year,
		Month:           month,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, getBlocked.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /blocked-dates - Failed: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
