package get_available_slots

import (
	getSlots "github.com/laia-platform/LAIA-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	TenantID        int64    `json:"tenantId"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"` // Времена начала, "HH:MM"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.StartMinutes.String()
	}

	return &AvailableSlotsResponse{
		TenantID:        resp.TenantID,
		Date:            resp.Date.String(),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
