package get_blocked_dates

import (
	getBlocked "github.com/laia-platform/LAIA-SchedulingService/internal/usecase/get_blocked_dates"
)

// BlockedDatesResponse HTTP response model
type BlockedDatesResponse struct {
	TenantID int64    `json:"tenantId"`
	Year     int      `json:"year"`
	Month    int      `json:"month"`
	Dates    []string `json:"dates"` // YYYY-MM-DD
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBlocked.Response) *BlockedDatesResponse {
	dates := make([]string, len(resp.BlockedDates))
	for i, d := range resp.BlockedDates {
		dates[i] = d.String()
	}

	return &BlockedDatesResponse{
		TenantID: resp.TenantID,
		Year:     resp.Year,
		Month:    resp.Month,
		Dates:    dates,
	}
}
