package cancel_reservation

import (
	"github.com/laia-platform/LAIA-SchedulingService/internal/service/reservations/models"
)

// CancelReservationRequest HTTP request body
type CancelReservationRequest struct {
	TenantID int64  `json:"tenantId"`
	Reason   string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelReservationRequest) ToServiceRequest() *models.CancelReservationRequest {
	return &models.CancelReservationRequest{
		TenantID: r.TenantID,
		Reason:   r.Reason,
	}
}
