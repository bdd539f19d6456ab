package update_reservation_status

import (
	"github.com/laia-platform/LAIA-SchedulingService/internal/service/reservations/models"
)

// UpdateStatusRequest HTTP request body
type UpdateStatusRequest struct {
	TenantID int64  `json:"tenantId"`
	Status   string `json:"status"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest() *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		TenantID: r.TenantID,
		Status:   r.Status,
	}
}
