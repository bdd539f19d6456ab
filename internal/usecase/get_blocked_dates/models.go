package get_blocked_dates

import (
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// Request модель запроса на получение недоступных дат месяца
type Request struct {
	TenantID int64 // ID тенанта
	Year     int   // Год
	Month    int   // Месяц (1-12)
	// DurationMinutes репрезентативная длительность услуги для проверки
	// наличия слотов. 0 = использовать гранулярность тенанта.
	DurationMinutes int
}

// Response модель ответа со списком полностью недоступных дат
type Response struct {
	TenantID     int64
	Year         int
	Month        int
	BlockedDates []types.Date
}
