package create_booking

import (
	"time"

	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	TenantID        int64             // ID тенанта
	ServiceID       int64             // ID услуги
	Date            types.Date        // Дата бронирования
	StartMinutes    types.MinuteOfDay // Время начала (минуты от полуночи)
	DurationMinutes int               // Длительность в минутах
	Status          string            // Начальный статус: пусто = confirmed, иначе pending|confirmed
	Notes           *string           // Заметки клиента
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	TenantID        int64
	ServiceID       int64
	Date            types.Date
	StartMinutes    types.MinuteOfDay
	EndMinutes      types.MinuteOfDay
	DurationMinutes int
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
