package get_available_slots

import (
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	TenantID        int64      // ID тенанта
	ServiceID       int64      // ID услуги (для логирования, не влияет на результат)
	Date            types.Date // Дата, на которую запрашиваются слоты
	DurationMinutes int        // Длительность искомой услуги в минутах
}

// Response модель ответа со списком доступных слотов
type Response struct {
	TenantID        int64
	Date            types.Date
	DurationMinutes int
	Slots           []Slot
}

// Slot модель доступного слота
type Slot struct {
	StartMinutes types.MinuteOfDay
	EndMinutes   types.MinuteOfDay
}

// buildSlots разворачивает минуты начала в слоты с концом интервала
func buildSlots(starts []types.MinuteOfDay, durationMinutes int) []Slot {
	slots := make([]Slot, len(starts))
	for i, start := range starts {
		slots[i] = Slot{
			StartMinutes: start,
			EndMinutes:   start.Add(durationMinutes),
		}
	}
	return slots
}
