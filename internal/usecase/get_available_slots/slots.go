package get_available_slots

import (
	"github.com/laia-platform/LAIA-SchedulingService/internal/domain"
	"github.com/laia-platform/LAIA-SchedulingService/pkg/types"
)

// generateSlots генерирует минуты начала доступных слотов.
//
// Кандидаты идут от начала рабочего окна с шагом granularity. Кандидат
// проходит, если:
//   - слот целиком помещается в рабочее окно (start+duration <= window.End);
//   - слот не пересекается ни с одним занятым интервалом;
//   - слот начинается не раньше minStart (порог lead time на сегодня).
//
// Пересечение считается по полуоткрытым интервалам: бронирование,
// заканчивающееся ровно в начале кандидата, пересечением НЕ является.
func generateSlots(
	window domain.Interval,
	granularityMinutes int,
	durationMinutes int,
	busy []domain.Interval,
	minStart types.MinuteOfDay,
) []types.MinuteOfDay {
	starts := make([]types.MinuteOfDay, 0)

	if window.IsEmpty() || granularityMinutes <= 0 || durationMinutes <= 0 {
		return starts
	}

	for start := window.Start; start.Add(durationMinutes) <= window.End; start = start.Add(granularityMinutes) {
		if start < minStart {
			continue
		}

		candidate := domain.Interval{Start: start, End: start.Add(durationMinutes)}

		if overlapsAny(candidate, busy) {
			continue
		}

		starts = append(starts, start)
	}

	return starts
}

// overlapsAny проверяет пересечение кандидата хотя бы с одним занятым интервалом
func overlapsAny(candidate domain.Interval, busy []domain.Interval) bool {
	for _, iv := range busy {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}

// collectBusyIntervals собирает занятые интервалы дня из активных бронирований
// и блокировок. Отменённые бронирования сюда не попадают — репозиторий
// отфильтровывает их на уровне запроса. Результат отсортирован и дизъюнктен.
func collectBusyIntervals(reservations []*domain.Reservation, blocks []*domain.BlockedSlot) []domain.Interval {
	intervals := make([]domain.Interval, 0, len(reservations)+len(blocks))

	for _, res := range reservations {
		if !res.IsActive() {
			continue
		}
		intervals = append(intervals, res.Interval())
	}

	for _, block := range blocks {
		intervals = append(intervals, block.Interval())
	}

	return domain.MergeIntervals(intervals)
}
