package reservation

import "errors"

var (
	// ErrNotFound возвращается, когда бронирование не найдено
	ErrNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotConflict возвращается, когда вставка нарушила exclusion constraint
	// на пересечение интервалов (параллельное бронирование того же слота)
	ErrSlotConflict = errors.New("reservation.repository: slot already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
