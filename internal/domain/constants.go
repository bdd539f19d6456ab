package domain

// Default scheduling settings
const (
	DefaultGranularityMinutes = 15
	DefaultLeadTimeMinutes    = 0 // без ограничения, если тенант не настроил
	DefaultAdvanceBookingDays = 0 // 0 = unlimited
)

// Business validation constants
const (
	MinGranularityMinutes = 5
	MaxGranularityMinutes = 240
	MinDurationMinutes    = 1
	MaxDurationMinutes    = 480 // 8 hours
	MinLeadTimeMinutes    = 0
	MaxLeadTimeMinutes    = 10080 // 1 week
	MinAdvanceBookingDays = 0
	MaxAdvanceBookingDays = 365
	MaxReasonLength       = 500
	MaxNotesLength        = 500
)

// Weekday bounds (0 = Sunday ... 6 = Saturday)
const (
	MinWeekday  = 0
	MaxWeekday  = 6
	DaysPerWeek = 7
)

// ActiveStatuses статусы, занимающие слот.
// Используется леджером при подсчёте занятых интервалов: cancelled
// исключается безусловно — именно так отмена мгновенно освобождает слот.
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// BookableStatuses статусы, с которыми может создаваться бронирование
var BookableStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
