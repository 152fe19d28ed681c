package domain

import "time"

// Значения по умолчанию для классификации и сканирования
const (
	DefaultTravelBufferMinutes     = 30
	DefaultUnknownTravelGapMinutes = 120
	DefaultScanWindowDays          = 0 // только тот же день
	DefaultMaxParallelEstimates    = 4
	DefaultEstimatorTimeout        = 3 * time.Second
)

// Ограничения бизнес-валидации
const (
	MaxScanWindowDays   = 1 // ±1 день для переездов через полночь
	MaxEstimatorTimeout = 3 * time.Second
	MaxNotesLength      = 1000
	MaxIDLength         = 128
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses статусы, при которых обязательство не участвует в поиске конфликтов
var TerminalStatuses = []EngagementStatus{
	StatusCancelled,
	StatusDeclined,
	StatusRejected,
	StatusArchived,
}
