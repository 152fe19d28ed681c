package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Severity уровень серьезности конфликта
type Severity string

const (
	SeverityCritical   Severity = "critical"
	SeverityWarning    Severity = "warning"
	SeverityManageable Severity = "manageable"
)

// Rank порядок сортировки: critical первым
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// IsValid возвращает true для известных уровней
func (s Severity) IsValid() bool {
	return s == SeverityCritical || s == SeverityWarning || s == SeverityManageable
}

// Resolution итоговое решение по конфликту
type Resolution string

const (
	ResolutionAccepted    Resolution = "accepted"
	ResolutionDeclined    Resolution = "declined"
	ResolutionRescheduled Resolution = "rescheduled"
)

// IsValid возвращает true для известных решений
func (r Resolution) IsValid() bool {
	return r == ResolutionAccepted || r == ResolutionDeclined || r == ResolutionRescheduled
}

// PairKey каноничный ключ неупорядоченной пары обязательств: меньший ID первым
// Однозначен, пока ID не содержат разделитель (см. ValidateEngagementID)
type PairKey string

const pairSeparator = "|"

// ErrInvalidEngagementID возвращается для ID, который нельзя использовать в ключе пары
var ErrInvalidEngagementID = errors.New("invalid engagement id")

// ValidateEngagementID проверяет, что ID непустой, не длиннее MaxIDLength и не содержит разделитель пары
func ValidateEngagementID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidEngagementID)
	}
	if len(id) > MaxIDLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidEngagementID, MaxIDLength)
	}
	if strings.Contains(id, pairSeparator) {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidEngagementID, id, pairSeparator)
	}
	return nil
}

// NewPairKey строит ключ пары независимо от порядка аргументов
func NewPairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey(a + pairSeparator + b)
}

// ConflictFinding результат одного прохода анализа (не сохраняется напрямую)
type ConflictFinding struct {
	Severity        Severity
	TravelMinutes   *int
	DistanceKm      *float64
	TimeGapMinutes  *int // отрицательное значение = величина наложения
	TravelUnknown   bool
	TimeUnconfirmed bool
	SameVenue       bool
	Reason          string
	Recommendations []string
}

// ConflictRecord сохраненный конфликт между двумя обязательствами одного владельца
type ConflictRecord struct {
	ID                      int64
	OwnerID                 string
	PairKey                 PairKey
	PrimaryEngagementID     string
	ConflictingEngagementID string
	PrimaryKind             EngagementKind
	ConflictingKind         EngagementKind
	Severity                Severity
	Reason                  string
	Recommendations         []string
	TravelMinutes           *int
	DistanceKm              *float64
	TimeGapMinutes          *int
	TravelUnknown           bool
	IsResolved              bool
	Resolution              *Resolution
	Notes                   *string
	CreatedAt               time.Time
	UpdatedAt               time.Time
	ResolvedAt              *time.Time
}

// State возвращает состояние записи в машине состояний: DETECTED или RESOLVED
func (r *ConflictRecord) State() string {
	if r.IsResolved {
		return "RESOLVED"
	}
	return "DETECTED"
}

// Involves возвращает true, если запись касается обязательства
func (r *ConflictRecord) Involves(engagementID string) bool {
	return r.PrimaryEngagementID == engagementID || r.ConflictingEngagementID == engagementID
}

// BlocksConfirmation возвращает true, если среди записей есть нерешенный critical конфликт
// Такой конфликт не позволяет уверенно подтвердить бронирование
func BlocksConfirmation(records []*ConflictRecord) bool {
	for _, r := range records {
		if !r.IsResolved && r.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
