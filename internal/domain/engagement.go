package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/gig-conflicts/pkg/types"
)

// EngagementKind тип обязательства исполнителя
type EngagementKind string

const (
	KindEnquiry  EngagementKind = "enquiry"
	KindContract EngagementKind = "contract"
	KindBooking  EngagementKind = "booking"
)

// IsValid возвращает true для известных типов
func (k EngagementKind) IsValid() bool {
	switch k {
	case KindEnquiry, KindContract, KindBooking:
		return true
	}
	return false
}

// EngagementStatus статус жизненного цикла обязательства
// Набор статусов общий для всех типов, у каждого типа используется своё подмножество
type EngagementStatus string

const (
	StatusNew        EngagementStatus = "new"
	StatusInProgress EngagementStatus = "in_progress"
	StatusPending    EngagementStatus = "pending"
	StatusSent       EngagementStatus = "sent"
	StatusSigned     EngagementStatus = "signed"
	StatusConfirmed  EngagementStatus = "confirmed"
	StatusCompleted  EngagementStatus = "completed"
	StatusCancelled  EngagementStatus = "cancelled"
	StatusDeclined   EngagementStatus = "declined"
	StatusRejected   EngagementStatus = "rejected"
	StatusArchived   EngagementStatus = "archived"
)

// Venue место проведения: идентификатор из справочника площадок или произвольный текст
type Venue struct {
	ID   string
	Text string
}

// IsEmpty возвращает true, если место не указано
func (v Venue) IsEmpty() bool {
	return v.ID == "" && NormalizeVenueText(v.Text) == ""
}

// Same возвращает true, если оба места совпадают
// Совпадение по ID, либо по тексту без учета регистра и лишних пробелов
func (v Venue) Same(other Venue) bool {
	if v.ID != "" && other.ID != "" {
		return v.ID == other.ID
	}
	a, b := NormalizeVenueText(v.Text), NormalizeVenueText(other.Text)
	return a != "" && a == b
}

// String возвращает читаемое представление (для логов)
func (v Venue) String() string {
	if v.ID != "" {
		return "venue#" + v.ID
	}
	return v.Text
}

// NormalizeVenueText приводит текст площадки к нижнему регистру и схлопывает пробелы
func NormalizeVenueText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Location координаты и/или адрес площадки
type Location struct {
	Latitude  float64
	Longitude float64
	HasCoords bool
	Address   string
}

// Key возвращает ключ локации для кэширования
func (l Location) Key() string {
	if l.HasCoords {
		return strings.Join([]string{
			formatCoord(l.Latitude),
			formatCoord(l.Longitude),
		}, ",")
	}
	return NormalizeVenueText(l.Address)
}

// Engagement обязательство исполнителя (запрос, контракт или подтвержденное бронирование)
// Только для чтения: сущность принадлежит основному приложению
type Engagement struct {
	ID        string
	OwnerID   string
	Kind      EngagementKind
	Date      time.Time         // календарный день без часового пояса
	StartTime *types.TimeString // nil = время не подтверждено
	EndTime   *types.TimeString // nil = время не подтверждено
	Venue     Venue
	Status    EngagementStatus
}

// IsTerminal возвращает true для отмененных/отклоненных обязательств
func (e *Engagement) IsTerminal() bool {
	for _, s := range TerminalStatuses {
		if e.Status == s {
			return true
		}
	}
	return false
}

// HasTimeWindow возвращает true, если заданы и начало, и конец
func (e *Engagement) HasTimeWindow() bool {
	return e.StartTime != nil && !e.StartTime.IsZero() &&
		e.EndTime != nil && !e.EndTime.IsZero()
}

// Window возвращает интервал в минутах на абсолютной оси, отсчитываемой от полуночи base
// Конец раньше начала означает окончание на следующий день
func (e *Engagement) Window(base time.Time) (start, end int, ok bool) {
	if !e.HasTimeWindow() {
		return 0, 0, false
	}
	s, err := e.StartTime.Minutes()
	if err != nil {
		return 0, 0, false
	}
	en, err := e.EndTime.Minutes()
	if err != nil {
		return 0, 0, false
	}
	if en < s {
		en += types.MinutesPerDay
	}
	offset := DaysBetween(base, e.Date) * types.MinutesPerDay
	return offset + s, offset + en, true
}

// DateOnly обнуляет время, оставляя календарный день (в UTC)
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay возвращает true, если даты относятся к одному календарному дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DaysBetween количество календарных дней от a до b (может быть отрицательным)
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 5, 64)
}
