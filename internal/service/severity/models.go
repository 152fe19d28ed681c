package severity

import "github.com/m04kA/gig-conflicts/internal/domain"

// Thresholds настраиваемые пороги классификации
type Thresholds struct {
	// TravelBufferMinutes минимальный запас после переезда, меньше него = warning
	TravelBufferMinutes int
	// UnknownTravelGapMinutes промежуток, меньше которого неизвестный переезд = warning
	UnknownTravelGapMinutes int
}

// DefaultThresholds возвращает пороги по умолчанию (30 и 120 минут)
func DefaultThresholds() Thresholds {
	return Thresholds{
		TravelBufferMinutes:     domain.DefaultTravelBufferMinutes,
		UnknownTravelGapMinutes: domain.DefaultUnknownTravelGapMinutes,
	}
}

// Причины конфликтов
const (
	ReasonSameVenueOverlap   = "double-booked at the same venue"
	ReasonDifferentVenues    = "performances overlap in time at different venues: physically impossible to fulfill both"
	ReasonInsufficientTravel = "insufficient travel time between venues"
	ReasonTightTravel        = "tight travel window between venues"
	ReasonTimeUnconfirmed    = "same-day booking with unconfirmed time; verify before confirming both"
	ReasonTravelUnknown      = "travel time could not be estimated; manual review recommended"
	ReasonAdequate           = "same-day bookings with adequate separation"
	ReasonNotComparable      = "same-day bookings without comparable time or venue"
)

// Рекомендации
const (
	recContactClient      = "contact one client to reschedule or decline"
	recConfirmVenueSlot   = "confirm with the venue which event holds the slot"
	recDoNotConfirmBoth   = "do not confirm both bookings"
	recDeclineLater       = "consider declining the later booking"
	recMoveLaterStart     = "ask the later client to move the start time"
	recTransport          = "confirm transport arrangements"
	recLoadIn             = "allow extra time for load-in at the second venue"
	recConfirmTimes       = "confirm start and end times with both clients"
	recVerifyBeforeBoth   = "verify before confirming both"
	recCheckTravel        = "check travel time manually"
	recWatchTimingChanges = "keep an eye on timings if either booking changes"
)
