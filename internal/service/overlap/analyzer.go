package overlap

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/internal/integrations/routing"
)

// Analyzer вычисляет наложение/промежуток между двумя обязательствами одного владельца
// и, для разных площадок, время переезда между ними
type Analyzer struct {
	locator   VenueLocator
	estimator TravelEstimator
	timeout   time.Duration
	logger    Logger
}

// NewAnalyzer создает новый экземпляр анализатора
// timeout ограничивает один вызов оценщика и не может превышать domain.MaxEstimatorTimeout
func NewAnalyzer(locator VenueLocator, estimator TravelEstimator, timeout time.Duration, logger Logger) *Analyzer {
	if timeout <= 0 || timeout > domain.MaxEstimatorTimeout {
		timeout = domain.DefaultEstimatorTimeout
	}
	return &Analyzer{
		locator:   locator,
		estimator: estimator,
		timeout:   timeout,
		logger:    logger,
	}
}

// Analyze сравнивает два обязательства
// Возвращает nil, когда сравнивать нечего:
//   - у обоих нет времени и площадки разные;
//   - даты разные и хотя бы у одного нет времени.
//
// Ошибки оценщика не прерывают анализ: переезд помечается как неизвестный
func (a *Analyzer) Analyze(ctx context.Context, x, y *domain.Engagement) *Result {
	res := &Result{
		SameDate:  domain.SameDay(x.Date, y.Date),
		SameVenue: x.Venue.Same(y.Venue),
		Travel:    TravelNotEvaluated,
	}

	base := x.Date
	if y.Date.Before(base) {
		base = y.Date
	}

	xs, xe, xok := x.Window(base)
	ys, ye, yok := y.Window(base)

	if !xok || !yok {
		if !res.SameDate {
			return nil
		}
		if !x.HasTimeWindow() && !y.HasTimeWindow() && !res.SameVenue {
			return nil
		}
		res.TimeUnconfirmed = true
		res.First, res.Second = orderByID(x, y)
		return res
	}

	// Раньше начавшееся обязательство первое, при равном начале по ID
	if ys < xs || (ys == xs && y.ID < x.ID) {
		x, y = y, x
		xs, xe, ys, ye = ys, ye, xs, xe
	}
	res.First, res.Second = x, y

	gap := max(xs, ys) - min(xe, ye)
	res.TimeGapMinutes = &gap

	if res.SameVenue {
		return res
	}

	a.evaluateTravel(ctx, res)
	return res
}

// evaluateTravel запрашивает оценку переезда от площадки First к площадке Second
func (a *Analyzer) evaluateTravel(ctx context.Context, res *Result) {
	origin, ok := a.locate(ctx, res.First.Venue)
	if !ok {
		res.Travel = TravelUnavailable
		return
	}
	dest, ok := a.locate(ctx, res.Second.Venue)
	if !ok {
		res.Travel = TravelUnavailable
		return
	}
	if a.estimator == nil {
		res.Travel = TravelUnavailable
		return
	}

	estCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	est, err := a.estimator.Estimate(estCtx, origin, dest)
	if err != nil {
		if errors.Is(err, routing.ErrTimeout) || errors.Is(estCtx.Err(), context.DeadlineExceeded) {
			a.logger.Warn("Analyze: travel estimate timed out for %s -> %s: %v", res.First.Venue, res.Second.Venue, err)
			res.Travel = TravelTimeout
			return
		}
		a.logger.Warn("Analyze: travel estimate unavailable for %s -> %s: %v", res.First.Venue, res.Second.Venue, err)
		res.Travel = TravelUnavailable
		return
	}

	minutes := est.Minutes
	km := est.DistanceKm
	res.Travel = TravelOK
	res.TravelMinutes = &minutes
	res.DistanceKm = &km
}

// locate возвращает локацию площадки: из справочника по ID, иначе по тексту адреса
func (a *Analyzer) locate(ctx context.Context, venue domain.Venue) (domain.Location, bool) {
	if venue.ID != "" && a.locator != nil {
		loc, err := a.locator.GetVenueLocation(ctx, venue.ID)
		if err != nil {
			a.logger.Warn("Analyze: failed to locate venue id=%s: %v", venue.ID, err)
		} else if loc != nil {
			return *loc, true
		}
	}

	if domain.NormalizeVenueText(venue.Text) == "" {
		return domain.Location{}, false
	}
	return domain.Location{Address: venue.Text}, true
}

func orderByID(x, y *domain.Engagement) (*domain.Engagement, *domain.Engagement) {
	if y.Date.Before(x.Date) || (domain.SameDay(x.Date, y.Date) && y.ID < x.ID) {
		return y, x
	}
	return x, y
}
