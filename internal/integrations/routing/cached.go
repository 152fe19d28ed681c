package routing

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/pkg/metrics"
)

// Cached кэширует успешные оценки по упорядоченной паре локаций и считает исходы обращений
// Неудачные оценки не кэшируются: сервис мог временно не отвечать
type Cached struct {
	inner   Estimator
	cache   *expirable.LRU[string, Estimate]
	metrics MetricsRecorder
}

// NewCached оборачивает оценщик LRU-кэшем с TTL
// size <= 0 отключает кэширование, но исходы по-прежнему считаются
func NewCached(inner Estimator, size int, ttl time.Duration, m MetricsRecorder) *Cached {
	c := &Cached{inner: inner, metrics: m}
	if size > 0 {
		c.cache = expirable.NewLRU[string, Estimate](size, nil, ttl)
	}
	return c
}

// Estimate возвращает оценку из кэша или запрашивает её у обёрнутого оценщика
func (c *Cached) Estimate(ctx context.Context, origin, dest domain.Location) (*Estimate, error) {
	key := origin.Key() + "->" + dest.Key()

	if c.cache != nil {
		if est, ok := c.cache.Get(key); ok {
			c.record(metrics.EstimatorOutcomeCacheHit)
			return &est, nil
		}
	}

	est, err := c.inner.Estimate(ctx, origin, dest)
	if err != nil {
		if errors.Is(err, ErrTimeout) {
			c.record(metrics.EstimatorOutcomeTimeout)
		} else {
			c.record(metrics.EstimatorOutcomeUnavailable)
		}
		return nil, err
	}

	c.record(metrics.EstimatorOutcomeOK)
	if c.cache != nil {
		c.cache.Add(key, *est)
	}
	return est, nil
}

// Len количество закэшированных оценок
func (c *Cached) Len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

func (c *Cached) record(outcome string) {
	if c.metrics != nil {
		c.metrics.IncEstimator(outcome)
	}
}
