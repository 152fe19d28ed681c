package on_engagement_changed

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/internal/service/conflicts"
	"github.com/m04kA/gig-conflicts/internal/service/severity"
	"github.com/m04kA/gig-conflicts/pkg/dbmetrics"
)

// UseCase координатор разрешения конфликтов: пересчитывает конфликты измененного обязательства
// и сверяет их с реестром в одной транзакции
type UseCase struct {
	source     EngagementSource
	analyzer   Analyzer
	classifier Classifier
	thresholds ThresholdsProvider
	registry   ConflictRegistry
	txManager  TransactionManager
	metrics    MetricsRecorder
	opts       Options
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	source EngagementSource,
	analyzer Analyzer,
	classifier Classifier,
	thresholds ThresholdsProvider,
	registry ConflictRegistry,
	txManager TransactionManager,
	metrics MetricsRecorder,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		source:     source,
		analyzer:   analyzer,
		classifier: classifier,
		thresholds: thresholds,
		registry:   registry,
		txManager:  txManager,
		metrics:    metrics,
		opts:       validateOptions(opts),
		logger:     logger,
	}
}

// Execute выполняет пересчет конфликтов
// Идемпотентен: повторный вызов без изменений данных дает тот же набор записей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("OnEngagementChanged: validation failed: %v", err)
		return nil, err
	}

	changed := req.Engagement
	uc.logger.Info("OnEngagementChanged: owner=%s, engagement=%s, kind=%s, date=%s, status=%s",
		req.OwnerID, changed.ID, changed.Kind, changed.Date.Format(domain.DateFormat), changed.Status)

	// 2. Ищем конфликты (для отмененного обязательства конфликтов нет)
	var findings []pairFinding
	if changed.IsTerminal() {
		uc.logger.Info("OnEngagementChanged: engagement=%s is %s, clearing its conflicts", changed.ID, changed.Status)
	} else {
		candidates, err := uc.fetchCandidates(ctx, req.OwnerID, changed)
		if err != nil {
			return nil, err
		}
		th, err := uc.ownerThresholds(ctx, req.OwnerID)
		if err != nil {
			return nil, err
		}
		findings, err = uc.analyze(ctx, changed, candidates, th)
		if err != nil {
			uc.logger.Warn("OnEngagementChanged: analysis aborted for owner=%s engagement=%s: %v",
				req.OwnerID, changed.ID, err)
			return nil, fmt.Errorf("%w: analyze: %w", ErrInternal, err)
		}
	}

	// 3. Сверяем с реестром одной транзакцией; при гонке повторяем один раз со свежим чтением
	purged, err := uc.reconcile(ctx, req.OwnerID, changed, findings)
	if err != nil && errors.Is(err, conflicts.ErrPersistenceConflict) && !dbmetrics.IsInTransaction(ctx) {
		uc.logger.Warn("OnEngagementChanged: write conflict for owner=%s engagement=%s, retrying once: %v",
			req.OwnerID, changed.ID, err)
		if uc.metrics != nil {
			uc.metrics.IncReconcileRetry()
		}
		purged, err = uc.reconcile(ctx, req.OwnerID, changed, findings)
	}
	if err != nil {
		if errors.Is(err, conflicts.ErrPersistenceConflict) {
			uc.logger.Error("OnEngagementChanged: reconciliation conflict persisted for owner=%s engagement=%s: %v",
				req.OwnerID, changed.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrPersistenceConflict, err)
		}
		uc.logger.Error("OnEngagementChanged: reconciliation failed for owner=%s engagement=%s: %v",
			req.OwnerID, changed.ID, err)
		return nil, fmt.Errorf("%w: reconcile: %v", ErrInternal, err)
	}

	// 4. Возвращаем актуальный набор
	active, err := uc.registry.ListActive(ctx, req.OwnerID)
	if err != nil {
		uc.logger.Error("OnEngagementChanged: failed to list active conflicts for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: list active: %v", ErrInternal, err)
	}

	uc.logger.Info("OnEngagementChanged: owner=%s engagement=%s detected=%d purged=%d active=%d",
		req.OwnerID, changed.ID, len(findings), purged, len(active))

	return &Response{
		Active:             active,
		Detected:           len(findings),
		Purged:             purged,
		BlocksConfirmation: domain.BlocksConfirmation(active),
	}, nil
}

// fetchCandidates получает обязательства владельца в окне дат вокруг измененного
// и отбрасывает само обязательство, отмененные и чужие
func (uc *UseCase) fetchCandidates(ctx context.Context, ownerID string, changed *domain.Engagement) ([]*domain.Engagement, error) {
	date := domain.DateOnly(changed.Date)
	from := date.AddDate(0, 0, -uc.opts.ScanWindowDays)
	to := date.AddDate(0, 0, uc.opts.ScanWindowDays)

	all, err := uc.source.ListByOwnerAndDateRange(ctx, ownerID, from, to)
	if err != nil {
		uc.logger.Error("OnEngagementChanged: failed to fetch engagements for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	candidates := make([]*domain.Engagement, 0, len(all))
	for _, e := range all {
		if e == nil || e.ID == changed.ID || e.OwnerID != ownerID || e.IsTerminal() {
			continue
		}
		days := domain.DaysBetween(date, e.Date)
		if days < -uc.opts.ScanWindowDays || days > uc.opts.ScanWindowDays {
			continue
		}
		candidates = append(candidates, e)
	}

	uc.logger.Info("OnEngagementChanged: %d candidates for engagement=%s (fetched %d)", len(candidates), changed.ID, len(all))
	return candidates, nil
}

// analyze прогоняет пары через анализатор и классификатор
// Оценки переезда выполняются параллельно, но не больше MaxParallelEstimates одновременно
// Отмена ctx прерывает анализ: неполный набор находок не должен попасть в реестр
func (uc *UseCase) analyze(ctx context.Context, changed *domain.Engagement, candidates []*domain.Engagement, th severity.Thresholds) ([]pairFinding, error) {
	results := make([]*pairFinding, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.opts.MaxParallelEstimates)

	for i, candidate := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := uc.analyzer.Analyze(gctx, changed, candidate)
			// Оценка, прерванная отменой, выглядит как неизвестный переезд
			if err := gctx.Err(); err != nil {
				return err
			}
			if res == nil {
				// Сравнивать нечего: нет времени и площадки разные
				return nil
			}

			finding := uc.classifier.ClassifyWith(res, th)

			// Пары на соседних датах записываются, только если переезд через полночь проблемный
			if !res.SameDate && finding.Severity == domain.SeverityManageable {
				return nil
			}

			results[i] = &pairFinding{candidate: candidate, finding: finding}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	findings := make([]pairFinding, 0, len(results))
	for _, f := range results {
		if f == nil {
			continue
		}
		findings = append(findings, *f)
		if uc.metrics != nil {
			uc.metrics.IncFinding(string(f.finding.Severity))
		}
	}
	return findings, nil
}

// ownerThresholds возвращает пороги владельца или пороги классификатора, если провайдера нет
func (uc *UseCase) ownerThresholds(ctx context.Context, ownerID string) (severity.Thresholds, error) {
	if uc.thresholds == nil {
		return uc.classifier.Thresholds(), nil
	}
	th, err := uc.thresholds.Thresholds(ctx, ownerID)
	if err != nil {
		uc.logger.Error("OnEngagementChanged: failed to load thresholds for owner=%s: %v", ownerID, err)
		return severity.Thresholds{}, fmt.Errorf("%w: thresholds: %v", ErrInternal, err)
	}
	return th, nil
}

// reconcile записывает находки и удаляет устаревшие записи измененного обязательства
func (uc *UseCase) reconcile(ctx context.Context, ownerID string, changed *domain.Engagement, findings []pairFinding) (int64, error) {
	var purged int64

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		valid := make([]domain.PairKey, 0, len(findings))

		for _, f := range findings {
			rec, err := uc.registry.Upsert(txCtx, ownerID, changed, f.candidate, f.finding)
			if err != nil {
				return err
			}
			valid = append(valid, rec.PairKey)
		}

		deleted, err := uc.registry.PurgeStale(txCtx, ownerID, changed.ID, valid)
		if err != nil {
			return err
		}
		purged = deleted
		return nil
	})

	return purged, err
}
