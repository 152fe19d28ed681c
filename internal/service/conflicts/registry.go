package conflicts

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/gig-conflicts/internal/domain"
	conflictRepo "github.com/m04kA/gig-conflicts/internal/infra/storage/conflict"
	"github.com/m04kA/gig-conflicts/pkg/dbmetrics"
)

// Registry реестр конфликтов: единственный источник правды о конфликтах владельца
// Дедуплицирует записи по неупорядоченной паре и ведет машину состояний DETECTED -> RESOLVED
type Registry struct {
	repo      ConflictRepository
	txManager TransactionManager
	clock     TimeProvider
	metrics   MetricsRecorder
	logger    Logger
}

// NewRegistry создает новый экземпляр реестра конфликтов
func NewRegistry(
	repo ConflictRepository,
	txManager TransactionManager,
	clock TimeProvider,
	metrics MetricsRecorder,
	logger Logger,
) *Registry {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Registry{
		repo:      repo,
		txManager: txManager,
		clock:     clock,
		metrics:   metrics,
		logger:    logger,
	}
}

// Upsert создает нерешенную запись для пары primary/conflicting или обновляет существующую
// Пара канонизируется, поэтому вызов с любой стороны попадает в одну запись
// Вне транзакции гонка за уникальный индекс повторяется один раз; внутри транзакции
// ошибка возвращается, и повтор делает владелец транзакции
func (r *Registry) Upsert(
	ctx context.Context,
	ownerID string,
	primary, conflicting *domain.Engagement,
	finding domain.ConflictFinding,
) (*domain.ConflictRecord, error) {
	if err := validateUpsert(ownerID, primary, conflicting, finding); err != nil {
		r.logger.Warn("Upsert: invalid input for owner=%s: %v", ownerID, err)
		return nil, err
	}

	now := r.clock.Now()
	rec := &domain.ConflictRecord{
		OwnerID:                 ownerID,
		PairKey:                 domain.NewPairKey(primary.ID, conflicting.ID),
		PrimaryEngagementID:     primary.ID,
		ConflictingEngagementID: conflicting.ID,
		PrimaryKind:             primary.Kind,
		ConflictingKind:         conflicting.Kind,
		Severity:                finding.Severity,
		Reason:                  finding.Reason,
		Recommendations:         finding.Recommendations,
		TravelMinutes:           finding.TravelMinutes,
		DistanceKm:              finding.DistanceKm,
		TimeGapMinutes:          finding.TimeGapMinutes,
		TravelUnknown:           finding.TravelUnknown,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	stored, err := r.repo.Upsert(ctx, rec)
	if err != nil && errors.Is(err, conflictRepo.ErrPersistenceConflict) && !dbmetrics.IsInTransaction(ctx) {
		r.logger.Warn("Upsert: write conflict for owner=%s pair=%s, retrying once", ownerID, rec.PairKey)
		stored, err = r.repo.Upsert(ctx, rec)
	}
	if err != nil {
		if errors.Is(err, conflictRepo.ErrPersistenceConflict) {
			return nil, fmt.Errorf("%w: Upsert - pair %s: %v", ErrPersistenceConflict, rec.PairKey, err)
		}
		r.logger.Error("Upsert: repository error for owner=%s pair=%s: %v", ownerID, rec.PairKey, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	return stored, nil
}

// Resolve закрывает запись решением
// Первое решение побеждает: повторный вызов возвращает ErrAlreadyResolved и ничего не меняет
func (r *Registry) Resolve(ctx context.Context, id int64, resolution domain.Resolution, notes *string) (*domain.ConflictRecord, error) {
	r.logger.Info("Resolve: resolving conflict id=%d as %s", id, resolution)

	if id <= 0 {
		return nil, fmt.Errorf("%w: conflict id must be positive", ErrInvalidInput)
	}
	if !resolution.IsValid() {
		return nil, fmt.Errorf("%w: unknown resolution %q", ErrInvalidInput, resolution)
	}
	if notes != nil && utf8.RuneCountInString(*notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	var resolved *domain.ConflictRecord
	err := r.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Запись должна существовать
		current, err := r.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, conflictRepo.ErrConflictNotFound) {
				return ErrConflictNotFound
			}
			return fmt.Errorf("%w: Resolve - get record: %v", ErrInternal, err)
		}

		// 2. RESOLVED терминальное состояние
		if current.IsResolved {
			return ErrAlreadyResolved
		}

		// 3. Условное обновление: конкурентный resolve получит ErrAlreadyResolved
		if err := r.repo.MarkResolved(ctx, id, resolution, notes, r.clock.Now()); err != nil {
			if errors.Is(err, conflictRepo.ErrAlreadyResolved) {
				return ErrAlreadyResolved
			}
			return fmt.Errorf("%w: Resolve - mark resolved: %v", ErrInternal, err)
		}

		resolved, err = r.repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: Resolve - read back: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrConflictNotFound):
			r.logger.Warn("Resolve: conflict id=%d not found", id)
		case errors.Is(err, ErrAlreadyResolved):
			r.logger.Warn("Resolve: conflict id=%d already resolved", id)
		default:
			r.logger.Error("Resolve: failed to resolve conflict id=%d: %v", id, err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: Resolve - transaction: %v", ErrInternal, err)
			}
		}
		return nil, err
	}

	if r.metrics != nil {
		r.metrics.IncResolved(string(resolution))
	}
	r.logger.Info("Resolve: conflict id=%d resolved as %s", id, resolution)
	return resolved, nil
}

// ListActive возвращает нерешенные записи владельца: critical первым, затем по времени создания
func (r *Registry) ListActive(ctx context.Context, ownerID string) ([]*domain.ConflictRecord, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	records, err := r.repo.ListActive(ctx, ownerID)
	if err != nil {
		r.logger.Error("ListActive: repository error for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}
	return records, nil
}

// GetByID возвращает запись по ID (решенную или нет)
func (r *Registry) GetByID(ctx context.Context, id int64) (*domain.ConflictRecord, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: conflict id must be positive", ErrInvalidInput)
	}

	rec, err := r.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, conflictRepo.ErrConflictNotFound) {
			return nil, ErrConflictNotFound
		}
		r.logger.Error("GetByID: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return rec, nil
}

// GetByPair возвращает нерешенную запись пары независимо от порядка ID
func (r *Registry) GetByPair(ctx context.Context, ownerID, a, b string) (*domain.ConflictRecord, error) {
	if ownerID == "" || a == b {
		return nil, fmt.Errorf("%w: owner id and two distinct engagement ids are required", ErrInvalidInput)
	}
	if err := validateIDs(a, b); err != nil {
		return nil, err
	}

	rec, err := r.repo.GetActiveByPair(ctx, ownerID, domain.NewPairKey(a, b))
	if err != nil {
		if errors.Is(err, conflictRepo.ErrConflictNotFound) {
			return nil, ErrConflictNotFound
		}
		r.logger.Error("GetByPair: repository error for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: GetByPair - repository error: %v", ErrInternal, err)
	}
	return rec, nil
}

// PurgeStale удаляет нерешенные записи с участием involving, которых нет в valid
// Участие определяется по колонкам primary/conflicting, поэтому пары из valid,
// не касающиеся involving, ничего не удаляют и не защищают
func (r *Registry) PurgeStale(ctx context.Context, ownerID, involving string, valid []domain.PairKey) (int64, error) {
	if ownerID == "" || involving == "" {
		return 0, fmt.Errorf("%w: owner id and engagement id are required", ErrInvalidInput)
	}

	deleted, err := r.repo.DeleteStale(ctx, ownerID, involving, valid)
	if err != nil {
		if errors.Is(err, conflictRepo.ErrPersistenceConflict) {
			return 0, fmt.Errorf("%w: PurgeStale: %v", ErrPersistenceConflict, err)
		}
		r.logger.Error("PurgeStale: repository error for owner=%s engagement=%s: %v", ownerID, involving, err)
		return 0, fmt.Errorf("%w: PurgeStale - repository error: %v", ErrInternal, err)
	}

	if deleted > 0 {
		r.logger.Info("PurgeStale: removed %d stale conflicts for owner=%s engagement=%s", deleted, ownerID, involving)
	}
	return deleted, nil
}

// PurgeEngagement удаляет все записи с участием удаленного обязательства, включая решенные
func (r *Registry) PurgeEngagement(ctx context.Context, ownerID, engagementID string) (int64, error) {
	if ownerID == "" || engagementID == "" {
		return 0, fmt.Errorf("%w: owner id and engagement id are required", ErrInvalidInput)
	}

	deleted, err := r.repo.DeleteByEngagement(ctx, ownerID, engagementID)
	if err != nil {
		r.logger.Error("PurgeEngagement: repository error for owner=%s engagement=%s: %v", ownerID, engagementID, err)
		return 0, fmt.Errorf("%w: PurgeEngagement - repository error: %v", ErrInternal, err)
	}

	r.logger.Info("PurgeEngagement: removed %d conflicts for owner=%s engagement=%s", deleted, ownerID, engagementID)
	return deleted, nil
}

func validateUpsert(ownerID string, primary, conflicting *domain.Engagement, finding domain.ConflictFinding) error {
	if ownerID == "" {
		return fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	if primary == nil || conflicting == nil {
		return fmt.Errorf("%w: both engagements are required", ErrInvalidInput)
	}
	if err := validateIDs(primary.ID, conflicting.ID); err != nil {
		return err
	}
	if primary.ID == conflicting.ID {
		return fmt.Errorf("%w: engagement cannot conflict with itself", ErrInvalidInput)
	}
	if primary.OwnerID != ownerID || conflicting.OwnerID != ownerID {
		return fmt.Errorf("%w: engagements belong to a different owner", ErrInvalidInput)
	}
	if !finding.Severity.IsValid() {
		return fmt.Errorf("%w: unknown severity %q", ErrInvalidInput, finding.Severity)
	}
	return nil
}

// validateIDs проверяет, что из ID можно построить однозначный ключ пары
func validateIDs(ids ...string) error {
	for _, id := range ids {
		if err := domain.ValidateEngagementID(id); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	return nil
}
