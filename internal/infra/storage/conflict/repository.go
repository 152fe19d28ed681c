package conflict

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/pkg/dbmetrics"
	"github.com/m04kA/gig-conflicts/pkg/psqlbuilder"
)

const table = "conflict_records"

// upsertSuffix вставка или обновление нерешенной записи пары
// Ориентация пары (primary/conflicting) и created_at не меняются при обновлении,
// поэтому виды обязательств раскладываются по сохраненной ориентации
const upsertSuffix = `ON CONFLICT (owner_id, pair_key) WHERE is_resolved = FALSE DO UPDATE SET
	severity = EXCLUDED.severity,
	reason = EXCLUDED.reason,
	recommendations = EXCLUDED.recommendations,
	travel_minutes = EXCLUDED.travel_minutes,
	distance_km = EXCLUDED.distance_km,
	time_gap_minutes = EXCLUDED.time_gap_minutes,
	travel_unknown = EXCLUDED.travel_unknown,
	primary_kind = CASE
		WHEN conflict_records.primary_engagement_id = EXCLUDED.primary_engagement_id
		THEN EXCLUDED.primary_kind
		ELSE EXCLUDED.conflicting_kind
	END,
	conflicting_kind = CASE
		WHEN conflict_records.primary_engagement_id = EXCLUDED.primary_engagement_id
		THEN EXCLUDED.conflicting_kind
		ELSE EXCLUDED.primary_kind
	END,
	updated_at = EXCLUDED.updated_at`

// severityOrder critical первым, затем warning, затем manageable
const severityOrder = "CASE severity WHEN 'critical' THEN 0 WHEN 'warning' THEN 1 ELSE 2 END"

var columns = []string{
	"id",
	"owner_id",
	"pair_key",
	"primary_engagement_id",
	"conflicting_engagement_id",
	"primary_kind",
	"conflicting_kind",
	"severity",
	"reason",
	"recommendations",
	"travel_minutes",
	"distance_km",
	"time_gap_minutes",
	"travel_unknown",
	"is_resolved",
	"resolution",
	"notes",
	"created_at",
	"updated_at",
	"resolved_at",
}

// Repository репозиторий записей о конфликтах
// Работает с PostgreSQL и SQLite, отличаются только плейсхолдеры
type Repository struct {
	db DBExecutor
	sb squirrel.StatementBuilderType
}

// NewRepository создает новый экземпляр репозитория конфликтов
func NewRepository(db DBExecutor, dialect psqlbuilder.Dialect) *Repository {
	return &Repository{
		db: db,
		sb: psqlbuilder.For(dialect),
	}
}

// Upsert создает нерешенную запись для пары или обновляет существующую
// Конкурентные вызовы для одной пары сходятся в одну запись благодаря
// частичному уникальному индексу (owner_id, pair_key) WHERE is_resolved = FALSE
func (r *Repository) Upsert(ctx context.Context, rec *domain.ConflictRecord) (*domain.ConflictRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	recommendations, err := encodeRecommendations(rec.Recommendations)
	if err != nil {
		return nil, err
	}

	query, args, err := r.sb.Insert(table).
		Columns(
			"owner_id",
			"pair_key",
			"primary_engagement_id",
			"conflicting_engagement_id",
			"primary_kind",
			"conflicting_kind",
			"severity",
			"reason",
			"recommendations",
			"travel_minutes",
			"distance_km",
			"time_gap_minutes",
			"travel_unknown",
			"is_resolved",
			"created_at",
			"updated_at",
		).
		Values(
			rec.OwnerID,
			string(rec.PairKey),
			rec.PrimaryEngagementID,
			rec.ConflictingEngagementID,
			string(rec.PrimaryKind),
			string(rec.ConflictingKind),
			string(rec.Severity),
			rec.Reason,
			recommendations,
			nullInt(rec.TravelMinutes),
			nullFloat(rec.DistanceKm),
			nullInt(rec.TimeGapMinutes),
			rec.TravelUnknown,
			false,
			rec.CreatedAt.UTC(),
			rec.UpdatedAt.UTC(),
		).
		Suffix(upsertSuffix).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, wrapExec("Upsert - execute insert", err)
	}

	stored, err := r.GetActiveByPair(ctx, rec.OwnerID, rec.PairKey)
	if err != nil {
		return nil, fmt.Errorf("Upsert - read back: %w", err)
	}
	return stored, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ConflictRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rec, err := scanRecord(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConflictNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan record: %v", ErrScanRow, err)
	}

	return rec, nil
}

// GetActiveByPair получает нерешенную запись пары
func (r *Repository) GetActiveByPair(ctx context.Context, ownerID string, pairKey domain.PairKey) (*domain.ConflictRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"pair_key": string(pairKey)}).
		Where("is_resolved = FALSE").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByPair - build select query: %v", ErrBuildQuery, err)
	}

	rec, err := scanRecord(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConflictNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByPair - scan record: %v", ErrScanRow, err)
	}

	return rec, nil
}

// ListActive получает все нерешенные записи владельца
// Сортировка: critical первым, затем по времени создания
func (r *Repository) ListActive(ctx context.Context, ownerID string) ([]*domain.ConflictRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where("is_resolved = FALSE").
		OrderBy(severityOrder, "created_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapExec("ListActive - execute query", err)
	}
	defer rows.Close()

	records := make([]*domain.ConflictRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan record: %v", ErrScanRow, err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows iteration: %v", ErrScanRow, err)
	}

	return records, nil
}

// MarkResolved закрывает запись решением
// Обновление условное (is_resolved = FALSE): из двух конкурентных вызовов побеждает первый,
// второй получает ErrAlreadyResolved
func (r *Repository) MarkResolved(ctx context.Context, id int64, resolution domain.Resolution, notes *string, resolvedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Update(table).
		Set("is_resolved", true).
		Set("resolution", string(resolution)).
		Set("notes", nullString(notes)).
		Set("resolved_at", resolvedAt.UTC()).
		Set("updated_at", resolvedAt.UTC()).
		Where(squirrel.Eq{"id": id}).
		Where("is_resolved = FALSE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkResolved - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapExec("MarkResolved - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkResolved - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyResolved
	}

	return nil
}

// DeleteStale удаляет нерешенные записи владельца с участием engagementID,
// пары которых не входят в keep
func (r *Repository) DeleteStale(ctx context.Context, ownerID, engagementID string, keep []domain.PairKey) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	keepKeys := make([]string, 0, len(keep))
	for _, k := range keep {
		keepKeys = append(keepKeys, string(k))
	}

	query, args, err := r.sb.Delete(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where("is_resolved = FALSE").
		Where(squirrel.Or{
			squirrel.Eq{"primary_engagement_id": engagementID},
			squirrel.Eq{"conflicting_engagement_id": engagementID},
		}).
		Where(squirrel.NotEq{"pair_key": keepKeys}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteStale - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapExec("DeleteStale - execute delete", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteStale - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// DeleteByEngagement удаляет все записи (включая решенные) с участием engagementID
// Вызывается, когда обязательство удалено в основном приложении
func (r *Repository) DeleteByEngagement(ctx context.Context, ownerID, engagementID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Delete(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Or{
			squirrel.Eq{"primary_engagement_id": engagementID},
			squirrel.Eq{"conflicting_engagement_id": engagementID},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByEngagement - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapExec("DeleteByEngagement - execute delete", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByEngagement - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*domain.ConflictRecord, error) {
	var (
		rec             domain.ConflictRecord
		pairKey         string
		primaryKind     string
		conflictingKind string
		severity        string
		recommendations string
		travelMinutes   sql.NullInt64
		distanceKm      sql.NullFloat64
		timeGapMinutes  sql.NullInt64
		resolution      sql.NullString
		notes           sql.NullString
		createdAt       sql.NullTime
		updatedAt       sql.NullTime
		resolvedAt      sql.NullTime
	)

	err := row.Scan(
		&rec.ID,
		&rec.OwnerID,
		&pairKey,
		&rec.PrimaryEngagementID,
		&rec.ConflictingEngagementID,
		&primaryKind,
		&conflictingKind,
		&severity,
		&rec.Reason,
		&recommendations,
		&travelMinutes,
		&distanceKm,
		&timeGapMinutes,
		&rec.TravelUnknown,
		&rec.IsResolved,
		&resolution,
		&notes,
		&createdAt,
		&updatedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.PairKey = domain.PairKey(pairKey)
	rec.PrimaryKind = domain.EngagementKind(primaryKind)
	rec.ConflictingKind = domain.EngagementKind(conflictingKind)
	rec.Severity = domain.Severity(severity)
	if err := json.Unmarshal([]byte(recommendations), &rec.Recommendations); err != nil {
		return nil, fmt.Errorf("decode recommendations: %v", err)
	}
	if travelMinutes.Valid {
		v := int(travelMinutes.Int64)
		rec.TravelMinutes = &v
	}
	if distanceKm.Valid {
		v := distanceKm.Float64
		rec.DistanceKm = &v
	}
	if timeGapMinutes.Valid {
		v := int(timeGapMinutes.Int64)
		rec.TimeGapMinutes = &v
	}
	if resolution.Valid {
		v := domain.Resolution(resolution.String)
		rec.Resolution = &v
	}
	if notes.Valid {
		v := notes.String
		rec.Notes = &v
	}
	rec.CreatedAt = createdAt.Time
	rec.UpdatedAt = updatedAt.Time
	if resolvedAt.Valid {
		v := resolvedAt.Time
		rec.ResolvedAt = &v
	}

	return &rec, nil
}

func encodeRecommendations(recs []string) (string, error) {
	if recs == nil {
		recs = []string{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return string(data), nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
