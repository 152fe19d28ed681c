package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/gig-conflicts/internal/domain"
	"github.com/m04kA/gig-conflicts/pkg/dbmetrics"
	"github.com/m04kA/gig-conflicts/pkg/psqlbuilder"
)

const table = "owner_settings"

// Fields пороги, которые Upsert перезаписывает у существующей строки
// Остальные колонки сохраняют значения из базы, поэтому частичные обновления не теряются
type Fields struct {
	TravelBuffer     bool
	UnknownTravelGap bool
}

func (f Fields) upsertSuffix() string {
	set := make([]string, 0, 3)
	if f.TravelBuffer {
		set = append(set, "travel_buffer_minutes = EXCLUDED.travel_buffer_minutes")
	}
	if f.UnknownTravelGap {
		set = append(set, "unknown_travel_gap_minutes = EXCLUDED.unknown_travel_gap_minutes")
	}
	set = append(set, "updated_at = EXCLUDED.updated_at")
	return "ON CONFLICT (owner_id) DO UPDATE SET " + strings.Join(set, ", ")
}

// Repository репозиторий порогов исполнителей
type Repository struct {
	db DBExecutor
	sb squirrel.StatementBuilderType
}

// NewRepository создает новый экземпляр репозитория порогов
func NewRepository(db DBExecutor, dialect psqlbuilder.Dialect) *Repository {
	return &Repository{
		db: db,
		sb: psqlbuilder.For(dialect),
	}
}

// Get получает пороги владельца
func (r *Repository) Get(ctx context.Context, ownerID string) (*domain.OwnerSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Select(
		"owner_id",
		"travel_buffer_minutes",
		"unknown_travel_gap_minutes",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.OwnerSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.OwnerID,
		&s.TravelBufferMinutes,
		&s.UnknownTravelGapMinutes,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time.UTC()
	s.UpdatedAt = updatedAt.Time.UTC()

	return &s, nil
}

// Upsert сохраняет пороги владельца одним запросом; created_at при обновлении не меняется
// Новая строка получает все значения из s, существующая только поля из fields
func (r *Repository) Upsert(ctx context.Context, s *domain.OwnerSettings, fields Fields) (*domain.OwnerSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Insert(table).
		Columns(
			"owner_id",
			"travel_buffer_minutes",
			"unknown_travel_gap_minutes",
			"created_at",
			"updated_at",
		).
		Values(
			s.OwnerID,
			s.TravelBufferMinutes,
			s.UnknownTravelGapMinutes,
			s.CreatedAt.UTC(),
			s.UpdatedAt.UTC(),
		).
		Suffix(fields.upsertSuffix()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return r.Get(ctx, s.OwnerID)
}

// Delete удаляет переопределение; возвращает false, если его не было
func (r *Repository) Delete(ctx context.Context, ownerID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.sb.Delete(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	return rows > 0, nil
}
