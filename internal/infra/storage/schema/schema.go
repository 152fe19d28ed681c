package schema

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/gig-conflicts/pkg/psqlbuilder"
)

// Version текущая версия схемы
const Version = 1

//go:embed postgres.sql
var postgresDDL string

//go:embed sqlite.sql
var sqliteDDL string

// ErrApply возвращается, когда схему не удалось применить
var ErrApply = errors.New("schema: failed to apply")

// Executor исполнитель DDL (*sql.DB или *dbmetrics.DB)
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DDL возвращает скрипт схемы для диалекта
func DDL(dialect psqlbuilder.Dialect) string {
	if dialect == psqlbuilder.DialectSQLite {
		return sqliteDDL
	}
	return postgresDDL
}

// Apply создает таблицы, если версия схемы еще не применена
// Возвращает true, если схема была применена этим вызовом
func Apply(ctx context.Context, db Executor, dialect psqlbuilder.Dialect) (bool, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
)`); err != nil {
		return false, fmt.Errorf("%w: create schema_migrations: %v", ErrApply, err)
	}

	sb := psqlbuilder.For(dialect)

	query, args, err := sb.Select("COUNT(*)").
		From("schema_migrations").
		Where("version = ?", Version).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: build version query: %v", ErrApply, err)
	}

	var count int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: read version: %v", ErrApply, err)
	}
	if count > 0 {
		return false, nil
	}

	if _, err := db.ExecContext(ctx, DDL(dialect)); err != nil {
		return false, fmt.Errorf("%w: version %d: %v", ErrApply, Version, err)
	}

	query, args, err = sb.Insert("schema_migrations").
		Columns("version", "applied_at").
		Values(Version, time.Now().UTC()).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: build insert: %v", ErrApply, err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return false, fmt.Errorf("%w: record version %d: %v", ErrApply, Version, err)
	}

	return true, nil
}
