package psqlbuilder

import "github.com/Masterminds/squirrel"

// Dialect диалект SQL, определяющий формат плейсхолдеров
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// builder построитель запросов PostgreSQL ($1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// For возвращает построитель запросов для указанного диалекта
func For(dialect Dialect) squirrel.StatementBuilderType {
	if dialect == DialectSQLite {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
	}
	return builder
}
