package conflict

import "errors"

var (
	// ErrConflictNotFound возвращается, когда запись о конфликте не найдена
	ErrConflictNotFound = errors.New("conflict.repository: conflict record not found")

	// ErrAlreadyResolved возвращается, когда запись уже закрыта решением
	ErrAlreadyResolved = errors.New("conflict.repository: conflict record already resolved")

	// ErrPersistenceConflict возвращается при гонке за уникальный индекс или ошибке сериализации
	ErrPersistenceConflict = errors.New("conflict.repository: concurrent write conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("conflict.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("conflict.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("conflict.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации рекомендаций
	ErrEncode = errors.New("conflict.repository: failed to encode recommendations")
)
