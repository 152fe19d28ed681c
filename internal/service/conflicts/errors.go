package conflicts

import "errors"

var (
	// ErrConflictNotFound возвращается, когда запись о конфликте не найдена
	ErrConflictNotFound = errors.New("conflict not found")

	// ErrAlreadyResolved возвращается при попытке повторно закрыть запись
	ErrAlreadyResolved = errors.New("conflict already resolved")

	// ErrPersistenceConflict возвращается, когда конкурентная запись не разрешилась повтором
	ErrPersistenceConflict = errors.New("concurrent conflict update")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
