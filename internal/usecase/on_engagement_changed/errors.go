package on_engagement_changed

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("on_engagement_changed: invalid input data")

	// ErrSourceUnavailable возвращается, когда не удалось получить обязательства владельца
	ErrSourceUnavailable = errors.New("on_engagement_changed: engagement source unavailable")

	// ErrPersistenceConflict возвращается, когда сверка не удалась и после повтора
	ErrPersistenceConflict = errors.New("on_engagement_changed: concurrent reconciliation conflict")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("on_engagement_changed: internal error")
)
