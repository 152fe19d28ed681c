package routing

import "errors"

var (
	// ErrUnavailable возвращается, когда маршрут не может быть рассчитан (сервис недоступен, нет маршрута)
	ErrUnavailable = errors.New("routing: estimator unavailable")

	// ErrTimeout возвращается, когда оценка не уложилась в отведенное время
	ErrTimeout = errors.New("routing: estimator timeout")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса маршрутов
	ErrInvalidResponse = errors.New("routing: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("routing: internal error")
)
