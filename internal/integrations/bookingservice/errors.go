package bookingservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("bookingservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("bookingservice client: invalid response")

	// ErrUnavailable возвращается, когда сервис бронирований не отвечает
	ErrUnavailable = errors.New("bookingservice client: service unavailable")
)
