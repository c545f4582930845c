package catalogservice

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("catalogservice client: service not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от каталога
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")

	// ErrUnavailable возвращается, когда каталог недоступен и кэш пуст
	ErrUnavailable = errors.New("catalogservice client: catalog unavailable and no cached data")
)
