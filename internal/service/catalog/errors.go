package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrCatalogUnavailable возвращается, когда каталог недоступен
	// и в кеше нет даже устаревших данных
	ErrCatalogUnavailable = errors.New("catalog is unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog service: internal error")
)
