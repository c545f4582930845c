package identityservice

import "errors"

var (
	// ErrIdentityNotFound возвращается, когда пользователь не найден
	ErrIdentityNotFound = errors.New("identityservice client: identity not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identityservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("identityservice client: invalid response")
)
