package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrIdentityNotFound возвращается, когда указанный пользователь не зарегистрирован
	ErrIdentityNotFound = errors.New("create_booking: identity not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда время не принадлежит слот-сетке
	ErrInvalidTimeSlot = errors.New("create_booking: time is not on the slot grid")

	// ErrTooLateToBook возвращается, когда слот на сегодня уже начался
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда выбранный слот уже занят.
	// Отдельная пользовательская ошибка: клиент возвращается к выбору времени,
	// а не начинает весь процесс заново.
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
