package wizard

import "errors"

var (
	// ErrStepIncomplete возвращается при попытке перейти вперёд
	// с незаполненным текущим шагом
	ErrStepIncomplete = errors.New("wizard: current step is incomplete")

	// ErrAtFirstStep возвращается при попытке вернуться с первого шага
	ErrAtFirstStep = errors.New("wizard: already at the first step")

	// ErrAtLastStep возвращается при попытке перейти вперёд с последнего шага
	ErrAtLastStep = errors.New("wizard: already at the last step")

	// ErrNotAtConfirmStep возвращается при попытке отправить бронирование
	// не с шага подтверждения
	ErrNotAtConfirmStep = errors.New("wizard: submit is only allowed at the confirmation step")

	// ErrSubmitInProgress возвращается при повторной отправке,
	// пока предыдущая ещё не завершилась
	ErrSubmitInProgress = errors.New("wizard: submit is already in progress")

	// ErrAlreadyCompleted возвращается при любой операции
	// после успешной отправки
	ErrAlreadyCompleted = errors.New("wizard: booking flow is already completed")

	// ErrSlotConflict возвращается, когда выбранный слот заняли раньше.
	// Процесс возвращается на шаг выбора времени, остальные данные сохраняются.
	ErrSlotConflict = errors.New("wizard: selected slot is no longer available")
)
