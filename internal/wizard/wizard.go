package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
	"github.com/salabelleza/SLB-BookingService/internal/usecase/create_booking"
	"github.com/salabelleza/SLB-BookingService/pkg/types"
)

// Step шаг процесса бронирования
type Step int

const (
	StepService  Step = 1 // Выбор услуги
	StepSchedule Step = 2 // Выбор даты и времени
	StepDetails  Step = 3 // Контактные данные и способ оплаты
	StepConfirm  Step = 4 // Подтверждение и отправка
)

// String возвращает название шага
func (s Step) String() string {
	switch s {
	case StepService:
		return "service"
	case StepSchedule:
		return "schedule"
	case StepDetails:
		return "details"
	case StepConfirm:
		return "confirm"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Details контактные данные и параметры оплаты, собираемые на третьем шаге
type Details struct {
	UserID        *string
	GuestName     string
	GuestEmail    string
	GuestPhone    string
	PaymentMethod string
	Comments      *string
}

// Wizard пошаговый процесс оформления бронирования.
// Состояние защищено мьютексом: обновления доступности приходят
// асинхронно, а отправка не должна выполняться дважды.
type Wizard struct {
	mu sync.Mutex

	catalog      CatalogProvider
	availability AvailabilityProvider
	submitter    Submitter
	logger       Logger

	step Step

	service *domain.Service
	date    time.Time
	slot    types.TimeString
	details Details

	// availableSlots актуальны только для текущей даты.
	// generation растёт при каждой смене даты: ответ устаревшего
	// запроса доступности отбрасывается, а не затирает свежий.
	availableSlots []types.TimeString
	generation     uint64

	submitting bool
	result     *create_booking.Response
}

// New создает новый процесс бронирования на первом шаге
func New(catalog CatalogProvider, availability AvailabilityProvider, submitter Submitter, logger Logger) *Wizard {
	return &Wizard{
		catalog:      catalog,
		availability: availability,
		submitter:    submitter,
		logger:       logger,
		step:         StepService,
	}
}

// Step возвращает текущий шаг
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Completed возвращает true после успешной отправки
func (w *Wizard) Completed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result != nil
}

// Result возвращает снимок созданного бронирования после успешной отправки
func (w *Wizard) Result() *create_booking.Response {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// SelectService выбирает услугу на первом шаге
func (w *Wizard) SelectService(ctx context.Context, serviceID string) error {
	service, err := w.catalog.GetService(ctx, serviceID)
	if err != nil {
		w.logger.Warn("wizard: failed to select service %s: %v", serviceID, err)
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.ensureEditable(); err != nil {
		return err
	}

	w.service = service
	w.logger.Info("wizard: selected service %s (%s)", service.ID, service.Name)
	return nil
}

// SelectDate выбирает дату на втором шаге.
// Смена даты сбрасывает выбранное время и запускает обновление доступности.
func (w *Wizard) SelectDate(ctx context.Context, date time.Time) error {
	w.mu.Lock()

	if err := w.ensureEditable(); err != nil {
		w.mu.Unlock()
		return err
	}

	w.date = date
	w.slot = ""
	w.availableSlots = nil
	w.generation++
	gen := w.generation

	w.mu.Unlock()

	return w.refreshAvailability(ctx, date, gen)
}

// RefreshAvailability перечитывает доступные слоты для выбранной даты
func (w *Wizard) RefreshAvailability(ctx context.Context) error {
	w.mu.Lock()
	if err := w.ensureEditable(); err != nil {
		w.mu.Unlock()
		return err
	}
	date := w.date
	gen := w.generation
	w.mu.Unlock()

	if date.IsZero() {
		return fmt.Errorf("%w: date is not selected", ErrStepIncomplete)
	}

	return w.refreshAvailability(ctx, date, gen)
}

// refreshAvailability получает слоты и применяет их, только если дата
// за время запроса не изменилась
func (w *Wizard) refreshAvailability(ctx context.Context, date time.Time, gen uint64) error {
	slots, err := w.availability.AvailableSlots(ctx, date)
	if err != nil {
		w.logger.Error("wizard: failed to fetch availability for %s: %v",
			date.Format(domain.DateFormat), err)
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.generation {
		w.logger.Info("wizard: discarding stale availability for %s", date.Format(domain.DateFormat))
		return nil
	}

	w.availableSlots = slots
	w.logger.Info("wizard: %d slots available for %s", len(slots), date.Format(domain.DateFormat))
	return nil
}

// SelectTime выбирает время из списка доступных слотов
func (w *Wizard) SelectTime(slot types.TimeString) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.ensureEditable(); err != nil {
		return err
	}

	if w.date.IsZero() {
		return fmt.Errorf("%w: select a date first", ErrStepIncomplete)
	}

	for _, available := range w.availableSlots {
		if available == slot {
			w.slot = slot
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrSlotConflict, slot)
}

// AvailableSlots возвращает свободные слоты для выбранной даты
func (w *Wizard) AvailableSlots() []types.TimeString {
	w.mu.Lock()
	defer w.mu.Unlock()

	slots := make([]types.TimeString, len(w.availableSlots))
	copy(slots, w.availableSlots)
	return slots
}

// SetDetails заполняет контактные данные на третьем шаге
func (w *Wizard) SetDetails(details Details) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.ensureEditable(); err != nil {
		return err
	}

	w.details = details
	return nil
}

// CanAdvance проверяет, заполнен ли текущий шаг
func (w *Wizard) CanAdvance() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canAdvanceLocked()
}

func (w *Wizard) canAdvanceLocked() error {
	switch w.step {
	case StepService:
		if w.service == nil {
			return fmt.Errorf("%w: service is not selected", ErrStepIncomplete)
		}
	case StepSchedule:
		if w.date.IsZero() {
			return fmt.Errorf("%w: date is not selected", ErrStepIncomplete)
		}
		if w.slot.IsZero() {
			return fmt.Errorf("%w: time is not selected", ErrStepIncomplete)
		}
	case StepDetails:
		if err := w.validateDetailsLocked(); err != nil {
			return err
		}
	case StepConfirm:
		return ErrAtLastStep
	}
	return nil
}

func (w *Wizard) validateDetailsLocked() error {
	d := w.details

	if d.UserID == nil {
		if len(strings.TrimSpace(d.GuestName)) < domain.MinGuestNameLength {
			return fmt.Errorf("%w: guest name is required", ErrStepIncomplete)
		}
		if !strings.Contains(d.GuestEmail, "@") {
			return fmt.Errorf("%w: guest email is required", ErrStepIncomplete)
		}
		if len(strings.TrimSpace(d.GuestPhone)) < domain.MinGuestPhoneLength {
			return fmt.Errorf("%w: guest phone is required", ErrStepIncomplete)
		}
	}

	if _, err := domain.ToPaymentMethod(d.PaymentMethod); err != nil {
		return fmt.Errorf("%w: payment method is not selected", ErrStepIncomplete)
	}

	return nil
}

// Advance переходит к следующему шагу, если текущий заполнен
func (w *Wizard) Advance() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.ensureEditable(); err != nil {
		return err
	}

	if err := w.canAdvanceLocked(); err != nil {
		return err
	}

	w.step++
	w.logger.Info("wizard: advanced to step %s", w.step)
	return nil
}

// Retreat возвращается к предыдущему шагу.
// Введённые данные сохраняются: возврат не очищает выбор.
func (w *Wizard) Retreat() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.ensureEditable(); err != nil {
		return err
	}

	if w.step == StepService {
		return ErrAtFirstStep
	}

	w.step--
	w.logger.Info("wizard: returned to step %s", w.step)
	return nil
}

// Submit отправляет собранное бронирование с шага подтверждения.
// Повторная отправка во время выполняющейся блокируется.
// При конфликте слота процесс возвращается на шаг выбора времени,
// выбранное время сбрасывается, остальные данные сохраняются.
func (w *Wizard) Submit(ctx context.Context) (*create_booking.Response, error) {
	w.mu.Lock()

	if w.result != nil {
		w.mu.Unlock()
		return nil, ErrAlreadyCompleted
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if w.step != StepConfirm {
		w.mu.Unlock()
		return nil, ErrNotAtConfirmStep
	}

	w.submitting = true
	req := w.buildRequestLocked()
	w.mu.Unlock()

	resp, err := w.submitter.Execute(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false

	if err != nil {
		if errors.Is(err, create_booking.ErrSlotNotAvailable) {
			w.logger.Warn("wizard: slot conflict on submit, returning to schedule step")
			w.step = StepSchedule
			w.slot = ""
			w.availableSlots = nil
			w.generation++
			return nil, fmt.Errorf("%w: %v", ErrSlotConflict, err)
		}
		w.logger.Error("wizard: submit failed: %v", err)
		return nil, err
	}

	w.result = resp
	w.logger.Info("wizard: booking %s created", resp.ID)
	return resp, nil
}

// buildRequestLocked собирает запрос на создание бронирования из состояния
func (w *Wizard) buildRequestLocked() *create_booking.Request {
	req := &create_booking.Request{
		ServiceID:     w.service.ID,
		Date:          w.date,
		StartTime:     w.slot,
		PaymentMethod: w.details.PaymentMethod,
		Comments:      w.details.Comments,
	}

	if w.details.UserID != nil {
		req.UserID = w.details.UserID
	} else {
		name := w.details.GuestName
		email := w.details.GuestEmail
		phone := w.details.GuestPhone
		req.GuestName = &name
		req.GuestEmail = &email
		req.GuestPhone = &phone
	}

	return req
}

// ensureEditable проверяет, что процесс ещё можно менять
func (w *Wizard) ensureEditable() error {
	if w.result != nil {
		return ErrAlreadyCompleted
	}
	if w.submitting {
		return ErrSubmitInProgress
	}
	return nil
}
