package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidPolicy возвращается при некорректных параметрах политики
	ErrInvalidPolicy = errors.New("retry: invalid policy")
)

// Clock интерфейс для ожидания между попытками (для тестирования)
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock реальные часы для production
type RealClock struct{}

// Sleep ждет d или отмену контекста
func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Policy политика повторов с фиксированной задержкой.
// Применяется только к read-only операциям; запись никогда не ретраится автоматически.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Clock       Clock
}

// NewPolicy создает политику повторов с реальными часами
func NewPolicy(maxAttempts int, delay time.Duration) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Delay:       delay,
		Clock:       RealClock{},
	}
}

// Do выполняет fn до первого успеха, но не более MaxAttempts раз.
// Между попытками ждет Delay. Возвращает последнюю ошибку, если все попытки исчерпаны.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("%w: maxAttempts must be >= 1", ErrInvalidPolicy)
	}

	clock := p.Clock
	if clock == nil {
		clock = RealClock{}
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt < p.MaxAttempts {
			if err := clock.Sleep(ctx, p.Delay); err != nil {
				return err
			}
		}
	}

	return lastErr
}
