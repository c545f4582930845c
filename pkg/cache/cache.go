package cache

import (
	"sync"
	"time"
)

// Clock интерфейс для получения текущего времени (для тестирования)
type Clock interface {
	Now() time.Time
}

// RealClock реальные часы для production
type RealClock struct{}

// Now возвращает текущее время
func (RealClock) Now() time.Time { return time.Now() }

// Value кэшированное значение с TTL.
// Явная замена module-scope кэшам: значение, время записи и срок жизни
// хранятся вместе и передаются через зависимости, а не через глобальное состояние.
type Value[T any] struct {
	mu       sync.RWMutex
	value    T
	storedAt time.Time
	hasValue bool

	ttl   time.Duration
	clock Clock
}

// NewValue создает пустой кэш с указанным TTL
func NewValue[T any](ttl time.Duration) *Value[T] {
	return &Value[T]{ttl: ttl, clock: RealClock{}}
}

// NewValueWithClock создает кэш с инжектированными часами (для тестов)
func NewValueWithClock[T any](ttl time.Duration, clock Clock) *Value[T] {
	return &Value[T]{ttl: ttl, clock: clock}
}

// Set сохраняет значение и отметку времени
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.value = value
	v.storedAt = v.clock.Now()
	v.hasValue = true
}

// Get возвращает значение, если оно записано и не протухло
func (v *Value[T]) Get() (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var zero T
	if !v.hasValue {
		return zero, false
	}
	if v.clock.Now().Sub(v.storedAt) > v.ttl {
		return zero, false
	}
	return v.value, true
}

// GetStale возвращает значение, даже если TTL истёк.
// Используется как последний fallback, когда источник данных недоступен.
func (v *Value[T]) GetStale() (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var zero T
	if !v.hasValue {
		return zero, false
	}
	return v.value, true
}

// Invalidate сбрасывает кэш
func (v *Value[T]) Invalidate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	var zero T
	v.value = zero
	v.hasValue = false
}
