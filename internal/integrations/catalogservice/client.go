package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
	"github.com/salabelleza/SLB-BookingService/pkg/cache"
	"github.com/salabelleza/SLB-BookingService/pkg/retry"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент каталога услуг.
// Чтение каталога — read-only путь: запросы повторяются по политике retry,
// при полной недоступности каталога используется локальный TTL-кэш
// (в том числе протухший, как последний fallback).
type Client struct {
	baseURL     string
	httpClient  *http.Client
	retryPolicy retry.Policy
	listCache   *cache.Value[[]*domain.Service]
	log         Logger
}

// NewClient создает клиента каталога
func NewClient(baseURL string, timeout time.Duration, retryPolicy retry.Policy, cacheTTL time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retryPolicy: retryPolicy,
		listCache:   cache.NewValue[[]*domain.Service](cacheTTL),
		log:         log,
	}
}

// ListServices возвращает список услуг каталога.
// Свежий кэш отдается без похода в сеть; сетевые ошибки ретраятся,
// после исчерпания попыток используется протухший кэш.
func (c *Client) ListServices(ctx context.Context) ([]*domain.Service, error) {
	if services, ok := c.listCache.Get(); ok {
		return services, nil
	}

	var services []*domain.Service
	err := c.retryPolicy.Do(ctx, func(ctx context.Context) error {
		fetched, fetchErr := c.fetchServices(ctx)
		if fetchErr != nil {
			return fetchErr
		}
		services = fetched
		return nil
	})

	if err != nil {
		// Каталог недоступен: пробуем протухший кэш
		if stale, ok := c.listCache.GetStale(); ok {
			c.log.Warn("ListServices: catalog unavailable, serving stale cache (%d services): %v", len(stale), err)
			return stale, nil
		}
		c.log.Error("ListServices: catalog unavailable and cache is empty: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.listCache.Set(services)
	return services, nil
}

// GetService возвращает услугу по ID
func (c *Client) GetService(ctx context.Context, serviceID string) (*domain.Service, error) {
	services, err := c.ListServices(ctx)
	if err != nil {
		return nil, err
	}

	for _, service := range services {
		if service.ID == serviceID {
			return service, nil
		}
	}

	return nil, ErrServiceNotFound
}

// fetchServices выполняет один запрос списка услуг
func (c *Client) fetchServices(ctx context.Context) ([]*domain.Service, error) {
	url := fmt.Sprintf("%s/internal/services", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var dtos []serviceDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	services := make([]*domain.Service, 0, len(dtos))
	for i := range dtos {
		service, err := dtos[i].toDomain()
		if err != nil {
			return nil, err
		}
		services = append(services, service)
	}

	return services, nil
}
