package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salabelleza/SLB-BookingService/internal/config"
	"github.com/salabelleza/SLB-BookingService/internal/domain"
	bookingRepo "github.com/salabelleza/SLB-BookingService/internal/infra/storage/booking"
	"github.com/salabelleza/SLB-BookingService/internal/integrations/catalogservice"
	"github.com/salabelleza/SLB-BookingService/internal/integrations/identityservice"
	"github.com/salabelleza/SLB-BookingService/pkg/ptr"
	"github.com/salabelleza/SLB-BookingService/pkg/types"
)

// --- Моки ---

type mockBookingRepo struct {
	createFn     func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	listByDateFn func(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	return m.createFn(ctx, booking)
}

func (m *mockBookingRepo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	return m.listByDateFn(ctx, date)
}

type mockCatalogClient struct {
	getServiceFn func(ctx context.Context, serviceID string) (*domain.Service, error)
}

func (m *mockCatalogClient) GetService(ctx context.Context, serviceID string) (*domain.Service, error) {
	return m.getServiceFn(ctx, serviceID)
}

type mockIdentityClient struct {
	currentIdentityFn func(ctx context.Context, userID string) (*identityservice.Identity, error)
}

func (m *mockIdentityClient) CurrentIdentity(ctx context.Context, userID string) (*identityservice.Identity, error) {
	return m.currentIdentityFn(ctx, userID)
}

// passthroughTxManager выполняет fn без реальной транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// --- Фикстуры ---

var testNow = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

func testService() *domain.Service {
	return &domain.Service{
		ID:              "svc-1",
		Name:            "Masaje relajante",
		Price:           45.0,
		DurationMinutes: 60,
	}
}

func testConfig() config.BookingConfig {
	return config.BookingConfig{
		WorkingDayStartHour:      9,
		WorkingDayEndHour:        19,
		SlotIntervalMinutes:      30,
		StaffSlotIntervalMinutes: 5,
		AdvanceBookingDays:       30,
	}
}

func guestRequest() *Request {
	return &Request{
		ServiceID:     "svc-1",
		Date:          time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("10:00"),
		PaymentMethod: "cash",
		GuestName:     ptr.Ptr("Maria Lopez"),
		GuestEmail:    ptr.Ptr("maria@example.com"),
		GuestPhone:    ptr.Ptr("+34600111222"),
	}
}

func newTestUseCase(repo *mockBookingRepo, catalog *mockCatalogClient, identity *mockIdentityClient) *UseCase {
	if catalog == nil {
		catalog = &mockCatalogClient{
			getServiceFn: func(ctx context.Context, serviceID string) (*domain.Service, error) {
				return testService(), nil
			},
		}
	}
	if identity == nil {
		identity = &mockIdentityClient{
			currentIdentityFn: func(ctx context.Context, userID string) (*identityservice.Identity, error) {
				return &identityservice.Identity{UserID: userID}, nil
			},
		}
	}

	uc := NewUseCase(repo, catalog, identity, passthroughTxManager{}, testConfig(), nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

// --- Тесты ---

func TestExecute_CreatesGuestBookingAsPending(t *testing.T) {
	var created *domain.Booking
	repo := &mockBookingRepo{
		listByDateFn: func(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			booking.ID = "booking-1"
			created = booking
			return booking, nil
		},
	}
	uc := newTestUseCase(repo, nil, nil)

	resp, err := uc.Execute(context.Background(), guestRequest())

	require.NoError(t, err)
	assert.Equal(t, "booking-1", resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "Masaje relajante", resp.ServiceName)
	assert.Equal(t, 45.0, resp.ServicePrice)
	assert.Equal(t, 60, resp.DurationMinutes)

	require.NotNil(t, created)
	assert.True(t, created.Customer.IsGuest())
}

func TestExecute_RegisteredUserIsResolved(t *testing.T) {
	identityCalls := 0
	identity := &mockIdentityClient{
		currentIdentityFn: func(ctx context.Context, userID string) (*identityservice.Identity, error) {
			identityCalls++
			assert.Equal(t, "user-1", userID)
			return &identityservice.Identity{UserID: userID, Name: "Maria"}, nil
		},
	}
	repo := &mockBookingRepo{
		listByDateFn: func(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			return booking, nil
		},
	}
	uc := newTestUseCase(repo, nil, identity)

	req := guestRequest()
	req.GuestName, req.GuestEmail, req.GuestPhone = nil, nil, nil
	req.UserID = ptr.Ptr("user-1")

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 1, identityCalls)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, "user-1", *resp.UserID)
}

func TestExecute_UnknownUser(t *testing.T) {
	identity := &mockIdentityClient{
		currentIdentityFn: func(ctx context.Context, userID string) (*identityservice.Identity, error) {
			return nil, identityservice.ErrIdentityNotFound
		},
	}
	uc := newTestUseCase(&mockBookingRepo{}, nil, identity)

	req := guestRequest()
	req.GuestName, req.GuestEmail, req.GuestPhone = nil, nil, nil
	req.UserID = ptr.Ptr("ghost")

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrIdentityNotFound)
}

func TestExecute_WalkInIsConfirmed(t *testing.T) {
	repo := &mockBookingRepo{
		listByDateFn: func(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			return booking, nil
		},
	}
	uc := newTestUseCase(repo, nil, nil)

	req := guestRequest()
	req.StaffWalkIn = true
	req.StartTime = types.TimeString("10:05") // мелкая сетка персонала

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_SlotAlreadyTakenInList(t *testing.T) {
	repo := &mockBookingRepo{
		listByDateFn: func(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
			return []*domain.Booking{
				{StartTime: types.TimeString("10:00"), Status: domain.StatusConfirmed},
			}, nil
		},
		createFn: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			t.Fatal("Create must not be called when the slot is taken")
			return nil, nil
		},
	}
	uc := newTestUseCase(repo, nil, nil)

	_, err := uc.Execute(context.Background(), guestRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	repo := &mockBookingRepo{
		listByDateFn: func(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
			return []*domain.Booking{
				{StartTime: types.TimeString("10:00"), Status: domain.StatusCancelled},
			}, nil
		},
		createFn: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			return booking, nil
		},
	}
	uc := newTestUseCase(repo, nil, nil)

	_, err := uc.Execute(context.Background(), guestRequest())

	assert.NoError(t, err)
}

func TestExecute_UniqueViolationMapsToSlotNotAvailable(t *testing.T) {
	// Гонка: проверка прошла, но параллельная вставка выиграла слот
	repo := &mockBookingRepo{
		listByDateFn: func(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
			return nil, bookingRepo.ErrSlotTaken
		},
	}
	uc := newTestUseCase(repo, nil, nil)

	_, err := uc.Execute(context.Background(), guestRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	catalog := &mockCatalogClient{
		getServiceFn: func(ctx context.Context, serviceID string) (*domain.Service, error) {
			return nil, catalogservice.ErrServiceNotFound
		},
	}
	uc := newTestUseCase(&mockBookingRepo{}, catalog, nil)

	_, err := uc.Execute(context.Background(), guestRequest())

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, nil, nil)

	cases := []struct {
		name   string
		modify func(req *Request)
		want   error
	}{
		{"missing service", func(r *Request) { r.ServiceID = "" }, ErrInvalidInput},
		{"invalid time format", func(r *Request) { r.StartTime = "1000" }, ErrInvalidInput},
		{"invalid payment method", func(r *Request) { r.PaymentMethod = "bitcoin" }, ErrInvalidInput},
		{"guest and user together", func(r *Request) { r.UserID = ptr.Ptr("user-1") }, ErrInvalidInput},
		{"no customer at all", func(r *Request) {
			r.GuestName, r.GuestEmail, r.GuestPhone = nil, nil, nil
		}, ErrInvalidInput},
		{"guest name too short", func(r *Request) { r.GuestName = ptr.Ptr("M") }, ErrInvalidInput},
		{"guest email invalid", func(r *Request) { r.GuestEmail = ptr.Ptr("not-an-email") }, ErrInvalidInput},
		{"guest phone too short", func(r *Request) { r.GuestPhone = ptr.Ptr("123") }, ErrInvalidInput},
		{"past date", func(r *Request) {
			r.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		}, ErrInvalidDate},
		{"date beyond horizon", func(r *Request) {
			r.Date = time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
		}, ErrDateTooFarInFuture},
		{"time off the grid", func(r *Request) { r.StartTime = "10:17" }, ErrInvalidTimeSlot},
		{"time outside working hours", func(r *Request) { r.StartTime = "20:00" }, ErrInvalidTimeSlot},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := guestRequest()
			tc.modify(req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestExecute_TooLateToBookToday(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, nil, nil)

	req := guestRequest()
	req.Date = testNow // сегодня, 12:00
	req.StartTime = types.TimeString("11:00")

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_CommentsTooLong(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, nil, nil)

	long := make([]byte, domain.MaxCommentsLength+1)
	for i := range long {
		long[i] = 'a'
	}

	req := guestRequest()
	req.Comments = ptr.Ptr(string(long))

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
