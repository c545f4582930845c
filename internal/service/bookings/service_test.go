package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
	bookingRepo "github.com/salabelleza/SLB-BookingService/internal/infra/storage/booking"
	"github.com/salabelleza/SLB-BookingService/internal/service/bookings/models"
	"github.com/salabelleza/SLB-BookingService/pkg/ptr"
	"github.com/salabelleza/SLB-BookingService/pkg/types"
)

// --- Моки ---

type mockBookingRepo struct {
	getByIDFn      func(ctx context.Context, id string) (*domain.Booking, error)
	getByUserIDFn  func(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error)
	updateStatusFn func(ctx context.Context, id string, status domain.BookingStatus) error
	deleteFn       func(ctx context.Context, id string) error
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockBookingRepo) GetByUserID(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return m.getByUserIDFn(ctx, userID, status)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockBookingRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// --- Фикстуры ---

var (
	customerActor = models.Actor{UserID: "user-1"}
	strangerActor = models.Actor{UserID: "user-2"}
	staffActor    = models.Actor{UserID: "staff-1", Staff: true}
)

func userBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:        "booking-1",
		ServiceID: "svc-1",
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
		Status:    status,
		Customer:  domain.RegisteredCustomer("user-1"),
	}
}

func guestBooking(status domain.BookingStatus) *domain.Booking {
	b := userBooking(status)
	b.Customer = domain.GuestCustomer("Maria Lopez", "maria@example.com", "+34600111222")
	return b
}

func repoReturning(b *domain.Booking) *mockBookingRepo {
	return &mockBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return b, nil
		},
		updateStatusFn: func(ctx context.Context, id string, status domain.BookingStatus) error {
			return nil
		},
	}
}

// --- GetByID ---

func TestGetByID_OwnerSeesOwnBooking(t *testing.T) {
	svc := NewService(repoReturning(userBooking(domain.StatusPending)), nopLogger{})

	resp, err := svc.GetByID(context.Background(), "booking-1", customerActor)

	require.NoError(t, err)
	assert.Equal(t, "booking-1", resp.ID)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, "user-1", *resp.UserID)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	svc := NewService(repoReturning(userBooking(domain.StatusPending)), nopLogger{})

	_, err := svc.GetByID(context.Background(), "booking-1", strangerActor)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_StaffSeesAnyBooking(t *testing.T) {
	svc := NewService(repoReturning(userBooking(domain.StatusPending)), nopLogger{})

	_, err := svc.GetByID(context.Background(), "booking-1", staffActor)

	assert.NoError(t, err)
}

func TestGetByID_GuestBookingHiddenFromCustomers(t *testing.T) {
	// Гостевое бронирование не привязано к аккаунту
	svc := NewService(repoReturning(guestBooking(domain.StatusPending)), nopLogger{})

	_, err := svc.GetByID(context.Background(), "booking-1", customerActor)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetByID(context.Background(), "booking-1", staffActor)
	require.NoError(t, err)
	require.NotNil(t, resp.GuestName)
	assert.Equal(t, "Maria Lopez", *resp.GuestName)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &mockBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return nil, bookingRepo.ErrBookingNotFound
		},
	}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), "missing", staffActor)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// --- GetUserBookings ---

func TestGetUserBookings_OwnHistory(t *testing.T) {
	repo := &mockBookingRepo{
		getByUserIDFn: func(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
			assert.Equal(t, "user-1", userID)
			assert.Nil(t, status)
			return []*domain.Booking{userBooking(domain.StatusConfirmed)}, nil
		},
	}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		Actor:  customerActor,
		UserID: "user-1",
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Bookings[0].Status)
}

func TestGetUserBookings_ForeignHistoryDenied(t *testing.T) {
	svc := NewService(&mockBookingRepo{}, nopLogger{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		Actor:  strangerActor,
		UserID: "user-1",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserBookings_StatusFilterPassedToRepo(t *testing.T) {
	var gotStatus *domain.BookingStatus
	repo := &mockBookingRepo{
		getByUserIDFn: func(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
			gotStatus = status
			return nil, nil
		},
	}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		Actor:  staffActor,
		UserID: "user-1",
		Status: ptr.Ptr("cancelled"),
	})

	require.NoError(t, err)
	require.NotNil(t, gotStatus)
	assert.Equal(t, domain.StatusCancelled, *gotStatus)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := NewService(&mockBookingRepo{}, nopLogger{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		Actor:  customerActor,
		UserID: "user-1",
		Status: ptr.Ptr("archived"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

// --- UpdateStatus ---

func TestUpdateStatus_StaffOnly(t *testing.T) {
	svc := NewService(&mockBookingRepo{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), "booking-1", &models.UpdateStatusRequest{
		Actor:  customerActor,
		Status: "confirmed",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_AllowedTransitions(t *testing.T) {
	cases := []struct {
		name string
		from domain.BookingStatus
		to   string
	}{
		{"pending to confirmed", domain.StatusPending, "confirmed"},
		{"pending to cancelled", domain.StatusPending, "cancelled"},
		{"confirmed to completed", domain.StatusConfirmed, "completed"},
		{"confirmed to cancelled", domain.StatusConfirmed, "cancelled"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotStatus domain.BookingStatus
			repo := repoReturning(userBooking(tc.from))
			repo.updateStatusFn = func(ctx context.Context, id string, status domain.BookingStatus) error {
				gotStatus = status
				return nil
			}
			svc := NewService(repo, nopLogger{})

			err := svc.UpdateStatus(context.Background(), "booking-1", &models.UpdateStatusRequest{
				Actor:  staffActor,
				Status: tc.to,
			})

			require.NoError(t, err)
			assert.Equal(t, domain.BookingStatus(tc.to), gotStatus)
		})
	}
}

func TestUpdateStatus_ForbiddenTransitions(t *testing.T) {
	cases := []struct {
		name string
		from domain.BookingStatus
		to   string
	}{
		{"pending to completed", domain.StatusPending, "completed"},
		{"cancelled is terminal", domain.StatusCancelled, "confirmed"},
		{"completed is terminal", domain.StatusCompleted, "cancelled"},
		{"no self transition", domain.StatusConfirmed, "confirmed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(repoReturning(userBooking(tc.from)), nopLogger{})

			err := svc.UpdateStatus(context.Background(), "booking-1", &models.UpdateStatusRequest{
				Actor:  staffActor,
				Status: tc.to,
			})

			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := NewService(repoReturning(userBooking(domain.StatusPending)), nopLogger{})

	err := svc.UpdateStatus(context.Background(), "booking-1", &models.UpdateStatusRequest{
		Actor:  staffActor,
		Status: "archived",
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

// --- Cancel ---

func TestCancel_OwnerCancelsOwnBooking(t *testing.T) {
	var gotStatus domain.BookingStatus
	repo := repoReturning(userBooking(domain.StatusPending))
	repo.updateStatusFn = func(ctx context.Context, id string, status domain.BookingStatus) error {
		gotStatus = status
		return nil
	}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), "booking-1", &models.CancelBookingRequest{Actor: customerActor})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, gotStatus)
}

func TestCancel_StrangerDenied(t *testing.T) {
	svc := NewService(repoReturning(userBooking(domain.StatusPending)), nopLogger{})

	err := svc.Cancel(context.Background(), "booking-1", &models.CancelBookingRequest{Actor: strangerActor})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_StaffCancelsAnyBooking(t *testing.T) {
	svc := NewService(repoReturning(guestBooking(domain.StatusConfirmed)), nopLogger{})

	err := svc.Cancel(context.Background(), "booking-1", &models.CancelBookingRequest{Actor: staffActor})

	assert.NoError(t, err)
}

func TestCancel_TerminalStatuses(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			svc := NewService(repoReturning(userBooking(status)), nopLogger{})

			err := svc.Cancel(context.Background(), "booking-1", &models.CancelBookingRequest{Actor: staffActor})

			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

// --- Delete ---

func TestDelete_StaffOnly(t *testing.T) {
	svc := NewService(&mockBookingRepo{}, nopLogger{})

	err := svc.Delete(context.Background(), "booking-1", customerActor)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDelete_IgnoresStatus(t *testing.T) {
	// Удаление не зависит от машины статусов
	deleted := false
	repo := &mockBookingRepo{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = true
			assert.Equal(t, "booking-1", id)
			return nil
		},
	}
	svc := NewService(repo, nopLogger{})

	err := svc.Delete(context.Background(), "booking-1", staffActor)

	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockBookingRepo{
		deleteFn: func(ctx context.Context, id string) error {
			return bookingRepo.ErrBookingNotFound
		},
	}
	svc := NewService(repo, nopLogger{})

	err := svc.Delete(context.Background(), "missing", staffActor)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepositoryErrorsMapToInternal(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := &mockBookingRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return nil, repoErr
		},
	}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), "booking-1", staffActor)

	assert.ErrorIs(t, err, ErrInternal)
}
