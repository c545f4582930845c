package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
	"github.com/salabelleza/SLB-BookingService/pkg/types"
)

func TestGenerate_DefaultGrid(t *testing.T) {
	grid, err := Generate(9, 19, 30)

	require.NoError(t, err)
	assert.Len(t, grid, 20)
	assert.Equal(t, types.TimeString("09:00"), grid[0])
	assert.Equal(t, types.TimeString("09:30"), grid[1])
	assert.Equal(t, types.TimeString("18:30"), grid[len(grid)-1])
}

func TestGenerate_StaffGrid(t *testing.T) {
	grid, err := Generate(9, 19, 5)

	require.NoError(t, err)
	assert.Len(t, grid, 120)
	assert.Equal(t, types.TimeString("09:05"), grid[1])
	assert.Equal(t, types.TimeString("18:55"), grid[len(grid)-1])
}

func TestGenerate_IntervalNotDividingHour(t *testing.T) {
	grid, err := Generate(9, 11, 45)

	require.NoError(t, err)
	// Слоты не пересекают границу рабочего окна
	assert.Equal(t, []types.TimeString{"09:00", "09:45", "10:30"}, grid)
}

func TestGenerate_InvalidConfiguration(t *testing.T) {
	cases := []struct {
		name      string
		startHour int
		endHour   int
		interval  int
	}{
		{"end before start", 19, 9, 30},
		{"end equals start", 9, 9, 30},
		{"zero interval", 9, 19, 0},
		{"negative interval", 9, 19, -15},
		{"interval over an hour", 9, 19, 90},
		{"negative start hour", -1, 19, 30},
		{"end hour beyond day", 9, 25, 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.startHour, tc.endHour, tc.interval)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func booked(start string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		StartTime: types.TimeString(start),
		Status:    status,
	}
}

func TestAvailable_FiltersTakenSlots(t *testing.T) {
	grid := []types.TimeString{"09:00", "09:30", "10:00", "10:30"}
	bookings := []*domain.Booking{
		booked("09:30", domain.StatusPending),
		booked("10:00", domain.StatusConfirmed),
	}

	free := Available(grid, bookings, BlockActiveOnly)

	assert.Equal(t, []types.TimeString{"09:00", "10:30"}, free)
}

func TestAvailable_CancelledFreesSlot(t *testing.T) {
	grid := []types.TimeString{"09:00", "09:30"}
	bookings := []*domain.Booking{
		booked("09:00", domain.StatusCancelled),
	}

	free := Available(grid, bookings, BlockActiveOnly)

	assert.Equal(t, grid, free)
}

func TestAvailable_CancelledBlocksWithLegacyPolicy(t *testing.T) {
	grid := []types.TimeString{"09:00", "09:30"}
	bookings := []*domain.Booking{
		booked("09:00", domain.StatusCancelled),
	}

	free := Available(grid, bookings, BlockAllStatuses)

	assert.Equal(t, []types.TimeString{"09:30"}, free)
}

func TestAvailable_CompletedStillBlocksSlot(t *testing.T) {
	grid := []types.TimeString{"09:00", "09:30"}
	bookings := []*domain.Booking{
		booked("09:00", domain.StatusCompleted),
	}

	free := Available(grid, bookings, BlockActiveOnly)

	assert.Equal(t, []types.TimeString{"09:30"}, free)
}

func TestAvailable_PreservesGridOrderAndInput(t *testing.T) {
	grid := []types.TimeString{"10:00", "09:00", "09:30"}
	bookings := []*domain.Booking{
		booked("09:00", domain.StatusConfirmed),
	}

	free := Available(grid, bookings, BlockActiveOnly)

	assert.Equal(t, []types.TimeString{"10:00", "09:30"}, free)
	// Исходная сетка не изменяется
	assert.Equal(t, []types.TimeString{"10:00", "09:00", "09:30"}, grid)
}

func TestAvailable_EmptyInputs(t *testing.T) {
	assert.Empty(t, Available(nil, nil, BlockActiveOnly))

	grid := []types.TimeString{"09:00"}
	assert.Equal(t, grid, Available(grid, nil, BlockActiveOnly))
}
