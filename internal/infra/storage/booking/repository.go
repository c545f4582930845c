package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/salabelleza/SLB-BookingService/internal/domain"
	"github.com/salabelleza/SLB-BookingService/pkg/dbmetrics"
	"github.com/salabelleza/SLB-BookingService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
const uniqueViolation = "23505"

const bookingsTable = "bookings"

var bookingColumns = []string{
	"id",
	"service_id",
	"booking_date",
	"start_time",
	"status",
	"payment_method",
	"comments",
	"user_id",
	"guest_name",
	"guest_email",
	"guest_phone",
	"service_name",
	"service_price",
	"duration_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование. ID генерируется на стороне приложения.
//
// Параллельные вставки на один и тот же слот разруливает частичный
// уникальный индекс по (booking_date, start_time) для неотменённых записей:
// проигравшая вставка получает ErrSlotTaken. Проверка доступности перед
// вставкой по своей природе гоночная, поэтому полагаться можно только
// на ограничение в БД.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if err := b.Customer.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}
	if err := domain.ValidateStatus(b.Status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	b.ID = uuid.NewString()

	var userID, guestName, guestEmail, guestPhone *string
	if b.Customer.UserID != nil {
		userID = b.Customer.UserID
	}
	if b.Customer.Guest != nil {
		guestName = &b.Customer.Guest.Name
		guestEmail = &b.Customer.Guest.Email
		guestPhone = &b.Customer.Guest.Phone
	}

	query, args, err := psqlbuilder.Insert(bookingsTable).
		Columns(
			"id",
			"service_id",
			"booking_date",
			"start_time",
			"status",
			"payment_method",
			"comments",
			"user_id",
			"guest_name",
			"guest_email",
			"guest_phone",
			"service_name",
			"service_price",
			"duration_minutes",
		).
		Values(
			b.ID,
			b.ServiceID,
			b.Date,
			b.StartTime,
			b.Status,
			b.PaymentMethod,
			b.Comments,
			userID,
			guestName,
			guestEmail,
			guestPhone,
			b.ServiceName,
			b.ServicePrice,
			b.DurationMinutes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByDate получает все бронирования на конкретную дату, включая отменённые
// (решение о том, блокирует ли отменённое бронирование слот, принимает ядро).
// Внутри транзакции добавляет FOR UPDATE для блокировки строк на время
// проверки доступности слота.
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"booking_date": date}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByDateRange получает бронирования за период [start, end] включительно.
// Используется недельным календарём персонала: возвращаются все статусы,
// сортировка по дате и времени начала.
func (r *Repository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.GtOrEq{"booking_date": start}).
		Where(squirrel.LtOrEq{"booking_date": end}).
		OrderBy("booking_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByUserID получает историю бронирований зарегистрированного пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования.
// Допустимость перехода проверяет вызывающая сторона (state machine в domain).
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete физически удаляет бронирование.
// Административная операция: разрешена из любого статуса и необратима,
// в отличие от отмены, которая сохраняет запись.
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(bookingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку в domain.Booking, восстанавливая
// customer union из nullable-колонок
func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	var (
		b                                  domain.Booking
		comments                           sql.NullString
		userID                             sql.NullString
		guestName, guestEmail, guestPhone  sql.NullString
		createdAt, updatedAt               sql.NullTime
	)

	err := scan(
		&b.ID,
		&b.ServiceID,
		&b.Date,
		&b.StartTime,
		&b.Status,
		&b.PaymentMethod,
		&comments,
		&userID,
		&guestName,
		&guestEmail,
		&guestPhone,
		&b.ServiceName,
		&b.ServicePrice,
		&b.DurationMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if comments.Valid {
		b.Comments = &comments.String
	}

	if userID.Valid {
		b.Customer = domain.RegisteredCustomer(userID.String)
	} else {
		b.Customer = domain.GuestCustomer(guestName.String, guestEmail.String, guestPhone.String)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
