package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/traderacademy/backoffice/internal/domain"
)

type bookingRepository struct {
	db *sqlx.DB
}

func newBookingRepository(db *sqlx.DB) *bookingRepository {
	return &bookingRepository{
		db: db,
	}
}

func (r *bookingRepository) List(ctx context.Context, status *domain.BookingStatus) ([]*domain.Booking, error) {
	query := `
    SELECT id, student_name, email, topic, scheduled_at, status, created_at, updated_at, deleted_at
    FROM booking
    WHERE deleted_at IS NULL
    `

	args := make([]interface{}, 0, 1)
	if status != nil {
		query += " AND status = ?"
		args = append(args, *status)
	}
	query += " ORDER BY scheduled_at ASC"

	var bookings []*domain.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("select bookings failed: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	const query = `
    UPDATE booking
    SET status = ?
    WHERE id = uuid_to_bin(?) AND deleted_at IS NULL
    `

	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected failed: %w", err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}
