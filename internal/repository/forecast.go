package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/traderacademy/backoffice/internal/domain"
)

type forecastRepository struct {
	db *sqlx.DB
}

func newForecastRepository(db *sqlx.DB) *forecastRepository {
	return &forecastRepository{
		db: db,
	}
}

func (r *forecastRepository) List(ctx context.Context, status *domain.ForecastStatus) ([]*domain.Forecast, error) {
	query := `
    SELECT id, publisher_name, symbol, direction, analysis, status, reviewed_by, reviewed_at, created_at, updated_at, deleted_at
    FROM forecast
    WHERE deleted_at IS NULL
    `

	args := make([]interface{}, 0, 1)
	if status != nil {
		query += " AND status = ?"
		args = append(args, *status)
	}
	query += " ORDER BY created_at ASC"

	var forecasts []*domain.Forecast
	if err := r.db.SelectContext(ctx, &forecasts, query, args...); err != nil {
		return nil, fmt.Errorf("select forecasts failed: %w", err)
	}

	return forecasts, nil
}

// Review is conditional on pending status, so two moderators cannot both
// decide the same forecast.
func (r *forecastRepository) Review(ctx context.Context, id uuid.UUID, status domain.ForecastStatus, reviewedBy uuid.UUID, reviewedAt time.Time) error {
	const query = `
    UPDATE forecast
    SET status = ?, reviewed_by = uuid_to_bin(?), reviewed_at = ?
    WHERE id = uuid_to_bin(?) AND status = ? AND deleted_at IS NULL
    `

	res, err := r.db.ExecContext(ctx, query, status, reviewedBy, reviewedAt, id, domain.ForecastPending)
	if err != nil {
		return fmt.Errorf("update forecast failed: %w", err)
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
