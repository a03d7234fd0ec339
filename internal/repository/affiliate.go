package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/traderacademy/backoffice/internal/db"
	"github.com/traderacademy/backoffice/internal/domain"

	"github.com/go-sql-driver/mysql"
)

type affiliateRepository struct {
	db *sqlx.DB
}

func newAffiliateRepository(db *sqlx.DB) *affiliateRepository {
	return &affiliateRepository{
		db: db,
	}
}

func (r *affiliateRepository) List(ctx context.Context) ([]*domain.Affiliate, error) {
	const query = `
    SELECT id, name, email, ref_code, clicks, signups, active, created_at, updated_at, deleted_at
    FROM affiliate
    WHERE deleted_at IS NULL
    ORDER BY created_at DESC
    `

	var affiliates []*domain.Affiliate
	if err := r.db.SelectContext(ctx, &affiliates, query); err != nil {
		return nil, fmt.Errorf("select affiliates failed: %w", err)
	}

	return affiliates, nil
}

func (r *affiliateRepository) Create(ctx context.Context, affiliate *domain.Affiliate) error {
	const query = `
    INSERT INTO affiliate (id, name, email, ref_code, active)
    VALUES (uuid_to_bin(:id), :name, :email, :ref_code, :active)
    `

	_, err := r.db.NamedExecContext(ctx, query, affiliate)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("insert affiliate failed: %w", err)
	}

	return nil
}

func (r *affiliateRepository) GetByRefCode(ctx context.Context, refCode string) (*domain.Affiliate, error) {
	const query = `
    SELECT id, name, email, ref_code, clicks, signups, active, created_at, updated_at, deleted_at
    FROM affiliate
    WHERE ref_code = ? AND deleted_at IS NULL
    `

	var affiliate domain.Affiliate
	if err := r.db.GetContext(ctx, &affiliate, query, refCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select affiliate failed: %w", err)
	}

	return &affiliate, nil
}

func (r *affiliateRepository) IncrementClicks(ctx context.Context, refCode string) error {
	return r.incrementCounter(ctx, "clicks", refCode)
}

func (r *affiliateRepository) IncrementSignups(ctx context.Context, refCode string) error {
	return r.incrementCounter(ctx, "signups", refCode)
}

// counter bumps are single atomic updates, same discipline as the otp
// attempts counter.
func (r *affiliateRepository) incrementCounter(ctx context.Context, column string, refCode string) error {
	query := fmt.Sprintf(`
    UPDATE affiliate
    SET %s = %s + 1
    WHERE ref_code = ? AND active = TRUE AND deleted_at IS NULL
    `, column, column)

	res, err := r.db.ExecContext(ctx, query, refCode)
	if err != nil {
		return fmt.Errorf("update affiliate %s failed: %w", column, err)
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

func (r *affiliateRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	const query = `
    UPDATE affiliate
    SET active = FALSE
    WHERE id = uuid_to_bin(?) AND deleted_at IS NULL
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate affiliate failed: %w", err)
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

func (r *affiliateRepository) ListEmails(ctx context.Context) ([]string, error) {
	const query = `SELECT email FROM affiliate WHERE deleted_at IS NULL AND active = TRUE AND email != ''`

	var emails []string
	if err := r.db.SelectContext(ctx, &emails, query); err != nil {
		return nil, fmt.Errorf("select affiliate emails failed: %w", err)
	}

	return emails, nil
}
