package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/traderacademy/backoffice/internal/domain"
)

type adminRepository struct {
	db *sqlx.DB
}

func newAdminRepository(db *sqlx.DB) *adminRepository {
	return &adminRepository{
		db: db,
	}
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const query = `
	SELECT id, email, first_name, last_name, role, created_at, updated_at, deleted_at
	FROM admin WHERE email = ? AND deleted_at IS NULL;
	`
	var admin domain.Admin
	if err := r.db.GetContext(ctx, &admin, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select admin by email failed: %w", err)
	}

	return &admin, nil
}

func (r *adminRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	const query = `
	SELECT id, email, first_name, last_name, role, created_at, updated_at, deleted_at
	FROM admin WHERE id = uuid_to_bin(?) AND deleted_at IS NULL;
	`
	var admin domain.Admin
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select admin by id failed: %w", err)
	}

	return &admin, nil
}
