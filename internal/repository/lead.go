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

type leadRepository struct {
	db *sqlx.DB
}

func newLeadRepository(db *sqlx.DB) *leadRepository {
	return &leadRepository{
		db: db,
	}
}

func (r *leadRepository) List(ctx context.Context, page, limit int, status *domain.LeadStatus) ([]*domain.Lead, int64, error) {
	const op = "repository.lead.List"

	query := `
    SELECT id, name, email, phone, source, status, notes, created_at, updated_at, deleted_at
    FROM lead
    WHERE deleted_at IS NULL
    `
	countQuery := `SELECT COUNT(*) FROM lead WHERE deleted_at IS NULL`

	args := make([]interface{}, 0, 3)
	if status != nil {
		query += " AND status = ?"
		countQuery += " AND status = ?"
		args = append(args, *status)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: count leads failed: %w", op, err)
	}

	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	leads := make([]*domain.Lead, 0, limit)
	if err := r.db.SelectContext(ctx, &leads, query, args...); err != nil {
		return nil, 0, fmt.Errorf("%s: select leads failed: %w", op, err)
	}

	return leads, total, nil
}

func (r *leadRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	const query = `
    SELECT id, name, email, phone, source, status, notes, created_at, updated_at, deleted_at
    FROM lead
    WHERE id = uuid_to_bin(?) AND deleted_at IS NULL
    `

	var lead domain.Lead
	if err := r.db.GetContext(ctx, &lead, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select lead failed: %w", err)
	}

	return &lead, nil
}

func (r *leadRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus, notes string) error {
	const query = `
    UPDATE lead
    SET status = ?, notes = ?
    WHERE id = uuid_to_bin(?) AND deleted_at IS NULL
    `

	res, err := r.db.ExecContext(ctx, query, status, notes, id)
	if err != nil {
		return fmt.Errorf("update lead failed: %w", err)
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

func (r *leadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `
    UPDATE lead
    SET deleted_at = NOW()
    WHERE id = uuid_to_bin(?) AND deleted_at IS NULL
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete lead failed: %w", err)
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

func (r *leadRepository) ListEmails(ctx context.Context, status *domain.LeadStatus) ([]string, error) {
	query := `SELECT email FROM lead WHERE deleted_at IS NULL AND email != ''`

	args := make([]interface{}, 0, 1)
	if status != nil {
		query += " AND status = ?"
		args = append(args, *status)
	}

	var emails []string
	if err := r.db.SelectContext(ctx, &emails, query, args...); err != nil {
		return nil, fmt.Errorf("select lead emails failed: %w", err)
	}

	return emails, nil
}
