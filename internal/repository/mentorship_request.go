package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/traderacademy/backoffice/internal/domain"
)

type mentorshipRequestRepository struct {
	db *sqlx.DB
}

func newMentorshipRequestRepository(db *sqlx.DB) *mentorshipRequestRepository {
	return &mentorshipRequestRepository{
		db: db,
	}
}

func (r *mentorshipRequestRepository) List(ctx context.Context, status *domain.MentorshipStatus) ([]*domain.MentorshipRequest, error) {
	query := `
    SELECT id, name, email, goals, experience, status, note, created_at, updated_at, deleted_at
    FROM mentorship_request
    WHERE deleted_at IS NULL
    `

	args := make([]interface{}, 0, 1)
	if status != nil {
		query += " AND status = ?"
		args = append(args, *status)
	}
	query += " ORDER BY created_at ASC"

	var requests []*domain.MentorshipRequest
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, fmt.Errorf("select mentorship requests failed: %w", err)
	}

	return requests, nil
}

func (r *mentorshipRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MentorshipStatus, note string) error {
	const query = `
    UPDATE mentorship_request
    SET status = ?, note = ?
    WHERE id = uuid_to_bin(?) AND deleted_at IS NULL
    `

	res, err := r.db.ExecContext(ctx, query, status, note, id)
	if err != nil {
		return fmt.Errorf("update mentorship request failed: %w", err)
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
