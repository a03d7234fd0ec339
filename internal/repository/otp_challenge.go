package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/traderacademy/backoffice/internal/domain"
)

type otpChallengeRepository struct {
	db *sqlx.DB
}

func newOTPChallengeRepository(db *sqlx.DB) *otpChallengeRepository {
	return &otpChallengeRepository{
		db: db,
	}
}

func (r *otpChallengeRepository) Create(ctx context.Context, challenge *domain.OTPChallenge) error {
	const op = "repository.otpChallenge.Create"

	const query = `
    INSERT INTO otp_challenge (id, email, code, attempts, is_used, expires_at)
    VALUES (uuid_to_bin(:id), :email, :code, :attempts, :is_used, :expires_at)
    `

	res, err := r.db.NamedExecContext(ctx, query, challenge)
	if err != nil {
		return fmt.Errorf("%s: insert otp challenge failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

func (r *otpChallengeRepository) GetActiveByEmail(ctx context.Context, email string, now time.Time) (*domain.OTPChallenge, error) {
	const op = "repository.otpChallenge.GetActiveByEmail"

	const query = `
    SELECT id, email, code, attempts, is_used, expires_at, created_at
    FROM otp_challenge
    WHERE email = ? AND is_used = FALSE AND expires_at > ?
    ORDER BY created_at DESC
    LIMIT 1
    `

	var challenge domain.OTPChallenge
	if err := r.db.GetContext(ctx, &challenge, query, email, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select otp challenge failed: %w", op, err)
	}

	return &challenge, nil
}

func (r *otpChallengeRepository) DeleteUnusedByEmail(ctx context.Context, email string) error {
	const op = "repository.otpChallenge.DeleteUnusedByEmail"

	const query = `
    DELETE FROM otp_challenge
    WHERE email = ? AND is_used = FALSE
    `

	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("%s: delete otp challenges failed: %w", op, err)
	}

	return nil
}

// IncrementAttempts bumps the counter in a single statement. is_used is
// assigned first, so both expressions see the pre-increment attempts value;
// the attempt that reaches the cap flips is_used in the same write, and the
// counter can never pass the cap even under concurrent verifies. A zero row
// count means the challenge was consumed since the caller read it and is
// reported as ErrNoRowsAffected.
func (r *otpChallengeRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	const op = "repository.otpChallenge.IncrementAttempts"

	const query = `
    UPDATE otp_challenge
    SET is_used = IF(attempts + 1 >= ?, TRUE, is_used),
        attempts = LEAST(attempts + 1, ?)
    WHERE id = uuid_to_bin(?) AND is_used = FALSE
    `

	res, err := r.db.ExecContext(ctx, query, domain.OTPMaxAttempts, domain.OTPMaxAttempts, id)
	if err != nil {
		return fmt.Errorf("%s: update otp challenge failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

// MarkUsed flips the terminal flag. A zero row count means another request
// already consumed the challenge; callers treat that as not found.
func (r *otpChallengeRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	const op = "repository.otpChallenge.MarkUsed"

	const query = `
    UPDATE otp_challenge
    SET is_used = TRUE
    WHERE id = uuid_to_bin(?) AND is_used = FALSE
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: update otp challenge failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *otpChallengeRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const op = "repository.otpChallenge.DeleteExpired"

	const query = `
    DELETE FROM otp_challenge
    WHERE expires_at <= ?
    `

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("%s: delete expired otp challenges failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	return rows, nil
}
