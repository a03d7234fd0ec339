package domain

import (
	"time"

	"github.com/google/uuid"
)

// OTPChallenge is a one-time login code issued for an admin email. At most
// one unused, unexpired challenge exists per email; issuance deletes the
// previous one. IsUsed is terminal.
type OTPChallenge struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	Code      string    `db:"code"`
	Attempts  int       `db:"attempts"`
	IsUsed    bool      `db:"is_used"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

const OTPMaxAttempts = 3

// Active reports whether the challenge can still accept a submission.
func (c *OTPChallenge) Active(now time.Time) bool {
	return !c.IsUsed && c.ExpiresAt.After(now)
}
