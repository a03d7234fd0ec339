package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/traderacademy/backoffice/internal/domain"
	"github.com/traderacademy/backoffice/internal/repository"
	"github.com/traderacademy/backoffice/pkg/otp"

	"github.com/google/uuid"
)

// OTPEngine owns the lifecycle of one-time login codes: issuance, storage,
// attempt-limited verification, expiry and invalidation. Issue supersedes any
// prior unused code for the email; Verify persists every state change before
// returning a verdict.
type OTPEngine interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email string, code string) error
}

type otpService struct {
	challenges repository.OTPChallenges
	generator  otp.Generator
	codeTTL    time.Duration
	now        func() time.Time
}

func newOTPService(challenges repository.OTPChallenges, generator otp.Generator, codeTTL time.Duration) *otpService {
	return &otpService{
		challenges: challenges,
		generator:  generator,
		codeTTL:    codeTTL,
		now:        time.Now,
	}
}

// NormalizeEmail lower-cases and trims an email so issuance and verification
// always address the same challenge.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *otpService) Issue(ctx context.Context, email string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", errors.New("empty email")
	}

	// Unconditional reset: the previous unused code stops being valid even
	// if it is unexpired and has attempts left.
	if err := s.challenges.DeleteUnusedByEmail(ctx, email); err != nil {
		return "", fmt.Errorf("delete previous challenges failed: %w", err)
	}

	code, err := s.generator.Generate()
	if err != nil {
		return "", fmt.Errorf("generate code failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate challenge id failed: %w", err)
	}

	challenge := &domain.OTPChallenge{
		ID:        id,
		Email:     email,
		Code:      code,
		Attempts:  0,
		IsUsed:    false,
		ExpiresAt: s.now().Add(s.codeTTL),
	}

	if err := s.challenges.Create(ctx, challenge); err != nil {
		return "", fmt.Errorf("create challenge failed: %w", err)
	}

	return code, nil
}

func (s *otpService) Verify(ctx context.Context, email string, submittedCode string) error {
	email = NormalizeEmail(email)
	submittedCode = strings.TrimSpace(submittedCode)

	challenge, err := s.challenges.GetActiveByEmail(ctx, email, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrOTPNotFoundOrExpired
		}
		return fmt.Errorf("get active challenge failed: %w", err)
	}

	// Exhaustion is checked before comparing the code: a submission against
	// a spent record is finalized and rejected regardless of the code.
	if challenge.Attempts >= domain.OTPMaxAttempts {
		if err := s.challenges.MarkUsed(ctx, challenge.ID); err != nil && !errors.Is(err, domain.ErrNoRowsAffected) {
			return fmt.Errorf("finalize exhausted challenge failed: %w", err)
		}
		return ErrOTPTooManyAttempts
	}

	if submittedCode != challenge.Code {
		if err := s.challenges.IncrementAttempts(ctx, challenge.ID); err != nil {
			// Zero rows means a concurrent request consumed the challenge
			// between the read and the increment.
			if errors.Is(err, domain.ErrNoRowsAffected) {
				return ErrOTPNotFoundOrExpired
			}
			return fmt.Errorf("increment attempts failed: %w", err)
		}
		return ErrOTPInvalidCode
	}

	if err := s.challenges.MarkUsed(ctx, challenge.ID); err != nil {
		// Zero rows means a concurrent request consumed the challenge first.
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrOTPNotFoundOrExpired
		}
		return fmt.Errorf("mark challenge used failed: %w", err)
	}

	return nil
}
