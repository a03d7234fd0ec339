package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/traderacademy/backoffice/internal/domain"
	"github.com/traderacademy/backoffice/internal/queue/client"
	"github.com/traderacademy/backoffice/internal/queue/task"
	"github.com/traderacademy/backoffice/internal/repository"
	"github.com/traderacademy/backoffice/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type authService struct {
	adminRepository          repository.Admins
	refreshSessionRepository repository.RefreshSessions
	otpEngine                OTPEngine
	tokenManager             auth.TokenManager
	logger                   *zap.Logger
}

func newAuthService(
	adminRepository repository.Admins,
	refreshSessionRepository repository.RefreshSessions,
	otpEngine OTPEngine,
	tokenManager auth.TokenManager,
	logger *zap.Logger,
) *authService {
	return &authService{
		adminRepository:          adminRepository,
		refreshSessionRepository: refreshSessionRepository,
		otpEngine:                otpEngine,
		tokenManager:             tokenManager,
		logger:                   logger,
	}
}

type Tokens struct {
	AccessToken  string
	AccessTTL    time.Duration
	RefreshToken uuid.UUID
	RefreshTTL   time.Duration
}

// Login issues a fresh code and queues the delivery email. An unknown email
// returns nil as well: the response must not reveal whether an account
// exists.
func (s *authService) Login(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	admin, err := s.adminRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug("login for unknown email ignored")
			return nil
		}
		return fmt.Errorf("get admin by email failed: %w", err)
	}

	code, err := s.otpEngine.Issue(ctx, email)
	if err != nil {
		return fmt.Errorf("issue login code failed: %w", err)
	}

	t, err := task.NewLoginCodeTask(email, admin.FirstName, code)
	if err != nil {
		return fmt.Errorf("create login code task failed: %w", err)
	}

	if _, err := client.GetClient(ctx).EnqueueContext(ctx, t); err != nil {
		return fmt.Errorf("enqueue login code task failed: %w", err)
	}

	return nil
}

func (s *authService) GetAdmin(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	admin, err := s.adminRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("get admin by id failed: %w", err)
	}

	return admin, nil
}

// ResendCode is the same unconditional reset as Login.
func (s *authService) ResendCode(ctx context.Context, email string) error {
	return s.Login(ctx, email)
}

func (s *authService) VerifyCode(ctx context.Context, email string, code string, userAgent string, userIP string) (*Tokens, error) {
	email = NormalizeEmail(email)

	if err := s.otpEngine.Verify(ctx, email, code); err != nil {
		return nil, err
	}

	admin, err := s.adminRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("get admin by email failed: %w", err)
	}

	tokens, err := s.createSession(ctx, &admin.ID, &userAgent, &userIP)
	if err != nil {
		return nil, fmt.Errorf("create session failed: %w", err)
	}

	return tokens, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string, userAgent string, userIP string) (*Tokens, error) {
	token, err := s.tokenManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrRefreshSessionExpired
	}

	session, err := s.refreshSessionRepository.GetByToken(ctx, *token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrRefreshSessionExpired
		}
		return nil, fmt.Errorf("get refresh session failed: %w", err)
	}

	if err := s.refreshSessionRepository.DeleteByToken(ctx, *token); err != nil {
		return nil, fmt.Errorf("delete refresh session failed: %w", err)
	}

	if session.ExpiresIn.Before(time.Now()) {
		return nil, ErrRefreshSessionExpired
	}

	tokens, err := s.createSession(ctx, &session.AdminID, &userAgent, &userIP)
	if err != nil {
		return nil, fmt.Errorf("create session failed: %w", err)
	}

	return tokens, nil
}

func (s *authService) createSession(ctx context.Context, adminID *uuid.UUID, userAgent *string, userIP *string) (*Tokens, error) {
	var (
		res Tokens
		err error
	)

	res.AccessToken, res.AccessTTL, err = s.tokenManager.NewJWT(adminID)
	if err != nil {
		return &res, fmt.Errorf("generate access token failed: %w", err)
	}

	res.RefreshToken, res.RefreshTTL, err = s.tokenManager.NewRefreshToken()
	if err != nil {
		return &res, fmt.Errorf("generate refresh token failed: %w", err)
	}

	refreshSessionID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate refresh session id failed: %w", err)
	}
	refreshSession := &domain.RefreshSession{
		ID:           refreshSessionID,
		AdminID:      *adminID,
		RefreshToken: res.RefreshToken,
		UserAgent:    *userAgent,
		IP:           *userIP,
		ExpiresIn:    time.Now().Add(res.RefreshTTL),
	}

	if err := s.refreshSessionRepository.Create(ctx, refreshSession); err != nil {
		return nil, fmt.Errorf("create refresh session failed: %w", err)
	}

	return &res, nil
}
