package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/traderacademy/backoffice/internal/config"
	"github.com/traderacademy/backoffice/internal/domain"
	"github.com/traderacademy/backoffice/pkg/auth"
)

type fakeAdminStore struct {
	byEmail map[string]*domain.Admin
}

func (f *fakeAdminStore) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (f *fakeAdminStore) GetOneByID(_ context.Context, id uuid.UUID) (*domain.Admin, error) {
	for _, a := range f.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeSessionStore struct {
	byToken map[uuid.UUID]*domain.RefreshSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{byToken: make(map[uuid.UUID]*domain.RefreshSession)}
}

func (f *fakeSessionStore) Create(_ context.Context, session *domain.RefreshSession) error {
	f.byToken[session.RefreshToken] = session
	return nil
}

func (f *fakeSessionStore) GetByToken(_ context.Context, token uuid.UUID) (*domain.RefreshSession, error) {
	s, ok := f.byToken[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessionStore) DeleteByToken(_ context.Context, token uuid.UUID) error {
	delete(f.byToken, token)
	return nil
}

func newTestAuthService(t *testing.T, admins *fakeAdminStore, sessions *fakeSessionStore, store *fakeChallengeStore) (*authService, *otpService) {
	t.Helper()

	tokenManager, err := auth.NewManager(config.JWTConfig{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 240 * time.Hour,
		SigningKey:      "test-signing-key",
	})
	require.NoError(t, err)

	otpEngine := newTestOTPService(store)

	return newAuthService(admins, sessions, otpEngine, tokenManager, zap.NewNop()), otpEngine
}

func TestLoginUnknownEmailIsSilent(t *testing.T) {
	admins := &fakeAdminStore{byEmail: map[string]*domain.Admin{}}
	store := newFakeChallengeStore()
	svc, _ := newTestAuthService(t, admins, newFakeSessionStore(), store)

	// No account, no error, no challenge: the response must not reveal
	// whether the email is registered.
	require.NoError(t, svc.Login(context.Background(), "stranger@example.com"))
	assert.Empty(t, store.challenges)
}

func TestVerifyCodeMintsSession(t *testing.T) {
	adminID := uuid.New()
	admins := &fakeAdminStore{byEmail: map[string]*domain.Admin{
		"admin@example.com": {ID: adminID, Email: "admin@example.com", FirstName: "Dana", Role: domain.RoleAdmin},
	}}
	sessions := newFakeSessionStore()
	store := newFakeChallengeStore()
	svc, otpEngine := newTestAuthService(t, admins, sessions, store)
	ctx := context.Background()

	code, err := otpEngine.Issue(ctx, "admin@example.com")
	require.NoError(t, err)

	tokens, err := svc.VerifyCode(ctx, "Admin@Example.COM", code, "test-agent", "127.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEqual(t, uuid.Nil, tokens.RefreshToken)

	session, ok := sessions.byToken[tokens.RefreshToken]
	require.True(t, ok)
	assert.Equal(t, adminID, session.AdminID)
	assert.Equal(t, "test-agent", session.UserAgent)
}

func TestVerifyCodePassesThroughOTPVerdicts(t *testing.T) {
	admins := &fakeAdminStore{byEmail: map[string]*domain.Admin{
		"admin@example.com": {ID: uuid.New(), Email: "admin@example.com"},
	}}
	store := newFakeChallengeStore()
	svc, otpEngine := newTestAuthService(t, admins, newFakeSessionStore(), store)
	ctx := context.Background()

	_, err := svc.VerifyCode(ctx, "admin@example.com", "123456", "ua", "ip")
	assert.ErrorIs(t, err, ErrOTPNotFoundOrExpired)

	_, err = otpEngine.Issue(ctx, "admin@example.com")
	require.NoError(t, err)

	_, err = svc.VerifyCode(ctx, "admin@example.com", "000000", "ua", "ip")
	assert.ErrorIs(t, err, ErrOTPInvalidCode)
}

func TestRefreshRotatesSession(t *testing.T) {
	adminID := uuid.New()
	admins := &fakeAdminStore{byEmail: map[string]*domain.Admin{
		"admin@example.com": {ID: adminID, Email: "admin@example.com"},
	}}
	sessions := newFakeSessionStore()
	store := newFakeChallengeStore()
	svc, otpEngine := newTestAuthService(t, admins, sessions, store)
	ctx := context.Background()

	code, err := otpEngine.Issue(ctx, "admin@example.com")
	require.NoError(t, err)

	tokens, err := svc.VerifyCode(ctx, "admin@example.com", code, "ua", "ip")
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, tokens.RefreshToken.String(), "ua", "ip")
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// The old token is single-use.
	_, err = svc.Refresh(ctx, tokens.RefreshToken.String(), "ua", "ip")
	assert.ErrorIs(t, err, ErrRefreshSessionExpired)
}

func TestRefreshExpiredSession(t *testing.T) {
	admins := &fakeAdminStore{byEmail: map[string]*domain.Admin{}}
	sessions := newFakeSessionStore()
	store := newFakeChallengeStore()
	svc, _ := newTestAuthService(t, admins, sessions, store)
	ctx := context.Background()

	token := uuid.New()
	sessions.byToken[token] = &domain.RefreshSession{
		ID:           uuid.New(),
		AdminID:      uuid.New(),
		RefreshToken: token,
		ExpiresIn:    time.Now().Add(-time.Minute),
	}

	_, err := svc.Refresh(ctx, token.String(), "ua", "ip")
	assert.ErrorIs(t, err, ErrRefreshSessionExpired)

	// The stale session is deleted even though the refresh failed.
	assert.Empty(t, sessions.byToken)
}

func TestRefreshGarbageToken(t *testing.T) {
	admins := &fakeAdminStore{byEmail: map[string]*domain.Admin{}}
	svc, _ := newTestAuthService(t, admins, newFakeSessionStore(), newFakeChallengeStore())

	_, err := svc.Refresh(context.Background(), "not-a-uuid", "ua", "ip")
	assert.ErrorIs(t, err, ErrRefreshSessionExpired)
}
