package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderacademy/backoffice/internal/domain"
	"github.com/traderacademy/backoffice/internal/service"
	"github.com/traderacademy/backoffice/pkg/validator"
)

type stubAuthService struct {
	loginErr  error
	verifyErr error
	tokens    *service.Tokens
	loginned  []string
}

func (s *stubAuthService) Login(_ context.Context, email string) error {
	s.loginned = append(s.loginned, email)
	return s.loginErr
}

func (s *stubAuthService) ResendCode(ctx context.Context, email string) error {
	return s.Login(ctx, email)
}

func (s *stubAuthService) VerifyCode(_ context.Context, _ string, _ string, _ string, _ string) (*service.Tokens, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return s.tokens, nil
}

func (s *stubAuthService) Refresh(_ context.Context, _ string, _ string, _ string) (*service.Tokens, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return s.tokens, nil
}

func (s *stubAuthService) GetAdmin(_ context.Context, _ uuid.UUID) (*domain.Admin, error) {
	return nil, service.ErrAdminNotFound
}

func setupAuthRouter(auth service.Auth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.RegisterGinValidator()

	h := NewHandler(&service.Services{Auth: auth}, nil, nil)

	router := gin.New()
	api := router.Group("/api")
	h.initAuthRoutes(api.Group("v1"))
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginEndpoint(t *testing.T) {
	stub := &stubAuthService{}
	router := setupAuthRouter(stub)

	w := postJSON(router, "/api/v1/auth/login", gin.H{"email": "admin@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"admin@example.com"}, stub.loginned)
}

func TestLoginEndpointRejectsBadEmail(t *testing.T) {
	stub := &stubAuthService{}
	router := setupAuthRouter(stub)

	w := postJSON(router, "/api/v1/auth/login", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, stub.loginned)
}

func TestVerifyEndpointRejectsMalformedCode(t *testing.T) {
	stub := &stubAuthService{}
	router := setupAuthRouter(stub)

	for _, code := range []string{"12345", "1234567", "12a456", ""} {
		w := postJSON(router, "/api/v1/auth/verify", gin.H{"email": "admin@example.com", "code": code})
		assert.Equal(t, http.StatusBadRequest, w.Code, "code %q", code)
	}
}

func TestVerifyEndpointMapsVerdicts(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
	}{
		{service.ErrOTPNotFoundOrExpired, OTPNotFoundOrExpiredCode},
		{service.ErrOTPTooManyAttempts, OTPTooManyAttemptsCode},
		{service.ErrOTPInvalidCode, OTPInvalidCodeCode},
	}

	for _, tc := range cases {
		router := setupAuthRouter(&stubAuthService{verifyErr: tc.err})

		w := postJSON(router, "/api/v1/auth/verify", gin.H{"email": "admin@example.com", "code": "123456"})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			ErrorCode int `json:"error_code"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.wantCode, resp.ErrorCode)
	}
}

func TestVerifyEndpointReturnsTokens(t *testing.T) {
	router := setupAuthRouter(&stubAuthService{tokens: &service.Tokens{AccessToken: "jwt-token"}})

	w := postJSON(router, "/api/v1/auth/verify", gin.H{"email": "admin@example.com", "code": "123456"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp tokensResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jwt-token", resp.AccessToken)
}

func TestRefreshEndpointExpiredSession(t *testing.T) {
	router := setupAuthRouter(&stubAuthService{verifyErr: service.ErrRefreshSessionExpired})

	w := postJSON(router, "/api/v1/auth/refresh", gin.H{"refresh_token": "0195a8f2-0000-7000-8000-000000000000"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
