package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"meetupscheduler/internal/delivery/http/helpers"
	"meetupscheduler/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	signUpResult *domain.User
	signUpErr    error
	loginToken   string
	loginUser    *domain.User
	loginErr     error

	lastSignUpEmail string
	lastLoginEmail  string
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password, name string) (*domain.User, error) {
	f.lastSignUpEmail = email
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.signUpResult, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	f.lastLoginEmail = email
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

func postJSON(t *testing.T, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
}

func TestAuthController_SignUp(t *testing.T) {
	user := &domain.User{ID: "user-1", Email: "alice@example.com", Name: "Alice"}

	tests := []struct {
		name       string
		req        SignUpRequest
		svc        *fakeAuthService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "created",
			req:        SignUpRequest{Email: "alice@example.com", Password: "longenough", Name: "Alice"},
			svc:        &fakeAuthService{signUpResult: user},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid email",
			req:        SignUpRequest{Email: "not-an-email", Password: "longenough", Name: "Alice"},
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "short password",
			req:        SignUpRequest{Email: "alice@example.com", Password: "short", Name: "Alice"},
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "missing name",
			req:        SignUpRequest{Email: "alice@example.com", Password: "longenough"},
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "duplicate email",
			req:        SignUpRequest{Email: "alice@example.com", Password: "longenough", Name: "Alice"},
			svc:        &fakeAuthService{signUpErr: fmt.Errorf("email already registered: %w", domain.ErrConflict)},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger, tt.svc)
			rec := httptest.NewRecorder()

			ctrl.SignUp(rec, postJSON(t, "/auth/signup", tt.req))

			require.Equal(t, tt.wantStatus, rec.Code)
			data, apiErr := decodeEnvelope(t, rec)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				return
			}
			require.Nil(t, apiErr)
			var got domain.User
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, "alice@example.com", got.Email)
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	user := &domain.User{ID: "user-1", Email: "alice@example.com", Name: "Alice"}

	t.Run("success returns bearer token", func(t *testing.T) {
		svc := &fakeAuthService{loginToken: "jwt-token", loginUser: user}
		ctrl := NewAuthController(testLogger, svc)
		rec := httptest.NewRecorder()

		ctrl.Login(rec, postJSON(t, "/auth/login", LoginRequest{Email: "alice@example.com", Password: "longenough"}))

		require.Equal(t, http.StatusOK, rec.Code)
		data, apiErr := decodeEnvelope(t, rec)
		require.Nil(t, apiErr)
		var got LoginResponse
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "jwt-token", got.Token)
		assert.Equal(t, "Bearer", got.TokenType)
		require.NotNil(t, got.User)
		assert.Equal(t, "user-1", got.User.ID)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := &fakeAuthService{loginErr: fmt.Errorf("invalid credentials")}
		ctrl := NewAuthController(testLogger, svc)
		rec := httptest.NewRecorder()

		ctrl.Login(rec, postJSON(t, "/auth/login", LoginRequest{Email: "alice@example.com", Password: "wrongpass"}))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		_, apiErr := decodeEnvelope(t, rec)
		require.NotNil(t, apiErr)
		assert.Equal(t, helpers.ErrCodeUnauthorized, apiErr.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeAuthService{})
		rec := httptest.NewRecorder()

		ctrl.Login(rec, postJSON(t, "/auth/login", LoginRequest{}))

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
