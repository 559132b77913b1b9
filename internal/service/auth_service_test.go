package service

import (
	"context"
	"testing"
	"time"

	"quizard/internal/config"
	"quizard/internal/domain"
	"quizard/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "test-secret-key-for-auth-service-tests",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
		GoogleOAuth: config.GoogleOAuthConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "http://localhost:8080/api/auth/google/callback",
		},
		Generation: config.GenerationConfig{InitialCoins: 50},
	}
}

func TestNewAuthService_MissingSecret(t *testing.T) {
	cfg := authTestConfig()
	cfg.JWT.SecretKey = ""

	svc, err := NewAuthService(new(MockUserRepository), cfg)

	assert.Nil(t, svc)
	assert.Error(t, err)
}

func TestGetGoogleLoginURL(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), authTestConfig())
	require.NoError(t, err)

	url := svc.GetGoogleLoginURL("state-123")

	assert.Contains(t, url, "state=state-123")
	assert.Contains(t, url, "client_id=client-id")
}

func TestHandleGoogleCallback_StateMismatch(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), authTestConfig())
	require.NoError(t, err)

	_, _, _, err = svc.HandleGoogleCallback(context.Background(), "code", "bad-state", "expected-state")

	assert.ErrorIs(t, err, ErrInvalidAuthState)
}

func TestValidateJWT_RoundTrip(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, err := NewAuthService(userRepo, authTestConfig())
	require.NoError(t, err)

	impl := svc.(*authServiceImpl)
	userID := util.NewULID()
	token, err := impl.createJWT(userID, 15*time.Minute, tokenTypeAccess)
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
}

func TestValidateJWT_Expired(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), authTestConfig())
	require.NoError(t, err)

	impl := svc.(*authServiceImpl)
	token, err := impl.createJWT(util.NewULID(), -time.Minute, tokenTypeAccess)
	require.NoError(t, err)

	_, err = svc.ValidateJWT(context.Background(), token)

	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestValidateJWT_Garbage(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), authTestConfig())
	require.NoError(t, err)

	_, err = svc.ValidateJWT(context.Background(), "not.a.token")

	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestRefreshToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, err := NewAuthService(userRepo, authTestConfig())
	require.NoError(t, err)

	impl := svc.(*authServiceImpl)
	user := domain.NewUser("google-1", "user@example.com", 50)
	user.ID = util.NewULID()

	refreshToken, err := impl.createJWT(user.ID, time.Hour, tokenTypeRefresh)
	require.NoError(t, err)

	userRepo.On("GetUserByID", mock.Anything, user.ID).Return(user, nil)

	newAccess, newRefresh, err := svc.RefreshToken(context.Background(), refreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)

	claims, err := svc.ValidateJWT(context.Background(), newAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), authTestConfig())
	require.NoError(t, err)

	impl := svc.(*authServiceImpl)
	accessToken, err := impl.createJWT(util.NewULID(), time.Hour, tokenTypeAccess)
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), accessToken)

	assert.Error(t, err)
}

func TestRefreshToken_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, err := NewAuthService(userRepo, authTestConfig())
	require.NoError(t, err)

	impl := svc.(*authServiceImpl)
	userID := util.NewULID()
	refreshToken, err := impl.createJWT(userID, time.Hour, tokenTypeRefresh)
	require.NoError(t, err)

	userRepo.On("GetUserByID", mock.Anything, userID).Return(nil, nil)

	_, _, err = svc.RefreshToken(context.Background(), refreshToken)

	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}
