package services

import (
	"context"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"escolta/internal/domain/models"
)

const testSecret = "test-signing-secret"

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error {
	args := m.Called(ctx, userID, token, exp)
	return args.Error(0)
}

func (m *MockTokenRepository) GetRefreshToken(ctx context.Context, userID, token string) (bool, error) {
	args := m.Called(ctx, userID, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepository) DeleteRefreshToken(ctx context.Context, userID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteAllUserTokens(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockTokenRepository) SaveResetToken(ctx context.Context, userID, token string, exp time.Duration) error {
	args := m.Called(ctx, userID, token, exp)
	return args.Error(0)
}

func (m *MockTokenRepository) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func TestTokenService_GenerateTokens(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTokenRepository)
	service := NewTokenService(mockRepo, testSecret)

	user := models.User{
		ID:      uuid.New(),
		Email:   "admin@escolta.mx",
		IsAdmin: true,
	}

	mockRepo.On("SaveRefreshToken", ctx, user.ID.String(), mock.Anything, RefreshTokenExpire).
		Return(nil).Once()

	pair, err := service.GenerateTokens(ctx, user)

	require.NoError(t, err)
	assert.Equal(t, user.ID, pair.UserID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	token, err := jwtv5.Parse(pair.AccessToken, func(t *jwtv5.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwtv5.MapClaims)
	assert.Equal(t, user.ID.String(), claims["uid"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, true, claims["is_admin"])

	mockRepo.AssertExpectations(t)
}

func TestTokenService_RefreshTokens_Rotates(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTokenRepository)
	service := NewTokenService(mockRepo, testSecret)

	user := models.User{ID: uuid.New(), Email: "admin@escolta.mx", IsAdmin: true}

	mockRepo.On("SaveRefreshToken", ctx, user.ID.String(), mock.Anything, RefreshTokenExpire).
		Return(nil).Times(2)

	pair, err := service.GenerateTokens(ctx, user)
	require.NoError(t, err)

	mockRepo.On("GetRefreshToken", ctx, user.ID.String(), pair.RefreshToken).
		Return(true, nil).Once()
	mockRepo.On("DeleteRefreshToken", ctx, user.ID.String(), pair.RefreshToken).
		Return(nil).Once()

	rotated, err := service.RefreshTokens(ctx, pair.RefreshToken)

	require.NoError(t, err)
	assert.Equal(t, user.ID, rotated.UserID)
	assert.NotEmpty(t, rotated.AccessToken)
	mockRepo.AssertExpectations(t)
}

func TestTokenService_RefreshTokens_RejectsUnstoredToken(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTokenRepository)
	service := NewTokenService(mockRepo, testSecret)

	user := models.User{ID: uuid.New(), Email: "admin@escolta.mx"}

	mockRepo.On("SaveRefreshToken", ctx, user.ID.String(), mock.Anything, RefreshTokenExpire).
		Return(nil).Once()

	pair, err := service.GenerateTokens(ctx, user)
	require.NoError(t, err)

	// Already rotated away, a replay must fail.
	mockRepo.On("GetRefreshToken", ctx, user.ID.String(), pair.RefreshToken).
		Return(false, nil).Once()

	_, err = service.RefreshTokens(ctx, pair.RefreshToken)

	assert.ErrorIs(t, err, ErrTokenNotInStorage)
	mockRepo.AssertNotCalled(t, "DeleteRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestTokenService_RefreshTokens_RejectsForgedToken(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTokenRepository)
	service := NewTokenService(mockRepo, testSecret)

	forged := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, jwtv5.MapClaims{
		"uid": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	forgedStr, err := forged.SignedString([]byte("attacker-secret"))
	require.NoError(t, err)

	_, err = service.RefreshTokens(ctx, forgedStr)

	assert.ErrorIs(t, err, ErrInvalidToken)
	mockRepo.AssertNotCalled(t, "GetRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestTokenService_RefreshTokens_RejectsGarbage(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTokenRepository)
	service := NewTokenService(mockRepo, testSecret)

	_, err := service.RefreshTokens(ctx, "not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RevokeAll(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTokenRepository)
	service := NewTokenService(mockRepo, testSecret)

	userID := uuid.New()
	mockRepo.On("DeleteAllUserTokens", ctx, userID.String()).Return(nil).Once()

	err := service.RevokeAll(ctx, userID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
