package services

import (
	"context"
	"testing"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService(secret string) *SessionService {
	return &SessionService{
		secret: []byte(secret),
		log:    logger.New("SessionService"),
	}
}

func signTestToken(t *testing.T, secret string, claims SessionClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestSessionService_Validate_GarbageToken(t *testing.T) {
	service := newTestSessionService("test-secret")

	_, err := service.Validate(context.Background(), "not-a-jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionService_Validate_WrongSecret(t *testing.T) {
	service := newTestSessionService("test-secret")

	userID := uuid.New()
	token := signTestToken(t, "some-other-secret", SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := service.Validate(context.Background(), token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionService_Validate_ExpiredToken(t *testing.T) {
	service := newTestSessionService("test-secret")

	userID := uuid.New()
	token := signTestToken(t, "test-secret", SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := service.Validate(context.Background(), token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionService_Validate_MalformedSessionID(t *testing.T) {
	service := newTestSessionService("test-secret")

	userID := uuid.New()
	token := signTestToken(t, "test-secret", SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "not-a-uuid",
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := service.Validate(context.Background(), token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionService_Revoke_MalformedSessionID(t *testing.T) {
	service := newTestSessionService("test-secret")

	err := service.Revoke(context.Background(), &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{ID: "not-a-uuid"},
	})

	assert.ErrorIs(t, err, ErrInvalidToken)
}
