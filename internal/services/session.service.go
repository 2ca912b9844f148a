package services

import (
	"context"
	"errors"
	"time"
	"wellness360/config"
	"wellness360/internal/database"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionTokenLifetime = 24 * time.Hour
	sessionCachePrefix   = "session"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrSessionGone  = errors.New("session revoked or expired")
)

type SessionClaims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// SessionService issues and validates signed session tokens. Each token
// carries a session ID that must still exist in the session cache, which is
// what makes logout an actual revocation instead of a client-side fiction.
type SessionService struct {
	secret []byte
	cache  database.CacheClient
	log    logger.Logger
}

func NewSessionService(config config.Config, db database.DB) *SessionService {
	return &SessionService{
		secret: []byte(config.JWTSecret),
		cache:  db.Cache.Session,
		log:    logger.New("SessionService"),
	}
}

// Create issues a token for the user and registers the session in the cache.
func (s *SessionService) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	log := s.log.TraceFromContext(ctx).Function("Create")

	sessionID := uuid.New()
	now := time.Now()

	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID.String(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenLifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", log.Err("failed to sign session token", err, "userID", userID)
	}

	err = database.NewCacheBuilder(s.cache, sessionID).
		WithContext(ctx).
		WithHash(sessionCachePrefix).
		WithStruct(userID).
		WithTTL(sessionTokenLifetime).
		Set()
	if err != nil {
		return "", log.Err("failed to register session", err, "userID", userID)
	}

	return token, nil
}

// Validate parses the token and confirms the session has not been revoked.
func (s *SessionService) Validate(ctx context.Context, tokenString string) (*SessionClaims, error) {
	log := s.log.TraceFromContext(ctx).Function("Validate")

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return s.secret, nil
		},
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var cachedUserID uuid.UUID
	found, err := database.NewCacheBuilder(s.cache, sessionID).
		WithContext(ctx).
		WithHash(sessionCachePrefix).
		Get(&cachedUserID)
	if err != nil {
		return nil, log.Err("failed to check session", err, "sessionID", sessionID)
	}
	if !found || cachedUserID != claims.UserID {
		return nil, ErrSessionGone
	}

	return claims, nil
}

// Revoke removes the session so the token stops validating immediately.
func (s *SessionService) Revoke(ctx context.Context, claims *SessionClaims) error {
	log := s.log.TraceFromContext(ctx).Function("Revoke")

	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return ErrInvalidToken
	}

	err = database.NewCacheBuilder(s.cache, sessionID).
		WithContext(ctx).
		WithHash(sessionCachePrefix).
		Delete()
	if err != nil {
		return log.Err("failed to revoke session", err, "sessionID", sessionID)
	}

	return nil
}
