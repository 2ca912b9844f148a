package authController

import (
	"context"
	"errors"
	"strings"
	"time"
	"wellness360/internal/database"
	. "wellness360/internal/models"
	"wellness360/internal/repositories"
	"wellness360/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input limit
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

type AuthController struct {
	userRepo           repositories.UserRepository
	sessionService     *services.SessionService
	transactionService *services.TransactionService
	db                 database.DB
	log                logger.Logger
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type AuthControllerInterface interface {
	Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, claims *services.SessionClaims) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	db database.DB,
) AuthControllerInterface {
	return &AuthController{
		userRepo:           repos.User,
		sessionService:     services.Session,
		transactionService: services.Transaction,
		db:                 db,
		log:                logger.New("authController"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (c *AuthController) Register(
	ctx context.Context,
	request *RegisterRequest,
) (*AuthResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("Register")

	if request == nil {
		return nil, log.ErrorWithType(ErrValidation, "request body is required")
	}

	name := strings.TrimSpace(request.Name)
	email := normalizeEmail(request.Email)

	if name == "" {
		return nil, log.ErrorWithType(ErrValidation, "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, log.ErrorWithType(ErrValidation, "valid email is required")
	}
	if len(request.Password) < MinPasswordLength {
		return nil, log.ErrorWithType(ErrValidation, "password too short", "min", MinPasswordLength)
	}
	if len(request.Password) > MaxPasswordLength {
		return nil, log.ErrorWithType(ErrValidation, "password too long", "max", MaxPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if existing, err := c.userRepo.GetByEmail(ctx, tx, email); err == nil && existing != nil {
			return ErrConflict
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return c.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, log.ErrorWithType(ErrConflict, "email already registered")
		}
		return nil, log.Err("failed to register user", err)
	}

	token, err := c.sessionService.Create(ctx, user.ID)
	if err != nil {
		return nil, log.Err("failed to create session", err, "userID", user.ID)
	}

	log.Info("User registered", "userID", user.ID)

	return &AuthResponse{Token: token, User: user.ToProfile()}, nil
}

func (c *AuthController) Login(
	ctx context.Context,
	request *LoginRequest,
) (*AuthResponse, error) {
	log := c.log.TraceFromContext(ctx).Function("Login")

	if request == nil || request.Email == "" || request.Password == "" {
		return nil, log.ErrorWithType(ErrValidation, "email and password are required")
	}

	user, err := c.userRepo.GetByEmail(ctx, c.db.SQL, normalizeEmail(request.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrUnauthorized, "invalid credentials")
		}
		return nil, log.Err("failed to look up user", err)
	}

	if !user.IsActive {
		return nil, log.ErrorWithType(ErrUnauthorized, "account is disabled", "userID", user.ID)
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(request.Password),
	); err != nil {
		return nil, log.ErrorWithType(ErrUnauthorized, "invalid credentials")
	}

	token, err := c.sessionService.Create(ctx, user.ID)
	if err != nil {
		return nil, log.Err("failed to create session", err, "userID", user.ID)
	}

	now := time.Now()
	user.LastLoginAt = &now
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.userRepo.Update(ctx, tx, user)
	})
	if err != nil {
		log.Warn("failed to record last login", "userID", user.ID, "error", err)
	}

	log.Info("User logged in", "userID", user.ID)

	return &AuthResponse{Token: token, User: user.ToProfile()}, nil
}

func (c *AuthController) Logout(ctx context.Context, claims *services.SessionClaims) error {
	log := c.log.TraceFromContext(ctx).Function("Logout")

	if err := c.sessionService.Revoke(ctx, claims); err != nil {
		return log.Err("failed to revoke session", err, "userID", claims.UserID)
	}

	log.Info("User logged out", "userID", claims.UserID)

	return nil
}
