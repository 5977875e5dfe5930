/**
 * @description
 * Registration, login and token issuance. Passwords are hashed with bcrypt
 * and sessions are stateless HS256 JWTs carrying the user id as subject.
 * Login attempts are rate limited per email through Redis when a limiter is
 * configured; without one logins are never throttled.
 *
 * @dependencies
 * - golang.org/x/crypto/bcrypt: password hashing.
 * - github.com/golang-jwt/jwt/v5: token issuance.
 * - internal/store: user persistence.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/financeflow/finance-service/internal/domain"
	"github.com/financeflow/finance-service/internal/store"
)

// ErrInvalidCredentials is returned on login when the email is unknown or
// the password does not match. The two cases are indistinguishable on
// purpose.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrLoginThrottled is returned when an email has exceeded its login
// attempt budget for the current window.
var ErrLoginThrottled = errors.New("too many login attempts, try again later")

// LoginRateLimiter gates login attempts per email. A nil limiter means no
// throttling.
type LoginRateLimiter interface {
	Allow(ctx context.Context, email string) (ok bool, retryAfter time.Duration, err error)
}

// AuthService provides registration, login and token verification.
type AuthService struct {
	repo      store.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	limiter   LoginRateLimiter
}

// NewAuthService creates a new auth service instance.
func NewAuthService(repo store.UserRepository, jwtSecret string, tokenTTL time.Duration, limiter LoginRateLimiter) *AuthService {
	return &AuthService{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		limiter:   limiter,
	}
}

// Register validates the request, hashes the password and stores the user.
// A duplicate email surfaces as store.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		return nil, validationErrorf("first name and last name are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResponse{User: user, Token: token}, nil
}

// Login verifies credentials and issues a fresh token. Attempts count
// against the per-email budget whether or not the password matches.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	if s.limiter != nil {
		ok, retryAfter, err := s.limiter.Allow(ctx, email)
		if err != nil {
			// Redis being down must not lock users out.
			log.Printf("level=warn component=auth_service msg=\"login rate limiter unavailable\" err=%v", err)
		} else if !ok {
			log.Printf("level=info component=auth_service msg=\"login throttled\" email=%s retry_after=%s", email, retryAfter)
			return nil, ErrLoginThrottled
		}
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResponse{User: user, Token: token}, nil
}

// CurrentUser resolves the authenticated user's profile.
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.repo.FindUserByID(ctx, userID)
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
