package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/financeflow/finance-service/internal/domain"
	"github.com/financeflow/finance-service/internal/store"
)

type userRepoFake struct {
	byEmail map[string]*domain.User
	byID    map[uuid.UUID]*domain.User
}

func newUserRepoFake() *userRepoFake {
	return &userRepoFake{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[uuid.UUID]*domain.User),
	}
}

func (f *userRepoFake) CreateUser(ctx context.Context, user *domain.User) error {
	if _, taken := f.byEmail[user.Email]; taken {
		return store.ErrEmailTaken
	}
	copied := *user
	f.byEmail[user.Email] = &copied
	f.byID[user.ID] = &copied
	return nil
}

func (f *userRepoFake) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *userRepoFake) FindUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, ok := f.byID[userID]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

type limiterStub struct {
	limit    int
	attempts int
}

func (l *limiterStub) Allow(ctx context.Context, email string) (bool, time.Duration, error) {
	l.attempts++
	if l.attempts > l.limit {
		return false, 30 * time.Second, nil
	}
	return true, 0, nil
}

const testSecret = "unit-test-secret"

func newTestAuthService(repo store.UserRepository, limiter LoginRateLimiter) *AuthService {
	return NewAuthService(repo, testSecret, time.Hour, limiter)
}

func TestRegisterThenLogin(t *testing.T) {
	repo := newUserRepoFake()
	svc := newTestAuthService(repo, nil)

	resp, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:     "Jane.Doe@Example.com",
		Password:  "Str0ngPass",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.User.Email != "jane.doe@example.com" {
		t.Fatalf("expected email lowercased, got %q", resp.User.Email)
	}
	if resp.User.PasswordHash == "Str0ngPass" {
		t.Fatal("expected password to be hashed")
	}
	if resp.Token == "" {
		t.Fatal("expected a token on register")
	}

	login, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "jane.doe@example.com",
		Password: "Str0ngPass",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	token, err := jwt.Parse(login.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("expected a valid token, got err=%v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != resp.User.ID.String() {
		t.Fatalf("expected sub claim %s, got %v", resp.User.ID, claims["sub"])
	}
}

func TestRegister_RejectsWeakPassword(t *testing.T) {
	repo := newUserRepoFake()
	svc := newTestAuthService(repo, nil)

	tests := []struct {
		name     string
		password string
	}{
		{name: "too short", password: "Ab1"},
		{name: "no uppercase", password: "weakpass1"},
		{name: "no lowercase", password: "WEAKPASS1"},
		{name: "no digit", password: "WeakPassword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), domain.RegisterRequest{
				Email:     "user@example.com",
				Password:  tt.password,
				FirstName: "A",
				LastName:  "B",
			})
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newUserRepoFake()
	svc := newTestAuthService(repo, nil)

	req := domain.RegisterRequest{
		Email:     "dup@example.com",
		Password:  "Str0ngPass",
		FirstName: "First",
		LastName:  "User",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, store.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_InvalidCredentialsAreOpaque(t *testing.T) {
	repo := newUserRepoFake()
	svc := newTestAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:     "known@example.com",
		Password:  "Str0ngPass",
		FirstName: "Known",
		LastName:  "User",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Unknown email and wrong password surface the same error.
	_, unknownErr := svc.Login(context.Background(), domain.LoginRequest{Email: "missing@example.com", Password: "Str0ngPass"})
	_, wrongErr := svc.Login(context.Background(), domain.LoginRequest{Email: "known@example.com", Password: "WrongPass1"})
	if !errors.Is(unknownErr, ErrInvalidCredentials) || !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", unknownErr, wrongErr)
	}
}

func TestLogin_ThrottlesAfterLimit(t *testing.T) {
	repo := newUserRepoFake()
	limiter := &limiterStub{limit: 3}
	svc := newTestAuthService(repo, limiter)

	req := domain.LoginRequest{Email: "burst@example.com", Password: "Str0ngPass"}
	for i := 0; i < 3; i++ {
		if _, err := svc.Login(context.Background(), req); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}
	if _, err := svc.Login(context.Background(), req); !errors.Is(err, ErrLoginThrottled) {
		t.Fatalf("expected ErrLoginThrottled after limit, got %v", err)
	}
}
