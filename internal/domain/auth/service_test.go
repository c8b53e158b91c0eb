package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/jwt"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/password"
)

type fakeUserRepo struct {
	byEmail *User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if f.byEmail != nil && f.byEmail.Email == email {
		return f.byEmail, nil
	}
	return nil, ErrUserNotFound
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if f.byEmail != nil && f.byEmail.ID == id {
		return f.byEmail, nil
	}
	return nil, ErrUserNotFound
}
func (f *fakeUserRepo) Create(ctx context.Context, u *User) error { return nil }

func moderatorUser(t *testing.T) *User {
	t.Helper()
	hash, err := password.Hash("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &User{
		ID:           uuid.New(),
		Email:        "mod@example.com",
		PasswordHash: hash,
		Role:         RoleModerator,
		CreatedAt:    time.Now(),
	}
}

func TestLoginSuccess(t *testing.T) {
	u := moderatorUser(t)
	jwtService := jwt.NewService("secret", time.Hour)
	svc := NewService(&fakeUserRepo{byEmail: u}, jwtService)

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: "mod@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if resp.User.Role != RoleModerator {
		t.Fatalf("role = %q", resp.User.Role)
	}

	claims, err := jwtService.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("token does not validate: %v", err)
	}
	if claims.UserID != u.ID || claims.Role != RoleModerator {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	u := moderatorUser(t)
	svc := NewService(&fakeUserRepo{byEmail: u}, jwt.NewService("secret", time.Hour))

	if _, err := svc.Login(context.Background(), &LoginRequest{Email: "  MOD@Example.com ", Password: "password123"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	u := moderatorUser(t)
	svc := NewService(&fakeUserRepo{byEmail: u}, jwt.NewService("secret", time.Hour))

	if _, err := svc.Login(context.Background(), &LoginRequest{Email: "mod@example.com", Password: "wrong-password"}); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewService(&fakeUserRepo{}, jwt.NewService("secret", time.Hour))

	if _, err := svc.Login(context.Background(), &LoginRequest{Email: "nobody@example.com", Password: "password123"}); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginHandlerInvalidCredentialsReturns401(t *testing.T) {
	u := moderatorUser(t)
	svc := NewService(&fakeUserRepo{byEmail: u}, jwt.NewService("secret", time.Hour))
	h := NewHandler(svc)

	body, _ := json.Marshal(LoginRequest{Email: "mod@example.com", Password: "wrong-password"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLoginHandlerSuccessReturnsToken(t *testing.T) {
	u := moderatorUser(t)
	svc := NewService(&fakeUserRepo{byEmail: u}, jwt.NewService("secret", time.Hour))
	h := NewHandler(svc)

	body, _ := json.Marshal(LoginRequest{Email: "mod@example.com", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var out struct {
		Data struct {
			AccessToken string `json:"access_token"`
			ExpiresIn   int    `json:"expires_in"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Data.AccessToken == "" {
		t.Fatal("expected access token in response")
	}
	if out.Data.ExpiresIn != 3600 {
		t.Fatalf("expires_in = %d, want 3600", out.Data.ExpiresIn)
	}
}
