package auth

import (
	"context"
	"strings"

	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/jwt"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/password"
)

// Service handles moderator authentication
type Service struct {
	repo       Repository
	jwtService *jwt.Service
}

// NewService creates auth service
func NewService(repo Repository, jwtService *jwt.Service) *Service {
	return &Service{repo: repo, jwtService: jwtService}
}

// Login authenticates a moderator account
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		User: UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		},
		AccessToken: token,
		ExpiresIn:   int(s.jwtService.GetAccessTTL().Seconds()),
	}, nil
}
