package service

import (
	"context"
	"errors"
	"time"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/apperr"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/dto"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials deliberately does not say whether the username or the
// password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	users           repository.UserRepository
	jwtSecret       []byte
	tokenExpiration time.Duration
}

func NewAuthService(users repository.UserRepository, jwtSecret string, tokenExpiration time.Duration) AuthService {
	return &authService{
		users:           users,
		jwtSecret:       []byte(jwtSecret),
		tokenExpiration: tokenExpiration,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperr.Persistence("loading user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":     u.ID.String(),
		"username":    u.Username,
		"role":        u.Role,
		"business_id": u.BusinessID.String(),
		"iat":         now.Unix(),
		"exp":         now.Add(s.tokenExpiration).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, apperr.Persistence("signing token", err)
	}

	log.Info().Str("username", u.Username).Str("role", u.Role).Msg("user logged in")

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenExpiration.Seconds()),
		User: dto.UserResponse{
			ID:         u.ID.String(),
			Username:   u.Username,
			Name:       u.Name,
			Role:       u.Role,
			BusinessID: u.BusinessID.String(),
		},
	}, nil
}
