package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lmt-transport/LMT-Driver-App/internal/cache"
	"github.com/lmt-transport/LMT-Driver-App/internal/dto"
	"github.com/lmt-transport/LMT-Driver-App/pkg/jwt"
	"github.com/lmt-transport/LMT-Driver-App/pkg/redis"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService handles console login and logout.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout voids the presented token for its remaining lifetime.
	Logout(ctx context.Context, claims *jwt.Claims) error
}

type authService struct {
	store  *cache.Store
	jwt    *jwt.Manager
	redis  *redis.Client
	logger *zap.Logger
}

// NewAuthService wires the auth flow over the cached user list.
func NewAuthService(store *cache.Store, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{store: store, jwt: jwtMgr, redis: rdb, logger: logger}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		u := &users[i]
		if u.Username != req.Username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			break
		}

		token, err := s.jwt.Generate(u.Username, u.Role)
		if err != nil {
			return nil, err
		}
		s.logger.Info("login", zap.String("username", u.Username))
		return &dto.LoginResponse{Token: token, Username: u.Username, Role: u.Role}, nil
	}

	return nil, ErrInvalidCredentials
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.redis == nil {
		// No blacklist available; the token simply runs out its TTL.
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.redis.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		return err
	}
	s.logger.Info("logout", zap.String("username", claims.Username))
	return nil
}
