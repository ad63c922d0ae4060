package auth

import (
	"context"
	"errors"
	"time"

	"buildledger/internal/pkg/jwt"
	"buildledger/internal/store"

	"go.uber.org/zap"
)

// UserReader is the part of Repository the service needs.
type UserReader interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type Service struct {
	users UserReader
	jwt   *jwt.Service
	log   *zap.Logger
	now   func() time.Time
}

func NewService(users UserReader, jwtService *jwt.Service, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{users: users, jwt: jwtService, log: log, now: time.Now}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := CheckPassword(req.Password, user.Password); err != nil {
		s.log.Info("login rejected", zap.String("user_id", user.ID))
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Name, string(user.Role))
	if err != nil {
		return nil, err
	}

	s.log.Info("login", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return &LoginResponse{
		Token:     token,
		ExpiresAt: s.now().Add(s.jwt.TTL()).UTC(),
		User:      user.ToResponse(),
	}, nil
}

// Me returns the account behind actor. A token for a deleted user is
// treated as unauthorized.
func (s *Service) Me(ctx context.Context, actor Actor) (*UserResponse, error) {
	if actor.ID == "" {
		return nil, ErrUnauthorized
	}
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}
