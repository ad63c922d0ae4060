package settings

import (
	"context"

	"buildledger/internal/domain/auth"
	"buildledger/internal/pkg/validator"

	"go.uber.org/zap"
)

type Service struct {
	repo *Repository
	log  *zap.Logger
}

func NewService(repo *Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

func (s *Service) Get(ctx context.Context) (*CompanySettings, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Update(ctx context.Context, actor auth.Actor, patch Patch) (*CompanySettings, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	if err := validator.Struct(&patch); err != nil {
		return nil, err
	}

	cs, err := s.repo.Update(ctx, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info("company settings updated", zap.String("by", actor.ID))
	return cs, nil
}
