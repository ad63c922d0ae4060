package client

import (
	"context"
	"strings"
	"time"

	"buildledger/internal/pkg/validator"

	"go.uber.org/zap"
)

type IDGenerator interface {
	New() string
}

type Service struct {
	repo *Repository
	ids  IDGenerator
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo *Repository, ids IDGenerator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, ids: ids, log: log, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateClientRequest) (*Client, error) {
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}

	c := Client{
		ID:        s.ids.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		City:      strings.TrimSpace(req.City),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Add(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info("client created", zap.String("client_id", c.ID))
	return &c, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateClientRequest) (*Client, error) {
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req.Patch())
}

// Delete leaves projects, quotations and invoices that reference the client
// in place; their joined client simply resolves to nothing afterwards.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("client deleted", zap.String("client_id", id))
	return nil
}
