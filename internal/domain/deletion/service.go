package deletion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"buildledger/internal/domain/auth"
	"buildledger/internal/pkg/validator"

	"go.uber.org/zap"
)

// Target is a repository whose records can be removed through a deletion
// request.
type Target interface {
	DeletionTarget(ctx context.Context, id string) (number, createdBy string, err error)
	Delete(ctx context.Context, id string) error
}

type IDGenerator interface {
	NewWithPrefix(prefix string) string
}

// Notifier is told about new requests and decisions. It must not block.
type Notifier interface {
	NotifyDeletionRequested(req Request)
	NotifyDeletionReviewed(req Request)
}

type Recorder interface {
	DeletionReviewed(decision string)
	SetDeletionPending(n int)
}

type Service struct {
	repo     *Repository
	targets  map[Type]Target
	ids      IDGenerator
	notifier Notifier
	metrics  Recorder
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo *Repository, quotations, invoices Target, ids IDGenerator, notifier Notifier, metrics Recorder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo: repo,
		targets: map[Type]Target{
			TypeQuotation: quotations,
			TypeInvoice:   invoices,
		},
		ids:      ids,
		notifier: notifier,
		metrics:  metrics,
		log:      log,
		now:      time.Now,
	}
}

// List returns requests, optionally narrowed to one status. Non-admins only
// see the requests they filed.
func (s *Service) List(ctx context.Context, actor auth.Actor, status Status) ([]Request, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Request, 0, len(all))
	for _, r := range all {
		if status != "" && r.Status != status {
			continue
		}
		if !actor.IsAdmin() && r.RequestedBy != actor.ID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, actor auth.Actor, id string) (*Request, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && req.RequestedBy != actor.ID {
		return nil, ErrAdminRequired
	}
	return req, nil
}

// RequestDeletion files a pending request against a quotation or invoice.
// The target itself is not touched until an admin approves.
func (s *Service) RequestDeletion(ctx context.Context, actor auth.Actor, in CreateRequest) (*Request, error) {
	if err := validator.Struct(&in); err != nil {
		return nil, err
	}

	number, createdBy, err := s.targets[in.Type].DeletionTarget(ctx, in.ItemID)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", in.Type, in.ItemID, err)
	}
	if !actor.IsAdmin() && createdBy != actor.ID {
		return nil, ErrNotOwner
	}
	if number == "" {
		number = in.ItemNumber
	}

	req := Request{
		ID:              s.ids.NewWithPrefix(IDPrefix),
		Type:            in.Type,
		ItemID:          in.ItemID,
		ItemNumber:      number,
		RequestedBy:     actor.ID,
		RequestedByName: actor.Name,
		Reason:          in.Reason,
		Status:          StatusPending,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.repo.AddPending(ctx, req); err != nil {
		return nil, err
	}

	s.log.Info("deletion requested",
		zap.String("request_id", req.ID),
		zap.String("type", string(req.Type)),
		zap.String("item_id", req.ItemID),
		zap.String("item_number", req.ItemNumber),
		zap.String("by", actor.ID),
	)
	if s.notifier != nil {
		s.notifier.NotifyDeletionRequested(req)
	}
	s.refreshPending(ctx)
	return &req, nil
}

// Review decides a pending request. The decision is stored first; on
// approval the target is then deleted. Reviewing twice fails with
// ErrAlreadyReviewed and changes nothing.
func (s *Service) Review(ctx context.Context, actor auth.Actor, id string, in ReviewRequest) (*Request, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminRequired
	}
	if err := validator.Struct(&in); err != nil {
		return nil, err
	}

	reviewed, err := s.repo.Review(ctx, id, Decision{
		Status:     in.Status,
		Notes:      in.ReviewNotes,
		ReviewedBy: actor.ID,
		ReviewedAt: s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyReviewed) {
			s.log.Warn("deletion request already reviewed", zap.String("request_id", id), zap.String("by", actor.ID))
		}
		return nil, err
	}

	if reviewed.Status == StatusApproved {
		target, ok := s.targets[reviewed.Type]
		if !ok {
			return nil, fmt.Errorf("deletion request %q: unknown type %q", reviewed.ID, reviewed.Type)
		}
		if err := target.Delete(ctx, reviewed.ItemID); err != nil {
			s.log.Error("approved deletion failed",
				zap.String("request_id", reviewed.ID),
				zap.String("item_id", reviewed.ItemID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	s.log.Info("deletion request reviewed",
		zap.String("request_id", reviewed.ID),
		zap.String("decision", string(reviewed.Status)),
		zap.String("type", string(reviewed.Type)),
		zap.String("item_id", reviewed.ItemID),
		zap.String("by", actor.ID),
	)
	if s.metrics != nil {
		s.metrics.DeletionReviewed(string(reviewed.Status))
	}
	if s.notifier != nil {
		s.notifier.NotifyDeletionReviewed(*reviewed)
	}
	s.refreshPending(ctx)
	return reviewed, nil
}

// Delete removes a request record without touching its target.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrAdminRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("deletion request removed", zap.String("request_id", id), zap.String("by", actor.ID))
	s.refreshPending(ctx)
	return nil
}

func (s *Service) refreshPending(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		s.log.Warn("pending deletion count unavailable", zap.Error(err))
		return
	}
	n := 0
	for _, r := range all {
		if r.IsPending() {
			n++
		}
	}
	s.metrics.SetDeletionPending(n)
}
