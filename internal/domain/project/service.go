package project

import (
	"context"
	"errors"
	"strings"
	"time"

	"buildledger/internal/domain/client"
	"buildledger/internal/pkg/validator"
	"buildledger/internal/store"

	"go.uber.org/zap"
)

type IDGenerator interface {
	New() string
}

// ClientGetter checks that a referenced client exists.
type ClientGetter interface {
	GetByID(ctx context.Context, id string) (*client.Client, error)
}

type Service struct {
	repo    *Repository
	clients ClientGetter
	ids     IDGenerator
	log     *zap.Logger
	now     func() time.Time
}

func NewService(repo *Repository, clients ClientGetter, ids IDGenerator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, clients: clients, ids: ids, log: log, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]ProjectDetails, error) {
	return s.repo.ListDetails(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*ProjectDetails, error) {
	return s.repo.GetDetails(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateProjectRequest) (*ProjectDetails, error) {
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}
	if err := s.ensureClient(ctx, req.ClientID); err != nil {
		return nil, err
	}

	rooms := PriceRooms(s.assignRoomIDs(req.Rooms))
	costs := s.assignCostIDs(req.AdditionalCosts)

	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	phase := req.CurrentPhase
	if phase == "" {
		phase = PhaseStructural
	}

	now := s.now().UTC()
	p := Project{
		ID:              s.ids.New(),
		Name:            strings.TrimSpace(req.Name),
		ClientID:        req.ClientID,
		Location:        strings.TrimSpace(req.Location),
		StartDate:       req.StartDate,
		TargetEndDate:   req.TargetEndDate,
		Budget:          req.Budget,
		Status:          status,
		CurrentPhase:    phase,
		Description:     req.Description,
		Rooms:           rooms,
		AdditionalCosts: costs,
		TotalEstimate:   Estimate(rooms, costs),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Add(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("project created", zap.String("project_id", p.ID), zap.String("client_id", p.ClientID))
	return s.repo.GetDetails(ctx, p.ID)
}

// Update applies the request as a patch. Changing rooms or additional
// costs re-prices them and refreshes totalEstimate.
func (s *Service) Update(ctx context.Context, id string, req UpdateProjectRequest) (*ProjectDetails, error) {
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}
	if req.ClientID != nil {
		if err := s.ensureClient(ctx, *req.ClientID); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	patch := Patch{
		Name:          req.Name,
		ClientID:      req.ClientID,
		Location:      req.Location,
		StartDate:     req.StartDate,
		TargetEndDate: req.TargetEndDate,
		EndDate:       req.EndDate,
		Budget:        req.Budget,
		Status:        req.Status,
		CurrentPhase:  req.CurrentPhase,
		Description:   req.Description,
		ActualCost:    req.ActualCost,
		UpdatedAt:     &now,
	}

	if req.Rooms != nil || req.AdditionalCosts != nil {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		rooms, costs := current.Rooms, current.AdditionalCosts
		if req.Rooms != nil {
			rooms = PriceRooms(s.assignRoomIDs(*req.Rooms))
			patch.Rooms = &rooms
		}
		if req.AdditionalCosts != nil {
			costs = s.assignCostIDs(*req.AdditionalCosts)
			patch.AdditionalCosts = &costs
		}
		estimate := Estimate(rooms, costs)
		patch.TotalEstimate = &estimate
	}

	if _, err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.repo.GetDetails(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("project deleted", zap.String("project_id", id))
	return nil
}

func (s *Service) ensureClient(ctx context.Context, id string) error {
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return validator.Field("clientId", "exists")
		}
		return err
	}
	return nil
}

func (s *Service) assignRoomIDs(rooms []Room) []Room {
	out := make([]Room, len(rooms))
	for i, r := range rooms {
		if r.ID == "" {
			r.ID = s.ids.New()
		}
		r.Materials = append([]RoomMaterial(nil), r.Materials...)
		for j := range r.Materials {
			if r.Materials[j].ID == "" {
				r.Materials[j].ID = s.ids.New()
			}
		}
		r.Labor = append([]RoomLabor(nil), r.Labor...)
		for j := range r.Labor {
			if r.Labor[j].ID == "" {
				r.Labor[j].ID = s.ids.New()
			}
		}
		out[i] = r
	}
	return out
}

func (s *Service) assignCostIDs(costs []AdditionalCost) []AdditionalCost {
	out := make([]AdditionalCost, len(costs))
	for i, c := range costs {
		if c.ID == "" {
			c.ID = s.ids.New()
		}
		out[i] = c
	}
	return out
}
