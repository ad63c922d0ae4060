package catalog

import (
	"context"

	"buildledger/internal/store"
)

// Reference collections. The application reads them but never writes them
// outside of seeding.
const (
	materialsCollection       = "materials"
	laborCollection           = "labor"
	roomsCollection           = "rooms"
	tradesCollection          = "trades"
	additionalCostsCollection = "additional-costs"
)

type Repository struct {
	materials       *store.Collection[Material]
	labor           *store.Collection[Labor]
	rooms           *store.Collection[RoomTemplate]
	trades          *store.Collection[Trade]
	additionalCosts *store.Collection[AdditionalCost]
}

func NewRepository(db *store.DB) *Repository {
	return &Repository{
		materials:       store.NewCollection[Material](db, materialsCollection),
		labor:           store.NewCollection[Labor](db, laborCollection),
		rooms:           store.NewCollection[RoomTemplate](db, roomsCollection),
		trades:          store.NewCollection[Trade](db, tradesCollection),
		additionalCosts: store.NewCollection[AdditionalCost](db, additionalCostsCollection),
	}
}

func (r *Repository) ListMaterials(ctx context.Context) ([]Material, error) {
	return r.materials.All(ctx)
}

func (r *Repository) GetMaterial(ctx context.Context, id string) (*Material, error) {
	m, err := r.materials.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) ListLabor(ctx context.Context) ([]Labor, error) {
	return r.labor.All(ctx)
}

func (r *Repository) GetLabor(ctx context.Context, id string) (*Labor, error) {
	l, err := r.labor.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repository) ListRoomTemplates(ctx context.Context) ([]RoomTemplate, error) {
	return r.rooms.All(ctx)
}

func (r *Repository) ListTrades(ctx context.Context) ([]Trade, error) {
	return r.trades.All(ctx)
}

func (r *Repository) ListAdditionalCosts(ctx context.Context) ([]AdditionalCost, error) {
	return r.additionalCosts.All(ctx)
}

// Seed overwrites every reference collection.
func (r *Repository) Seed(ctx context.Context, materials []Material, labor []Labor, rooms []RoomTemplate, trades []Trade, costs []AdditionalCost) error {
	if err := r.materials.Replace(ctx, materials); err != nil {
		return err
	}
	if err := r.labor.Replace(ctx, labor); err != nil {
		return err
	}
	if err := r.rooms.Replace(ctx, rooms); err != nil {
		return err
	}
	if err := r.trades.Replace(ctx, trades); err != nil {
		return err
	}
	return r.additionalCosts.Replace(ctx, costs)
}
