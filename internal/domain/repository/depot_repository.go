package repository

import (
	"context"

	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
)

// DepotRepository define el puerto de persistencia para depósitos.
type DepotRepository interface {
	Create(ctx context.Context, depot *entity.Depot) error
	GetByID(ctx context.Context, id string) (*entity.Depot, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Depot, error)
}
