// Package depot (aplicación) casos de uso CRUD para depósitos.
package depot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/depot-ops-api/internal/application/dto"
	"github.com/jhoicas/depot-ops-api/internal/domain"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
	"github.com/jhoicas/depot-ops-api/internal/domain/repository"
)

// UseCase casos de uso para depósitos.
type UseCase struct {
	repo repository.DepotRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.DepotRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create crea un depósito. El código corto se normaliza a mayúsculas.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateDepotRequest) (*dto.DepotResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: code y name son requeridos", domain.ErrInvalidInput)
	}

	now := time.Now()
	depot := &entity.Depot{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, depot); err != nil {
		return nil, err
	}
	return toDepotResponse(depot), nil
}

// GetByID obtiene un depósito; nil si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.DepotResponse, error) {
	depot, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if depot == nil {
		return nil, nil
	}
	return toDepotResponse(depot), nil
}

// List lista depósitos con paginación.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]dto.DepotResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DepotResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDepotResponse(d))
	}
	return items, nil
}

func toDepotResponse(d *entity.Depot) *dto.DepotResponse {
	return &dto.DepotResponse{
		ID:        d.ID,
		Code:      d.Code,
		Name:      d.Name,
		Address:   d.Address,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
