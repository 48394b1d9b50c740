package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/depot-ops-api/internal/domain"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
	"github.com/jhoicas/depot-ops-api/internal/domain/repository"
)

var _ repository.DepotRepository = (*DepotRepo)(nil)

// DepotRepo implementación sobre PostgreSQL.
type DepotRepo struct {
	q Querier
}

// NewDepotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDepotRepository(q Querier) *DepotRepo {
	return &DepotRepo{q: q}
}

// Create persiste un depósito. El código corto tiene constraint único;
// su violación se traduce a domain.ErrDepotCodeExists.
func (r *DepotRepo) Create(ctx context.Context, depot *entity.Depot) error {
	if depot.ID == "" {
		depot.ID = uuid.New().String()
	}
	query := `
		INSERT INTO depots (id, code, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		depot.ID, depot.Code, depot.Name, depot.Address, depot.CreatedAt, depot.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDepotCodeExists
		}
		return fmt.Errorf("create depot: %w", err)
	}
	return nil
}

// GetByID obtiene un depósito por ID; nil si no existe.
func (r *DepotRepo) GetByID(ctx context.Context, id string) (*entity.Depot, error) {
	query := `SELECT id, code, name, address, created_at, updated_at FROM depots WHERE id = $1`
	var d entity.Depot
	err := r.q.QueryRow(ctx, query, id).Scan(&d.ID, &d.Code, &d.Name, &d.Address, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get depot: %w", err)
	}
	return &d, nil
}

// List lista depósitos paginados por nombre.
func (r *DepotRepo) List(ctx context.Context, limit, offset int) ([]*entity.Depot, error) {
	query := `
		SELECT id, code, name, address, created_at, updated_at
		FROM depots ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list depots: %w", err)
	}
	defer rows.Close()

	var list []*entity.Depot
	for rows.Next() {
		var d entity.Depot
		if err := rows.Scan(&d.ID, &d.Code, &d.Name, &d.Address, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan depot: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
