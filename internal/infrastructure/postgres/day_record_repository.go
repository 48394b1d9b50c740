package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/depot-ops-api/internal/domain"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
	"github.com/jhoicas/depot-ops-api/internal/domain/repository"
)

var _ repository.DayRecordRepository = (*DayRecordRepo)(nil)

// DayRecordRepo implementación sobre PostgreSQL del almacén de jornadas.
//
// Invariantes garantizados por el esquema, no por este código:
//   - day_opens:  UNIQUE (depot_id, business_date)
//   - day_closes: UNIQUE (depot_id, business_date) y
//     FOREIGN KEY (depot_id, business_date) REFERENCES day_opens
//
// Los conteos de SKU van en columnas JSONB; los montos en NUMERIC (codec
// shopspring/decimal registrado en el pool).
type DayRecordRepo struct {
	q Querier
}

// NewDayRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDayRecordRepository(q Querier) *DayRecordRepo {
	return &DayRecordRepo{q: q}
}

// InsertOpen persiste la apertura de jornada. Si ya existe una para ese
// depósito y fecha devuelve domain.ErrDayAlreadyOpened: el constraint único
// es quien decide, también bajo aperturas concurrentes.
func (r *DayRecordRepo) InsertOpen(ctx context.Context, open *entity.DayOpen) error {
	if open.ID == "" {
		open.ID = uuid.New().String()
	}
	counts, err := json.Marshal(open.OpeningCounts)
	if err != nil {
		return fmt.Errorf("serializar conteos de apertura: %w", err)
	}
	query := `
		INSERT INTO day_opens (id, depot_id, business_date, opened_at, operator_name, opening_cash, opening_counts, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query,
		open.ID, open.DepotID, open.BusinessDate, open.OpenedAt,
		open.OperatorName, open.OpeningCash, counts, nullable(open.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDayAlreadyOpened
		}
		return fmt.Errorf("insert day open: %w", err)
	}
	return nil
}

// InsertClose persiste el cierre de jornada. Cierre duplicado devuelve
// domain.ErrDayAlreadyClosed; cierre sin apertura (violación de la FK
// compuesta hacia day_opens) devuelve domain.ErrDayNotOpened.
func (r *DayRecordRepo) InsertClose(ctx context.Context, close *entity.DayClose) error {
	if close.ID == "" {
		close.ID = uuid.New().String()
	}
	counts, err := json.Marshal(close.ClosingCounts)
	if err != nil {
		return fmt.Errorf("serializar conteos de cierre: %w", err)
	}
	query := `
		INSERT INTO day_closes (id, depot_id, business_date, closed_at, operator_name,
			cash_sales, mobile_sales, closing_cash, restock_cash, restock_skus,
			variance_note, closing_counts, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.q.Exec(ctx, query,
		close.ID, close.DepotID, close.BusinessDate, close.ClosedAt, close.OperatorName,
		close.CashSales, close.MobileSales, close.ClosingCash, close.RestockCash,
		close.RestockSKUs, nullable(close.VarianceNote), counts, nullable(close.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDayAlreadyClosed
		}
		if isForeignKeyViolation(err) {
			return domain.ErrDayNotOpened
		}
		return fmt.Errorf("insert day close: %w", err)
	}
	return nil
}

// GetOpen obtiene la apertura de (depotID, fecha); nil si no existe.
func (r *DayRecordRepo) GetOpen(ctx context.Context, depotID string, date time.Time) (*entity.DayOpen, error) {
	query := `
		SELECT id, depot_id, business_date, opened_at, operator_name, opening_cash, opening_counts, created_by
		FROM day_opens WHERE depot_id = $1 AND business_date = $2`
	open, err := scanOpen(r.q.QueryRow(ctx, query, depotID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get day open: %w", err)
	}
	return open, nil
}

// GetClose obtiene el cierre de (depotID, fecha); nil si no existe.
func (r *DayRecordRepo) GetClose(ctx context.Context, depotID string, date time.Time) (*entity.DayClose, error) {
	query := closeSelect + ` WHERE depot_id = $1 AND business_date = $2`
	dayClose, err := scanClose(r.q.QueryRow(ctx, query, depotID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get day close: %w", err)
	}
	return dayClose, nil
}

// ListOpensByRange lista aperturas en [from, to], ascendente por fecha.
// depotID vacío devuelve las aperturas de todos los depósitos.
func (r *DayRecordRepo) ListOpensByRange(ctx context.Context, depotID string, from, to time.Time) ([]*entity.DayOpen, error) {
	query := `
		SELECT id, depot_id, business_date, opened_at, operator_name, opening_cash, opening_counts, created_by
		FROM day_opens
		WHERE business_date BETWEEN $1 AND $2`
	args := []any{from, to}
	if depotID != "" {
		query += ` AND depot_id = $3`
		args = append(args, depotID)
	}
	query += ` ORDER BY business_date ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list day opens: %w", err)
	}
	defer rows.Close()

	var list []*entity.DayOpen
	for rows.Next() {
		open, err := scanOpen(rows)
		if err != nil {
			return nil, fmt.Errorf("scan day open: %w", err)
		}
		list = append(list, open)
	}
	return list, rows.Err()
}

// ListClosesByRange lista cierres en [from, to], ascendente por fecha.
// depotID vacío devuelve los cierres de todos los depósitos.
func (r *DayRecordRepo) ListClosesByRange(ctx context.Context, depotID string, from, to time.Time) ([]*entity.DayClose, error) {
	query := closeSelect + ` WHERE business_date BETWEEN $1 AND $2`
	args := []any{from, to}
	if depotID != "" {
		query += ` AND depot_id = $3`
		args = append(args, depotID)
	}
	query += ` ORDER BY business_date ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list day closes: %w", err)
	}
	defer rows.Close()

	var list []*entity.DayClose
	for rows.Next() {
		dayClose, err := scanClose(rows)
		if err != nil {
			return nil, fmt.Errorf("scan day close: %w", err)
		}
		list = append(list, dayClose)
	}
	return list, rows.Err()
}

const closeSelect = `
	SELECT id, depot_id, business_date, closed_at, operator_name,
		cash_sales, mobile_sales, closing_cash, restock_cash, restock_skus,
		variance_note, closing_counts, created_by
	FROM day_closes`

func scanOpen(row pgx.Row) (*entity.DayOpen, error) {
	var o entity.DayOpen
	var counts []byte
	var createdBy *string
	err := row.Scan(&o.ID, &o.DepotID, &o.BusinessDate, &o.OpenedAt,
		&o.OperatorName, &o.OpeningCash, &counts, &createdBy)
	if err != nil {
		return nil, err
	}
	if len(counts) > 0 {
		if err := json.Unmarshal(counts, &o.OpeningCounts); err != nil {
			return nil, fmt.Errorf("deserializar conteos de apertura: %w", err)
		}
	}
	if createdBy != nil {
		o.CreatedBy = *createdBy
	}
	return &o, nil
}

func scanClose(row pgx.Row) (*entity.DayClose, error) {
	var c entity.DayClose
	var counts []byte
	var note, createdBy *string
	err := row.Scan(&c.ID, &c.DepotID, &c.BusinessDate, &c.ClosedAt, &c.OperatorName,
		&c.CashSales, &c.MobileSales, &c.ClosingCash, &c.RestockCash, &c.RestockSKUs,
		&note, &counts, &createdBy)
	if err != nil {
		return nil, err
	}
	if len(counts) > 0 {
		if err := json.Unmarshal(counts, &c.ClosingCounts); err != nil {
			return nil, fmt.Errorf("deserializar conteos de cierre: %w", err)
		}
	}
	if note != nil {
		c.VarianceNote = *note
	}
	if createdBy != nil {
		c.CreatedBy = *createdBy
	}
	return &c, nil
}

// nullable convierte "" en NULL para columnas opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
