// Package depotday (aplicación) orquesta la apertura, el cierre y la consulta
// de estado de la jornada de un depósito contra el almacén de registros.
//
// Toda la aritmética de conciliación vive en internal/domain/depotday; aquí
// solo se validan entradas, se consultan registros y se traducen resultados.
package depotday

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/depot-ops-api/internal/application/dto"
	"github.com/jhoicas/depot-ops-api/internal/domain"
	"github.com/jhoicas/depot-ops-api/internal/domain/depotday"
	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
	"github.com/jhoicas/depot-ops-api/internal/domain/repository"
)

// TxRunner ejecuta fn con un almacén de jornadas atado a una transacción.
// La implementación vive en infrastructure/postgres.
type TxRunner interface {
	RunDay(ctx context.Context, fn func(dayRepo repository.DayRecordRepository) error) error
}

// UseCase casos de uso de jornada: abrir, cerrar y consultar estado.
type UseCase struct {
	dayRepo      repository.DayRecordRepository
	depotRepo    repository.DepotRepository
	tx           TxRunner
	tolerancePct decimal.Decimal
	now          func() time.Time
}

// NewUseCase construye el caso de uso. tolerancePct viene de configuración
// (OPS_TOLERANCE_PCT); con cero o negativo se usa el 5% por defecto.
func NewUseCase(dayRepo repository.DayRecordRepository, depotRepo repository.DepotRepository, tx TxRunner, tolerancePct decimal.Decimal) *UseCase {
	if tolerancePct.LessThanOrEqual(decimal.Zero) {
		tolerancePct = depotday.DefaultTolerancePct
	}
	return &UseCase{
		dayRepo:      dayRepo,
		depotRepo:    depotRepo,
		tx:           tx,
		tolerancePct: tolerancePct,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// OpenDay registra la apertura de jornada de un depósito para una fecha.
// La unicidad por (depósito, fecha) la decide el almacén: una apertura
// concurrente duplicada vuelve como domain.ErrDayAlreadyOpened.
func (uc *UseCase) OpenDay(ctx context.Context, depotID string, date time.Time, in dto.OpenDayRequest, userID string) (*dto.DayOpenDTO, error) {
	if in.OperatorName == "" || in.OpeningCash.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	counts, err := toEntityCounts(in.OpeningCounts)
	if err != nil {
		return nil, err
	}
	if err := uc.depotExists(ctx, depotID); err != nil {
		return nil, err
	}

	open := &entity.DayOpen{
		DepotID:       depotID,
		BusinessDate:  date,
		OpenedAt:      uc.now(),
		OperatorName:  in.OperatorName,
		OpeningCash:   in.OpeningCash,
		OpeningCounts: counts,
		CreatedBy:     userID,
	}
	if err := uc.dayRepo.InsertOpen(ctx, open); err != nil {
		return nil, err
	}
	return toOpenDTO(open), nil
}

// CloseDay registra el cierre de jornada y devuelve la conciliación de caja.
//
// La lectura de la apertura y el insert del cierre corren en una misma
// transacción. Necesita la apertura para conocer la base de efectivo; si no
// existe devuelve domain.ErrDayNotOpened. Aun así el insert confía en la FK
// del almacén como árbitro final, y el cierre duplicado también lo rechaza
// el constraint único.
func (uc *UseCase) CloseDay(ctx context.Context, depotID string, date time.Time, in dto.CloseDayRequest, userID string) (*dto.CloseResultDTO, error) {
	if in.OperatorName == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CashSales.IsNegative() || in.MobileSales.IsNegative() ||
		in.ClosingCash.IsNegative() || in.RestockCash.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	counts, err := toEntityCounts(in.ClosingCounts)
	if err != nil {
		return nil, err
	}

	var (
		dayClose *entity.DayClose
		variance depotday.Variance
		restocks []depotday.RestockCandidate
	)
	err = uc.tx.RunDay(ctx, func(dayRepo repository.DayRecordRepository) error {
		open, err := dayRepo.GetOpen(ctx, depotID, date)
		if err != nil {
			return err
		}
		if open == nil {
			return domain.ErrDayNotOpened
		}

		expected, err := depotday.ExpectedCash(open.OpeningCash, in.CashSales, in.RestockCash)
		if err != nil {
			return err
		}
		variance, err = depotday.ComputeVariance(expected, in.ClosingCash, uc.tolerancePct)
		if err != nil {
			return err
		}
		restocks = depotday.DetectRestocks(open.OpeningCounts, counts, in.RestockSKUs)

		dayClose = &entity.DayClose{
			DepotID:       depotID,
			BusinessDate:  date,
			ClosedAt:      uc.now(),
			OperatorName:  in.OperatorName,
			CashSales:     in.CashSales,
			MobileSales:   in.MobileSales,
			ClosingCash:   in.ClosingCash,
			RestockCash:   in.RestockCash,
			RestockSKUs:   in.RestockSKUs,
			VarianceNote:  in.VarianceNote,
			ClosingCounts: counts,
			CreatedBy:     userID,
		}
		return dayRepo.InsertClose(ctx, dayClose)
	})
	if err != nil {
		return nil, err
	}

	return &dto.CloseResultDTO{
		Close:          *toCloseDTO(dayClose),
		Reconciliation: variance,
		Restocks:       restocks,
	}, nil
}

// DayStatus deriva el estado de la jornada y, si está cerrada, recalcula la
// conciliación desde los hechos (el estado jamás se lee de una columna).
func (uc *UseCase) DayStatus(ctx context.Context, depotID string, date time.Time) (*dto.DayStatusDTO, error) {
	if err := uc.depotExists(ctx, depotID); err != nil {
		return nil, err
	}
	open, err := uc.dayRepo.GetOpen(ctx, depotID, date)
	if err != nil {
		return nil, err
	}
	dayClose, err := uc.dayRepo.GetClose(ctx, depotID, date)
	if err != nil {
		return nil, err
	}

	out := &dto.DayStatusDTO{
		DepotID:      depotID,
		BusinessDate: date.Format("2006-01-02"),
		State:        depotday.ResolveState(open != nil, dayClose != nil),
	}
	if open != nil {
		out.Open = toOpenDTO(open)
	}
	if dayClose != nil {
		out.Close = toCloseDTO(dayClose)
	}
	if out.State == depotday.StateClosed {
		expected, err := depotday.ExpectedCash(open.OpeningCash, dayClose.CashSales, dayClose.RestockCash)
		if err != nil {
			return nil, err
		}
		variance, err := depotday.ComputeVariance(expected, dayClose.ClosingCash, uc.tolerancePct)
		if err != nil {
			return nil, err
		}
		out.Reconciliation = &variance
		out.Restocks = depotday.DetectRestocks(open.OpeningCounts, dayClose.ClosingCounts, dayClose.RestockSKUs)
	}
	return out, nil
}

func (uc *UseCase) depotExists(ctx context.Context, depotID string) error {
	depot, err := uc.depotRepo.GetByID(ctx, depotID)
	if err != nil {
		return err
	}
	if depot == nil {
		return domain.ErrNotFound
	}
	return nil
}

// toEntityCounts valida y convierte los conteos del request.
// Cantidades negativas y estados desconocidos se rechazan en lugar de
// coercionarse: la coerción silenciosa producía descuadres fantasma.
func toEntityCounts(in map[string]dto.SKUCountDTO) (map[string]entity.SKUCount, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[string]entity.SKUCount, len(in))
	for sku, c := range in {
		if sku == "" {
			return nil, domain.ErrInvalidInput
		}
		if c.Status != "" {
			if c.Status != entity.SKUStatusOut && c.Status != entity.SKUStatusLow && c.Status != entity.SKUStatusIn {
				return nil, domain.ErrInvalidInput
			}
			if !c.Quantity.IsZero() {
				return nil, domain.ErrInvalidInput // cantidad y estado son excluyentes
			}
		} else if c.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		out[sku] = entity.SKUCount{Quantity: c.Quantity, Status: c.Status}
	}
	return out, nil
}

func toOpenDTO(o *entity.DayOpen) *dto.DayOpenDTO {
	return &dto.DayOpenDTO{
		DepotID:      o.DepotID,
		BusinessDate: o.BusinessDate.Format("2006-01-02"),
		OpenedAt:     o.OpenedAt,
		OperatorName: o.OperatorName,
		OpeningCash:  o.OpeningCash,
	}
}

func toCloseDTO(c *entity.DayClose) *dto.DayCloseDTO {
	return &dto.DayCloseDTO{
		DepotID:      c.DepotID,
		BusinessDate: c.BusinessDate.Format("2006-01-02"),
		ClosedAt:     c.ClosedAt,
		OperatorName: c.OperatorName,
		CashSales:    c.CashSales,
		MobileSales:  c.MobileSales,
		ClosingCash:  c.ClosingCash,
		RestockCash:  c.RestockCash,
		RestockSKUs:  c.RestockSKUs,
		VarianceNote: c.VarianceNote,
	}
}
