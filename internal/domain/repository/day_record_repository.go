package repository

import (
	"context"
	"time"

	"github.com/jhoicas/depot-ops-api/internal/domain/entity"
)

// DayRecordRepository es el puerto hacia el almacén de registros de jornada.
//
// El almacén es quien garantiza los invariantes de escritura: unicidad de
// apertura y de cierre por (depósito, fecha) y que todo cierre tenga apertura.
// InsertOpen/InsertClose traducen esas violaciones a domain.ErrDayAlreadyOpened,
// domain.ErrDayAlreadyClosed y domain.ErrDayNotOpened; la lógica de dominio no
// los re-valida (confía en la constraint, no en una lectura previa).
type DayRecordRepository interface {
	// GetOpen devuelve la apertura de (depotID, fecha) o nil si no existe.
	GetOpen(ctx context.Context, depotID string, date time.Time) (*entity.DayOpen, error)
	// GetClose devuelve el cierre de (depotID, fecha) o nil si no existe.
	GetClose(ctx context.Context, depotID string, date time.Time) (*entity.DayClose, error)

	InsertOpen(ctx context.Context, open *entity.DayOpen) error
	InsertClose(ctx context.Context, close *entity.DayClose) error

	// ListOpensByRange lista aperturas de un depósito en [from, to], orden
	// ascendente por fecha de negocio. depotID vacío = todos los depósitos.
	ListOpensByRange(ctx context.Context, depotID string, from, to time.Time) ([]*entity.DayOpen, error)
	// ListClosesByRange lista cierres de un depósito en [from, to], orden
	// ascendente por fecha de negocio. depotID vacío = todos los depósitos.
	ListClosesByRange(ctx context.Context, depotID string, from, to time.Time) ([]*entity.DayClose, error)
}
