package entity

import "time"

// Depot representa un punto de venta físico con control diario de caja e inventario.
// Code es un identificador corto único (ej: "DEP-01") usado en reportes.
type Depot struct {
	ID        string
	Code      string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
