package dto

import "time"

// CreateDepotRequest entrada de POST /api/depots.
type CreateDepotRequest struct {
	Code    string `json:"code"` // identificador corto único, ej: "DEP-01"
	Name    string `json:"name"`
	Address string `json:"address"`
}

// DepotResponse depósito en respuestas.
type DepotResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
