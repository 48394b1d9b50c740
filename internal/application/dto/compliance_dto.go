package dto

import "github.com/jhoicas/depot-ops-api/internal/domain/compliance"

// TrustReportDTO respuesta de GET /api/depots/:id/trust.
// Puntaje y racha se calculan por separado y pueden contradecirse: un puntaje
// alto con racha rota significa una falta única reciente tras un buen período.
type TrustReportDTO struct {
	DepotID     string             `json:"depot_id"`
	WindowDays  int                `json:"window_days"`
	Score       int                `json:"score"` // 0–100
	CleanStreak int                `json:"clean_streak"`
	Status      compliance.Status  `json:"status"` // CLEAN | NOT_CLEAN
	Events      []compliance.Event `json:"events"`
}
