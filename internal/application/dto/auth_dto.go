package dto

import "time"

// RegisterRequest entrada de POST /api/auth/register.
type RegisterRequest struct {
	DepotID  string `json:"depot_id"` // obligatorio para operadores, vacío para admin
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"` // admin | operador (default operador)
}

// LoginRequest entrada de POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse usuario sin campos sensibles (nunca expone el hash).
type UserResponse struct {
	ID        string    `json:"id"`
	DepotID   string    `json:"depot_id,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
