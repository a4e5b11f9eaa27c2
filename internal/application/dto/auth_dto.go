package dto

import "time"

// RegisterRequest entrada para crear un usuario administrativo (solo admin).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=admin comprador"`
}

// LoginRequest entrada para login de back-office.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse salida con token JWT de sesión administrativa.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
