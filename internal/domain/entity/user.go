package entity

import "time"

// Roles de la aplicación.
const (
	RoleAdmin     = "admin"
	RoleComprador = "comprador" // puede crear/transicionar órdenes y registrar recepciones
)

// User usuario administrativo del back-office.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
