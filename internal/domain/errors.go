package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	// ErrConflict: la versión de la orden cambió entre la lectura y la
	// escritura; el caller debe releer y reintentar.
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUserNotFound = errors.New("usuario no encontrado")
)

// InvalidTransitionError indica que la máquina de estados rechazó una
// transición. La orden queda sin modificar.
type InvalidTransitionError struct {
	From string // estado actual de la orden
	To   string // estado destino solicitado
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transición inválida: %s -> %s", e.From, e.To)
}

// OverReceiptError indica que una recepción excedería la cantidad ordenada
// de una línea. No se escribe ningún registro parcial.
type OverReceiptError struct {
	OrderID   string
	LineID    string
	Ordered   string // cantidad ordenada
	Received  string // cantidad acumulada ya recibida
	Attempted string // cantidad que se intentó recibir
}

func (e *OverReceiptError) Error() string {
	return fmt.Sprintf("sobre-recepción en orden %s línea %s: ordenado %s, recibido %s, intento %s",
		e.OrderID, e.LineID, e.Ordered, e.Received, e.Attempted)
}
