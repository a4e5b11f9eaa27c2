package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mccmmj/cafe-web-sub007/internal/application/dto"
	"github.com/mccmmj/cafe-web-sub007/internal/domain"
)

// respondDomainError traduce errores del dominio a respuestas HTTP. Los
// handlers lo usan como último else de su cadena de errores.
//
//   - ErrInvalidInput            → 400
//   - ErrUnauthorized            → 401
//   - ErrForbidden               → 403
//   - ErrNotFound                → 404
//   - ErrDuplicate / ErrConflict → 409
//   - InvalidTransitionError     → 409 (estado no admite la operación)
//   - OverReceiptError           → 422 (recepción excede lo ordenado)
func respondDomainError(c *fiber.Ctx, err error) error {
	var transitionErr *domain.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INVALID_TRANSITION", Message: transitionErr.Error(),
		})
	}
	var overErr *domain.OverReceiptError
	if errors.As(err, &overErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "OVER_RECEIPT", Message: overErr.Error(),
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "VERSION_CONFLICT", Message: "la orden fue modificada por otra operación, reintente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
