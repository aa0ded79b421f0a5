package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
)

// errorJSON mapea errores de dominio a códigos HTTP. Los handlers llaman
// esto al final de su cadena de casos de uso; los errores ya vienen
// envueltos con %w, de ahí errors.Is.
func errorJSON(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEntradaInvalida),
		errors.Is(err, domain.ErrUmbralesInvalidos):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrCredencialesInvalidas):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrNoAutorizado):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrProductoNoEncontrado),
		errors.Is(err, domain.ErrUnidadNoEncontrada),
		errors.Is(err, domain.ErrVentaNoEncontrada),
		errors.Is(err, domain.ErrConsignacionNoEncontrada),
		errors.Is(err, domain.ErrClienteNoEncontrado),
		errors.Is(err, domain.ErrTasaNoDisponible),
		errors.Is(err, domain.ErrNoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicado),
		errors.Is(err, domain.ErrSerialDuplicado),
		errors.Is(err, domain.ErrTransicionInvalida),
		errors.Is(err, domain.ErrUnidadNoDisponible),
		errors.Is(err, domain.ErrLineaNoPendiente),
		errors.Is(err, domain.ErrVentaDeConsignacion),
		errors.Is(err, domain.ErrStockInsuficiente),
		errors.Is(err, domain.ErrPagosInconsistentes):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		// El detalle (SQL, drivers) se queda en el log; al cliente solo
		// le llega un mensaje opaco.
		log.Error().Err(err).Str("ruta", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
