package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/fiado-ledger/internal/application/dto"
	"github.com/tu-usuario/fiado-ledger/internal/domain"
)

// mapError traduce errores de dominio al cuerpo y código HTTP de la API.
// Los errores de validación son locales y recuperables (4xx); el resto se
// trata como fallo del almacén o interno.
func mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "INVALID_AMOUNT", Message: "el monto debe ser un número positivo",
		})
	case errors.Is(err, domain.ErrInvalidIdentity):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "INVALID_IDENTITY", Message: "teléfono o nombre de cliente inválido",
		})
	case errors.Is(err, domain.ErrNoOutstandingBalance):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "NO_OUTSTANDING_BALANCE", Message: "el cliente no tiene saldo pendiente",
		})
	case errors.Is(err, domain.ErrAmountExceedsBalance):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "AMOUNT_EXCEEDS_BALANCE", Message: "el abono excede el saldo pendiente",
		})
	case errors.Is(err, domain.ErrCustomerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "CUSTOMER_NOT_FOUND", Message: "cliente no encontrado",
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "recurso no encontrado",
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "DUPLICATE", Message: "recurso duplicado",
		})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "STORE_UNAVAILABLE", Message: "almacén de datos no disponible",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
}
