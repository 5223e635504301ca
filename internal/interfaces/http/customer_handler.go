package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/fiado-ledger/internal/application/dto"
	"github.com/tu-usuario/fiado-ledger/internal/application/fiado"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc *fiado.LedgerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *fiado.LedgerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List GET /api/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListCustomers(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(list)
}

// LinkPhone POST /api/customers/link
// Resuelve (o crea) el cliente del teléfono y vincula sus fiados
// solo-teléfono. Idempotente: repetir la llamada no cambia nada.
func (h *CustomerHandler) LinkPhone(c *fiber.Ctx) error {
	var in dto.LinkPhoneRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo inválido",
		})
	}
	customer, linked, err := h.uc.LinkPhoneToCustomer(c.Context(), in.Phone)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.LinkPhoneResponse{
		Customer: dto.CustomerResponse{ID: customer.ID, Name: customer.Name, Phone: customer.Phone},
		Linked:   linked,
	})
}

// UpdateName PUT /api/customers/:id/name
func (h *CustomerHandler) UpdateName(c *fiber.Ctx) error {
	var in dto.UpdateNameRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo inválido",
		})
	}
	customer, err := h.uc.UpdateCustomerName(c.Context(), c.Params("id"), in.Name)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.CustomerResponse{ID: customer.ID, Name: customer.Name, Phone: customer.Phone})
}
