package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/fiado-ledger/internal/application/dto"
	"github.com/tu-usuario/fiado-ledger/internal/application/fiado"
	"github.com/tu-usuario/fiado-ledger/internal/domain/ledger"
)

// LedgerHandler maneja las peticiones HTTP del libro de fiados.
type LedgerHandler struct {
	uc *fiado.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *fiado.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Overview GET /api/ledger
func (h *LedgerHandler) Overview(c *fiber.Ctx) error {
	groups, err := h.uc.Overview(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(groups)
}

// Statement GET /api/ledger/:key/statement?expand=items
func (h *LedgerHandler) Statement(c *fiber.Ctx) error {
	key, err := ledger.ParseGroupKey(c.Params("key"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_KEY", Message: "clave de grupo inválida (cid:…, phone:…, entry:…)",
		})
	}
	expand := c.Query("expand") == "items"
	statement, err := h.uc.Statement(c.Context(), key, expand)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(statement)
}

// ApplyPayment POST /api/ledger/:key/payments
func (h *LedgerHandler) ApplyPayment(c *fiber.Ctx) error {
	key, err := ledger.ParseGroupKey(c.Params("key"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_KEY", Message: "clave de grupo inválida (cid:…, phone:…, entry:…)",
		})
	}
	var in dto.ApplyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo inválido",
		})
	}
	payment, err := h.uc.ApplyPayment(c.Context(), key, in.Amount)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PaymentResponse{
		ID:       payment.ID,
		CreditID: payment.CreditID,
		Amount:   payment.Amount,
		At:       payment.CreatedAt.Format(time.RFC3339),
	})
}
