package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/fiado-ledger/internal/application/dto"
	"github.com/tu-usuario/fiado-ledger/internal/application/fiado"
)

// CreditHandler maneja el alta manual de fiados.
type CreditHandler struct {
	uc *fiado.LedgerUseCase
}

// NewCreditHandler construye el handler.
func NewCreditHandler(uc *fiado.LedgerUseCase) *CreditHandler {
	return &CreditHandler{uc: uc}
}

// Create POST /api/credits
func (h *CreditHandler) Create(c *fiber.Ctx) error {
	var in dto.ManualCreditRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo inválido",
		})
	}
	entry, err := h.uc.AddManualCredit(c.Context(), in.Identity, in.Amount)
	if err != nil {
		return mapError(c, err)
	}
	out := dto.CreditResponse{
		ID:     entry.ID,
		Phone:  entry.Phone,
		Amount: entry.Amount,
		At:     entry.CreatedAt.Format(time.RFC3339),
	}
	if entry.CustomerID != nil {
		out.CustomerID = *entry.CustomerID
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
